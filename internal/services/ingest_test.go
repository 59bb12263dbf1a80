package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/query"
	"github.com/verdora/verdora-backend/internal/repos"
)

const sampleCSV = `brand_name,website,description,category,certifications,sustainability_score,eco_materials_score,carbon_footprint,water_usage,worker_welfare,year,latitude,longitude,city,state,zip_code
Hudson Goods,https://hudson.example,Durable basics,Clothing,B Corp|Fair Trade,82,75,12.5,30.2,88,2015,40.7128,-74.0060,New York,NY,10001
Hudson Goods,https://dupe.example,Duplicate row,Clothing,,50,50,50,50,50,2020,40.7,-74.0,New York,NY,10001
Venice Textiles,https://venice.example,Recycled fabrics,Clothing,GOTS,91,88,8.1,22.4,90,2018,34.0522,-118.2437,Los Angeles,CA,90001
Bad Numbers Inc,https://bad.example,Broken row,Beauty,,not-a-number,1,1,1,1,2020,0,0,Austin,TX,73301
Bay Soaps,https://bay.example,Small batch soap,Beauty,Leaping Bunny,77,70,5.5,18.9,85,2019,37.7749,-122.4194,San Francisco,CA,94103
`

func writeSampleCSV(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "businesses.csv")
	if err := os.WriteFile(path, []byte(sampleCSV), 0o644); err != nil {
		t.Fatalf("failed to write sample csv: %v", err)
	}
	return path
}

func newTestIngest(t *testing.T) (IngestService, repos.BusinessRepo) {
	t.Helper()
	db := newTestDB(t)
	log := logger.NewNop()
	businessRepo := repos.NewBusinessRepo(db, log)
	return NewIngestService(db, log, businessRepo), businessRepo
}

func TestIngest_LoadCSV(t *testing.T) {
	is, businessRepo := newTestIngest(t)
	ctx := context.Background()

	inserted, err := is.LoadCSV(ctx, writeSampleCSV(t))
	if err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}
	// Duplicate brand and unparseable row are skipped.
	if inserted != 3 {
		t.Fatalf("expected 3 inserted rows, got %d", inserted)
	}

	count, err := businessRepo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 stored rows, got %d", count)
	}
}

func TestIngest_ParsesFields(t *testing.T) {
	is, businessRepo := newTestIngest(t)
	ctx := context.Background()

	if _, err := is.LoadCSV(ctx, writeSampleCSV(t)); err != nil {
		t.Fatalf("LoadCSV failed: %v", err)
	}

	sort, _ := query.ParseSort("", "")
	page, _ := query.NewPage(1, 25)
	rows, _, err := businessRepo.List(ctx, nil, query.Filter{Search: "Hudson"}, sort, page)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 Hudson row, got %d", len(rows))
	}
	b := rows[0]
	if b.SustainabilityScore != 82 || b.State != "NY" || b.Year != 2015 {
		t.Fatalf("unexpected parsed row %+v", b)
	}
	if len(b.Certifications) != 2 || b.Certifications[0] != "B Corp" || b.Certifications[1] != "Fair Trade" {
		t.Fatalf("certifications must split on '|', got %v", b.Certifications)
	}
	// First occurrence wins for a duplicated brand.
	if b.Description != "Durable basics" {
		t.Fatalf("expected first occurrence to win, got %q", b.Description)
	}
}

func TestIngest_LoadCSVIfEmpty(t *testing.T) {
	is, businessRepo := newTestIngest(t)
	ctx := context.Background()
	path := writeSampleCSV(t)

	first, err := is.LoadCSVIfEmpty(ctx, path)
	if err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if first != 3 {
		t.Fatalf("expected 3 inserted rows, got %d", first)
	}

	second, err := is.LoadCSVIfEmpty(ctx, path)
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if second != 0 {
		t.Fatalf("populated store must skip ingest, inserted %d", second)
	}

	count, err := businessRepo.Count(ctx, nil)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 rows after repeated loads, got %d", count)
	}
}

func TestIngest_MissingFile(t *testing.T) {
	is, _ := newTestIngest(t)

	if _, err := is.LoadCSV(context.Background(), filepath.Join(t.TempDir(), "missing.csv")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
