package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/verdora/verdora-backend/internal/logger"
	"github.com/verdora/verdora-backend/internal/repos"
	"github.com/verdora/verdora-backend/internal/types"
)

type IngestService interface {
	// LoadCSV bulk-loads business records from a CSV file and returns the
	// number of rows inserted. Rows that duplicate an existing brand name
	// are skipped, as are rows with unparseable numeric fields.
	LoadCSV(ctx context.Context, path string) (int, error)
	// LoadCSVIfEmpty loads only when the business table has no rows yet.
	LoadCSVIfEmpty(ctx context.Context, path string) (int, error)
}

type ingestService struct {
	db           *gorm.DB
	log          *logger.Logger
	businessRepo repos.BusinessRepo
}

func NewIngestService(db *gorm.DB, log *logger.Logger, businessRepo repos.BusinessRepo) IngestService {
	return &ingestService{
		db:           db,
		log:          log.With("service", "IngestService"),
		businessRepo: businessRepo,
	}
}

func (is *ingestService) LoadCSVIfEmpty(ctx context.Context, path string) (int, error) {
	count, err := is.businessRepo.Count(ctx, nil)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		is.log.Info("Business data already loaded, skipping ingest", "existing_rows", count)
		return 0, nil
	}
	return is.LoadCSV(ctx, path)
}

func (is *ingestService) LoadCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open business data: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	columns := map[string]int{}
	for i, name := range header {
		columns[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"brand_name", "sustainability_score"} {
		if _, ok := columns[required]; !ok {
			return 0, fmt.Errorf("business data is missing column %q", required)
		}
	}

	inserted := 0
	seen := map[string]struct{}{}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			is.log.Warn("Skipping malformed row", "line", line, "error", err)
			continue
		}

		business, err := parseBusinessRow(columns, record)
		if err != nil {
			is.log.Warn("Skipping unparseable row", "line", line, "error", err)
			continue
		}
		// First occurrence of a brand wins, within the file and against
		// rows already in the store.
		brand := strings.ToLower(business.BrandName)
		if _, dup := seen[brand]; dup {
			continue
		}
		seen[brand] = struct{}{}

		if err := is.businessRepo.CreateBatch(ctx, nil, []*types.Business{business}); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				is.log.Info("Skipping duplicate brand", "brand_name", business.BrandName)
				continue
			}
			return inserted, repos.MapError(err)
		}
		inserted++
	}

	is.log.Info("Business data ingest complete", "inserted", inserted)
	return inserted, nil
}

func parseBusinessRow(columns map[string]int, record []string) (*types.Business, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}
	floatField := func(name string) (float64, error) {
		raw := field(name)
		if raw == "" {
			return 0, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, fmt.Errorf("column %q: %w", name, err)
		}
		return v, nil
	}

	brand := field("brand_name")
	if brand == "" {
		return nil, fmt.Errorf("empty brand_name")
	}

	business := &types.Business{
		BrandName:   brand,
		Website:     field("website"),
		Description: field("description"),
		Category:    field("category"),
		City:        field("city"),
		State:       strings.ToUpper(field("state")),
		ZipCode:     field("zip_code"),
	}

	certifications := []string{}
	if raw := field("certifications"); raw != "" {
		for _, cert := range strings.Split(raw, "|") {
			if cert = strings.TrimSpace(cert); cert != "" {
				certifications = append(certifications, cert)
			}
		}
	}
	business.Certifications = datatypes.JSONSlice[string](certifications)

	var err error
	if business.SustainabilityScore, err = floatField("sustainability_score"); err != nil {
		return nil, err
	}
	if business.EcoMaterialsScore, err = floatField("eco_materials_score"); err != nil {
		return nil, err
	}
	if business.CarbonFootprint, err = floatField("carbon_footprint"); err != nil {
		return nil, err
	}
	if business.WaterUsage, err = floatField("water_usage"); err != nil {
		return nil, err
	}
	if business.WorkerWelfare, err = floatField("worker_welfare"); err != nil {
		return nil, err
	}
	if business.Latitude, err = floatField("latitude"); err != nil {
		return nil, err
	}
	if business.Longitude, err = floatField("longitude"); err != nil {
		return nil, err
	}
	if raw := field("year"); raw != "" {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("column %q: %w", "year", err)
		}
		business.Year = year
	}
	return business, nil
}
