package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/verdora/verdora-backend/internal/apierr"
)

func respondWith(t *testing.T, err error) (*httptest.ResponseRecorder, ErrorEnvelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	RespondError(c, err)

	var envelope ErrorEnvelope
	if err := json.Unmarshal(recorder.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("response is not a valid error envelope: %v", err)
	}
	return recorder, envelope
}

func TestRespondError_TaxonomyMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{apierr.InvalidFilterValue(fmt.Errorf("bad min_score")), http.StatusBadRequest, apierr.CodeInvalidFilterValue},
		{apierr.InvalidPagination(fmt.Errorf("bad page")), http.StatusBadRequest, apierr.CodeInvalidPagination},
		{apierr.StoreUnavailable(fmt.Errorf("down")), http.StatusServiceUnavailable, apierr.CodeStoreUnavailable},
		{apierr.StoreConstraintViolation(fmt.Errorf("dup")), http.StatusConflict, apierr.CodeStoreConstraintViolation},
		{apierr.RecommendationUnavailable(fmt.Errorf("ai down")), http.StatusBadGateway, apierr.CodeRecommendationUnavailable},
		{apierr.Unauthorized(fmt.Errorf("no token")), http.StatusUnauthorized, apierr.CodeUnauthorized},
		{apierr.NotFound(fmt.Errorf("missing")), http.StatusNotFound, apierr.CodeNotFound},
	}
	for _, tc := range cases {
		recorder, envelope := respondWith(t, tc.err)
		if recorder.Code != tc.status {
			t.Fatalf("expected status %d for %q, got %d", tc.status, tc.code, recorder.Code)
		}
		if envelope.Error.Code != tc.code {
			t.Fatalf("expected code %q, got %q", tc.code, envelope.Error.Code)
		}
		if envelope.Error.Message == "" {
			t.Fatalf("expected a message for %q", tc.code)
		}
	}
}

func TestRespondError_Unclassified(t *testing.T) {
	recorder, envelope := respondWith(t, fmt.Errorf("something exploded"))
	if recorder.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for unclassified error, got %d", recorder.Code)
	}
	if envelope.Error.Code != "" {
		t.Fatalf("unclassified errors carry no code, got %q", envelope.Error.Code)
	}
}

func TestRespondError_WrappedTaxonomy(t *testing.T) {
	wrapped := fmt.Errorf("listing businesses: %w", apierr.InvalidPagination(fmt.Errorf("page 0")))
	recorder, envelope := respondWith(t, wrapped)
	if recorder.Code != http.StatusBadRequest || envelope.Error.Code != apierr.CodeInvalidPagination {
		t.Fatalf("wrapped taxonomy errors must keep their mapping, got %d %q", recorder.Code, envelope.Error.Code)
	}
}
