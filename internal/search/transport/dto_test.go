package transport

import (
	"errors"
	"testing"
	"time"

	"beacon_backend/internal/search/domain"
	"beacon_backend/platform/apperr"
)

func TestFiltersDecodesTypes(t *testing.T) {
	req := SearchRequest{Types: "customer, email"}
	filters, err := req.Filters()
	if err != nil {
		t.Fatalf("Filters: %v", err)
	}
	if len(filters.Types) != 2 || filters.Types[0] != domain.TypeCustomer || filters.Types[1] != domain.TypeEmail {
		t.Fatalf("unexpected types: %v", filters.Types)
	}
}

func TestFiltersRejectsUnknownType(t *testing.T) {
	req := SearchRequest{Types: "customer,widget"}
	_, err := req.Filters()
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind != apperr.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFiltersDateRangeInclusiveUpperBound(t *testing.T) {
	req := SearchRequest{DateFrom: "2025-03-01", DateTo: "2025-03-31"}
	filters, err := req.Filters()
	if err != nil {
		t.Fatalf("Filters: %v", err)
	}
	if filters.DateFrom == nil || !filters.DateFrom.Equal(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date_from: %v", filters.DateFrom)
	}
	// Searching "to March 31" must include results from March 31 itself.
	if filters.DateTo == nil || !filters.DateTo.Equal(time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected date_to: %v", filters.DateTo)
	}
}

func TestFiltersRejectsInvertedDateRange(t *testing.T) {
	req := SearchRequest{DateFrom: "2025-03-10", DateTo: "2025-03-01"}
	if _, err := req.Filters(); err == nil {
		t.Fatal("expected error for inverted date range")
	}
}

func TestFromPageResolvesDisplayMetadata(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.AddDate(0, 0, -1)
	page := &domain.Page{
		Results: []domain.Result{{
			Type:  domain.TypeEmail,
			Title: "Renewal pricing",
			Metadata: domain.Metadata{
				CustomerName: "Acme Corp",
				From:         "sarah@acme.com",
				Date:         &yesterday,
			},
		}},
		Total:   1,
		HasMore: false,
	}

	resp := FromPage(page, now)
	if len(resp.Results) != 1 {
		t.Fatalf("expected 1 result view, got %d", len(resp.Results))
	}
	view := resp.Results[0]
	if view.Display.Label != "Email" || view.Display.Icon == "" {
		t.Fatalf("display metadata not resolved: %+v", view.Display)
	}
	if view.Subtitle != "Acme Corp · from sarah@acme.com · Yesterday" {
		t.Fatalf("unexpected subtitle: %q", view.Subtitle)
	}
}
