package query

import (
	"testing"
	"time"

	"spacecore/pkg/domain"
)

func sampleDesks() []domain.Desk {
	return []domain.Desk{
		{Base: domain.Base{ID: "d1"}, Label: "A1", Zone: "quiet", PricePerHour: 4, Status: domain.DeskStatusAvailable},
		{Base: domain.Base{ID: "d2"}, Label: "A2", Zone: "quiet", PricePerHour: 6, Status: domain.DeskStatusOccupied},
		{Base: domain.Base{ID: "d3"}, Label: "B1", Zone: "open", PricePerHour: 2.5, Status: domain.DeskStatusAvailable},
		{Base: domain.Base{ID: "d4"}, Label: "B2", Zone: "open", PricePerHour: 2.5, Status: domain.DeskStatusMaintenance},
	}
}

func TestSearchMatchesAnyScalarFieldCaseInsensitive(t *testing.T) {
	desks := sampleDesks()
	got := Search(desks, "QUIET")
	if len(got) != 2 {
		t.Fatalf("expected 2 quiet desks, got %d", len(got))
	}
	if got[0].ID != "d1" || got[1].ID != "d2" {
		t.Fatalf("search must preserve collection order, got %s %s", got[0].ID, got[1].ID)
	}
	if got := Search(desks, "  "); len(got) != 4 {
		t.Fatalf("blank term matches everything, got %d", len(got))
	}
	if got := Search(desks, "zzz"); len(got) != 0 {
		t.Fatalf("expected no matches, got %d", len(got))
	}
}

func TestFilterAndAcrossFieldsOrWithinField(t *testing.T) {
	desks := sampleDesks()
	got := Filter(desks, map[string][]string{
		"zone":   {"open"},
		"status": {"available", "maintenance"},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 desks, got %d", len(got))
	}
	if got[0].ID != "d3" || got[1].ID != "d4" {
		t.Fatalf("unexpected filter result order: %s %s", got[0].ID, got[1].ID)
	}
}

func TestFilterUnknownFieldIsIgnored(t *testing.T) {
	desks := sampleDesks()
	got := Filter(desks, map[string][]string{"floor": {"3"}})
	if len(got) != len(desks) {
		t.Fatalf("unknown filter field must constrain nothing, got %d", len(got))
	}
}

func TestFilterNilReferenceFailsConstraint(t *testing.T) {
	tenant := "t1"
	units := []domain.Unit{
		{Base: domain.Base{ID: "u1"}, PropertyID: "p1", Number: "1", TenantID: &tenant},
		{Base: domain.Base{ID: "u2"}, PropertyID: "p1", Number: "2"},
	}
	got := Filter(units, map[string][]string{"tenant_id": {"t1"}})
	if len(got) != 1 || got[0].ID != "u1" {
		t.Fatalf("expected only the assigned unit, got %d", len(got))
	}
}

func TestSortNaturalAndStable(t *testing.T) {
	desks := sampleDesks()
	got := SortRecords(desks, &Sort{Field: "price_per_hour"})
	if got[0].ID != "d3" || got[1].ID != "d4" {
		t.Fatalf("equal prices must keep original order: %s %s", got[0].ID, got[1].ID)
	}
	if got[3].ID != "d2" {
		t.Fatalf("expected most expensive last, got %s", got[3].ID)
	}

	desc := SortRecords(desks, &Sort{Field: "label", Descending: true})
	if desc[0].Label != "B2" {
		t.Fatalf("expected descending label sort, got %s", desc[0].Label)
	}

	unknown := SortRecords(desks, &Sort{Field: "floor"})
	for i := range desks {
		if unknown[i].ID != desks[i].ID {
			t.Fatalf("unknown sort field must leave order untouched")
		}
	}
	if SortRecords(desks, nil)[0].ID != "d1" {
		t.Fatalf("nil sort must preserve collection order")
	}
}

func TestSortDates(t *testing.T) {
	bookings := []domain.Booking{
		{Base: domain.Base{ID: "b1"}, MemberID: "m", DeskID: "d", StartsAt: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Hours: 1},
		{Base: domain.Base{ID: "b2"}, MemberID: "m", DeskID: "d", StartsAt: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), Hours: 1},
	}
	got := SortRecords(bookings, &Sort{Field: "starts_at"})
	if got[0].ID != "b2" {
		t.Fatalf("expected earliest booking first, got %s", got[0].ID)
	}
}

func TestApplyComposesSearchFilterSort(t *testing.T) {
	desks := sampleDesks()
	got := Apply(desks, Options{
		Search: "open",
		Filter: map[string][]string{"status": {"available", "maintenance"}},
		Sort:   &Sort{Field: "label", Descending: true},
	})
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	if got[0].Label != "B2" || got[1].Label != "B1" {
		t.Fatalf("unexpected composed order: %s %s", got[0].Label, got[1].Label)
	}
}

func TestApplyWithoutSortPreservesOrder(t *testing.T) {
	desks := sampleDesks()
	got := Apply(desks, Options{Filter: map[string][]string{"zone": {"quiet", "open"}}})
	for i := range desks {
		if got[i].ID != desks[i].ID {
			t.Fatalf("filter-only query must preserve insertion order")
		}
	}
}

func TestFormatValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"x", "x"},
		{true, "true"},
		{2.5, "2.5"},
		{40.0, "40"},
		{3, "3"},
		{time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC), "2025-03-01T08:00:00Z"},
	}
	for _, c := range cases {
		if got := FormatValue(c.in); got != c.want {
			t.Fatalf("FormatValue(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
