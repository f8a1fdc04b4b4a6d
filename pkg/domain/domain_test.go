package domain

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestTypedErrorsMessagesAndMatching(t *testing.T) {
	notFound := NotFoundError{Entity: EntityMember, ID: "m1"}
	if got := notFound.Error(); got != `member "m1" not found` {
		t.Fatalf("unexpected message: %s", got)
	}
	dangling := DanglingReferenceError{Source: EntityBooking, Field: "desk_id", Target: EntityDesk, ID: "d9"}
	if !strings.Contains(dangling.Error(), `desk "d9"`) {
		t.Fatalf("unexpected message: %s", dangling.Error())
	}
	invalid := ValidationError{Entity: EntityDesk, Field: "price_per_hour", Message: "must not be negative"}
	if !strings.Contains(invalid.Error(), "desk.price_per_hour") {
		t.Fatalf("unexpected message: %s", invalid.Error())
	}

	inner := errors.New("disk full")
	warn := PersistenceWarning{Collection: "state", Err: inner}
	if !errors.Is(warn, inner) {
		t.Fatalf("expected unwrap to inner error")
	}
	var asWarn PersistenceWarning
	var wrapped error = warn
	if !errors.As(wrapped, &asWarn) || asWarn.Collection != "state" {
		t.Fatalf("expected errors.As match")
	}
}

func TestReferenceTableLookups(t *testing.T) {
	toMember := ReferencesTo(EntityMember)
	if len(toMember) != 2 {
		t.Fatalf("expected 2 references targeting member, got %d", len(toMember))
	}
	for _, ref := range toMember {
		if ref.OnDelete != CascadeDelete {
			t.Fatalf("member references must cascade, got %s", ref.OnDelete)
		}
	}

	fromUnit := ReferencesFrom(EntityUnit)
	if len(fromUnit) != 2 {
		t.Fatalf("expected 2 references from unit, got %d", len(fromUnit))
	}
	var sawNullify bool
	for _, ref := range fromUnit {
		if ref.Field == "tenant_id" {
			sawNullify = ref.OnDelete == CascadeNullify
		}
	}
	if !sawNullify {
		t.Fatalf("unit.tenant_id must use the nullify policy")
	}

	if refs := ReferencesTo(EntityAmenity); len(refs) != 0 {
		t.Fatalf("amenity has no dependents, got %d", len(refs))
	}
}

func TestAccessorsResolveSchemaFields(t *testing.T) {
	for _, entity := range EntityTypes() {
		if len(Schema(entity)) == 0 {
			t.Fatalf("missing schema for %s", entity)
		}
	}

	tenant := "t1"
	payment := Payment{
		Base:     Base{ID: "p1"},
		TenantID: &tenant,
		Amount:   1450,
		Kind:     PaymentKindRent,
		Status:   PaymentStatusCompleted,
		PaidAt:   time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC),
	}
	for _, spec := range Schema(EntityPayment) {
		if _, ok := payment.Field(spec.Name); !ok {
			t.Fatalf("payment accessor missing schema field %s", spec.Name)
		}
	}
	if v, _ := payment.Field("tenant_id"); v != "t1" {
		t.Fatalf("expected dereferenced tenant id, got %v", v)
	}
	if v, _ := payment.Field("member_id"); v != nil {
		t.Fatalf("unset reference must resolve to nil, got %v", v)
	}
	if _, ok := payment.Field("nope"); ok {
		t.Fatalf("unknown field must report ok=false")
	}

	unit := Unit{Base: Base{ID: "u1"}, PropertyID: "pr1", Number: "12A", MonthlyRent: 980}
	if v, _ := unit.Field("monthly_rent"); v != 980.0 {
		t.Fatalf("expected float64 rent, got %v", v)
	}
}

func TestPlaceholderValues(t *testing.T) {
	if v := Placeholder(FieldSpec{Name: "amount", Kind: FieldNumber}); v != 0 {
		t.Fatalf("number placeholder: %v", v)
	}
	if v := Placeholder(FieldSpec{Name: "tenant_id", Kind: FieldReference, Target: EntityTenant}); v != "<tenant id>" {
		t.Fatalf("reference placeholder: %v", v)
	}
}

func TestResultMergeAndBlocking(t *testing.T) {
	var combined Result
	combined.Merge(Result{})
	if combined.HasBlocking() {
		t.Fatalf("empty result must not block")
	}
	combined.Merge(Result{Violations: []Violation{{Rule: "warn", Severity: SeverityWarn}}})
	if combined.HasBlocking() {
		t.Fatalf("warn severity must not block")
	}
	combined.Merge(Result{Violations: []Violation{{Rule: "block", Severity: SeverityBlock}}})
	if !combined.HasBlocking() {
		t.Fatalf("expected blocking result")
	}
	if len(combined.Violations) != 2 {
		t.Fatalf("expected merged violations, got %d", len(combined.Violations))
	}
}
