package core

import (
	"context"
	"errors"
	"testing"

	"spacecore/internal/infra/persistence/memory"
	"spacecore/internal/query"
	"spacecore/pkg/domain"
)

func TestServiceCRUDLifecycle(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemoryService(nil)

	member, _, err := svc.CreateMember(ctx, Member{Name: "Aisha", Email: "aisha@example.com"})
	if err != nil {
		t.Fatalf("create member: %v", err)
	}
	desk, _, err := svc.CreateDesk(ctx, Desk{Label: "A1", PricePerHour: 5})
	if err != nil {
		t.Fatalf("create desk: %v", err)
	}
	booking, _, err := svc.CreateBooking(ctx, Booking{MemberID: member.ID, DeskID: desk.ID, Hours: 8})
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	if booking.TotalPrice != 40 {
		t.Fatalf("expected derived total 40, got %v", booking.TotalPrice)
	}

	member.Name = "Aisha Benali"
	updated, _, err := svc.UpdateMember(ctx, member.ID, member)
	if err != nil {
		t.Fatalf("update member: %v", err)
	}
	if updated.Name != "Aisha Benali" {
		t.Fatalf("expected replaced record, got %s", updated.Name)
	}

	got, err := svc.GetBooking(ctx, booking.ID)
	if err != nil || got.ID != booking.ID {
		t.Fatalf("get booking: %v", err)
	}

	if _, err := svc.DeleteDesk(ctx, desk.ID); err != nil {
		t.Fatalf("delete desk: %v", err)
	}
	if _, err := svc.GetBooking(ctx, booking.ID); err == nil {
		t.Fatalf("booking must cascade with its desk")
	}
}

func TestServiceGetNotFound(t *testing.T) {
	svc := NewInMemoryService(nil)
	_, err := svc.GetTenant(context.Background(), "missing")
	var notFound domain.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if notFound.Entity != EntityTenant || notFound.ID != "missing" {
		t.Fatalf("unexpected detail: %+v", notFound)
	}
}

func TestAssignUnitTenant(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemoryService(nil)
	tenant, _, err := svc.CreateTenant(ctx, Tenant{Name: "Mila"})
	if err != nil {
		t.Fatalf("create tenant: %v", err)
	}
	property, _, err := svc.CreateProperty(ctx, Property{Name: "Canal House"})
	if err != nil {
		t.Fatalf("create property: %v", err)
	}
	unit, _, err := svc.CreateUnit(ctx, Unit{PropertyID: property.ID, Number: "12A", MonthlyRent: 1450})
	if err != nil {
		t.Fatalf("create unit: %v", err)
	}
	if unit.Status != domain.UnitStatusVacant {
		t.Fatalf("unassigned unit must be vacant, got %s", unit.Status)
	}

	assigned, _, err := svc.AssignUnitTenant(ctx, unit.ID, tenant.ID)
	if err != nil {
		t.Fatalf("assign: %v", err)
	}
	if assigned.TenantID == nil || *assigned.TenantID != tenant.ID {
		t.Fatalf("expected tenant reference, got %v", assigned.TenantID)
	}
	if assigned.Status != domain.UnitStatusOccupied {
		t.Fatalf("assigned unit must be occupied, got %s", assigned.Status)
	}

	_, _, err = svc.AssignUnitTenant(ctx, unit.ID, "ghost")
	var dangling domain.DanglingReferenceError
	if !errors.As(err, &dangling) {
		t.Fatalf("expected dangling reference, got %v", err)
	}
}

func TestQueryPipelineThroughService(t *testing.T) {
	ctx := context.Background()
	svc := NewInMemoryService(nil)
	for _, d := range []Desk{
		{Label: "A1", Zone: "quiet", PricePerHour: 4},
		{Label: "A2", Zone: "quiet", PricePerHour: 6},
		{Label: "B1", Zone: "open", PricePerHour: 2.5},
	} {
		if _, _, err := svc.CreateDesk(ctx, d); err != nil {
			t.Fatalf("create desk: %v", err)
		}
	}

	got, err := svc.QueryDesks(ctx, QueryOptions{
		Search: "quiet",
		Sort:   &query.Sort{Field: "price_per_hour", Descending: true},
	})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(got) != 2 || got[0].Label != "A2" {
		t.Fatalf("unexpected query result: %+v", got)
	}

	filtered, err := svc.QueryDesks(ctx, QueryOptions{Filter: map[string][]string{"zone": {"open"}}})
	if err != nil {
		t.Fatalf("filter query: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Label != "B1" {
		t.Fatalf("unexpected filter result: %+v", filtered)
	}
}

type warnStore struct {
	*memory.Store
}

func (s warnStore) RunInTransaction(ctx context.Context, fn func(tx domain.Transaction) error) (domain.Result, error) {
	res, err := s.Store.RunInTransaction(ctx, fn)
	if err != nil {
		return res, err
	}
	return res, domain.PersistenceWarning{Collection: "state", Err: errors.New("disk full")}
}

func TestRunTreatsPersistenceWarningAsSuccess(t *testing.T) {
	ctx := context.Background()
	rec := NewExpvarMetricsRecorder("")
	svc := NewService(warnStore{memory.NewStore(nil)}, WithMetricsRecorder(rec))

	created, _, err := svc.CreateMember(ctx, Member{Name: "Aisha"})
	var warn domain.PersistenceWarning
	if !errors.As(err, &warn) {
		t.Fatalf("expected warning passed through, got %v", err)
	}
	if created.ID == "" {
		t.Fatalf("commit must stand despite the warning")
	}

	snap := rec.Snapshot()
	if snap.Results["create_member"]["success"] != 1 {
		t.Fatalf("warning must count as success, got %+v", snap.Results)
	}

	_, _, err = svc.CreateMember(ctx, Member{})
	var invalid domain.ValidationError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if rec.Snapshot().Results["create_member"]["error"] != 1 {
		t.Fatalf("failed operation must count as error")
	}
}

func TestOpenPersistentStoreFromEnv(t *testing.T) {
	t.Setenv("SPACECORE_STORAGE_DRIVER", "memory")
	t.Setenv("SPACECORE_SEED", "")
	store, err := OpenPersistentStore(nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	mem, ok := store.(*memory.Store)
	if !ok {
		t.Fatalf("expected memory store, got %T", store)
	}
	if mem.ExportState().Empty() {
		t.Fatalf("memory store must be seeded by default")
	}

	t.Setenv("SPACECORE_SEED", "false")
	store, err = OpenPersistentStore(nil)
	if err != nil {
		t.Fatalf("open unseeded: %v", err)
	}
	if !store.(*memory.Store).ExportState().Empty() {
		t.Fatalf("seeding must be disabled")
	}

	t.Setenv("SPACECORE_STORAGE_DRIVER", "etcd")
	if _, err := OpenPersistentStore(nil); err == nil {
		t.Fatalf("unknown driver must fail")
	}
}
