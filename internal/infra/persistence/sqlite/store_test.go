package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"spacecore/internal/infra/persistence/memory"
	"spacecore/pkg/domain"
)

func TestStatePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")

	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var memberIDs []string
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		for _, name := range []string{"Aisha", "Jonas", "Mila"} {
			m, err := tx.CreateMember(domain.Member{Name: name})
			if err != nil {
				return err
			}
			memberIDs = append(memberIDs, m.ID)
		}
		desk, err := tx.CreateDesk(domain.Desk{Label: "A1", PricePerHour: 5})
		if err != nil {
			return err
		}
		_, err = tx.CreateBooking(domain.Booking{MemberID: memberIDs[0], DeskID: desk.ID, Hours: 2})
		return err
	})
	if err != nil {
		t.Fatalf("populate: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()

	members := reopened.ListMembers()
	if len(members) != 3 {
		t.Fatalf("expected 3 members after reopen, got %d", len(members))
	}
	for i, id := range memberIDs {
		if members[i].ID != id {
			t.Fatalf("insertion order lost at %d: %s != %s", i, members[i].ID, id)
		}
	}
	bookings := reopened.ListBookings()
	if len(bookings) != 1 || bookings[0].TotalPrice != 10 {
		t.Fatalf("expected restored booking with total 10, got %+v", bookings)
	}
}

func TestDeleteIsPersisted(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	var deskID string
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		desk, err := tx.CreateDesk(domain.Desk{Label: "B1", PricePerHour: 3})
		deskID = desk.ID
		return err
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		return tx.DeleteDesk(deskID)
	})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if got := reopened.ListDesks(); len(got) != 0 {
		t.Fatalf("deleted desk must not reappear, got %d", len(got))
	}
}

func TestSeedWritesThrough(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !store.ExportState().Empty() {
		t.Fatalf("fresh database must start empty")
	}
	if err := store.Seed(memory.DefaultSnapshot()); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() { _ = reopened.Close() }()
	if reopened.ExportState().Empty() {
		t.Fatalf("seeded state must survive reopen")
	}
	jonas, ok := reopened.FindMember("member-jonas")
	if !ok || jonas.PaymentStatus != domain.AccountStatusUnpaid {
		t.Fatalf("derived statuses must be rebuilt on load")
	}
}

func TestPersistenceWarningAfterCommit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	store, err := NewStore(path, nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	// Closing the handle makes the snapshot write fail while the in-memory
	// commit still goes through.
	if err := store.DB().Close(); err != nil {
		t.Fatalf("close db: %v", err)
	}
	_, err = store.RunInTransaction(context.Background(), func(tx domain.Transaction) error {
		_, err := tx.CreateMember(domain.Member{Name: "Aisha"})
		return err
	})
	warn, ok := err.(domain.PersistenceWarning)
	if !ok {
		t.Fatalf("expected persistence warning, got %v", err)
	}
	if warn.Collection != "state" {
		t.Fatalf("unexpected collection %q", warn.Collection)
	}
	if got := store.ListMembers(); len(got) != 1 {
		t.Fatalf("commit must stand despite snapshot failure, got %d members", len(got))
	}
}
