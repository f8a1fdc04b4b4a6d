package memory

import (
	"encoding/json"
	"fmt"
)

// Snapshot is the serializable capture of full store state. Collections
// appear in canonical bucket order and records keep insertion order, so a
// round trip through a snapshot preserves both content and ordering.
type Snapshot struct {
	Members             []Member             `json:"members"`
	Desks               []Desk               `json:"desks"`
	Bookings            []Booking            `json:"bookings"`
	Payments            []Payment            `json:"payments"`
	Amenities           []Amenity            `json:"amenities"`
	Tenants             []Tenant             `json:"tenants"`
	Properties          []Property           `json:"properties"`
	Units               []Unit               `json:"units"`
	MaintenanceRequests []MaintenanceRequest `json:"maintenance_requests"`
	Expenses            []Expense            `json:"expenses"`
}

// Bucket names used by the persistence gateways.
const (
	BucketMembers             = "members"
	BucketDesks               = "desks"
	BucketBookings            = "bookings"
	BucketPayments            = "payments"
	BucketAmenities           = "amenities"
	BucketTenants             = "tenants"
	BucketProperties          = "properties"
	BucketUnits               = "units"
	BucketMaintenanceRequests = "maintenance_requests"
	BucketExpenses            = "expenses"
)

// BucketOrder returns snapshot bucket names in canonical persistence order.
func BucketOrder() []string {
	return []string{
		BucketMembers,
		BucketDesks,
		BucketBookings,
		BucketPayments,
		BucketAmenities,
		BucketTenants,
		BucketProperties,
		BucketUnits,
		BucketMaintenanceRequests,
		BucketExpenses,
	}
}

// Empty reports whether the snapshot carries no records at all.
func (s Snapshot) Empty() bool {
	return len(s.Members) == 0 && len(s.Desks) == 0 && len(s.Bookings) == 0 &&
		len(s.Payments) == 0 && len(s.Amenities) == 0 && len(s.Tenants) == 0 &&
		len(s.Properties) == 0 && len(s.Units) == 0 &&
		len(s.MaintenanceRequests) == 0 && len(s.Expenses) == 0
}

// MarshalBuckets serializes each collection to its JSON bucket payload.
func (s Snapshot) MarshalBuckets() (map[string][]byte, error) {
	out := make(map[string][]byte, 10)
	marshal := func(bucket string, v any) error {
		payload, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshal bucket %q: %w", bucket, err)
		}
		out[bucket] = payload
		return nil
	}
	if err := marshal(BucketMembers, s.Members); err != nil {
		return nil, err
	}
	if err := marshal(BucketDesks, s.Desks); err != nil {
		return nil, err
	}
	if err := marshal(BucketBookings, s.Bookings); err != nil {
		return nil, err
	}
	if err := marshal(BucketPayments, s.Payments); err != nil {
		return nil, err
	}
	if err := marshal(BucketAmenities, s.Amenities); err != nil {
		return nil, err
	}
	if err := marshal(BucketTenants, s.Tenants); err != nil {
		return nil, err
	}
	if err := marshal(BucketProperties, s.Properties); err != nil {
		return nil, err
	}
	if err := marshal(BucketUnits, s.Units); err != nil {
		return nil, err
	}
	if err := marshal(BucketMaintenanceRequests, s.MaintenanceRequests); err != nil {
		return nil, err
	}
	if err := marshal(BucketExpenses, s.Expenses); err != nil {
		return nil, err
	}
	return out, nil
}

// SnapshotFromBuckets rebuilds a snapshot from bucket payloads. Missing
// buckets are treated as empty collections.
func SnapshotFromBuckets(buckets map[string][]byte) (Snapshot, error) {
	var snap Snapshot
	unmarshal := func(bucket string, v any) error {
		payload, ok := buckets[bucket]
		if !ok || len(payload) == 0 {
			return nil
		}
		if err := json.Unmarshal(payload, v); err != nil {
			return fmt.Errorf("unmarshal bucket %q: %w", bucket, err)
		}
		return nil
	}
	if err := unmarshal(BucketMembers, &snap.Members); err != nil {
		return Snapshot{}, err
	}
	if err := unmarshal(BucketDesks, &snap.Desks); err != nil {
		return Snapshot{}, err
	}
	if err := unmarshal(BucketBookings, &snap.Bookings); err != nil {
		return Snapshot{}, err
	}
	if err := unmarshal(BucketPayments, &snap.Payments); err != nil {
		return Snapshot{}, err
	}
	if err := unmarshal(BucketAmenities, &snap.Amenities); err != nil {
		return Snapshot{}, err
	}
	if err := unmarshal(BucketTenants, &snap.Tenants); err != nil {
		return Snapshot{}, err
	}
	if err := unmarshal(BucketProperties, &snap.Properties); err != nil {
		return Snapshot{}, err
	}
	if err := unmarshal(BucketUnits, &snap.Units); err != nil {
		return Snapshot{}, err
	}
	if err := unmarshal(BucketMaintenanceRequests, &snap.MaintenanceRequests); err != nil {
		return Snapshot{}, err
	}
	if err := unmarshal(BucketExpenses, &snap.Expenses); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ExportState captures the committed state as a snapshot.
func (s *Store) ExportState() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotState(s.state)
}

func snapshotState(state memoryState) Snapshot {
	return Snapshot{
		Members:             state.members.list(cloneMember),
		Desks:               state.desks.list(cloneDesk),
		Bookings:            state.bookings.list(cloneBooking),
		Payments:            state.payments.list(clonePayment),
		Amenities:           state.amenities.list(cloneAmenity),
		Tenants:             state.tenants.list(cloneTenant),
		Properties:          state.properties.list(cloneProperty),
		Units:               state.units.list(cloneUnit),
		MaintenanceRequests: state.maintenance.list(cloneMaintenance),
		Expenses:            state.expenses.list(cloneExpense),
	}
}

// ImportState replaces the committed state with the snapshot contents.
// References are validated before the swap and derived fields recomputed
// after it, so a snapshot with dangling references is rejected whole.
func (s *Store) ImportState(snap Snapshot) error {
	state := newMemoryState()
	for _, m := range snap.Members {
		state.members.put(m.ID, cloneMember(m))
	}
	for _, d := range snap.Desks {
		state.desks.put(d.ID, cloneDesk(d))
	}
	for _, b := range snap.Bookings {
		state.bookings.put(b.ID, cloneBooking(b))
	}
	for _, p := range snap.Payments {
		state.payments.put(p.ID, clonePayment(p))
	}
	for _, a := range snap.Amenities {
		state.amenities.put(a.ID, cloneAmenity(a))
	}
	for _, t := range snap.Tenants {
		state.tenants.put(t.ID, cloneTenant(t))
	}
	for _, p := range snap.Properties {
		state.properties.put(p.ID, cloneProperty(p))
	}
	for _, u := range snap.Units {
		state.units.put(u.ID, cloneUnit(u))
	}
	for _, m := range snap.MaintenanceRequests {
		state.maintenance.put(m.ID, cloneMaintenance(m))
	}
	for _, e := range snap.Expenses {
		state.expenses.put(e.ID, cloneExpense(e))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{store: s, state: state, now: s.nowFn()}
	if err := validateStateReferences(tx); err != nil {
		return err
	}
	tx.recomputeDerived()
	s.state = tx.state
	return nil
}

func validateStateReferences(tx *transaction) error {
	for _, id := range tx.state.bookings.order {
		if err := tx.validateReferences(tx.state.bookings.items[id]); err != nil {
			return err
		}
	}
	for _, id := range tx.state.payments.order {
		if err := tx.validateReferences(tx.state.payments.items[id]); err != nil {
			return err
		}
	}
	for _, id := range tx.state.units.order {
		if err := tx.validateReferences(tx.state.units.items[id]); err != nil {
			return err
		}
	}
	for _, id := range tx.state.maintenance.order {
		if err := tx.validateReferences(tx.state.maintenance.items[id]); err != nil {
			return err
		}
	}
	for _, id := range tx.state.expenses.order {
		if err := tx.validateReferences(tx.state.expenses.items[id]); err != nil {
			return err
		}
	}
	return nil
}
