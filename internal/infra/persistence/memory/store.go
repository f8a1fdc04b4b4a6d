// Package memory provides the canonical in-memory implementation of the
// domain store: ordered collections, transactional mutation with
// clone-and-commit semantics, declarative referential integrity with cascade
// processing, and synchronous derived-field recomputation.
package memory

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"spacecore/pkg/domain"
)

type (
	Member             = domain.Member
	Desk               = domain.Desk
	Booking            = domain.Booking
	Payment            = domain.Payment
	Amenity            = domain.Amenity
	Tenant             = domain.Tenant
	Property           = domain.Property
	Unit               = domain.Unit
	MaintenanceRequest = domain.MaintenanceRequest
	Expense            = domain.Expense
	Change             = domain.Change
	Result             = domain.Result
	RulesEngine        = domain.RulesEngine
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
)

// Compile-time contract assertion ensuring the store satisfies the domain interface.
var _ domain.PersistentStore = (*Store)(nil)

// collection is an ordered id-to-record mapping. Insertion order is preserved
// across replaces and is the default iteration order.
type collection[T any] struct {
	order []string
	items map[string]T
}

func newCollection[T any]() collection[T] {
	return collection[T]{items: make(map[string]T)}
}

func (c *collection[T]) get(id string) (T, bool) {
	v, ok := c.items[id]
	return v, ok
}

func (c *collection[T]) put(id string, v T) {
	if _, exists := c.items[id]; !exists {
		c.order = append(c.order, id)
	}
	c.items[id] = v
}

func (c *collection[T]) remove(id string) {
	if _, exists := c.items[id]; !exists {
		return
	}
	delete(c.items, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *collection[T]) list(clone func(T) T) []T {
	out := make([]T, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, clone(c.items[id]))
	}
	return out
}

func (c *collection[T]) clone(clone func(T) T) collection[T] {
	cp := collection[T]{
		order: append([]string(nil), c.order...),
		items: make(map[string]T, len(c.items)),
	}
	for id, v := range c.items {
		cp.items[id] = clone(v)
	}
	return cp
}

type memoryState struct {
	members     collection[Member]
	desks       collection[Desk]
	bookings    collection[Booking]
	payments    collection[Payment]
	amenities   collection[Amenity]
	tenants     collection[Tenant]
	properties  collection[Property]
	units       collection[Unit]
	maintenance collection[MaintenanceRequest]
	expenses    collection[Expense]
}

func newMemoryState() memoryState {
	return memoryState{
		members:     newCollection[Member](),
		desks:       newCollection[Desk](),
		bookings:    newCollection[Booking](),
		payments:    newCollection[Payment](),
		amenities:   newCollection[Amenity](),
		tenants:     newCollection[Tenant](),
		properties:  newCollection[Property](),
		units:       newCollection[Unit](),
		maintenance: newCollection[MaintenanceRequest](),
		expenses:    newCollection[Expense](),
	}
}

func (s memoryState) clone() memoryState {
	return memoryState{
		members:     s.members.clone(cloneMember),
		desks:       s.desks.clone(cloneDesk),
		bookings:    s.bookings.clone(cloneBooking),
		payments:    s.payments.clone(clonePayment),
		amenities:   s.amenities.clone(cloneAmenity),
		tenants:     s.tenants.clone(cloneTenant),
		properties:  s.properties.clone(cloneProperty),
		units:       s.units.clone(cloneUnit),
		maintenance: s.maintenance.clone(cloneMaintenance),
		expenses:    s.expenses.clone(cloneExpense),
	}
}

func cloneMember(m Member) Member       { return m }
func cloneDesk(d Desk) Desk             { return d }
func cloneBooking(b Booking) Booking    { return b }
func cloneAmenity(a Amenity) Amenity    { return a }
func cloneTenant(t Tenant) Tenant       { return t }
func cloneProperty(p Property) Property { return p }
func cloneExpense(e Expense) Expense    { return e }

func clonePayment(p Payment) Payment {
	cp := p
	cp.MemberID = cloneOptionalString(p.MemberID)
	cp.TenantID = cloneOptionalString(p.TenantID)
	cp.UnitID = cloneOptionalString(p.UnitID)
	cp.PropertyID = cloneOptionalString(p.PropertyID)
	return cp
}

func cloneUnit(u Unit) Unit {
	cp := u
	cp.TenantID = cloneOptionalString(u.TenantID)
	return cp
}

func cloneMaintenance(m MaintenanceRequest) MaintenanceRequest { return m }

func cloneOptionalString(ptr *string) *string {
	if ptr == nil {
		return nil
	}
	v := *ptr
	return &v
}

// Store provides the in-memory transactional store for the core domain.
type Store struct {
	mu     sync.RWMutex
	state  memoryState
	engine *RulesEngine
	nowFn  func() time.Time
}

// NewStore constructs an in-memory store backed by the provided rules engine.
func NewStore(engine *RulesEngine) *Store {
	if engine == nil {
		engine = domain.NewRulesEngine()
	}
	return &Store{
		state:  newMemoryState(),
		engine: engine,
		nowFn:  func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) newID() string {
	var b [16]byte
	if _, err := rand.Read(b[:]); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b[:])
}

// RulesEngine returns the engine evaluated on every transaction.
func (s *Store) RulesEngine() *RulesEngine { return s.engine }

// SetNowFunc overrides the transaction clock, primarily for tests.
func (s *Store) SetNowFunc(fn func() time.Time) {
	if fn != nil {
		s.nowFn = fn
	}
}

type transaction struct {
	store   *Store
	state   memoryState
	changes []Change
	now     time.Time
}

func (tx *transaction) recordChange(change Change) {
	tx.changes = append(tx.changes, change)
}

// Snapshot exposes a read-only view of the transactional state.
func (tx *transaction) Snapshot() TransactionView {
	return transactionView{state: &tx.state}
}

// RunInTransaction executes fn within a transactional copy of the store
// state. Derived fields are recomputed and rules evaluated before the copy is
// committed; any error leaves the committed state untouched.
func (s *Store) RunInTransaction(ctx context.Context, fn func(tx Transaction) error) (Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &transaction{
		store: s,
		state: s.state.clone(),
		now:   s.nowFn(),
	}

	if err := fn(tx); err != nil {
		return Result{}, err
	}

	tx.recomputeDerived()

	var result Result
	if s.engine != nil {
		view := transactionView{state: &tx.state}
		res, err := s.engine.Evaluate(ctx, view, tx.changes)
		if err != nil {
			return Result{}, err
		}
		result = res
		if res.HasBlocking() {
			return res, domain.RuleViolationError{Result: res}
		}
	}

	s.state = tx.state
	return result, nil
}

// View executes fn against a read-only snapshot of the committed state.
func (s *Store) View(_ context.Context, fn func(TransactionView) error) error {
	s.mu.RLock()
	snapshot := s.state.clone()
	s.mu.RUnlock()
	return fn(transactionView{state: &snapshot})
}

type transactionView struct {
	state *memoryState
}

func (v transactionView) ListMembers() []Member { return v.state.members.list(cloneMember) }

func (v transactionView) FindMember(id string) (Member, bool) {
	m, ok := v.state.members.get(id)
	if !ok {
		return Member{}, false
	}
	return cloneMember(m), true
}

func (v transactionView) ListDesks() []Desk { return v.state.desks.list(cloneDesk) }

func (v transactionView) FindDesk(id string) (Desk, bool) {
	d, ok := v.state.desks.get(id)
	if !ok {
		return Desk{}, false
	}
	return cloneDesk(d), true
}

func (v transactionView) ListBookings() []Booking { return v.state.bookings.list(cloneBooking) }

func (v transactionView) FindBooking(id string) (Booking, bool) {
	b, ok := v.state.bookings.get(id)
	if !ok {
		return Booking{}, false
	}
	return cloneBooking(b), true
}

func (v transactionView) ListPayments() []Payment { return v.state.payments.list(clonePayment) }

func (v transactionView) FindPayment(id string) (Payment, bool) {
	p, ok := v.state.payments.get(id)
	if !ok {
		return Payment{}, false
	}
	return clonePayment(p), true
}

func (v transactionView) ListAmenities() []Amenity { return v.state.amenities.list(cloneAmenity) }

func (v transactionView) FindAmenity(id string) (Amenity, bool) {
	a, ok := v.state.amenities.get(id)
	if !ok {
		return Amenity{}, false
	}
	return cloneAmenity(a), true
}

func (v transactionView) ListTenants() []Tenant { return v.state.tenants.list(cloneTenant) }

func (v transactionView) FindTenant(id string) (Tenant, bool) {
	t, ok := v.state.tenants.get(id)
	if !ok {
		return Tenant{}, false
	}
	return cloneTenant(t), true
}

func (v transactionView) ListProperties() []Property { return v.state.properties.list(cloneProperty) }

func (v transactionView) FindProperty(id string) (Property, bool) {
	p, ok := v.state.properties.get(id)
	if !ok {
		return Property{}, false
	}
	return cloneProperty(p), true
}

func (v transactionView) ListUnits() []Unit { return v.state.units.list(cloneUnit) }

func (v transactionView) FindUnit(id string) (Unit, bool) {
	u, ok := v.state.units.get(id)
	if !ok {
		return Unit{}, false
	}
	return cloneUnit(u), true
}

func (v transactionView) ListMaintenanceRequests() []MaintenanceRequest {
	return v.state.maintenance.list(cloneMaintenance)
}

func (v transactionView) FindMaintenanceRequest(id string) (MaintenanceRequest, bool) {
	m, ok := v.state.maintenance.get(id)
	if !ok {
		return MaintenanceRequest{}, false
	}
	return cloneMaintenance(m), true
}

func (v transactionView) ListExpenses() []Expense { return v.state.expenses.list(cloneExpense) }

func (v transactionView) FindExpense(id string) (Expense, bool) {
	e, ok := v.state.expenses.get(id)
	if !ok {
		return Expense{}, false
	}
	return cloneExpense(e), true
}

// Committed-state read helpers -----------------------------------------------

func (s *Store) committedView() transactionView {
	return transactionView{state: &s.state}
}

// ListMembers returns all members from committed state in insertion order.
func (s *Store) ListMembers() []Member {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().ListMembers()
}

// FindMember retrieves a member by id from committed state.
func (s *Store) FindMember(id string) (Member, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().FindMember(id)
}

// ListDesks returns all desks from committed state.
func (s *Store) ListDesks() []Desk {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().ListDesks()
}

// FindDesk retrieves a desk by id from committed state.
func (s *Store) FindDesk(id string) (Desk, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().FindDesk(id)
}

// ListBookings returns all bookings from committed state.
func (s *Store) ListBookings() []Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().ListBookings()
}

// FindBooking retrieves a booking by id from committed state.
func (s *Store) FindBooking(id string) (Booking, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().FindBooking(id)
}

// ListPayments returns all payments from committed state.
func (s *Store) ListPayments() []Payment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().ListPayments()
}

// FindPayment retrieves a payment by id from committed state.
func (s *Store) FindPayment(id string) (Payment, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().FindPayment(id)
}

// ListAmenities returns all amenities from committed state.
func (s *Store) ListAmenities() []Amenity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().ListAmenities()
}

// FindAmenity retrieves an amenity by id from committed state.
func (s *Store) FindAmenity(id string) (Amenity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().FindAmenity(id)
}

// ListTenants returns all tenants from committed state.
func (s *Store) ListTenants() []Tenant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().ListTenants()
}

// FindTenant retrieves a tenant by id from committed state.
func (s *Store) FindTenant(id string) (Tenant, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().FindTenant(id)
}

// ListProperties returns all properties from committed state.
func (s *Store) ListProperties() []Property {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().ListProperties()
}

// FindProperty retrieves a property by id from committed state.
func (s *Store) FindProperty(id string) (Property, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().FindProperty(id)
}

// ListUnits returns all units from committed state.
func (s *Store) ListUnits() []Unit {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().ListUnits()
}

// FindUnit retrieves a unit by id from committed state.
func (s *Store) FindUnit(id string) (Unit, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().FindUnit(id)
}

// ListMaintenanceRequests returns all maintenance requests from committed state.
func (s *Store) ListMaintenanceRequests() []MaintenanceRequest {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().ListMaintenanceRequests()
}

// FindMaintenanceRequest retrieves a maintenance request by id from committed state.
func (s *Store) FindMaintenanceRequest(id string) (MaintenanceRequest, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().FindMaintenanceRequest(id)
}

// ListExpenses returns all expenses from committed state.
func (s *Store) ListExpenses() []Expense {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().ListExpenses()
}

// FindExpense retrieves an expense by id from committed state.
func (s *Store) FindExpense(id string) (Expense, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committedView().FindExpense(id)
}
