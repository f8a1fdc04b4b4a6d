package domain

import "context"

// TransactionView provides read-only access to snapshot data. Listing order
// is collection insertion order.
type TransactionView interface {
	ListMembers() []Member
	FindMember(id string) (Member, bool)
	ListDesks() []Desk
	FindDesk(id string) (Desk, bool)
	ListBookings() []Booking
	FindBooking(id string) (Booking, bool)
	ListPayments() []Payment
	FindPayment(id string) (Payment, bool)
	ListAmenities() []Amenity
	FindAmenity(id string) (Amenity, bool)
	ListTenants() []Tenant
	FindTenant(id string) (Tenant, bool)
	ListProperties() []Property
	FindProperty(id string) (Property, bool)
	ListUnits() []Unit
	FindUnit(id string) (Unit, bool)
	ListMaintenanceRequests() []MaintenanceRequest
	FindMaintenanceRequest(id string) (MaintenanceRequest, bool)
	ListExpenses() []Expense
	FindExpense(id string) (Expense, bool)
}

// Transaction exposes the domain operations that a persistence implementation
// must support within an atomic scope. Updates replace the whole record by
// id; there are no partial patch semantics.
type Transaction interface {
	Snapshot() TransactionView
	CreateMember(Member) (Member, error)
	UpdateMember(id string, member Member) (Member, error)
	DeleteMember(id string) error
	CreateDesk(Desk) (Desk, error)
	UpdateDesk(id string, desk Desk) (Desk, error)
	DeleteDesk(id string) error
	CreateBooking(Booking) (Booking, error)
	UpdateBooking(id string, booking Booking) (Booking, error)
	DeleteBooking(id string) error
	CreatePayment(Payment) (Payment, error)
	UpdatePayment(id string, payment Payment) (Payment, error)
	DeletePayment(id string) error
	CreateAmenity(Amenity) (Amenity, error)
	UpdateAmenity(id string, amenity Amenity) (Amenity, error)
	DeleteAmenity(id string) error
	CreateTenant(Tenant) (Tenant, error)
	UpdateTenant(id string, tenant Tenant) (Tenant, error)
	DeleteTenant(id string) error
	CreateProperty(Property) (Property, error)
	UpdateProperty(id string, property Property) (Property, error)
	DeleteProperty(id string) error
	CreateUnit(Unit) (Unit, error)
	UpdateUnit(id string, unit Unit) (Unit, error)
	DeleteUnit(id string) error
	CreateMaintenanceRequest(MaintenanceRequest) (MaintenanceRequest, error)
	UpdateMaintenanceRequest(id string, request MaintenanceRequest) (MaintenanceRequest, error)
	DeleteMaintenanceRequest(id string) error
	CreateExpense(Expense) (Expense, error)
	UpdateExpense(id string, expense Expense) (Expense, error)
	DeleteExpense(id string) error
}

// PersistentStore is a minimal abstraction over durable backends. Committed
// state is readable through the embedded view methods.
type PersistentStore interface {
	RunInTransaction(ctx context.Context, fn func(Transaction) error) (Result, error)
	View(ctx context.Context, fn func(TransactionView) error) error
	TransactionView
}
