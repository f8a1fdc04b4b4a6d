// Package domain defines the core persistent entities, value types, and
// integrity primitives used by spacecore.
package domain

import "time"

// EntityType identifies the type of record stored in the core domain.
type EntityType string

// Supported entity type identifiers used in Change records and persistence buckets.
const (
	// EntityMember identifies a coworking member record.
	EntityMember EntityType = "member"
	// EntityDesk identifies a bookable desk record.
	EntityDesk EntityType = "desk"
	// EntityBooking identifies a desk booking record.
	EntityBooking EntityType = "booking"
	// EntityPayment identifies a payment record (shared by both application shapes).
	EntityPayment EntityType = "payment"
	// EntityAmenity identifies a coworking amenity record.
	EntityAmenity EntityType = "amenity"
	// EntityTenant identifies a real-estate tenant record.
	EntityTenant EntityType = "tenant"
	// EntityProperty identifies a managed property record.
	EntityProperty EntityType = "property"
	// EntityUnit identifies a rentable unit within a property.
	EntityUnit EntityType = "unit"
	// EntityMaintenanceRequest identifies a maintenance request record.
	EntityMaintenanceRequest EntityType = "maintenance_request"
	// EntityExpense identifies a property expense record.
	EntityExpense EntityType = "expense"
)

// PaymentStatus enumerates payment workflow states.
type PaymentStatus string

// Canonical payment statuses.
const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// PaymentKind enumerates what a payment settles.
type PaymentKind string

// Canonical payment kinds across both application shapes.
const (
	PaymentKindRent       PaymentKind = "rent"
	PaymentKindDeposit    PaymentKind = "deposit"
	PaymentKindMembership PaymentKind = "membership"
	PaymentKindBooking    PaymentKind = "booking"
)

// AccountStatus is the derived rollup of a member's or tenant's payment history.
type AccountStatus string

// Derived account statuses. A member or tenant is unpaid while any of its
// payments is not completed.
const (
	AccountStatusPaid   AccountStatus = "paid"
	AccountStatusUnpaid AccountStatus = "unpaid"
)

// DeskStatus enumerates desk availability states.
type DeskStatus string

// Canonical desk statuses.
const (
	DeskStatusAvailable   DeskStatus = "available"
	DeskStatusOccupied    DeskStatus = "occupied"
	DeskStatusMaintenance DeskStatus = "maintenance"
)

// BookingStatus enumerates booking lifecycle states.
type BookingStatus string

// Canonical booking statuses.
const (
	BookingStatusActive    BookingStatus = "active"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// UnitStatus enumerates unit occupancy states. Occupancy is derived from the
// tenant reference and reset to vacant when the tenant is removed.
type UnitStatus string

// Canonical unit statuses.
const (
	UnitStatusVacant      UnitStatus = "vacant"
	UnitStatusOccupied    UnitStatus = "occupied"
	UnitStatusMaintenance UnitStatus = "maintenance"
)

// MaintenanceStatus enumerates maintenance request states.
type MaintenanceStatus string

// Canonical maintenance request statuses.
const (
	MaintenanceStatusOpen       MaintenanceStatus = "open"
	MaintenanceStatusInProgress MaintenanceStatus = "in_progress"
	MaintenanceStatusResolved   MaintenanceStatus = "resolved"
)

// Base contains common fields for all domain records.
type Base struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Member represents a coworking-space member.
type Member struct {
	Base
	Name           string        `json:"name"`
	Email          string        `json:"email"`
	Phone          string        `json:"phone"`
	MembershipType string        `json:"membership_type"`
	JoinedAt       time.Time     `json:"joined_at"`
	PaymentStatus  AccountStatus `json:"payment_status"` // derived from payment history
}

// Desk represents a bookable workspace desk.
type Desk struct {
	Base
	Label        string     `json:"label"`
	Zone         string     `json:"zone"`
	PricePerHour float64    `json:"price_per_hour"`
	Status       DeskStatus `json:"status"`
}

// Booking links a member to a desk for a span of hours.
type Booking struct {
	Base
	MemberID   string        `json:"member_id"`
	DeskID     string        `json:"desk_id"`
	StartsAt   time.Time     `json:"starts_at"`
	Hours      float64       `json:"hours"`
	TotalPrice float64       `json:"total_price"` // derived: hours * desk price per hour
	Status     BookingStatus `json:"status"`
}

// Payment records money received. Exactly which references are set depends on
// the application shape: coworking payments reference a member, real-estate
// payments reference a tenant and usually a unit and property.
type Payment struct {
	Base
	MemberID   *string       `json:"member_id"`
	TenantID   *string       `json:"tenant_id"`
	UnitID     *string       `json:"unit_id"`
	PropertyID *string       `json:"property_id"`
	Amount     float64       `json:"amount"`
	Kind       PaymentKind   `json:"kind"`
	Status     PaymentStatus `json:"status"`
	PaidAt     time.Time     `json:"paid_at"`
}

// Amenity describes a shared coworking facility.
type Amenity struct {
	Base
	Name        string `json:"name"`
	Description string `json:"description"`
	Available   bool   `json:"available"`
}

// Tenant represents a real-estate tenant.
type Tenant struct {
	Base
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	MovedInAt     time.Time     `json:"moved_in_at"`
	PaymentStatus AccountStatus `json:"payment_status"` // derived from payment history
}

// Property represents a managed building or site.
type Property struct {
	Base
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
}

// Unit is a rentable unit within a property. TenantID is nullified and the
// status reset to vacant when the referenced tenant is deleted.
type Unit struct {
	Base
	PropertyID  string     `json:"property_id"`
	Number      string     `json:"number"`
	MonthlyRent float64    `json:"monthly_rent"`
	Status      UnitStatus `json:"status"`
	TenantID    *string    `json:"tenant_id"`
}

// MaintenanceRequest tracks repair work against a unit.
type MaintenanceRequest struct {
	Base
	PropertyID string            `json:"property_id"`
	UnitID     string            `json:"unit_id"`
	Title      string            `json:"title"`
	Status     MaintenanceStatus `json:"status"`
	ReportedAt time.Time         `json:"reported_at"`
}

// Expense records an operating cost attributed to a property.
type Expense struct {
	Base
	PropertyID string    `json:"property_id"`
	Category   string    `json:"category"`
	Amount     float64   `json:"amount"`
	IncurredAt time.Time `json:"incurred_at"`
}

// Change describes a mutation applied to an entity during a transaction.
type Change struct {
	Entity EntityType
	Action Action
	Before any
	After  any
}

// Action indicates the type of modification performed.
type Action string

// Change actions enumerate supported CRUD operations captured per transaction.
const (
	// ActionCreate indicates an entity was created.
	ActionCreate Action = "create"
	// ActionUpdate indicates an entity was updated.
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Severity captures rule outcomes.
type Severity string

// Rule evaluation severities determine commit behavior and logging.
const (
	// SeverityBlock blocks transaction commit.
	SeverityBlock Severity = "block"
	// SeverityWarn logs a warning but allows commit.
	SeverityWarn Severity = "warn"
	SeverityLog  Severity = "log"
)

// Violation reports a failed rule evaluation.
type Violation struct {
	Rule     string
	Severity Severity
	Message  string
	Entity   EntityType
	EntityID string
}

// Result aggregates violations from the rules engine.
type Result struct {
	Violations []Violation
}

// Merge appends violations from another result.
func (r *Result) Merge(other Result) {
	if len(other.Violations) == 0 {
		return
	}
	r.Violations = append(r.Violations, other.Violations...)
}

// HasBlocking returns true if the result contains blocking violations.
func (r Result) HasBlocking() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityBlock {
			return true
		}
	}
	return false
}
