// Package core exposes the transactional service layer over the persistent
// store: typed CRUD operations, the generic query pipeline, and reporting
// aggregations, with structured logging and operation metrics.
package core

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"spacecore/internal/infra/persistence/memory"
	"spacecore/pkg/domain"
)

// Service exposes higher-level transactional CRUD operations for the domain
// schema.
type Service struct {
	store   PersistentStore
	logger  *zap.Logger
	metrics MetricsRecorder
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithLogger attaches a structured logger; a nop logger is used otherwise.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithMetricsRecorder attaches an operation metrics recorder.
func WithMetricsRecorder(rec MetricsRecorder) Option {
	return func(s *Service) { s.metrics = rec }
}

// NewService constructs a service backed by the supplied store.
func NewService(store PersistentStore, opts ...Option) *Service {
	s := &Service{store: store, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewInMemoryService creates a service and in-memory store with the given
// rules engine.
func NewInMemoryService(engine *RulesEngine, opts ...Option) *Service {
	return NewService(memory.NewStore(engine), opts...)
}

// Store returns the underlying storage implementation.
func (s *Service) Store() PersistentStore { return s.store }

// run executes fn in a transaction, recording the outcome. A persistence
// warning is logged and passed through but counts as a successful operation:
// the in-memory commit stands.
func (s *Service) run(ctx context.Context, operation string, fn func(tx Transaction) error) (Result, error) {
	start := time.Now()
	res, err := s.store.RunInTransaction(ctx, fn)
	elapsed := time.Since(start)

	success := err == nil
	var warn domain.PersistenceWarning
	switch {
	case err == nil:
	case errors.As(err, &warn):
		success = true
		s.logger.Warn("state snapshot failed after commit",
			zap.String("operation", operation),
			zap.String("collection", warn.Collection),
			zap.Error(warn.Err))
	default:
		s.logger.Error("transaction failed",
			zap.String("operation", operation),
			zap.Error(err))
	}
	if s.metrics != nil {
		s.metrics.Observe(ctx, operation, success, elapsed)
	}
	return res, err
}

// CreateMember persists a new member.
func (s *Service) CreateMember(ctx context.Context, member Member) (Member, Result, error) {
	var created Member
	res, err := s.run(ctx, "create_member", func(tx Transaction) error {
		var err error
		created, err = tx.CreateMember(member)
		return err
	})
	return created, res, err
}

// UpdateMember replaces a member record by id.
func (s *Service) UpdateMember(ctx context.Context, id string, member Member) (Member, Result, error) {
	var updated Member
	res, err := s.run(ctx, "update_member", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateMember(id, member)
		return err
	})
	return updated, res, err
}

// DeleteMember removes a member and its dependent records.
func (s *Service) DeleteMember(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_member", func(tx Transaction) error {
		return tx.DeleteMember(id)
	})
}

// CreateDesk persists a new desk.
func (s *Service) CreateDesk(ctx context.Context, desk Desk) (Desk, Result, error) {
	var created Desk
	res, err := s.run(ctx, "create_desk", func(tx Transaction) error {
		var err error
		created, err = tx.CreateDesk(desk)
		return err
	})
	return created, res, err
}

// UpdateDesk replaces a desk record by id.
func (s *Service) UpdateDesk(ctx context.Context, id string, desk Desk) (Desk, Result, error) {
	var updated Desk
	res, err := s.run(ctx, "update_desk", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateDesk(id, desk)
		return err
	})
	return updated, res, err
}

// DeleteDesk removes a desk and its dependent bookings.
func (s *Service) DeleteDesk(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_desk", func(tx Transaction) error {
		return tx.DeleteDesk(id)
	})
}

// CreateBooking persists a new booking.
func (s *Service) CreateBooking(ctx context.Context, booking Booking) (Booking, Result, error) {
	var created Booking
	res, err := s.run(ctx, "create_booking", func(tx Transaction) error {
		var err error
		created, err = tx.CreateBooking(booking)
		return err
	})
	return created, res, err
}

// UpdateBooking replaces a booking record by id.
func (s *Service) UpdateBooking(ctx context.Context, id string, booking Booking) (Booking, Result, error) {
	var updated Booking
	res, err := s.run(ctx, "update_booking", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateBooking(id, booking)
		return err
	})
	return updated, res, err
}

// DeleteBooking removes a booking.
func (s *Service) DeleteBooking(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_booking", func(tx Transaction) error {
		return tx.DeleteBooking(id)
	})
}

// CreatePayment persists a new payment.
func (s *Service) CreatePayment(ctx context.Context, payment Payment) (Payment, Result, error) {
	var created Payment
	res, err := s.run(ctx, "create_payment", func(tx Transaction) error {
		var err error
		created, err = tx.CreatePayment(payment)
		return err
	})
	return created, res, err
}

// UpdatePayment replaces a payment record by id.
func (s *Service) UpdatePayment(ctx context.Context, id string, payment Payment) (Payment, Result, error) {
	var updated Payment
	res, err := s.run(ctx, "update_payment", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdatePayment(id, payment)
		return err
	})
	return updated, res, err
}

// DeletePayment removes a payment.
func (s *Service) DeletePayment(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_payment", func(tx Transaction) error {
		return tx.DeletePayment(id)
	})
}

// CreateAmenity persists a new amenity.
func (s *Service) CreateAmenity(ctx context.Context, amenity Amenity) (Amenity, Result, error) {
	var created Amenity
	res, err := s.run(ctx, "create_amenity", func(tx Transaction) error {
		var err error
		created, err = tx.CreateAmenity(amenity)
		return err
	})
	return created, res, err
}

// UpdateAmenity replaces an amenity record by id.
func (s *Service) UpdateAmenity(ctx context.Context, id string, amenity Amenity) (Amenity, Result, error) {
	var updated Amenity
	res, err := s.run(ctx, "update_amenity", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateAmenity(id, amenity)
		return err
	})
	return updated, res, err
}

// DeleteAmenity removes an amenity.
func (s *Service) DeleteAmenity(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_amenity", func(tx Transaction) error {
		return tx.DeleteAmenity(id)
	})
}

// CreateTenant persists a new tenant.
func (s *Service) CreateTenant(ctx context.Context, tenant Tenant) (Tenant, Result, error) {
	var created Tenant
	res, err := s.run(ctx, "create_tenant", func(tx Transaction) error {
		var err error
		created, err = tx.CreateTenant(tenant)
		return err
	})
	return created, res, err
}

// UpdateTenant replaces a tenant record by id.
func (s *Service) UpdateTenant(ctx context.Context, id string, tenant Tenant) (Tenant, Result, error) {
	var updated Tenant
	res, err := s.run(ctx, "update_tenant", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateTenant(id, tenant)
		return err
	})
	return updated, res, err
}

// DeleteTenant removes a tenant; its payments cascade and unit assignments
// are cleared.
func (s *Service) DeleteTenant(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_tenant", func(tx Transaction) error {
		return tx.DeleteTenant(id)
	})
}

// CreateProperty persists a new property.
func (s *Service) CreateProperty(ctx context.Context, property Property) (Property, Result, error) {
	var created Property
	res, err := s.run(ctx, "create_property", func(tx Transaction) error {
		var err error
		created, err = tx.CreateProperty(property)
		return err
	})
	return created, res, err
}

// UpdateProperty replaces a property record by id.
func (s *Service) UpdateProperty(ctx context.Context, id string, property Property) (Property, Result, error) {
	var updated Property
	res, err := s.run(ctx, "update_property", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateProperty(id, property)
		return err
	})
	return updated, res, err
}

// DeleteProperty removes a property and everything attached to it.
func (s *Service) DeleteProperty(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_property", func(tx Transaction) error {
		return tx.DeleteProperty(id)
	})
}

// CreateUnit persists a new unit.
func (s *Service) CreateUnit(ctx context.Context, unit Unit) (Unit, Result, error) {
	var created Unit
	res, err := s.run(ctx, "create_unit", func(tx Transaction) error {
		var err error
		created, err = tx.CreateUnit(unit)
		return err
	})
	return created, res, err
}

// UpdateUnit replaces a unit record by id.
func (s *Service) UpdateUnit(ctx context.Context, id string, unit Unit) (Unit, Result, error) {
	var updated Unit
	res, err := s.run(ctx, "update_unit", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateUnit(id, unit)
		return err
	})
	return updated, res, err
}

// DeleteUnit removes a unit and its dependent records.
func (s *Service) DeleteUnit(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_unit", func(tx Transaction) error {
		return tx.DeleteUnit(id)
	})
}

// AssignUnitTenant points a unit at a tenant within a single transaction.
func (s *Service) AssignUnitTenant(ctx context.Context, unitID, tenantID string) (Unit, Result, error) {
	var updated Unit
	res, err := s.run(ctx, "assign_unit_tenant", func(tx Transaction) error {
		unit, ok := tx.Snapshot().FindUnit(unitID)
		if !ok {
			return domain.NotFoundError{Entity: EntityUnit, ID: unitID}
		}
		unit.TenantID = &tenantID
		var err error
		updated, err = tx.UpdateUnit(unitID, unit)
		return err
	})
	return updated, res, err
}

// CreateMaintenanceRequest persists a new maintenance request.
func (s *Service) CreateMaintenanceRequest(ctx context.Context, req MaintenanceRequest) (MaintenanceRequest, Result, error) {
	var created MaintenanceRequest
	res, err := s.run(ctx, "create_maintenance_request", func(tx Transaction) error {
		var err error
		created, err = tx.CreateMaintenanceRequest(req)
		return err
	})
	return created, res, err
}

// UpdateMaintenanceRequest replaces a maintenance request record by id.
func (s *Service) UpdateMaintenanceRequest(ctx context.Context, id string, req MaintenanceRequest) (MaintenanceRequest, Result, error) {
	var updated MaintenanceRequest
	res, err := s.run(ctx, "update_maintenance_request", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateMaintenanceRequest(id, req)
		return err
	})
	return updated, res, err
}

// DeleteMaintenanceRequest removes a maintenance request.
func (s *Service) DeleteMaintenanceRequest(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_maintenance_request", func(tx Transaction) error {
		return tx.DeleteMaintenanceRequest(id)
	})
}

// CreateExpense persists a new expense.
func (s *Service) CreateExpense(ctx context.Context, expense Expense) (Expense, Result, error) {
	var created Expense
	res, err := s.run(ctx, "create_expense", func(tx Transaction) error {
		var err error
		created, err = tx.CreateExpense(expense)
		return err
	})
	return created, res, err
}

// UpdateExpense replaces an expense record by id.
func (s *Service) UpdateExpense(ctx context.Context, id string, expense Expense) (Expense, Result, error) {
	var updated Expense
	res, err := s.run(ctx, "update_expense", func(tx Transaction) error {
		var err error
		updated, err = tx.UpdateExpense(id, expense)
		return err
	})
	return updated, res, err
}

// DeleteExpense removes an expense.
func (s *Service) DeleteExpense(ctx context.Context, id string) (Result, error) {
	return s.run(ctx, "delete_expense", func(tx Transaction) error {
		return tx.DeleteExpense(id)
	})
}

// GetMember retrieves a member by id.
func (s *Service) GetMember(ctx context.Context, id string) (Member, error) {
	var out Member
	err := s.store.View(ctx, func(view TransactionView) error {
		m, ok := view.FindMember(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityMember, ID: id}
		}
		out = m
		return nil
	})
	return out, err
}

// GetDesk retrieves a desk by id.
func (s *Service) GetDesk(ctx context.Context, id string) (Desk, error) {
	var out Desk
	err := s.store.View(ctx, func(view TransactionView) error {
		d, ok := view.FindDesk(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityDesk, ID: id}
		}
		out = d
		return nil
	})
	return out, err
}

// GetBooking retrieves a booking by id.
func (s *Service) GetBooking(ctx context.Context, id string) (Booking, error) {
	var out Booking
	err := s.store.View(ctx, func(view TransactionView) error {
		b, ok := view.FindBooking(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityBooking, ID: id}
		}
		out = b
		return nil
	})
	return out, err
}

// GetPayment retrieves a payment by id.
func (s *Service) GetPayment(ctx context.Context, id string) (Payment, error) {
	var out Payment
	err := s.store.View(ctx, func(view TransactionView) error {
		p, ok := view.FindPayment(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityPayment, ID: id}
		}
		out = p
		return nil
	})
	return out, err
}

// GetAmenity retrieves an amenity by id.
func (s *Service) GetAmenity(ctx context.Context, id string) (Amenity, error) {
	var out Amenity
	err := s.store.View(ctx, func(view TransactionView) error {
		a, ok := view.FindAmenity(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityAmenity, ID: id}
		}
		out = a
		return nil
	})
	return out, err
}

// GetTenant retrieves a tenant by id.
func (s *Service) GetTenant(ctx context.Context, id string) (Tenant, error) {
	var out Tenant
	err := s.store.View(ctx, func(view TransactionView) error {
		t, ok := view.FindTenant(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityTenant, ID: id}
		}
		out = t
		return nil
	})
	return out, err
}

// GetProperty retrieves a property by id.
func (s *Service) GetProperty(ctx context.Context, id string) (Property, error) {
	var out Property
	err := s.store.View(ctx, func(view TransactionView) error {
		p, ok := view.FindProperty(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityProperty, ID: id}
		}
		out = p
		return nil
	})
	return out, err
}

// GetUnit retrieves a unit by id.
func (s *Service) GetUnit(ctx context.Context, id string) (Unit, error) {
	var out Unit
	err := s.store.View(ctx, func(view TransactionView) error {
		u, ok := view.FindUnit(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityUnit, ID: id}
		}
		out = u
		return nil
	})
	return out, err
}

// GetMaintenanceRequest retrieves a maintenance request by id.
func (s *Service) GetMaintenanceRequest(ctx context.Context, id string) (MaintenanceRequest, error) {
	var out MaintenanceRequest
	err := s.store.View(ctx, func(view TransactionView) error {
		m, ok := view.FindMaintenanceRequest(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityMaintenanceRequest, ID: id}
		}
		out = m
		return nil
	})
	return out, err
}

// GetExpense retrieves an expense by id.
func (s *Service) GetExpense(ctx context.Context, id string) (Expense, error) {
	var out Expense
	err := s.store.View(ctx, func(view TransactionView) error {
		e, ok := view.FindExpense(id)
		if !ok {
			return domain.NotFoundError{Entity: EntityExpense, ID: id}
		}
		out = e
		return nil
	})
	return out, err
}
