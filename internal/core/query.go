package core

import (
	"context"

	"spacecore/internal/query"
)

// QueryOptions re-exports the query pipeline inputs for callers that only
// import core.
type QueryOptions = query.Options

// QueryMembers lists members through the search/filter/sort pipeline.
func (s *Service) QueryMembers(ctx context.Context, opts QueryOptions) ([]Member, error) {
	var out []Member
	err := s.store.View(ctx, func(view TransactionView) error {
		out = query.Apply(view.ListMembers(), opts)
		return nil
	})
	return out, err
}

// QueryDesks lists desks through the query pipeline.
func (s *Service) QueryDesks(ctx context.Context, opts QueryOptions) ([]Desk, error) {
	var out []Desk
	err := s.store.View(ctx, func(view TransactionView) error {
		out = query.Apply(view.ListDesks(), opts)
		return nil
	})
	return out, err
}

// QueryBookings lists bookings through the query pipeline.
func (s *Service) QueryBookings(ctx context.Context, opts QueryOptions) ([]Booking, error) {
	var out []Booking
	err := s.store.View(ctx, func(view TransactionView) error {
		out = query.Apply(view.ListBookings(), opts)
		return nil
	})
	return out, err
}

// QueryPayments lists payments through the query pipeline.
func (s *Service) QueryPayments(ctx context.Context, opts QueryOptions) ([]Payment, error) {
	var out []Payment
	err := s.store.View(ctx, func(view TransactionView) error {
		out = query.Apply(view.ListPayments(), opts)
		return nil
	})
	return out, err
}

// QueryAmenities lists amenities through the query pipeline.
func (s *Service) QueryAmenities(ctx context.Context, opts QueryOptions) ([]Amenity, error) {
	var out []Amenity
	err := s.store.View(ctx, func(view TransactionView) error {
		out = query.Apply(view.ListAmenities(), opts)
		return nil
	})
	return out, err
}

// QueryTenants lists tenants through the query pipeline.
func (s *Service) QueryTenants(ctx context.Context, opts QueryOptions) ([]Tenant, error) {
	var out []Tenant
	err := s.store.View(ctx, func(view TransactionView) error {
		out = query.Apply(view.ListTenants(), opts)
		return nil
	})
	return out, err
}

// QueryProperties lists properties through the query pipeline.
func (s *Service) QueryProperties(ctx context.Context, opts QueryOptions) ([]Property, error) {
	var out []Property
	err := s.store.View(ctx, func(view TransactionView) error {
		out = query.Apply(view.ListProperties(), opts)
		return nil
	})
	return out, err
}

// QueryUnits lists units through the query pipeline.
func (s *Service) QueryUnits(ctx context.Context, opts QueryOptions) ([]Unit, error) {
	var out []Unit
	err := s.store.View(ctx, func(view TransactionView) error {
		out = query.Apply(view.ListUnits(), opts)
		return nil
	})
	return out, err
}

// QueryMaintenanceRequests lists maintenance requests through the query
// pipeline.
func (s *Service) QueryMaintenanceRequests(ctx context.Context, opts QueryOptions) ([]MaintenanceRequest, error) {
	var out []MaintenanceRequest
	err := s.store.View(ctx, func(view TransactionView) error {
		out = query.Apply(view.ListMaintenanceRequests(), opts)
		return nil
	})
	return out, err
}

// QueryExpenses lists expenses through the query pipeline.
func (s *Service) QueryExpenses(ctx context.Context, opts QueryOptions) ([]Expense, error) {
	var out []Expense
	err := s.store.View(ctx, func(view TransactionView) error {
		out = query.Apply(view.ListExpenses(), opts)
		return nil
	})
	return out, err
}
