package memory

import (
	"time"

	"spacecore/pkg/domain"
)

func ptr(s string) *string { return &s }

// DefaultSnapshot returns the deterministic demo dataset used to seed an
// empty store. It exercises both application shapes: a coworking space and a
// small property portfolio, including one unpaid member and one unpaid tenant
// so derived statuses are visible out of the box.
func DefaultSnapshot() Snapshot {
	seeded := time.Date(2025, time.March, 1, 9, 0, 0, 0, time.UTC)
	base := func(id string) domain.Base {
		return domain.Base{ID: id, CreatedAt: seeded, UpdatedAt: seeded}
	}

	return Snapshot{
		Members: []Member{
			{
				Base:           base("member-aisha"),
				Name:           "Aisha Benali",
				Email:          "aisha@example.com",
				Phone:          "+31 6 1111 2222",
				MembershipType: "flex",
				JoinedAt:       time.Date(2024, time.November, 4, 0, 0, 0, 0, time.UTC),
			},
			{
				Base:           base("member-jonas"),
				Name:           "Jonas Lindqvist",
				Email:          "jonas@example.com",
				Phone:          "+46 70 333 4444",
				MembershipType: "dedicated",
				JoinedAt:       time.Date(2025, time.January, 13, 0, 0, 0, 0, time.UTC),
			},
		},
		Desks: []Desk{
			{Base: base("desk-a1"), Label: "A1", Zone: "quiet", PricePerHour: 4, Status: domain.DeskStatusAvailable},
			{Base: base("desk-a2"), Label: "A2", Zone: "quiet", PricePerHour: 4, Status: domain.DeskStatusAvailable},
			{Base: base("desk-b1"), Label: "B1", Zone: "open", PricePerHour: 2.5, Status: domain.DeskStatusMaintenance},
		},
		Bookings: []Booking{
			{
				Base:     base("booking-1"),
				MemberID: "member-aisha",
				DeskID:   "desk-a1",
				StartsAt: time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC),
				Hours:    4,
				Status:   domain.BookingStatusCompleted,
			},
			{
				Base:     base("booking-2"),
				MemberID: "member-jonas",
				DeskID:   "desk-a2",
				StartsAt: time.Date(2025, time.March, 4, 13, 0, 0, 0, time.UTC),
				Hours:    8,
				Status:   domain.BookingStatusActive,
			},
		},
		Payments: []Payment{
			{
				Base:     base("payment-1"),
				MemberID: ptr("member-aisha"),
				Amount:   16,
				Kind:     domain.PaymentKindBooking,
				Status:   domain.PaymentStatusCompleted,
				PaidAt:   time.Date(2025, time.March, 3, 17, 0, 0, 0, time.UTC),
			},
			{
				Base:     base("payment-2"),
				MemberID: ptr("member-jonas"),
				Amount:   220,
				Kind:     domain.PaymentKindMembership,
				Status:   domain.PaymentStatusPending,
				PaidAt:   time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				Base:       base("payment-3"),
				TenantID:   ptr("tenant-mila"),
				UnitID:     ptr("unit-12a"),
				PropertyID: ptr("property-canal"),
				Amount:     1450,
				Kind:       domain.PaymentKindRent,
				Status:     domain.PaymentStatusCompleted,
				PaidAt:     time.Date(2025, time.March, 1, 8, 0, 0, 0, time.UTC),
			},
			{
				Base:       base("payment-4"),
				TenantID:   ptr("tenant-ravi"),
				UnitID:     ptr("unit-12b"),
				PropertyID: ptr("property-canal"),
				Amount:     1300,
				Kind:       domain.PaymentKindRent,
				Status:     domain.PaymentStatusFailed,
				PaidAt:     time.Date(2025, time.March, 2, 8, 0, 0, 0, time.UTC),
			},
		},
		Amenities: []Amenity{
			{Base: base("amenity-coffee"), Name: "Espresso bar", Description: "Self-serve, beans included", Available: true},
			{Base: base("amenity-booth"), Name: "Phone booth", Description: "Two soundproof booths near zone B", Available: false},
		},
		Tenants: []Tenant{
			{
				Base:      base("tenant-mila"),
				Name:      "Mila Novak",
				Email:     "mila@example.com",
				Phone:     "+420 601 555 777",
				MovedInAt: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC),
			},
			{
				Base:      base("tenant-ravi"),
				Name:      "Ravi Pillai",
				Email:     "ravi@example.com",
				Phone:     "+91 98400 11223",
				MovedInAt: time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC),
			},
		},
		Properties: []Property{
			{Base: base("property-canal"), Name: "Canal House", Address: "Herengracht 120", City: "Amsterdam"},
			{Base: base("property-mill"), Name: "Old Mill", Address: "Molenstraat 4", City: "Utrecht"},
		},
		Units: []Unit{
			{Base: base("unit-12a"), PropertyID: "property-canal", Number: "12A", MonthlyRent: 1450, TenantID: ptr("tenant-mila")},
			{Base: base("unit-12b"), PropertyID: "property-canal", Number: "12B", MonthlyRent: 1300, TenantID: ptr("tenant-ravi")},
			{Base: base("unit-1"), PropertyID: "property-mill", Number: "1", MonthlyRent: 980},
		},
		MaintenanceRequests: []MaintenanceRequest{
			{
				Base:       base("maintenance-1"),
				PropertyID: "property-canal",
				UnitID:     "unit-12b",
				Title:      "Radiator leak in bedroom",
				Status:     domain.MaintenanceStatusOpen,
				ReportedAt: time.Date(2025, time.February, 27, 18, 30, 0, 0, time.UTC),
			},
		},
		Expenses: []Expense{
			{
				Base:       base("expense-1"),
				PropertyID: "property-canal",
				Category:   "plumbing",
				Amount:     240,
				IncurredAt: time.Date(2025, time.February, 28, 0, 0, 0, 0, time.UTC),
			},
			{
				Base:       base("expense-2"),
				PropertyID: "property-mill",
				Category:   "insurance",
				Amount:     560,
				IncurredAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
			},
		},
	}
}
