package memory

import (
	"spacecore/pkg/domain"
)

// accountStatus rolls up the payment history for a member or tenant: unpaid
// while any of its payments is not completed, paid otherwise.
func accountStatus(state memoryState, owner domain.EntityType, id string) domain.AccountStatus {
	for _, pid := range state.payments.order {
		p := state.payments.items[pid]
		var ref *string
		switch owner {
		case domain.EntityMember:
			ref = p.MemberID
		case domain.EntityTenant:
			ref = p.TenantID
		default:
			return domain.AccountStatusPaid
		}
		if ref == nil || *ref != id {
			continue
		}
		if p.Status != domain.PaymentStatusCompleted {
			return domain.AccountStatusUnpaid
		}
	}
	return domain.AccountStatusPaid
}

// unitStatus derives occupancy from the tenant assignment. A unit flagged for
// maintenance keeps that status regardless of assignment.
func unitStatus(u Unit) domain.UnitStatus {
	if u.Status == domain.UnitStatusMaintenance {
		return domain.UnitStatusMaintenance
	}
	if u.TenantID != nil && *u.TenantID != "" {
		return domain.UnitStatusOccupied
	}
	return domain.UnitStatusVacant
}

// recomputeDerived re-derives every dependent field from the transactional
// state before rules run and the state commits. Individual mutations already
// maintain these values; the pass here guarantees consistency after cascades
// and multi-step transactions.
func (tx *transaction) recomputeDerived() {
	for _, id := range tx.state.bookings.order {
		b := tx.state.bookings.items[id]
		desk, ok := tx.state.desks.get(b.DeskID)
		if !ok {
			continue
		}
		total := b.Hours * desk.PricePerHour
		if b.TotalPrice != total {
			b.TotalPrice = total
			tx.state.bookings.items[id] = b
		}
	}

	for _, id := range tx.state.members.order {
		m := tx.state.members.items[id]
		status := accountStatus(tx.state, domain.EntityMember, id)
		if m.PaymentStatus != status {
			m.PaymentStatus = status
			tx.state.members.items[id] = m
		}
	}

	for _, id := range tx.state.tenants.order {
		t := tx.state.tenants.items[id]
		status := accountStatus(tx.state, domain.EntityTenant, id)
		if t.PaymentStatus != status {
			t.PaymentStatus = status
			tx.state.tenants.items[id] = t
		}
	}

	for _, id := range tx.state.units.order {
		u := tx.state.units.items[id]
		status := unitStatus(u)
		if u.Status != status {
			u.Status = status
			tx.state.units.items[id] = cloneUnit(u)
		}
	}
}
