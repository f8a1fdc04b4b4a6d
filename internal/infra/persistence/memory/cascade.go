package memory

import (
	"spacecore/pkg/domain"
)

// refID extracts the reference value from an accessor field: empty when the
// field is absent, nil, or the empty string.
func refID(record domain.Accessor, field string) string {
	value, ok := record.Field(field)
	if !ok || value == nil {
		return ""
	}
	s, _ := value.(string)
	return s
}

// exists reports whether an entity of the given type and id is present in the
// transactional state.
func (tx *transaction) exists(entity domain.EntityType, id string) bool {
	switch entity {
	case domain.EntityMember:
		_, ok := tx.state.members.get(id)
		return ok
	case domain.EntityDesk:
		_, ok := tx.state.desks.get(id)
		return ok
	case domain.EntityBooking:
		_, ok := tx.state.bookings.get(id)
		return ok
	case domain.EntityPayment:
		_, ok := tx.state.payments.get(id)
		return ok
	case domain.EntityAmenity:
		_, ok := tx.state.amenities.get(id)
		return ok
	case domain.EntityTenant:
		_, ok := tx.state.tenants.get(id)
		return ok
	case domain.EntityProperty:
		_, ok := tx.state.properties.get(id)
		return ok
	case domain.EntityUnit:
		_, ok := tx.state.units.get(id)
		return ok
	case domain.EntityMaintenanceRequest:
		_, ok := tx.state.maintenance.get(id)
		return ok
	case domain.EntityExpense:
		_, ok := tx.state.expenses.get(id)
		return ok
	}
	return false
}

// validateReferences checks every declared reference of the record: a
// non-empty reference must resolve to an existing target.
func (tx *transaction) validateReferences(record domain.Accessor) error {
	for _, ref := range domain.ReferencesFrom(record.EntityType()) {
		id := refID(record, ref.Field)
		if id == "" {
			continue
		}
		if !tx.exists(ref.Target, id) {
			return domain.DanglingReferenceError{
				Source: ref.Source,
				Field:  ref.Field,
				Target: ref.Target,
				ID:     id,
			}
		}
	}
	return nil
}

// dependentIDs returns, in collection order, the ids of the source records
// whose reference field points at targetID.
func (tx *transaction) dependentIDs(ref domain.Reference, targetID string) []string {
	var out []string
	collect := func(id string, record domain.Accessor) {
		if refID(record, ref.Field) == targetID {
			out = append(out, id)
		}
	}
	switch ref.Source {
	case domain.EntityBooking:
		for _, id := range tx.state.bookings.order {
			collect(id, tx.state.bookings.items[id])
		}
	case domain.EntityPayment:
		for _, id := range tx.state.payments.order {
			collect(id, tx.state.payments.items[id])
		}
	case domain.EntityUnit:
		for _, id := range tx.state.units.order {
			collect(id, tx.state.units.items[id])
		}
	case domain.EntityMaintenanceRequest:
		for _, id := range tx.state.maintenance.order {
			collect(id, tx.state.maintenance.items[id])
		}
	case domain.EntityExpense:
		for _, id := range tx.state.expenses.order {
			collect(id, tx.state.expenses.items[id])
		}
	}
	return out
}

// applyCascades walks the declared relationships targeting the entity being
// deleted and applies each policy: cascade deletes recurse through the
// dependent's own delete path, nullify clears the reference in place.
func (tx *transaction) applyCascades(entity domain.EntityType, id string) error {
	for _, ref := range domain.ReferencesTo(entity) {
		switch ref.OnDelete {
		case domain.CascadeDelete:
			for _, depID := range tx.dependentIDs(ref, id) {
				// A sibling cascade earlier in the table may already have
				// removed the dependent.
				if !tx.exists(ref.Source, depID) {
					continue
				}
				if err := tx.deleteEntity(ref.Source, depID); err != nil {
					return err
				}
			}
		case domain.CascadeNullify:
			tx.nullifyReferences(ref, id)
		}
	}
	return nil
}

// deleteEntity dispatches to the typed delete so cascades recurse through the
// same path callers use.
func (tx *transaction) deleteEntity(entity domain.EntityType, id string) error {
	switch entity {
	case domain.EntityMember:
		return tx.DeleteMember(id)
	case domain.EntityDesk:
		return tx.DeleteDesk(id)
	case domain.EntityBooking:
		return tx.DeleteBooking(id)
	case domain.EntityPayment:
		return tx.DeletePayment(id)
	case domain.EntityAmenity:
		return tx.DeleteAmenity(id)
	case domain.EntityTenant:
		return tx.DeleteTenant(id)
	case domain.EntityProperty:
		return tx.DeleteProperty(id)
	case domain.EntityUnit:
		return tx.DeleteUnit(id)
	case domain.EntityMaintenanceRequest:
		return tx.DeleteMaintenanceRequest(id)
	case domain.EntityExpense:
		return tx.DeleteExpense(id)
	}
	return domain.NotFoundError{Entity: entity, ID: id}
}

// nullifyReferences clears the reference field on every dependent instead of
// deleting it. The only nullify relationship today is unit.tenant_id, which
// also resets occupancy to vacant.
func (tx *transaction) nullifyReferences(ref domain.Reference, targetID string) {
	if ref.Source != domain.EntityUnit || ref.Field != "tenant_id" {
		return
	}
	for _, id := range tx.dependentIDs(ref, targetID) {
		unit, ok := tx.state.units.get(id)
		if !ok {
			continue
		}
		before := cloneUnit(unit)
		unit.TenantID = nil
		if unit.Status == domain.UnitStatusOccupied {
			unit.Status = domain.UnitStatusVacant
		}
		unit.UpdatedAt = tx.now
		tx.state.units.put(id, cloneUnit(unit))
		tx.recordChange(Change{Entity: domain.EntityUnit, Action: domain.ActionUpdate, Before: before, After: cloneUnit(unit)})
	}
}
