package domain

// Accessor is the capability the query engine and exporters use to read
// entity fields generically. Implemented once per entity type; lookups use
// the schema field names. Unknown names report ok=false.
type Accessor interface {
	EntityType() EntityType
	Field(name string) (any, bool)
}

func refValue(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

// EntityType identifies the member schema.
func (Member) EntityType() EntityType { return EntityMember }

// Field resolves a member field by schema name.
func (m Member) Field(name string) (any, bool) {
	switch name {
	case "id":
		return m.ID, true
	case "name":
		return m.Name, true
	case "email":
		return m.Email, true
	case "phone":
		return m.Phone, true
	case "membership_type":
		return m.MembershipType, true
	case "joined_at":
		return m.JoinedAt, true
	case "payment_status":
		return string(m.PaymentStatus), true
	}
	return nil, false
}

// EntityType identifies the desk schema.
func (Desk) EntityType() EntityType { return EntityDesk }

// Field resolves a desk field by schema name.
func (d Desk) Field(name string) (any, bool) {
	switch name {
	case "id":
		return d.ID, true
	case "label":
		return d.Label, true
	case "zone":
		return d.Zone, true
	case "price_per_hour":
		return d.PricePerHour, true
	case "status":
		return string(d.Status), true
	}
	return nil, false
}

// EntityType identifies the booking schema.
func (Booking) EntityType() EntityType { return EntityBooking }

// Field resolves a booking field by schema name.
func (b Booking) Field(name string) (any, bool) {
	switch name {
	case "id":
		return b.ID, true
	case "member_id":
		return b.MemberID, true
	case "desk_id":
		return b.DeskID, true
	case "starts_at":
		return b.StartsAt, true
	case "hours":
		return b.Hours, true
	case "total_price":
		return b.TotalPrice, true
	case "status":
		return string(b.Status), true
	}
	return nil, false
}

// EntityType identifies the payment schema.
func (Payment) EntityType() EntityType { return EntityPayment }

// Field resolves a payment field by schema name.
func (p Payment) Field(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "member_id":
		return refValue(p.MemberID), true
	case "tenant_id":
		return refValue(p.TenantID), true
	case "unit_id":
		return refValue(p.UnitID), true
	case "property_id":
		return refValue(p.PropertyID), true
	case "amount":
		return p.Amount, true
	case "kind":
		return string(p.Kind), true
	case "status":
		return string(p.Status), true
	case "paid_at":
		return p.PaidAt, true
	}
	return nil, false
}

// EntityType identifies the amenity schema.
func (Amenity) EntityType() EntityType { return EntityAmenity }

// Field resolves an amenity field by schema name.
func (a Amenity) Field(name string) (any, bool) {
	switch name {
	case "id":
		return a.ID, true
	case "name":
		return a.Name, true
	case "description":
		return a.Description, true
	case "available":
		return a.Available, true
	}
	return nil, false
}

// EntityType identifies the tenant schema.
func (Tenant) EntityType() EntityType { return EntityTenant }

// Field resolves a tenant field by schema name.
func (t Tenant) Field(name string) (any, bool) {
	switch name {
	case "id":
		return t.ID, true
	case "name":
		return t.Name, true
	case "email":
		return t.Email, true
	case "phone":
		return t.Phone, true
	case "moved_in_at":
		return t.MovedInAt, true
	case "payment_status":
		return string(t.PaymentStatus), true
	}
	return nil, false
}

// EntityType identifies the property schema.
func (Property) EntityType() EntityType { return EntityProperty }

// Field resolves a property field by schema name.
func (p Property) Field(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "name":
		return p.Name, true
	case "address":
		return p.Address, true
	case "city":
		return p.City, true
	}
	return nil, false
}

// EntityType identifies the unit schema.
func (Unit) EntityType() EntityType { return EntityUnit }

// Field resolves a unit field by schema name.
func (u Unit) Field(name string) (any, bool) {
	switch name {
	case "id":
		return u.ID, true
	case "property_id":
		return u.PropertyID, true
	case "number":
		return u.Number, true
	case "monthly_rent":
		return u.MonthlyRent, true
	case "status":
		return string(u.Status), true
	case "tenant_id":
		return refValue(u.TenantID), true
	}
	return nil, false
}

// EntityType identifies the maintenance request schema.
func (MaintenanceRequest) EntityType() EntityType { return EntityMaintenanceRequest }

// Field resolves a maintenance request field by schema name.
func (m MaintenanceRequest) Field(name string) (any, bool) {
	switch name {
	case "id":
		return m.ID, true
	case "property_id":
		return m.PropertyID, true
	case "unit_id":
		return m.UnitID, true
	case "title":
		return m.Title, true
	case "status":
		return string(m.Status), true
	case "reported_at":
		return m.ReportedAt, true
	}
	return nil, false
}

// EntityType identifies the expense schema.
func (Expense) EntityType() EntityType { return EntityExpense }

// Field resolves an expense field by schema name.
func (e Expense) Field(name string) (any, bool) {
	switch name {
	case "id":
		return e.ID, true
	case "property_id":
		return e.PropertyID, true
	case "category":
		return e.Category, true
	case "amount":
		return e.Amount, true
	case "incurred_at":
		return e.IncurredAt, true
	}
	return nil, false
}
