package memory

import (
	"spacecore/pkg/domain"
)

// alreadyExists guards create against caller-supplied duplicate ids.
func alreadyExists(entity domain.EntityType, id string) error {
	return domain.ValidationError{Entity: entity, Field: "id", Message: "id " + id + " already exists"}
}

func validateMember(m Member) error {
	if m.Name == "" {
		return domain.ValidationError{Entity: domain.EntityMember, Field: "name", Message: "required"}
	}
	return nil
}

// CreateMember stores a new member within the transaction.
func (tx *transaction) CreateMember(m Member) (Member, error) {
	if m.ID == "" {
		m.ID = tx.store.newID()
	}
	if _, exists := tx.state.members.get(m.ID); exists {
		return Member{}, alreadyExists(domain.EntityMember, m.ID)
	}
	if err := validateMember(m); err != nil {
		return Member{}, err
	}
	m.CreatedAt = tx.now
	m.UpdatedAt = tx.now
	m.PaymentStatus = accountStatus(tx.state, domain.EntityMember, m.ID)
	tx.state.members.put(m.ID, cloneMember(m))
	tx.recordChange(Change{Entity: domain.EntityMember, Action: domain.ActionCreate, After: cloneMember(m)})
	return cloneMember(m), nil
}

// UpdateMember replaces a member record by id, preserving position and creation time.
func (tx *transaction) UpdateMember(id string, m Member) (Member, error) {
	current, ok := tx.state.members.get(id)
	if !ok {
		return Member{}, domain.NotFoundError{Entity: domain.EntityMember, ID: id}
	}
	if err := validateMember(m); err != nil {
		return Member{}, err
	}
	before := cloneMember(current)
	m.ID = id
	m.CreatedAt = current.CreatedAt
	m.UpdatedAt = tx.now
	m.PaymentStatus = accountStatus(tx.state, domain.EntityMember, id)
	tx.state.members.put(id, cloneMember(m))
	tx.recordChange(Change{Entity: domain.EntityMember, Action: domain.ActionUpdate, Before: before, After: cloneMember(m)})
	return cloneMember(m), nil
}

// DeleteMember removes a member after cascading to its bookings and payments.
func (tx *transaction) DeleteMember(id string) error {
	current, ok := tx.state.members.get(id)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityMember, ID: id}
	}
	if err := tx.applyCascades(domain.EntityMember, id); err != nil {
		return err
	}
	tx.state.members.remove(id)
	tx.recordChange(Change{Entity: domain.EntityMember, Action: domain.ActionDelete, Before: cloneMember(current)})
	return nil
}

func validateDesk(d Desk) error {
	if d.Label == "" {
		return domain.ValidationError{Entity: domain.EntityDesk, Field: "label", Message: "required"}
	}
	if d.PricePerHour < 0 {
		return domain.ValidationError{Entity: domain.EntityDesk, Field: "price_per_hour", Message: "must not be negative"}
	}
	return nil
}

// CreateDesk stores a new desk.
func (tx *transaction) CreateDesk(d Desk) (Desk, error) {
	if d.ID == "" {
		d.ID = tx.store.newID()
	}
	if _, exists := tx.state.desks.get(d.ID); exists {
		return Desk{}, alreadyExists(domain.EntityDesk, d.ID)
	}
	if d.Status == "" {
		d.Status = domain.DeskStatusAvailable
	}
	if err := validateDesk(d); err != nil {
		return Desk{}, err
	}
	d.CreatedAt = tx.now
	d.UpdatedAt = tx.now
	tx.state.desks.put(d.ID, cloneDesk(d))
	tx.recordChange(Change{Entity: domain.EntityDesk, Action: domain.ActionCreate, After: cloneDesk(d)})
	return cloneDesk(d), nil
}

// UpdateDesk replaces a desk record by id.
func (tx *transaction) UpdateDesk(id string, d Desk) (Desk, error) {
	current, ok := tx.state.desks.get(id)
	if !ok {
		return Desk{}, domain.NotFoundError{Entity: domain.EntityDesk, ID: id}
	}
	if d.Status == "" {
		d.Status = domain.DeskStatusAvailable
	}
	if err := validateDesk(d); err != nil {
		return Desk{}, err
	}
	before := cloneDesk(current)
	d.ID = id
	d.CreatedAt = current.CreatedAt
	d.UpdatedAt = tx.now
	tx.state.desks.put(id, cloneDesk(d))
	tx.recordChange(Change{Entity: domain.EntityDesk, Action: domain.ActionUpdate, Before: before, After: cloneDesk(d)})
	return cloneDesk(d), nil
}

// DeleteDesk removes a desk after cascading to its bookings.
func (tx *transaction) DeleteDesk(id string) error {
	current, ok := tx.state.desks.get(id)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityDesk, ID: id}
	}
	if err := tx.applyCascades(domain.EntityDesk, id); err != nil {
		return err
	}
	tx.state.desks.remove(id)
	tx.recordChange(Change{Entity: domain.EntityDesk, Action: domain.ActionDelete, Before: cloneDesk(current)})
	return nil
}

func validateBooking(b Booking) error {
	if b.MemberID == "" {
		return domain.ValidationError{Entity: domain.EntityBooking, Field: "member_id", Message: "required"}
	}
	if b.DeskID == "" {
		return domain.ValidationError{Entity: domain.EntityBooking, Field: "desk_id", Message: "required"}
	}
	if b.Hours <= 0 {
		return domain.ValidationError{Entity: domain.EntityBooking, Field: "hours", Message: "must be positive"}
	}
	return nil
}

// CreateBooking stores a new booking. The total price is computed from the
// referenced desk before the record is appended.
func (tx *transaction) CreateBooking(b Booking) (Booking, error) {
	if b.ID == "" {
		b.ID = tx.store.newID()
	}
	if _, exists := tx.state.bookings.get(b.ID); exists {
		return Booking{}, alreadyExists(domain.EntityBooking, b.ID)
	}
	if b.Status == "" {
		b.Status = domain.BookingStatusActive
	}
	if err := validateBooking(b); err != nil {
		return Booking{}, err
	}
	if err := tx.validateReferences(b); err != nil {
		return Booking{}, err
	}
	desk, _ := tx.state.desks.get(b.DeskID)
	b.TotalPrice = b.Hours * desk.PricePerHour
	b.CreatedAt = tx.now
	b.UpdatedAt = tx.now
	tx.state.bookings.put(b.ID, cloneBooking(b))
	tx.recordChange(Change{Entity: domain.EntityBooking, Action: domain.ActionCreate, After: cloneBooking(b)})
	return cloneBooking(b), nil
}

// UpdateBooking replaces a booking record by id.
func (tx *transaction) UpdateBooking(id string, b Booking) (Booking, error) {
	current, ok := tx.state.bookings.get(id)
	if !ok {
		return Booking{}, domain.NotFoundError{Entity: domain.EntityBooking, ID: id}
	}
	if b.Status == "" {
		b.Status = domain.BookingStatusActive
	}
	if err := validateBooking(b); err != nil {
		return Booking{}, err
	}
	if err := tx.validateReferences(b); err != nil {
		return Booking{}, err
	}
	before := cloneBooking(current)
	desk, _ := tx.state.desks.get(b.DeskID)
	b.TotalPrice = b.Hours * desk.PricePerHour
	b.ID = id
	b.CreatedAt = current.CreatedAt
	b.UpdatedAt = tx.now
	tx.state.bookings.put(id, cloneBooking(b))
	tx.recordChange(Change{Entity: domain.EntityBooking, Action: domain.ActionUpdate, Before: before, After: cloneBooking(b)})
	return cloneBooking(b), nil
}

// DeleteBooking removes a booking.
func (tx *transaction) DeleteBooking(id string) error {
	current, ok := tx.state.bookings.get(id)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityBooking, ID: id}
	}
	if err := tx.applyCascades(domain.EntityBooking, id); err != nil {
		return err
	}
	tx.state.bookings.remove(id)
	tx.recordChange(Change{Entity: domain.EntityBooking, Action: domain.ActionDelete, Before: cloneBooking(current)})
	return nil
}

func validatePayment(p Payment) error {
	if p.Amount < 0 {
		return domain.ValidationError{Entity: domain.EntityPayment, Field: "amount", Message: "must not be negative"}
	}
	if p.Kind == "" {
		return domain.ValidationError{Entity: domain.EntityPayment, Field: "kind", Message: "required"}
	}
	return nil
}

// CreatePayment stores a new payment.
func (tx *transaction) CreatePayment(p Payment) (Payment, error) {
	if p.ID == "" {
		p.ID = tx.store.newID()
	}
	if _, exists := tx.state.payments.get(p.ID); exists {
		return Payment{}, alreadyExists(domain.EntityPayment, p.ID)
	}
	if p.Status == "" {
		p.Status = domain.PaymentStatusPending
	}
	if err := validatePayment(p); err != nil {
		return Payment{}, err
	}
	if err := tx.validateReferences(p); err != nil {
		return Payment{}, err
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	tx.state.payments.put(p.ID, clonePayment(p))
	tx.recordChange(Change{Entity: domain.EntityPayment, Action: domain.ActionCreate, After: clonePayment(p)})
	return clonePayment(p), nil
}

// UpdatePayment replaces a payment record by id.
func (tx *transaction) UpdatePayment(id string, p Payment) (Payment, error) {
	current, ok := tx.state.payments.get(id)
	if !ok {
		return Payment{}, domain.NotFoundError{Entity: domain.EntityPayment, ID: id}
	}
	if p.Status == "" {
		p.Status = domain.PaymentStatusPending
	}
	if err := validatePayment(p); err != nil {
		return Payment{}, err
	}
	if err := tx.validateReferences(p); err != nil {
		return Payment{}, err
	}
	before := clonePayment(current)
	p.ID = id
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = tx.now
	tx.state.payments.put(id, clonePayment(p))
	tx.recordChange(Change{Entity: domain.EntityPayment, Action: domain.ActionUpdate, Before: before, After: clonePayment(p)})
	return clonePayment(p), nil
}

// DeletePayment removes a payment.
func (tx *transaction) DeletePayment(id string) error {
	current, ok := tx.state.payments.get(id)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityPayment, ID: id}
	}
	if err := tx.applyCascades(domain.EntityPayment, id); err != nil {
		return err
	}
	tx.state.payments.remove(id)
	tx.recordChange(Change{Entity: domain.EntityPayment, Action: domain.ActionDelete, Before: clonePayment(current)})
	return nil
}

func validateAmenity(a Amenity) error {
	if a.Name == "" {
		return domain.ValidationError{Entity: domain.EntityAmenity, Field: "name", Message: "required"}
	}
	return nil
}

// CreateAmenity stores a new amenity.
func (tx *transaction) CreateAmenity(a Amenity) (Amenity, error) {
	if a.ID == "" {
		a.ID = tx.store.newID()
	}
	if _, exists := tx.state.amenities.get(a.ID); exists {
		return Amenity{}, alreadyExists(domain.EntityAmenity, a.ID)
	}
	if err := validateAmenity(a); err != nil {
		return Amenity{}, err
	}
	a.CreatedAt = tx.now
	a.UpdatedAt = tx.now
	tx.state.amenities.put(a.ID, cloneAmenity(a))
	tx.recordChange(Change{Entity: domain.EntityAmenity, Action: domain.ActionCreate, After: cloneAmenity(a)})
	return cloneAmenity(a), nil
}

// UpdateAmenity replaces an amenity record by id.
func (tx *transaction) UpdateAmenity(id string, a Amenity) (Amenity, error) {
	current, ok := tx.state.amenities.get(id)
	if !ok {
		return Amenity{}, domain.NotFoundError{Entity: domain.EntityAmenity, ID: id}
	}
	if err := validateAmenity(a); err != nil {
		return Amenity{}, err
	}
	before := cloneAmenity(current)
	a.ID = id
	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = tx.now
	tx.state.amenities.put(id, cloneAmenity(a))
	tx.recordChange(Change{Entity: domain.EntityAmenity, Action: domain.ActionUpdate, Before: before, After: cloneAmenity(a)})
	return cloneAmenity(a), nil
}

// DeleteAmenity removes an amenity.
func (tx *transaction) DeleteAmenity(id string) error {
	current, ok := tx.state.amenities.get(id)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityAmenity, ID: id}
	}
	tx.state.amenities.remove(id)
	tx.recordChange(Change{Entity: domain.EntityAmenity, Action: domain.ActionDelete, Before: cloneAmenity(current)})
	return nil
}

func validateTenant(t Tenant) error {
	if t.Name == "" {
		return domain.ValidationError{Entity: domain.EntityTenant, Field: "name", Message: "required"}
	}
	return nil
}

// CreateTenant stores a new tenant.
func (tx *transaction) CreateTenant(t Tenant) (Tenant, error) {
	if t.ID == "" {
		t.ID = tx.store.newID()
	}
	if _, exists := tx.state.tenants.get(t.ID); exists {
		return Tenant{}, alreadyExists(domain.EntityTenant, t.ID)
	}
	if err := validateTenant(t); err != nil {
		return Tenant{}, err
	}
	t.CreatedAt = tx.now
	t.UpdatedAt = tx.now
	t.PaymentStatus = accountStatus(tx.state, domain.EntityTenant, t.ID)
	tx.state.tenants.put(t.ID, cloneTenant(t))
	tx.recordChange(Change{Entity: domain.EntityTenant, Action: domain.ActionCreate, After: cloneTenant(t)})
	return cloneTenant(t), nil
}

// UpdateTenant replaces a tenant record by id.
func (tx *transaction) UpdateTenant(id string, t Tenant) (Tenant, error) {
	current, ok := tx.state.tenants.get(id)
	if !ok {
		return Tenant{}, domain.NotFoundError{Entity: domain.EntityTenant, ID: id}
	}
	if err := validateTenant(t); err != nil {
		return Tenant{}, err
	}
	before := cloneTenant(current)
	t.ID = id
	t.CreatedAt = current.CreatedAt
	t.UpdatedAt = tx.now
	t.PaymentStatus = accountStatus(tx.state, domain.EntityTenant, id)
	tx.state.tenants.put(id, cloneTenant(t))
	tx.recordChange(Change{Entity: domain.EntityTenant, Action: domain.ActionUpdate, Before: before, After: cloneTenant(t)})
	return cloneTenant(t), nil
}

// DeleteTenant removes a tenant after cascading to its payments and
// nullifying unit assignments.
func (tx *transaction) DeleteTenant(id string) error {
	current, ok := tx.state.tenants.get(id)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityTenant, ID: id}
	}
	if err := tx.applyCascades(domain.EntityTenant, id); err != nil {
		return err
	}
	tx.state.tenants.remove(id)
	tx.recordChange(Change{Entity: domain.EntityTenant, Action: domain.ActionDelete, Before: cloneTenant(current)})
	return nil
}

func validateProperty(p Property) error {
	if p.Name == "" {
		return domain.ValidationError{Entity: domain.EntityProperty, Field: "name", Message: "required"}
	}
	return nil
}

// CreateProperty stores a new property.
func (tx *transaction) CreateProperty(p Property) (Property, error) {
	if p.ID == "" {
		p.ID = tx.store.newID()
	}
	if _, exists := tx.state.properties.get(p.ID); exists {
		return Property{}, alreadyExists(domain.EntityProperty, p.ID)
	}
	if err := validateProperty(p); err != nil {
		return Property{}, err
	}
	p.CreatedAt = tx.now
	p.UpdatedAt = tx.now
	tx.state.properties.put(p.ID, cloneProperty(p))
	tx.recordChange(Change{Entity: domain.EntityProperty, Action: domain.ActionCreate, After: cloneProperty(p)})
	return cloneProperty(p), nil
}

// UpdateProperty replaces a property record by id.
func (tx *transaction) UpdateProperty(id string, p Property) (Property, error) {
	current, ok := tx.state.properties.get(id)
	if !ok {
		return Property{}, domain.NotFoundError{Entity: domain.EntityProperty, ID: id}
	}
	if err := validateProperty(p); err != nil {
		return Property{}, err
	}
	before := cloneProperty(current)
	p.ID = id
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = tx.now
	tx.state.properties.put(id, cloneProperty(p))
	tx.recordChange(Change{Entity: domain.EntityProperty, Action: domain.ActionUpdate, Before: before, After: cloneProperty(p)})
	return cloneProperty(p), nil
}

// DeleteProperty removes a property after cascading to units, payments,
// maintenance requests, and expenses.
func (tx *transaction) DeleteProperty(id string) error {
	current, ok := tx.state.properties.get(id)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityProperty, ID: id}
	}
	if err := tx.applyCascades(domain.EntityProperty, id); err != nil {
		return err
	}
	tx.state.properties.remove(id)
	tx.recordChange(Change{Entity: domain.EntityProperty, Action: domain.ActionDelete, Before: cloneProperty(current)})
	return nil
}

func validateUnit(u Unit) error {
	if u.PropertyID == "" {
		return domain.ValidationError{Entity: domain.EntityUnit, Field: "property_id", Message: "required"}
	}
	if u.Number == "" {
		return domain.ValidationError{Entity: domain.EntityUnit, Field: "number", Message: "required"}
	}
	if u.MonthlyRent < 0 {
		return domain.ValidationError{Entity: domain.EntityUnit, Field: "monthly_rent", Message: "must not be negative"}
	}
	return nil
}

// CreateUnit stores a new unit. Occupancy follows the tenant reference.
func (tx *transaction) CreateUnit(u Unit) (Unit, error) {
	if u.ID == "" {
		u.ID = tx.store.newID()
	}
	if _, exists := tx.state.units.get(u.ID); exists {
		return Unit{}, alreadyExists(domain.EntityUnit, u.ID)
	}
	if err := validateUnit(u); err != nil {
		return Unit{}, err
	}
	if err := tx.validateReferences(u); err != nil {
		return Unit{}, err
	}
	u.Status = unitStatus(u)
	u.CreatedAt = tx.now
	u.UpdatedAt = tx.now
	tx.state.units.put(u.ID, cloneUnit(u))
	tx.recordChange(Change{Entity: domain.EntityUnit, Action: domain.ActionCreate, After: cloneUnit(u)})
	return cloneUnit(u), nil
}

// UpdateUnit replaces a unit record by id.
func (tx *transaction) UpdateUnit(id string, u Unit) (Unit, error) {
	current, ok := tx.state.units.get(id)
	if !ok {
		return Unit{}, domain.NotFoundError{Entity: domain.EntityUnit, ID: id}
	}
	if err := validateUnit(u); err != nil {
		return Unit{}, err
	}
	if err := tx.validateReferences(u); err != nil {
		return Unit{}, err
	}
	before := cloneUnit(current)
	u.Status = unitStatus(u)
	u.ID = id
	u.CreatedAt = current.CreatedAt
	u.UpdatedAt = tx.now
	tx.state.units.put(id, cloneUnit(u))
	tx.recordChange(Change{Entity: domain.EntityUnit, Action: domain.ActionUpdate, Before: before, After: cloneUnit(u)})
	return cloneUnit(u), nil
}

// DeleteUnit removes a unit after cascading to its payments and maintenance
// requests.
func (tx *transaction) DeleteUnit(id string) error {
	current, ok := tx.state.units.get(id)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityUnit, ID: id}
	}
	if err := tx.applyCascades(domain.EntityUnit, id); err != nil {
		return err
	}
	tx.state.units.remove(id)
	tx.recordChange(Change{Entity: domain.EntityUnit, Action: domain.ActionDelete, Before: cloneUnit(current)})
	return nil
}

func validateMaintenanceRequest(m MaintenanceRequest) error {
	if m.PropertyID == "" {
		return domain.ValidationError{Entity: domain.EntityMaintenanceRequest, Field: "property_id", Message: "required"}
	}
	if m.UnitID == "" {
		return domain.ValidationError{Entity: domain.EntityMaintenanceRequest, Field: "unit_id", Message: "required"}
	}
	if m.Title == "" {
		return domain.ValidationError{Entity: domain.EntityMaintenanceRequest, Field: "title", Message: "required"}
	}
	return nil
}

// CreateMaintenanceRequest stores a new maintenance request.
func (tx *transaction) CreateMaintenanceRequest(m MaintenanceRequest) (MaintenanceRequest, error) {
	if m.ID == "" {
		m.ID = tx.store.newID()
	}
	if _, exists := tx.state.maintenance.get(m.ID); exists {
		return MaintenanceRequest{}, alreadyExists(domain.EntityMaintenanceRequest, m.ID)
	}
	if m.Status == "" {
		m.Status = domain.MaintenanceStatusOpen
	}
	if err := validateMaintenanceRequest(m); err != nil {
		return MaintenanceRequest{}, err
	}
	if err := tx.validateReferences(m); err != nil {
		return MaintenanceRequest{}, err
	}
	m.CreatedAt = tx.now
	m.UpdatedAt = tx.now
	tx.state.maintenance.put(m.ID, cloneMaintenance(m))
	tx.recordChange(Change{Entity: domain.EntityMaintenanceRequest, Action: domain.ActionCreate, After: cloneMaintenance(m)})
	return cloneMaintenance(m), nil
}

// UpdateMaintenanceRequest replaces a maintenance request record by id.
func (tx *transaction) UpdateMaintenanceRequest(id string, m MaintenanceRequest) (MaintenanceRequest, error) {
	current, ok := tx.state.maintenance.get(id)
	if !ok {
		return MaintenanceRequest{}, domain.NotFoundError{Entity: domain.EntityMaintenanceRequest, ID: id}
	}
	if m.Status == "" {
		m.Status = domain.MaintenanceStatusOpen
	}
	if err := validateMaintenanceRequest(m); err != nil {
		return MaintenanceRequest{}, err
	}
	if err := tx.validateReferences(m); err != nil {
		return MaintenanceRequest{}, err
	}
	before := cloneMaintenance(current)
	m.ID = id
	m.CreatedAt = current.CreatedAt
	m.UpdatedAt = tx.now
	tx.state.maintenance.put(id, cloneMaintenance(m))
	tx.recordChange(Change{Entity: domain.EntityMaintenanceRequest, Action: domain.ActionUpdate, Before: before, After: cloneMaintenance(m)})
	return cloneMaintenance(m), nil
}

// DeleteMaintenanceRequest removes a maintenance request.
func (tx *transaction) DeleteMaintenanceRequest(id string) error {
	current, ok := tx.state.maintenance.get(id)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityMaintenanceRequest, ID: id}
	}
	tx.state.maintenance.remove(id)
	tx.recordChange(Change{Entity: domain.EntityMaintenanceRequest, Action: domain.ActionDelete, Before: cloneMaintenance(current)})
	return nil
}

func validateExpense(e Expense) error {
	if e.PropertyID == "" {
		return domain.ValidationError{Entity: domain.EntityExpense, Field: "property_id", Message: "required"}
	}
	if e.Category == "" {
		return domain.ValidationError{Entity: domain.EntityExpense, Field: "category", Message: "required"}
	}
	if e.Amount < 0 {
		return domain.ValidationError{Entity: domain.EntityExpense, Field: "amount", Message: "must not be negative"}
	}
	return nil
}

// CreateExpense stores a new expense.
func (tx *transaction) CreateExpense(e Expense) (Expense, error) {
	if e.ID == "" {
		e.ID = tx.store.newID()
	}
	if _, exists := tx.state.expenses.get(e.ID); exists {
		return Expense{}, alreadyExists(domain.EntityExpense, e.ID)
	}
	if err := validateExpense(e); err != nil {
		return Expense{}, err
	}
	if err := tx.validateReferences(e); err != nil {
		return Expense{}, err
	}
	e.CreatedAt = tx.now
	e.UpdatedAt = tx.now
	tx.state.expenses.put(e.ID, cloneExpense(e))
	tx.recordChange(Change{Entity: domain.EntityExpense, Action: domain.ActionCreate, After: cloneExpense(e)})
	return cloneExpense(e), nil
}

// UpdateExpense replaces an expense record by id.
func (tx *transaction) UpdateExpense(id string, e Expense) (Expense, error) {
	current, ok := tx.state.expenses.get(id)
	if !ok {
		return Expense{}, domain.NotFoundError{Entity: domain.EntityExpense, ID: id}
	}
	if err := validateExpense(e); err != nil {
		return Expense{}, err
	}
	if err := tx.validateReferences(e); err != nil {
		return Expense{}, err
	}
	before := cloneExpense(current)
	e.ID = id
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = tx.now
	tx.state.expenses.put(id, cloneExpense(e))
	tx.recordChange(Change{Entity: domain.EntityExpense, Action: domain.ActionUpdate, Before: before, After: cloneExpense(e)})
	return cloneExpense(e), nil
}

// DeleteExpense removes an expense.
func (tx *transaction) DeleteExpense(id string) error {
	current, ok := tx.state.expenses.get(id)
	if !ok {
		return domain.NotFoundError{Entity: domain.EntityExpense, ID: id}
	}
	tx.state.expenses.remove(id)
	tx.recordChange(Change{Entity: domain.EntityExpense, Action: domain.ActionDelete, Before: cloneExpense(current)})
	return nil
}
