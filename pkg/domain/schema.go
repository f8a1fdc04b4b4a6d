package domain

// FieldKind classifies a schema field for query serialization, sorting, and
// export template placeholders.
type FieldKind string

// Supported field kinds.
const (
	// FieldString is free or enumerated text.
	FieldString FieldKind = "string"
	// FieldNumber is a float64-valued scalar.
	FieldNumber FieldKind = "number"
	// FieldBool is a boolean scalar.
	FieldBool FieldKind = "bool"
	// FieldDate is a time.Time scalar.
	FieldDate FieldKind = "date"
	// FieldReference holds the id of another entity (string or *string).
	FieldReference FieldKind = "reference"
)

// FieldSpec describes one field of an entity schema. Order within a schema is
// the canonical column order for exports.
type FieldSpec struct {
	Name   string
	Kind   FieldKind
	Target EntityType // set for FieldReference
}

var schemas = map[EntityType][]FieldSpec{
	EntityMember: {
		{Name: "id", Kind: FieldString},
		{Name: "name", Kind: FieldString},
		{Name: "email", Kind: FieldString},
		{Name: "phone", Kind: FieldString},
		{Name: "membership_type", Kind: FieldString},
		{Name: "joined_at", Kind: FieldDate},
		{Name: "payment_status", Kind: FieldString},
	},
	EntityDesk: {
		{Name: "id", Kind: FieldString},
		{Name: "label", Kind: FieldString},
		{Name: "zone", Kind: FieldString},
		{Name: "price_per_hour", Kind: FieldNumber},
		{Name: "status", Kind: FieldString},
	},
	EntityBooking: {
		{Name: "id", Kind: FieldString},
		{Name: "member_id", Kind: FieldReference, Target: EntityMember},
		{Name: "desk_id", Kind: FieldReference, Target: EntityDesk},
		{Name: "starts_at", Kind: FieldDate},
		{Name: "hours", Kind: FieldNumber},
		{Name: "total_price", Kind: FieldNumber},
		{Name: "status", Kind: FieldString},
	},
	EntityPayment: {
		{Name: "id", Kind: FieldString},
		{Name: "member_id", Kind: FieldReference, Target: EntityMember},
		{Name: "tenant_id", Kind: FieldReference, Target: EntityTenant},
		{Name: "unit_id", Kind: FieldReference, Target: EntityUnit},
		{Name: "property_id", Kind: FieldReference, Target: EntityProperty},
		{Name: "amount", Kind: FieldNumber},
		{Name: "kind", Kind: FieldString},
		{Name: "status", Kind: FieldString},
		{Name: "paid_at", Kind: FieldDate},
	},
	EntityAmenity: {
		{Name: "id", Kind: FieldString},
		{Name: "name", Kind: FieldString},
		{Name: "description", Kind: FieldString},
		{Name: "available", Kind: FieldBool},
	},
	EntityTenant: {
		{Name: "id", Kind: FieldString},
		{Name: "name", Kind: FieldString},
		{Name: "email", Kind: FieldString},
		{Name: "phone", Kind: FieldString},
		{Name: "moved_in_at", Kind: FieldDate},
		{Name: "payment_status", Kind: FieldString},
	},
	EntityProperty: {
		{Name: "id", Kind: FieldString},
		{Name: "name", Kind: FieldString},
		{Name: "address", Kind: FieldString},
		{Name: "city", Kind: FieldString},
	},
	EntityUnit: {
		{Name: "id", Kind: FieldString},
		{Name: "property_id", Kind: FieldReference, Target: EntityProperty},
		{Name: "number", Kind: FieldString},
		{Name: "monthly_rent", Kind: FieldNumber},
		{Name: "status", Kind: FieldString},
		{Name: "tenant_id", Kind: FieldReference, Target: EntityTenant},
	},
	EntityMaintenanceRequest: {
		{Name: "id", Kind: FieldString},
		{Name: "property_id", Kind: FieldReference, Target: EntityProperty},
		{Name: "unit_id", Kind: FieldReference, Target: EntityUnit},
		{Name: "title", Kind: FieldString},
		{Name: "status", Kind: FieldString},
		{Name: "reported_at", Kind: FieldDate},
	},
	EntityExpense: {
		{Name: "id", Kind: FieldString},
		{Name: "property_id", Kind: FieldReference, Target: EntityProperty},
		{Name: "category", Kind: FieldString},
		{Name: "amount", Kind: FieldNumber},
		{Name: "incurred_at", Kind: FieldDate},
	},
}

// Schema returns the ordered field specs for an entity type. The returned
// slice must not be modified.
func Schema(entity EntityType) []FieldSpec {
	return schemas[entity]
}

// EntityTypes lists every entity type in canonical bucket order.
func EntityTypes() []EntityType {
	return []EntityType{
		EntityMember,
		EntityDesk,
		EntityBooking,
		EntityPayment,
		EntityAmenity,
		EntityTenant,
		EntityProperty,
		EntityUnit,
		EntityMaintenanceRequest,
		EntityExpense,
	}
}

// Placeholder returns the example value used for a field in template exports.
func Placeholder(spec FieldSpec) any {
	switch spec.Kind {
	case FieldNumber:
		return 0
	case FieldBool:
		return false
	case FieldDate:
		return "2024-01-01T00:00:00Z"
	case FieldReference:
		return "<" + string(spec.Target) + " id>"
	default:
		return "text"
	}
}
