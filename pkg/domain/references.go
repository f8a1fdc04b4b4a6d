package domain

// CascadePolicy is the rule applied to dependents when their referenced
// entity is deleted.
type CascadePolicy string

const (
	// CascadeDelete removes the dependent record, recursively applying its
	// own cascade rules.
	CascadeDelete CascadePolicy = "cascade"
	// CascadeNullify clears the reference field and resets any dependent
	// status field to its unassigned value.
	CascadeNullify CascadePolicy = "nullify"
)

// Reference declares one foreign-key relationship. The integrity enforcer
// consults this table uniformly: policy is data, not scattered code.
type Reference struct {
	Source   EntityType
	Field    string
	Target   EntityType
	OnDelete CascadePolicy
}

var references = []Reference{
	{Source: EntityBooking, Field: "member_id", Target: EntityMember, OnDelete: CascadeDelete},
	{Source: EntityBooking, Field: "desk_id", Target: EntityDesk, OnDelete: CascadeDelete},
	{Source: EntityPayment, Field: "member_id", Target: EntityMember, OnDelete: CascadeDelete},
	{Source: EntityPayment, Field: "tenant_id", Target: EntityTenant, OnDelete: CascadeDelete},
	{Source: EntityPayment, Field: "unit_id", Target: EntityUnit, OnDelete: CascadeDelete},
	{Source: EntityPayment, Field: "property_id", Target: EntityProperty, OnDelete: CascadeDelete},
	{Source: EntityUnit, Field: "property_id", Target: EntityProperty, OnDelete: CascadeDelete},
	{Source: EntityUnit, Field: "tenant_id", Target: EntityTenant, OnDelete: CascadeNullify},
	{Source: EntityMaintenanceRequest, Field: "property_id", Target: EntityProperty, OnDelete: CascadeDelete},
	{Source: EntityMaintenanceRequest, Field: "unit_id", Target: EntityUnit, OnDelete: CascadeDelete},
	{Source: EntityExpense, Field: "property_id", Target: EntityProperty, OnDelete: CascadeDelete},
}

// References returns the full relationship table. The returned slice must not
// be modified.
func References() []Reference {
	return references
}

// ReferencesTo returns every relationship whose target is the given entity
// type, i.e. the dependents affected when a record of that type is deleted.
func ReferencesTo(target EntityType) []Reference {
	var out []Reference
	for _, ref := range references {
		if ref.Target == target {
			out = append(out, ref)
		}
	}
	return out
}

// ReferencesFrom returns every relationship declared by the given source
// entity type, used to validate reference fields on create and update.
func ReferencesFrom(source EntityType) []Reference {
	var out []Reference
	for _, ref := range references {
		if ref.Source == source {
			out = append(out, ref)
		}
	}
	return out
}
