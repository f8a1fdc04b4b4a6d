// Package export builds portable documents from store state - a full dump of
// every collection and an import template with one placeholder record per
// entity - and renders them to JSON or CSV through an asynchronous worker
// that stores artifacts in a blob backend with an audit trail.
package export

import (
	"time"

	"spacecore/pkg/domain"
)

// Format identifies a rendered artifact encoding.
type Format string

// Supported artifact formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv"
	}
	return "application/json"
}

// Kind selects what a document contains.
type Kind string

// Supported document kinds.
const (
	// KindDump captures every record of every collection.
	KindDump Kind = "dump"
	// KindTemplate emits one placeholder record per entity, shaped by the
	// schema, for spreadsheet-driven imports.
	KindTemplate Kind = "template"
)

// Collection is one entity's slice of a document: schema field names plus row
// values in schema order.
type Collection struct {
	Entity  domain.EntityType `json:"entity"`
	Fields  []string          `json:"fields"`
	Records [][]any           `json:"records"`
}

// Document is a renderable capture of store state. Collections follow the
// canonical entity order and records keep insertion order.
type Document struct {
	Kind        Kind         `json:"kind"`
	GeneratedAt time.Time    `json:"generated_at"`
	Collections []Collection `json:"collections"`
}

// BuildDump captures every collection from the view.
func BuildDump(view domain.TransactionView) Document {
	doc := Document{Kind: KindDump, GeneratedAt: time.Now().UTC()}
	for _, entity := range domain.EntityTypes() {
		doc.Collections = append(doc.Collections, dumpCollection(view, entity))
	}
	return doc
}

func dumpCollection(view domain.TransactionView, entity domain.EntityType) Collection {
	specs := domain.Schema(entity)
	col := Collection{Entity: entity, Fields: fieldNames(specs)}
	for _, record := range listAccessors(view, entity) {
		row := make([]any, 0, len(specs))
		for _, spec := range specs {
			value, _ := record.Field(spec.Name)
			row = append(row, value)
		}
		col.Records = append(col.Records, row)
	}
	return col
}

// BuildTemplate emits a document with a single placeholder record per entity.
func BuildTemplate() Document {
	doc := Document{Kind: KindTemplate, GeneratedAt: time.Now().UTC()}
	for _, entity := range domain.EntityTypes() {
		specs := domain.Schema(entity)
		row := make([]any, 0, len(specs))
		for _, spec := range specs {
			row = append(row, domain.Placeholder(spec))
		}
		doc.Collections = append(doc.Collections, Collection{
			Entity:  entity,
			Fields:  fieldNames(specs),
			Records: [][]any{row},
		})
	}
	return doc
}

func fieldNames(specs []domain.FieldSpec) []string {
	out := make([]string, 0, len(specs))
	for _, spec := range specs {
		out = append(out, spec.Name)
	}
	return out
}

func listAccessors(view domain.TransactionView, entity domain.EntityType) []domain.Accessor {
	var out []domain.Accessor
	switch entity {
	case domain.EntityMember:
		for _, r := range view.ListMembers() {
			out = append(out, r)
		}
	case domain.EntityDesk:
		for _, r := range view.ListDesks() {
			out = append(out, r)
		}
	case domain.EntityBooking:
		for _, r := range view.ListBookings() {
			out = append(out, r)
		}
	case domain.EntityPayment:
		for _, r := range view.ListPayments() {
			out = append(out, r)
		}
	case domain.EntityAmenity:
		for _, r := range view.ListAmenities() {
			out = append(out, r)
		}
	case domain.EntityTenant:
		for _, r := range view.ListTenants() {
			out = append(out, r)
		}
	case domain.EntityProperty:
		for _, r := range view.ListProperties() {
			out = append(out, r)
		}
	case domain.EntityUnit:
		for _, r := range view.ListUnits() {
			out = append(out, r)
		}
	case domain.EntityMaintenanceRequest:
		for _, r := range view.ListMaintenanceRequests() {
			out = append(out, r)
		}
	case domain.EntityExpense:
		for _, r := range view.ListExpenses() {
			out = append(out, r)
		}
	}
	return out
}
