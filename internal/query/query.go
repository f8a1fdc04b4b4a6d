// Package query implements the generic search, filter, and sort pipeline
// shared by every collection. It operates through the domain accessor
// capability, so the pipeline is written once and parameterized by entity
// type instead of duplicated per collection.
package query

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"spacecore/pkg/domain"
)

// Sort names a single field and direction. Comparison is natural for numbers
// and dates, lexicographic for strings; ties keep prior relative order.
type Sort struct {
	Field      string
	Descending bool
}

// Options carries the three optional query inputs. Composition order is
// fixed: search, then filter, then sort.
type Options struct {
	// Search is a case-insensitive substring matched against every scalar
	// field. Empty matches everything.
	Search string
	// Filter maps a field name to its accepted values: AND across fields,
	// OR within a field's set. Unknown field names are ignored.
	Filter map[string][]string
	// Sort is applied last. A nil sort preserves collection order.
	Sort *Sort
}

// Apply runs the full pipeline over records and returns the result. The
// input slice is never modified.
func Apply[T domain.Accessor](records []T, opts Options) []T {
	out := Search(records, opts.Search)
	out = Filter(out, opts.Filter)
	return SortRecords(out, opts.Sort)
}

// Search returns the records with at least one scalar field containing term,
// case-insensitively. Reference fields participate as their id text.
func Search[T domain.Accessor](records []T, term string) []T {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]T(nil), records...)
	}
	out := make([]T, 0, len(records))
	for _, record := range records {
		if matchesSearch(record, term) {
			out = append(out, record)
		}
	}
	return out
}

func matchesSearch(record domain.Accessor, term string) bool {
	for _, spec := range domain.Schema(record.EntityType()) {
		value, ok := record.Field(spec.Name)
		if !ok || value == nil {
			continue
		}
		if strings.Contains(strings.ToLower(FormatValue(value)), term) {
			return true
		}
	}
	return false
}

// Filter returns the records passing every field constraint. A record passes
// a constraint when its formatted value is a member of the accepted set; a
// missing value fails. Field names the record does not know are ignored.
func Filter[T domain.Accessor](records []T, filter map[string][]string) []T {
	if len(filter) == 0 {
		return append([]T(nil), records...)
	}
	out := make([]T, 0, len(records))
	for _, record := range records {
		if matchesFilter(record, filter) {
			out = append(out, record)
		}
	}
	return out
}

func matchesFilter(record domain.Accessor, filter map[string][]string) bool {
	for field, accepted := range filter {
		value, ok := record.Field(field)
		if !ok {
			continue // tolerated: unknown field constrains nothing
		}
		if value == nil {
			return false
		}
		text := FormatValue(value)
		member := false
		for _, candidate := range accepted {
			if text == candidate {
				member = true
				break
			}
		}
		if !member {
			return false
		}
	}
	return true
}

// SortRecords stably sorts records by the given key. A nil sort or a field
// unknown to the records leaves the order untouched.
func SortRecords[T domain.Accessor](records []T, key *Sort) []T {
	out := append([]T(nil), records...)
	if key == nil || key.Field == "" {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		less, comparable := compareField(out[i], out[j], key.Field)
		if !comparable {
			return false
		}
		if key.Descending {
			return !less
		}
		return less
	})
	return out
}

// compareField reports whether a sorts before b on field. The second return
// is false when the field does not resolve or the values tie, keeping the
// sort stable.
func compareField(a, b domain.Accessor, field string) (bool, bool) {
	av, aok := a.Field(field)
	bv, bok := b.Field(field)
	if !aok || !bok {
		return false, false
	}
	if av == nil || bv == nil {
		if av == nil && bv != nil {
			return true, true
		}
		return false, false
	}
	switch x := av.(type) {
	case float64:
		if y, ok := bv.(float64); ok {
			if x == y {
				return false, false
			}
			return x < y, true
		}
	case time.Time:
		if y, ok := bv.(time.Time); ok {
			if x.Equal(y) {
				return false, false
			}
			return x.Before(y), true
		}
	case bool:
		if y, ok := bv.(bool); ok {
			if x == y {
				return false, false
			}
			return !x && y, true
		}
	}
	xs, ys := FormatValue(av), FormatValue(bv)
	if xs == ys {
		return false, false
	}
	return xs < ys, true
}

// FormatValue serializes a scalar field value to its natural text form, the
// representation used by search matching and filter membership.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case time.Time:
		return v.UTC().Format(time.RFC3339)
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
