package domain

import "fmt"

// NotFoundError reports an operation that referenced a nonexistent id.
type NotFoundError struct {
	Entity EntityType
	ID     string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

// DanglingReferenceError reports a reference field that does not resolve at
// commit time. The mutation is aborted with no partial effect.
type DanglingReferenceError struct {
	Source EntityType
	Field  string
	Target EntityType
	ID     string
}

func (e DanglingReferenceError) Error() string {
	return fmt.Sprintf("%s.%s references %s %q which does not exist", e.Source, e.Field, e.Target, e.ID)
}

// ValidationError reports caller-supplied fields that fail an entity-level
// constraint.
type ValidationError struct {
	Entity  EntityType
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s.%s invalid: %s", e.Entity, e.Field, e.Message)
}

// PersistenceWarning reports a write-through failure after an
// otherwise-successful mutation. The in-memory commit is retained; callers
// decide whether to retry or alert.
type PersistenceWarning struct {
	Collection string
	Err        error
}

func (e PersistenceWarning) Error() string {
	return fmt.Sprintf("persistence write-through failed for %s: %v", e.Collection, e.Err)
}

// Unwrap exposes the underlying driver error.
func (e PersistenceWarning) Unwrap() error { return e.Err }

// RuleViolationError is returned when blocking violations are present.
type RuleViolationError struct {
	Result Result
}

func (e RuleViolationError) Error() string {
	return "transaction blocked by rules"
}
