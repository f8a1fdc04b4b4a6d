package core

import "spacecore/pkg/domain"

type (
	EntityType         = domain.EntityType
	Severity           = domain.Severity
	Base               = domain.Base
	Member             = domain.Member
	Desk               = domain.Desk
	Booking            = domain.Booking
	Payment            = domain.Payment
	Amenity            = domain.Amenity
	Tenant             = domain.Tenant
	Property           = domain.Property
	Unit               = domain.Unit
	MaintenanceRequest = domain.MaintenanceRequest
	Expense            = domain.Expense
	Change             = domain.Change
	Action             = domain.Action
	Violation          = domain.Violation
	Result             = domain.Result
	RulesEngine        = domain.RulesEngine
	RuleViolationError = domain.RuleViolationError
	Transaction        = domain.Transaction
	TransactionView    = domain.TransactionView
	PersistentStore    = domain.PersistentStore
)

const (
	EntityMember             = domain.EntityMember
	EntityDesk               = domain.EntityDesk
	EntityBooking            = domain.EntityBooking
	EntityPayment            = domain.EntityPayment
	EntityAmenity            = domain.EntityAmenity
	EntityTenant             = domain.EntityTenant
	EntityProperty           = domain.EntityProperty
	EntityUnit               = domain.EntityUnit
	EntityMaintenanceRequest = domain.EntityMaintenanceRequest
	EntityExpense            = domain.EntityExpense
)

const (
	SeverityBlock = domain.SeverityBlock
	SeverityWarn  = domain.SeverityWarn
	SeverityLog   = domain.SeverityLog
)

const (
	ActionCreate = domain.ActionCreate
	ActionUpdate = domain.ActionUpdate
	ActionDelete = domain.ActionDelete
)
