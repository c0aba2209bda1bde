// Package directoryrepo provides read-only lookups of technician and customer
// contact details. The tables are owned by the admin tooling; the scheduling
// core only resolves recipients from them at send time.
package directoryrepo

import (
	"github.com/google/uuid"
)

// TechnicianDTO represents the contact row for a technician.
type TechnicianDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Email string
}

// TableName specifies the database table name for technician contacts.
func (TechnicianDTO) TableName() string {
	return "technicians"
}

// CustomerDTO represents the contact row for a customer.
type CustomerDTO struct {
	ID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name  string
	Email string
}

// TableName specifies the database table name for customer contacts.
func (CustomerDTO) TableName() string {
	return "customers"
}
