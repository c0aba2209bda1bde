package ports

import (
	"context"

	"fieldservice/internal/core/domain/model/kernel"
)

// Contact is a directory lookup result: where a message for a person goes.
type Contact struct {
	Name  string
	Email string
}

// TechnicianDirectory resolves technician contact details. The directory is
// read-only here; technician administration lives in another system.
type TechnicianDirectory interface {
	// GetContact returns the technician's contact details.
	GetContact(ctx context.Context, technicianID kernel.UUID) (Contact, error)
}

// CustomerDirectory resolves customer contact details.
type CustomerDirectory interface {
	// GetContact returns the customer's contact details.
	GetContact(ctx context.Context, customerID kernel.UUID) (Contact, error)
}
