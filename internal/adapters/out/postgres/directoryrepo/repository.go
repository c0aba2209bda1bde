package directoryrepo

import (
	"context"
	"errors"

	"fieldservice/internal/core/domain/model/kernel"
	"fieldservice/internal/core/ports"
	"fieldservice/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTechnicianDirectory implements TechnicianDirectory using GORM.
type GormTechnicianDirectory struct {
	db *gorm.DB
}

// NewGormTechnicianDirectory creates a technician contact lookup.
func NewGormTechnicianDirectory(db *gorm.DB) *GormTechnicianDirectory {
	return &GormTechnicianDirectory{db: db}
}

// GetContact resolves a technician's name and email address.
func (d *GormTechnicianDirectory) GetContact(ctx context.Context, id kernel.UUID) (ports.Contact, error) {
	if err := id.Validate(); err != nil {
		return ports.Contact{}, err
	}

	var dto TechnicianDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Contact{}, errs.NewObjectNotFoundError("technician", id.String())
		}
		return ports.Contact{}, err
	}

	return ports.Contact{Name: dto.Name, Email: dto.Email}, nil
}

// GormCustomerDirectory implements CustomerDirectory using GORM.
type GormCustomerDirectory struct {
	db *gorm.DB
}

// NewGormCustomerDirectory creates a customer contact lookup.
func NewGormCustomerDirectory(db *gorm.DB) *GormCustomerDirectory {
	return &GormCustomerDirectory{db: db}
}

// GetContact resolves a customer's name and email address.
func (d *GormCustomerDirectory) GetContact(ctx context.Context, id kernel.UUID) (ports.Contact, error) {
	if err := id.Validate(); err != nil {
		return ports.Contact{}, err
	}

	var dto CustomerDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.Contact{}, errs.NewObjectNotFoundError("customer", id.String())
		}
		return ports.Contact{}, err
	}

	return ports.Contact{Name: dto.Name, Email: dto.Email}, nil
}
