package repositories

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/trisers/shopauth/domain"
)

// CapabilityRepositoryImpl implements domain.CapabilityRepository using GORM
type CapabilityRepositoryImpl struct {
	db *gorm.DB
}

// DBCapability represents the database model for Capability
type DBCapability struct {
	ID           uint   `gorm:"primaryKey"`
	CapabilityID uint   `gorm:"uniqueIndex;not null"`
	Name         string `gorm:"uniqueIndex;size:255;not null"`
	Description  string `gorm:"size:1024"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName returns the table name for GORM
func (DBCapability) TableName() string {
	return "capabilities"
}

// NewCapabilityRepository creates a new capability repository
func NewCapabilityRepository(db *gorm.DB) domain.CapabilityRepository {
	return &CapabilityRepositoryImpl{db: db}
}

// Create implements domain.CapabilityRepository. The numeric
// capability id is assigned here, inside a transaction, as an explicit
// step before insert: next id = highest assigned id + 1. Single-writer
// assumption keeps the sequence gap-free.
func (r *CapabilityRepositoryImpl) Create(ctx context.Context, capability *domain.Capability) error {
	capability.Name = strings.TrimSpace(capability.Name)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last DBCapability
		err := tx.Order("capability_id DESC").First(&last).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			capability.CapabilityID = 1
		case err != nil:
			return err
		default:
			capability.CapabilityID = last.CapabilityID + 1
		}

		dbCapability := &DBCapability{
			CapabilityID: capability.CapabilityID,
			Name:         capability.Name,
			Description:  capability.Description,
		}
		if err := tx.Create(dbCapability).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrCapabilityNameTaken
			}
			return err
		}
		capability.ID = dbCapability.ID
		capability.CreatedAt = dbCapability.CreatedAt
		capability.UpdatedAt = dbCapability.UpdatedAt
		return nil
	})
}

// FindAll implements domain.CapabilityRepository
func (r *CapabilityRepositoryImpl) FindAll(ctx context.Context) ([]domain.Capability, error) {
	var dbCapabilities []DBCapability
	if err := r.db.WithContext(ctx).Order("capability_id").Find(&dbCapabilities).Error; err != nil {
		return nil, err
	}
	capabilities := make([]domain.Capability, len(dbCapabilities))
	for i := range dbCapabilities {
		capabilities[i] = *r.dbToDomain(&dbCapabilities[i])
	}
	return capabilities, nil
}

// FindByID implements domain.CapabilityRepository, keyed by the
// immutable numeric capability id rather than the row id.
func (r *CapabilityRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Capability, error) {
	var dbCapability DBCapability
	err := r.db.WithContext(ctx).Where("capability_id = ?", id).First(&dbCapability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCapabilityNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbCapability), nil
}

// FindByName implements domain.CapabilityRepository. Matching is
// case-insensitive per the resolver contract.
func (r *CapabilityRepositoryImpl) FindByName(ctx context.Context, name string) (*domain.Capability, error) {
	var dbCapability DBCapability
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&dbCapability).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCapabilityNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbCapability), nil
}

// Update implements domain.CapabilityRepository. CapabilityID is
// immutable once assigned; only name and description change.
func (r *CapabilityRepositoryImpl) Update(ctx context.Context, capability *domain.Capability) error {
	capability.Name = strings.TrimSpace(capability.Name)
	result := r.db.WithContext(ctx).Model(&DBCapability{}).
		Where("capability_id = ?", capability.CapabilityID).
		Updates(map[string]interface{}{
			"name":        capability.Name,
			"description": capability.Description,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrCapabilityNameTaken
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCapabilityNotFound
	}
	return nil
}

// Delete implements domain.CapabilityRepository
func (r *CapabilityRepositoryImpl) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where("capability_id = ?", id).Delete(&DBCapability{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrCapabilityNotFound
	}
	return nil
}

func (r *CapabilityRepositoryImpl) dbToDomain(dbCapability *DBCapability) *domain.Capability {
	return &domain.Capability{
		ID:           dbCapability.ID,
		CapabilityID: dbCapability.CapabilityID,
		Name:         dbCapability.Name,
		Description:  dbCapability.Description,
		CreatedAt:    dbCapability.CreatedAt,
		UpdatedAt:    dbCapability.UpdatedAt,
	}
}
