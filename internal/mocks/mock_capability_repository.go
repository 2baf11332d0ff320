package mocks

import (
	"context"

	"github.com/trisers/shopauth/domain"
)

// MockCapabilityRepository implements domain.CapabilityRepository for testing
type MockCapabilityRepository struct {
	CreateFunc     func(ctx context.Context, capability *domain.Capability) error
	FindAllFunc    func(ctx context.Context) ([]domain.Capability, error)
	FindByIDFunc   func(ctx context.Context, id uint) (*domain.Capability, error)
	FindByNameFunc func(ctx context.Context, name string) (*domain.Capability, error)
	UpdateFunc     func(ctx context.Context, capability *domain.Capability) error
	DeleteFunc     func(ctx context.Context, id uint) error
}

// NewMockCapabilityRepository creates a new MockCapabilityRepository with default behaviors
func NewMockCapabilityRepository() *MockCapabilityRepository {
	return &MockCapabilityRepository{}
}

// Create creates a new capability
func (m *MockCapabilityRepository) Create(ctx context.Context, capability *domain.Capability) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, capability)
	}
	return nil
}

// FindAll lists all capabilities
func (m *MockCapabilityRepository) FindAll(ctx context.Context) ([]domain.Capability, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	// Default behavior: empty set
	return []domain.Capability{}, nil
}

// FindByID finds a capability by its numeric id
func (m *MockCapabilityRepository) FindByID(ctx context.Context, id uint) (*domain.Capability, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrCapabilityNotFound
}

// FindByName finds a capability by name
func (m *MockCapabilityRepository) FindByName(ctx context.Context, name string) (*domain.Capability, error) {
	if m.FindByNameFunc != nil {
		return m.FindByNameFunc(ctx, name)
	}
	return nil, domain.ErrCapabilityNotFound
}

// Update updates an existing capability
func (m *MockCapabilityRepository) Update(ctx context.Context, capability *domain.Capability) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, capability)
	}
	return nil
}

// Delete removes a capability
func (m *MockCapabilityRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.CapabilityRepository = (*MockCapabilityRepository)(nil)
