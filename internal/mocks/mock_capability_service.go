package mocks

import (
	"context"

	"github.com/trisers/shopauth/domain"
)

// MockCapabilityService implements domain.CapabilityService for testing
type MockCapabilityService struct {
	AuthorizeFunc func(ctx context.Context, claims *domain.TokenClaims, requestedPath string) error
	CreateFunc    func(ctx context.Context, name, description string) (*domain.Capability, error)
	ListFunc      func(ctx context.Context) ([]domain.Capability, error)
	GetByIDFunc   func(ctx context.Context, id uint) (*domain.Capability, error)
	UpdateFunc    func(ctx context.Context, id uint, name, description string) (*domain.Capability, error)
	DeleteFunc    func(ctx context.Context, id uint) error
}

// NewMockCapabilityService creates a new MockCapabilityService with default behaviors
func NewMockCapabilityService() *MockCapabilityService {
	return &MockCapabilityService{}
}

// Authorize decides whether the claims may reach the requested path
func (m *MockCapabilityService) Authorize(ctx context.Context, claims *domain.TokenClaims, requestedPath string) error {
	if m.AuthorizeFunc != nil {
		return m.AuthorizeFunc(ctx, claims, requestedPath)
	}
	// Default behavior: allow
	return nil
}

// Create registers a new capability
func (m *MockCapabilityService) Create(ctx context.Context, name, description string) (*domain.Capability, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name, description)
	}
	return &domain.Capability{ID: 1, CapabilityID: 1, Name: name, Description: description}, nil
}

// List returns all capabilities
func (m *MockCapabilityService) List(ctx context.Context) ([]domain.Capability, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []domain.Capability{}, nil
}

// GetByID fetches one capability
func (m *MockCapabilityService) GetByID(ctx context.Context, id uint) (*domain.Capability, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, domain.ErrCapabilityNotFound
}

// Update renames or re-describes a capability
func (m *MockCapabilityService) Update(ctx context.Context, id uint, name, description string) (*domain.Capability, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, name, description)
	}
	return nil, domain.ErrCapabilityNotFound
}

// Delete removes a capability
func (m *MockCapabilityService) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.CapabilityService = (*MockCapabilityService)(nil)
