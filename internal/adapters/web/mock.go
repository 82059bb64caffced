package web

import (
	"context"

	"github.com/lcalzada-xor/vulnboard/internal/core/domain"
	"github.com/stretchr/testify/mock"
)

// MockInventoryService is a mock of ports.InventoryService
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) Refresh(ctx context.Context) *domain.Snapshot {
	args := m.Called(ctx)
	return args.Get(0).(*domain.Snapshot)
}

func (m *MockInventoryService) Snapshot() *domain.Snapshot {
	args := m.Called()
	return args.Get(0).(*domain.Snapshot)
}

func (m *MockInventoryService) Rows(cfg domain.SortConfig) []domain.ConsolidatedRow {
	args := m.Called(cfg)
	return args.Get(0).([]domain.ConsolidatedRow)
}

func (m *MockInventoryService) Row(cveID string) (domain.ConsolidatedRow, bool) {
	args := m.Called(cveID)
	return args.Get(0).(domain.ConsolidatedRow), args.Bool(1)
}

func (m *MockInventoryService) SortConfig() domain.SortConfig {
	args := m.Called()
	return args.Get(0).(domain.SortConfig)
}

func (m *MockInventoryService) SelectSort(key domain.SortKey) domain.SortConfig {
	args := m.Called(key)
	return args.Get(0).(domain.SortConfig)
}

func (m *MockInventoryService) Summary() domain.Summary {
	args := m.Called()
	return args.Get(0).(domain.Summary)
}
