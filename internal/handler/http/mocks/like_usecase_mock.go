package mocks

import (
	"context"
	"errors"

	usecasecontract "github.com/mihretgbr/applaud/internal/usecase/contract"
)

// MockLikeUsecase is a mock implementation of the like usecase interface.
type MockLikeUsecase struct {
	// Control mock behavior
	ShouldFailToggle   bool
	ShouldFailCounts   bool
	ShouldFailStatuses bool

	// Return values
	MockResult   usecasecontract.ToggleResult
	MockCounts   map[string]int64
	MockStatuses map[string]bool

	// Captured arguments
	LastItemID    string
	LastSessionID string
	LastProfileID string
}

// Ensure MockLikeUsecase implements the usecase contract.
var _ usecasecontract.ILikeUseCase = (*MockLikeUsecase)(nil)

func NewMockLikeUsecase() *MockLikeUsecase {
	return &MockLikeUsecase{
		MockResult:   usecasecontract.ToggleResult{Success: true, IsLiked: true, NewCount: 6},
		MockCounts:   map[string]int64{"item-1": 5},
		MockStatuses: map[string]bool{"item-1": true},
	}
}

func (m *MockLikeUsecase) Toggle(ctx context.Context, itemID, sessionID, profileID string) usecasecontract.ToggleResult {
	m.LastItemID = itemID
	m.LastSessionID = sessionID
	m.LastProfileID = profileID
	if sessionID == "" {
		return usecasecontract.ToggleResult{Success: false, Error: "session id is required"}
	}
	if m.ShouldFailToggle {
		return usecasecontract.ToggleResult{Success: false, Error: "like toggle failed"}
	}
	return m.MockResult
}

func (m *MockLikeUsecase) GetCounts(ctx context.Context, itemIDs []string) (map[string]int64, error) {
	if m.ShouldFailCounts {
		return nil, errors.New("counts read failed")
	}
	if len(itemIDs) == 0 {
		return nil, errors.New("item ids must not be empty")
	}
	return m.MockCounts, nil
}

func (m *MockLikeUsecase) GetLikedStatuses(ctx context.Context, itemIDs []string, sessionID, profileID string) (map[string]bool, error) {
	m.LastSessionID = sessionID
	m.LastProfileID = profileID
	if m.ShouldFailStatuses {
		return nil, errors.New("statuses read failed")
	}
	if sessionID == "" {
		return nil, errors.New("session id is required")
	}
	return m.MockStatuses, nil
}

// MockMaintenanceUsecase mocks the reconcile and migrate usecases.
type MockMaintenanceUsecase struct {
	ShouldFailReconcile bool
	ShouldFailMigrate   bool

	ReconciledItemID string
	ReconciledAll    bool
	MigratedSession  string
	MigratedProfile  string
}

var (
	_ usecasecontract.IReconcileUseCase = (*MockMaintenanceUsecase)(nil)
	_ usecasecontract.IMigrateUseCase   = (*MockMaintenanceUsecase)(nil)
)

func NewMockMaintenanceUsecase() *MockMaintenanceUsecase {
	return &MockMaintenanceUsecase{}
}

func (m *MockMaintenanceUsecase) ReconcileOne(ctx context.Context, itemID string) error {
	if m.ShouldFailReconcile {
		return errors.New("reconciliation failed")
	}
	m.ReconciledItemID = itemID
	return nil
}

func (m *MockMaintenanceUsecase) ReconcileAll(ctx context.Context) error {
	if m.ShouldFailReconcile {
		return errors.New("reconciliation failed")
	}
	m.ReconciledAll = true
	return nil
}

func (m *MockMaintenanceUsecase) Migrate(ctx context.Context, sessionID, profileID string) error {
	if m.ShouldFailMigrate {
		return errors.New("migration failed")
	}
	m.MigratedSession = sessionID
	m.MigratedProfile = profileID
	return nil
}
