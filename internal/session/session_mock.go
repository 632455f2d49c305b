package session

import (
	"context"

	"github.com/huangsam/wrapped/internal/contract"
	"github.com/huangsam/wrapped/schema"
	"github.com/stretchr/testify/mock"
)

// MockSessionManager is a mock implementation of SessionManager for testing.
type MockSessionManager struct {
	mock.Mock
}

var _ contract.SessionManager = &MockSessionManager{} // Compile-time check

// GetSessionStore implements the SessionManager interface.
func (m *MockSessionManager) GetSessionStore() contract.SessionStore {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.SessionStore)
	return store
}

// MockSessionStore is a mock implementation of SessionStore for testing.
type MockSessionStore struct {
	mock.Mock
}

var _ contract.SessionStore = &MockSessionStore{} // Compile-time check

// Open implements the SessionStore interface.
func (m *MockSessionStore) Open(ctx context.Context, descriptor, transport string) (schema.SessionRecord, error) {
	args := m.Called(ctx, descriptor, transport)
	return args.Get(0).(schema.SessionRecord), args.Error(1)
}

// Close implements the SessionStore interface.
func (m *MockSessionStore) Close(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

// Current implements the SessionStore interface.
func (m *MockSessionStore) Current(ctx context.Context) (*schema.SessionRecord, error) {
	args := m.Called(ctx)
	rec, _ := args.Get(0).(*schema.SessionRecord)
	return rec, args.Error(1)
}

// History implements the SessionStore interface.
func (m *MockSessionStore) History(ctx context.Context, limit int) ([]schema.SessionRecord, error) {
	args := m.Called(ctx, limit)
	recs, _ := args.Get(0).([]schema.SessionRecord)
	return recs, args.Error(1)
}

// GetStatus implements the SessionStore interface.
func (m *MockSessionStore) GetStatus(ctx context.Context) (schema.SessionStatus, error) {
	args := m.Called(ctx)
	return args.Get(0).(schema.SessionStatus), args.Error(1)
}

// Shutdown implements the SessionStore interface.
func (m *MockSessionStore) Shutdown() error {
	args := m.Called()
	return args.Error(0)
}
