package iocache

import (
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/relicdev/relic/internal/contract"
	"github.com/relicdev/relic/schema"
)

// MockCacheManager is a mock implementation of CacheManager for testing.
type MockCacheManager struct {
	mock.Mock
}

var _ contract.CacheManager = &MockCacheManager{} // Compile-time check

// AnalysisStore implements the CacheManager interface.
func (m *MockCacheManager) AnalysisStore() contract.Store {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.Store)
	return store
}

// ReportStore implements the CacheManager interface.
func (m *MockCacheManager) ReportStore() contract.Store {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.Store)
	return store
}

// FileHistoryStore implements the CacheManager interface.
func (m *MockCacheManager) FileHistoryStore() contract.Store {
	ret := m.Called()
	store, _ := ret.Get(0).(contract.Store)
	return store
}

// Close implements the CacheManager interface.
func (m *MockCacheManager) Close() {
	m.Called()
}

// MockStore is a mock implementation of Store for testing.
type MockStore struct {
	mock.Mock
}

var _ contract.Store = &MockStore{} // Compile-time check

// Get implements the Store interface.
func (m *MockStore) Get(key string) ([]byte, error) {
	ret := m.Called(key)
	data, _ := ret.Get(0).([]byte)
	return data, ret.Error(1)
}

// Set implements the Store interface.
func (m *MockStore) Set(key string, value []byte, ttl time.Duration) error {
	ret := m.Called(key, value, ttl)
	return ret.Error(0)
}

// Delete implements the Store interface.
func (m *MockStore) Delete(key string) error {
	ret := m.Called(key)
	return ret.Error(0)
}

// Clear implements the Store interface.
func (m *MockStore) Clear() error {
	ret := m.Called()
	return ret.Error(0)
}

// GetStatus implements the Store interface.
func (m *MockStore) GetStatus() (schema.CacheStatus, error) {
	ret := m.Called()
	status, _ := ret.Get(0).(schema.CacheStatus)
	return status, ret.Error(1)
}

// Close implements the Store interface.
func (m *MockStore) Close() error {
	ret := m.Called()
	return ret.Error(0)
}
