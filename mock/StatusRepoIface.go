package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

// StatusRepoIface is a mock type for the StatusRepoIface type.
type StatusRepoIface struct {
	mock.Mock
}

// GetLastSyncTime provides a mock function with given fields: ctx.
func (_m *StatusRepoIface) GetLastSyncTime(ctx context.Context) (time.Time, error) {
	ret := _m.Called(ctx)

	return ret.Get(0).(time.Time), ret.Error(1)
}

// SaveSyncStatus provides a mock function with given fields: ctx, syncedAt, employeeCount.
func (_m *StatusRepoIface) SaveSyncStatus(ctx context.Context, syncedAt time.Time, employeeCount int) error {
	ret := _m.Called(ctx, syncedAt, employeeCount)

	return ret.Error(0)
}

// NewStatusRepoIface creates a new instance of StatusRepoIface. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewStatusRepoIface(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatusRepoIface {
	m := &StatusRepoIface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
