package mocks

import (
	"context"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/stretchr/testify/mock"
)

// Persister is a mock type for the bookmarks Persister type.
type Persister struct {
	mock.Mock
}

// Load provides a mock function with given fields: ctx.
func (_m *Persister) Load(ctx context.Context) ([]models.Employee, error) {
	ret := _m.Called(ctx)

	var r0 []models.Employee
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Employee)
	}

	return r0, ret.Error(1)
}

// Save provides a mock function with given fields: ctx, bookmarks.
func (_m *Persister) Save(ctx context.Context, bookmarks []models.Employee) error {
	ret := _m.Called(ctx, bookmarks)

	return ret.Error(0)
}

// NewPersister creates a new instance of Persister. It also registers a testing interface on the
// mock and a cleanup function to assert the mocks expectations.
func NewPersister(t interface {
	mock.TestingT
	Cleanup(func())
}) *Persister {
	m := &Persister{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
