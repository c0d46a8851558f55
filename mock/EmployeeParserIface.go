package mocks

import (
	"context"

	"github.com/UnknownOlympus/athena/internal/models"
	"github.com/stretchr/testify/mock"
)

// EmployeeParserIface is a mock type for the EmployeeParserIface type.
type EmployeeParserIface struct {
	mock.Mock
}

// ParseEmployee provides a mock function with given fields: ctx, identifier.
func (_m *EmployeeParserIface) ParseEmployee(ctx context.Context, identifier int) (models.Employee, error) {
	ret := _m.Called(ctx, identifier)

	if rf, ok := ret.Get(0).(func(context.Context, int) (models.Employee, error)); ok {
		return rf(ctx, identifier)
	}

	return ret.Get(0).(models.Employee), ret.Error(1)
}

// ParseEmployees provides a mock function with given fields: ctx, limit.
func (_m *EmployeeParserIface) ParseEmployees(ctx context.Context, limit int) ([]models.Employee, error) {
	ret := _m.Called(ctx, limit)

	if rf, ok := ret.Get(0).(func(context.Context, int) ([]models.Employee, error)); ok {
		return rf(ctx, limit)
	}

	var r0 []models.Employee
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]models.Employee)
	}

	return r0, ret.Error(1)
}

// NewEmployeeParserIface creates a new instance of EmployeeParserIface. It also registers a testing
// interface on the mock and a cleanup function to assert the mocks expectations.
func NewEmployeeParserIface(t interface {
	mock.TestingT
	Cleanup(func())
}) *EmployeeParserIface {
	m := &EmployeeParserIface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
