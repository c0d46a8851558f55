package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// KVRepoIface is a mock type for the KVRepoIface type.
type KVRepoIface struct {
	mock.Mock
}

// GetEntry provides a mock function with given fields: ctx, name.
func (_m *KVRepoIface) GetEntry(ctx context.Context, name string) ([]byte, error) {
	ret := _m.Called(ctx, name)

	var r0 []byte
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]byte)
	}

	return r0, ret.Error(1)
}

// PutEntry provides a mock function with given fields: ctx, name, value.
func (_m *KVRepoIface) PutEntry(ctx context.Context, name string, value []byte) error {
	ret := _m.Called(ctx, name, value)

	return ret.Error(0)
}

// NewKVRepoIface creates a new instance of KVRepoIface. It also registers a testing interface on
// the mock and a cleanup function to assert the mocks expectations.
func NewKVRepoIface(t interface {
	mock.TestingT
	Cleanup(func())
}) *KVRepoIface {
	m := &KVRepoIface{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
