package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockDocument is a mock implementation of port.Document.
type MockDocument struct {
	mock.Mock
}

func (m *MockDocument) PageCount() int {
	args := m.Called()
	return args.Int(0)
}

func (m *MockDocument) PageText(page int) (string, error) {
	args := m.Called(page)
	return args.String(0), args.Error(1)
}

func (m *MockDocument) PageImage(page int) ([]byte, error) {
	args := m.Called(page)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocument) Bytes() ([]byte, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockDocument) Title() string {
	args := m.Called()
	return args.String(0)
}
