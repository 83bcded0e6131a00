package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"paymax/internal/domain"
	"paymax/internal/port"
)

// MockPayslipParser is a mock implementation of port.PayslipParser.
type MockPayslipParser struct {
	mock.Mock
}

func (m *MockPayslipParser) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockPayslipParser) Format() domain.PayslipFormat {
	args := m.Called()
	return args.Get(0).(domain.PayslipFormat)
}

func (m *MockPayslipParser) Score(text string) int {
	args := m.Called(text)
	return args.Int(0)
}

func (m *MockPayslipParser) Parse(ctx context.Context, input port.ParseInput) (*port.ParseOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.ParseOutput), args.Error(1)
}
