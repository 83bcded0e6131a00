package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"paymax/internal/abbrev"
	"paymax/internal/domain"
	"paymax/internal/pipeline"
)

// MockPayslipService is a mock implementation of service.PayslipService.
type MockPayslipService struct {
	mock.Mock
}

func (m *MockPayslipService) ProcessUpload(ctx context.Context, fileBytes []byte, hint domain.ParseHint) (*pipeline.Result, error) {
	args := m.Called(ctx, fileBytes, hint)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Result), args.Error(1)
}

func (m *MockPayslipService) Get(ctx context.Context, id uuid.UUID) (*domain.Payslip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payslip), args.Error(1)
}

func (m *MockPayslipService) List(ctx context.Context, limit, offset int) ([]domain.Payslip, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Payslip), args.Int(1), args.Error(2)
}

func (m *MockPayslipService) Attempts() []domain.ParseAttempt {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.ParseAttempt)
}

func (m *MockPayslipService) UnknownComponents(minCount int) []abbrev.UnknownComponent {
	args := m.Called(minCount)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]abbrev.UnknownComponent)
}
