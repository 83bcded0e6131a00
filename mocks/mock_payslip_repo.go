package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"paymax/internal/domain"
)

// MockPayslipRepo is a mock implementation of port.PayslipRepository.
type MockPayslipRepo struct {
	mock.Mock
}

func (m *MockPayslipRepo) Upsert(ctx context.Context, p *domain.Payslip) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPayslipRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payslip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payslip), args.Error(1)
}

func (m *MockPayslipRepo) GetByHash(ctx context.Context, hash string) (*domain.Payslip, error) {
	args := m.Called(ctx, hash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payslip), args.Error(1)
}

func (m *MockPayslipRepo) List(ctx context.Context, limit, offset int) ([]domain.Payslip, int, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Payslip), args.Int(1), args.Error(2)
}
