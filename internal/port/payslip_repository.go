package port

import (
	"context"

	"github.com/google/uuid"

	"paymax/internal/domain"
)

// PayslipRepository persists parsed payslip records. Saving the same document
// hash twice replaces the earlier record.
type PayslipRepository interface {
	Upsert(ctx context.Context, p *domain.Payslip) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Payslip, error)
	GetByHash(ctx context.Context, hash string) (*domain.Payslip, error)
	List(ctx context.Context, limit, offset int) ([]domain.Payslip, int, error)
}
