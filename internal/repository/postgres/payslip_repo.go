package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"paymax/internal/domain"
	"paymax/internal/port"
)

type payslipRepo struct {
	db *sqlx.DB
}

// NewPayslipRepo creates a new PostgreSQL-backed PayslipRepository.
func NewPayslipRepo(db *sqlx.DB) port.PayslipRepository {
	return &payslipRepo{db: db}
}

// payslipRow is the table shape; component maps are stored as JSONB.
type payslipRow struct {
	ID            uuid.UUID `db:"id"`
	Name          string    `db:"name"`
	AccountNumber string    `db:"account_number"`
	PANNumber     string    `db:"pan_number"`
	Month         string    `db:"month"`
	Year          int       `db:"year"`
	Credits       float64   `db:"credits"`
	Debits        float64   `db:"debits"`
	Tax           float64   `db:"tax"`
	ProvidentFund float64   `db:"provident_fund"`
	Earnings      []byte    `db:"earnings"`
	Deductions    []byte    `db:"deductions"`
	ParserName    string    `db:"parser_name"`
	Confidence    string    `db:"confidence"`
	DocumentHash  string    `db:"document_hash"`
	PageCount     int       `db:"page_count"`
	ParsedAt      time.Time `db:"parsed_at"`
	CreatedAt     time.Time `db:"created_at"`
}

func toRow(p *domain.Payslip) (*payslipRow, error) {
	earnings, err := json.Marshal(p.Earnings)
	if err != nil {
		return nil, fmt.Errorf("marshaling earnings: %w", err)
	}
	deductions, err := json.Marshal(p.Deductions)
	if err != nil {
		return nil, fmt.Errorf("marshaling deductions: %w", err)
	}
	return &payslipRow{
		ID:            p.ID,
		Name:          p.Name,
		AccountNumber: p.AccountNumber,
		PANNumber:     p.PANNumber,
		Month:         p.Month,
		Year:          p.Year,
		Credits:       p.Credits,
		Debits:        p.Debits,
		Tax:           p.Tax,
		ProvidentFund: p.ProvidentFund,
		Earnings:      earnings,
		Deductions:    deductions,
		ParserName:    p.ParserName,
		Confidence:    string(p.Confidence),
		DocumentHash:  p.DocumentHash,
		PageCount:     p.PageCount,
		ParsedAt:      p.ParsedAt,
		CreatedAt:     p.CreatedAt,
	}, nil
}

func (r *payslipRow) toDomain() (*domain.Payslip, error) {
	p := &domain.Payslip{
		ID:            r.ID,
		Name:          r.Name,
		AccountNumber: r.AccountNumber,
		PANNumber:     r.PANNumber,
		Month:         r.Month,
		Year:          r.Year,
		Credits:       r.Credits,
		Debits:        r.Debits,
		Tax:           r.Tax,
		ProvidentFund: r.ProvidentFund,
		ParserName:    r.ParserName,
		Confidence:    domain.Confidence(r.Confidence),
		DocumentHash:  r.DocumentHash,
		PageCount:     r.PageCount,
		ParsedAt:      r.ParsedAt,
		CreatedAt:     r.CreatedAt,
	}
	if err := json.Unmarshal(r.Earnings, &p.Earnings); err != nil {
		return nil, fmt.Errorf("unmarshaling earnings: %w", err)
	}
	if err := json.Unmarshal(r.Deductions, &p.Deductions); err != nil {
		return nil, fmt.Errorf("unmarshaling deductions: %w", err)
	}
	return p, nil
}

func (r *payslipRepo) Upsert(ctx context.Context, p *domain.Payslip) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}

	row, err := toRow(p)
	if err != nil {
		return fmt.Errorf("payslipRepo.Upsert: %w", err)
	}

	query := `INSERT INTO payslips
		(id, name, account_number, pan_number, month, year, credits, debits, tax,
		 provident_fund, earnings, deductions, parser_name, confidence,
		 document_hash, page_count, parsed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (document_hash) DO UPDATE SET
			name = EXCLUDED.name,
			account_number = EXCLUDED.account_number,
			pan_number = EXCLUDED.pan_number,
			month = EXCLUDED.month,
			year = EXCLUDED.year,
			credits = EXCLUDED.credits,
			debits = EXCLUDED.debits,
			tax = EXCLUDED.tax,
			provident_fund = EXCLUDED.provident_fund,
			earnings = EXCLUDED.earnings,
			deductions = EXCLUDED.deductions,
			parser_name = EXCLUDED.parser_name,
			confidence = EXCLUDED.confidence,
			page_count = EXCLUDED.page_count,
			parsed_at = EXCLUDED.parsed_at`

	_, err = r.db.ExecContext(ctx, query,
		row.ID, row.Name, row.AccountNumber, row.PANNumber, row.Month, row.Year,
		row.Credits, row.Debits, row.Tax, row.ProvidentFund, row.Earnings,
		row.Deductions, row.ParserName, row.Confidence, row.DocumentHash,
		row.PageCount, row.ParsedAt, row.CreatedAt)
	if err != nil {
		return fmt.Errorf("payslipRepo.Upsert: %w", err)
	}
	return nil
}

func (r *payslipRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Payslip, error) {
	var row payslipRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM payslips WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("payslipRepo.GetByID: %w", err)
	}
	return row.toDomain()
}

func (r *payslipRepo) GetByHash(ctx context.Context, hash string) (*domain.Payslip, error) {
	var row payslipRow
	err := r.db.GetContext(ctx, &row, "SELECT * FROM payslips WHERE document_hash = $1", hash)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("payslipRepo.GetByHash: %w", err)
	}
	return row.toDomain()
}

func (r *payslipRepo) List(ctx context.Context, limit, offset int) ([]domain.Payslip, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM payslips"); err != nil {
		return nil, 0, fmt.Errorf("payslipRepo.List count: %w", err)
	}

	var rows []payslipRow
	err := r.db.SelectContext(ctx, &rows,
		"SELECT * FROM payslips ORDER BY created_at DESC LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("payslipRepo.List: %w", err)
	}

	out := make([]domain.Payslip, 0, len(rows))
	for i := range rows {
		p, err := rows[i].toDomain()
		if err != nil {
			return nil, 0, fmt.Errorf("payslipRepo.List: %w", err)
		}
		out = append(out, *p)
	}
	return out, total, nil
}
