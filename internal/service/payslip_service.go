package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"paymax/internal/abbrev"
	"paymax/internal/document/pdf"
	"paymax/internal/domain"
	"paymax/internal/pipeline"
	"paymax/internal/port"
)

// PayslipService is the application-facing surface over the parsing
// pipeline and the record store.
type PayslipService interface {
	ProcessUpload(ctx context.Context, fileBytes []byte, hint domain.ParseHint) (*pipeline.Result, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Payslip, error)
	List(ctx context.Context, limit, offset int) ([]domain.Payslip, int, error)
	Attempts() []domain.ParseAttempt
	UnknownComponents(minCount int) []abbrev.UnknownComponent
}

type payslipService struct {
	coordinator *pipeline.Coordinator
	repo        port.PayslipRepository
	tracker     *abbrev.Tracker
	maxBytes    int64
}

// NewPayslipService creates a PayslipService. repo may be nil when
// persistence is not configured; parsing still works, results are just not
// stored.
func NewPayslipService(coordinator *pipeline.Coordinator, repo port.PayslipRepository, tracker *abbrev.Tracker, maxFileSizeMB int64) PayslipService {
	return &payslipService{
		coordinator: coordinator,
		repo:        repo,
		tracker:     tracker,
		maxBytes:    maxFileSizeMB * 1024 * 1024,
	}
}

func (s *payslipService) ProcessUpload(ctx context.Context, fileBytes []byte, hint domain.ParseHint) (*pipeline.Result, error) {
	if int64(len(fileBytes)) > s.maxBytes {
		return nil, domain.ErrFileTooLarge
	}

	doc, err := pdf.New(fileBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnsupportedFile, err)
	}

	result, err := s.coordinator.Process(ctx, doc, domain.PurposeFull, hint)
	if err != nil {
		return nil, err
	}

	if s.repo != nil && result.Record != nil && !result.FromCache {
		if err := s.repo.Upsert(ctx, result.Record); err != nil {
			// Persistence failure degrades to a transient result; the parse
			// itself succeeded.
			log.Printf("service.PayslipService: failed to persist record %s: %v", result.DocumentID, err)
		}
	}
	return result, nil
}

func (s *payslipService) Get(ctx context.Context, id uuid.UUID) (*domain.Payslip, error) {
	if s.repo == nil {
		return nil, domain.ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

func (s *payslipService) List(ctx context.Context, limit, offset int) ([]domain.Payslip, int, error) {
	if s.repo == nil {
		return nil, 0, nil
	}
	return s.repo.List(ctx, limit, offset)
}

func (s *payslipService) Attempts() []domain.ParseAttempt {
	return s.coordinator.Telemetry().Snapshot()
}

func (s *payslipService) UnknownComponents(minCount int) []abbrev.UnknownComponent {
	if s.tracker == nil {
		return nil
	}
	return s.tracker.Candidates(minCount)
}
