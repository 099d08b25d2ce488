package service

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/logger"
	"workshop-backend/internal/repository"
	"workshop-backend/internal/storage"
)

type payslipService struct {
	payslipRepo repository.PayslipRepository
	artisanRepo repository.ArtisanRepository
	store       storage.DocumentStore
}

func NewPayslipService(payslipRepo repository.PayslipRepository, artisanRepo repository.ArtisanRepository, store storage.DocumentStore) PayslipService {
	return &payslipService{
		payslipRepo: payslipRepo,
		artisanRepo: artisanRepo,
		store:       store,
	}
}

// Generate collects the artisan's unpaid accepted work for the period into a
// new payslip and marks the covered items so they are never paid twice.
func (s *payslipService) Generate(ctx context.Context, in GeneratePayslipInput) (*domain.Payslip, error) {
	if in.PeriodStart.IsZero() || in.PeriodEnd.IsZero() {
		return nil, domain.NewValidationError("period_start and period_end are required")
	}
	if in.PeriodEnd.Before(in.PeriodStart) {
		return nil, domain.NewValidationError("period_end must not precede period_start")
	}
	if in.ServiceCategory != nil && !domain.ValidServiceCategory(*in.ServiceCategory) {
		return nil, domain.NewValidationError("unknown service category %q", *in.ServiceCategory)
	}

	if _, err := s.artisanRepo.GetByID(ctx, in.ArtisanID); err != nil {
		return nil, err
	}

	items, err := s.payslipRepo.ListEligibleItems(ctx, in.ArtisanID, in.PeriodStart, in.PeriodEnd, in.ServiceCategory)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.NewConflictError("no unpaid accepted work for artisan %d in the given period", in.ArtisanID)
	}

	total := decimal.Zero
	itemIDs := make([]int64, 0, len(items))
	for _, it := range items {
		total = total.Add(it.FinalPayment)
		itemIDs = append(itemIDs, it.ID)
	}

	slip := &domain.Payslip{
		ArtisanID:       in.ArtisanID,
		ServiceCategory: in.ServiceCategory,
		GeneratedDate:   time.Now().UTC(),
		TotalPayment:    total,
		PeriodStart:     in.PeriodStart,
		PeriodEnd:       in.PeriodEnd,
	}
	// One transaction: a payslip only exists with its items flagged as paid.
	if err := s.payslipRepo.CreateForItems(ctx, slip, itemIDs); err != nil {
		return nil, err
	}

	logger.Info("payslip generated",
		"payslip_id", slip.ID,
		"artisan_id", in.ArtisanID,
		"items", len(itemIDs),
		"total_payment", total)
	return slip, nil
}

func (s *payslipService) Get(ctx context.Context, id int64) (*domain.Payslip, error) {
	return s.payslipRepo.GetByID(ctx, id)
}

func (s *payslipService) List(ctx context.Context, artisanID int64, page, pageSize int) ([]domain.Payslip, int, error) {
	return s.payslipRepo.List(ctx, artisanID, page, pageSize)
}

// Delete removes the payslip and releases its items back into the unpaid
// pool, so a corrected run can pick them up again.
func (s *payslipService) Delete(ctx context.Context, id int64) error {
	slip, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.payslipRepo.DeleteReleasingItems(ctx, slip); err != nil {
		return err
	}
	if slip.FilePath != "" {
		if err := s.store.Delete(slip.FilePath); err != nil {
			logger.Warn("failed to delete payslip document", "payslip_id", id, "path", slip.FilePath, "error", err)
		}
	}
	logger.Info("payslip deleted, items released", "payslip_id", id, "artisan_id", slip.ArtisanID)
	return nil
}

func (s *payslipService) Download(ctx context.Context, id int64) (io.ReadCloser, string, error) {
	slip, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if slip.FilePath == "" {
		return nil, "", &domain.NotFoundError{Entity: "payslip document", ID: id}
	}
	rc, err := s.store.Open(slip.FilePath)
	if err != nil {
		return nil, "", err
	}
	return rc, filepath.Base(slip.FilePath), nil
}

func (s *payslipService) AttachDocument(ctx context.Context, id int64, filename string, content io.Reader) error {
	slip, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	base := filepath.Base(filename)
	if base == "" || base == "." || base == string(filepath.Separator) {
		return domain.NewValidationError("document filename is required")
	}
	key := fmt.Sprintf("payslips/%d/%s", id, base)
	if _, err := s.store.Save(key, content); err != nil {
		return err
	}
	if err := s.payslipRepo.AttachFile(ctx, id, key); err != nil {
		return err
	}
	if slip.FilePath != "" && slip.FilePath != key {
		if err := s.store.Delete(slip.FilePath); err != nil {
			logger.Warn("failed to delete replaced payslip document", "payslip_id", id, "path", slip.FilePath, "error", err)
		}
	}
	logger.Info("payslip document attached", "payslip_id", id, "file", base)
	return nil
}
