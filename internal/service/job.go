package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/logger"
	"workshop-backend/internal/repository"
)

type jobService struct {
	jobRepo       repository.JobRepository
	productRepo   repository.ProductRepository
	artisanRepo   repository.ArtisanRepository
	inventoryRepo repository.InventoryRepository
	pricingSvc    PricingService
}

func NewJobService(
	jobRepo repository.JobRepository,
	productRepo repository.ProductRepository,
	artisanRepo repository.ArtisanRepository,
	inventoryRepo repository.InventoryRepository,
	pricingSvc PricingService,
) JobService {
	return &jobService{
		jobRepo:       jobRepo,
		productRepo:   productRepo,
		artisanRepo:   artisanRepo,
		inventoryRepo: inventoryRepo,
		pricingSvc:    pricingSvc,
	}
}

func (s *jobService) Create(ctx context.Context, in CreateJobInput) (*domain.Job, error) {
	if !domain.ValidServiceCategory(in.ServiceCategory) {
		return nil, domain.NewValidationError("unknown service_category %q", in.ServiceCategory)
	}
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("a job needs at least one item")
	}

	job := &domain.Job{
		CreatedBy:       in.CreatedBy,
		ServiceCategory: in.ServiceCategory,
		Notes:           in.Notes,
	}
	for _, itemIn := range in.Items {
		if itemIn.QuantityOrdered <= 0 {
			return nil, domain.NewValidationError("quantity_ordered must be greater than zero, got %d", itemIn.QuantityOrdered)
		}
		artisan, err := s.artisanRepo.GetByID(ctx, itemIn.ArtisanID)
		if err != nil {
			return nil, err
		}
		if !artisan.IsActive {
			return nil, domain.NewValidationError("artisan %d is not active", artisan.ID)
		}
		product, err := s.productRepo.GetByID(ctx, itemIn.ProductID)
		if err != nil {
			return nil, err
		}

		res, err := s.pricingSvc.ResolveRate(ctx, product.ProductType, product.AnimalType, in.ServiceCategory, product.SizeCategory)
		if err != nil {
			return nil, err
		}
		if res.FallbackUsed {
			// Creating payable work at the fallback rate would bake a
			// missing table entry into a frozen amount.
			return nil, &domain.PriceNotFoundError{
				ProductType:     product.ProductType,
				AnimalType:      product.AnimalType,
				ServiceCategory: string(in.ServiceCategory),
				SizeCategory:    product.SizeCategory,
			}
		}

		job.Items = append(job.Items, domain.JobItem{
			ArtisanID:       itemIn.ArtisanID,
			ProductID:       itemIn.ProductID,
			QuantityOrdered: itemIn.QuantityOrdered,
			RatePerUnit:     res.Rate,
			OriginalAmount:  domain.ComputeOriginalAmount(itemIn.QuantityOrdered, res.Rate),
			FinalPayment:    decimal.Zero,
		})
	}

	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	logger.Info("job created", "job_id", job.ID, "service_category", job.ServiceCategory, "items", len(job.Items))
	return job, nil
}

func (s *jobService) Get(ctx context.Context, id int64) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// Derived status is authoritative over the stored value.
	job.Status = job.DeriveStatus()
	return job, nil
}

func (s *jobService) Update(ctx context.Context, id int64, notes string) (*domain.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	job.Notes = notes
	if err := s.jobRepo.Update(ctx, job); err != nil {
		return nil, err
	}
	job.Status = job.DeriveStatus()
	return job, nil
}

func (s *jobService) Delete(ctx context.Context, id int64) error {
	return s.jobRepo.Delete(ctx, id)
}

func (s *jobService) List(ctx context.Context, filter repository.JobFilter, page, pageSize int) ([]domain.Job, int, error) {
	jobs, count, err := s.jobRepo.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, 0, err
	}
	for i := range jobs {
		jobs[i].Status = jobs[i].DeriveStatus()
	}
	return jobs, count, nil
}

func (s *jobService) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	return s.jobRepo.Dashboard(ctx)
}

func (s *jobService) ListItems(ctx context.Context, jobID int64) ([]domain.JobItem, error) {
	if _, err := s.jobRepo.GetByID(ctx, jobID); err != nil {
		return nil, err
	}
	return s.jobRepo.ListItems(ctx, jobID)
}

func (s *jobService) GetItem(ctx context.Context, jobID, itemID int64) (*domain.JobItem, error) {
	item, err := s.jobRepo.GetItem(ctx, jobID, itemID)
	if err != nil {
		return nil, err
	}
	deliveries, err := s.jobRepo.ListDeliveries(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	item.Deliveries = deliveries
	return item, nil
}

func (s *jobService) DeleteItem(ctx context.Context, jobID, itemID int64) error {
	return s.jobRepo.DeleteItem(ctx, jobID, itemID)
}

func (s *jobService) RateItem(ctx context.Context, jobID, itemID int64, rating decimal.Decimal) error {
	min := decimal.NewFromInt(1)
	max := decimal.NewFromInt(5)
	if rating.LessThan(min) || rating.GreaterThan(max) {
		return domain.NewValidationError("rating must be between 1.0 and 5.0, got %s", rating)
	}
	return s.jobRepo.SetItemRating(ctx, jobID, itemID, rating)
}

func (s *jobService) RecordDelivery(ctx context.Context, jobID, itemID int64, in DeliveryInput) (*domain.JobItem, bool, error) {
	item, err := s.jobRepo.GetItem(ctx, jobID, itemID)
	if err != nil {
		return nil, false, err
	}

	// Idempotent replay: a key we have seen returns the stored outcome
	// without touching the ledger. Keys are globally unique, so a key that
	// belongs to another item is a caller bug, not a replay.
	if in.ClientKey != "" {
		existing, err := s.jobRepo.GetDeliveryByClientKey(ctx, in.ClientKey)
		if err != nil {
			return nil, false, err
		}
		if existing != nil {
			if existing.JobItemID != item.ID {
				return nil, false, domain.NewValidationError("client_key %s already used by a delivery on another item", in.ClientKey)
			}
			return item, true, nil
		}
	}

	if err := item.ValidateDelivery(in.QuantityReceived, in.QuantityAccepted, in.RejectionReason); err != nil {
		return nil, false, err
	}

	clientKey := in.ClientKey
	if clientKey == "" {
		clientKey = uuid.NewString()
	}
	delivery := domain.JobDelivery{
		JobItemID:        item.ID,
		ClientKey:        clientKey,
		QuantityReceived: in.QuantityReceived,
		QuantityAccepted: in.QuantityAccepted,
		RejectionReason:  in.RejectionReason,
		Notes:            in.Notes,
	}
	item.ApplyDelivery(delivery)

	job, err := s.jobRepo.GetByID(ctx, jobID)
	if err != nil {
		return nil, false, err
	}
	for i := range job.Items {
		if job.Items[i].ID == item.ID {
			job.Items[i] = *item
		}
	}
	status := job.DeriveStatus()

	if err := s.jobRepo.SaveDelivery(ctx, &item.Deliveries[len(item.Deliveries)-1], item, status); err != nil {
		var conflict *domain.ConflictError
		if errors.As(err, &conflict) {
			// Lost a race on the key's unique index. Only a delivery stored
			// against this same item counts as a replay.
			existing, getErr := s.jobRepo.GetDeliveryByClientKey(ctx, clientKey)
			if getErr != nil {
				return nil, false, getErr
			}
			if existing == nil || existing.JobItemID != item.ID {
				return nil, false, domain.NewValidationError("client_key %s already used by a delivery on another item", clientKey)
			}
			stored, getErr := s.jobRepo.GetItem(ctx, jobID, itemID)
			if getErr != nil {
				return nil, false, getErr
			}
			return stored, true, nil
		}
		return nil, false, fmt.Errorf("save delivery: %w", err)
	}

	if in.QuantityAccepted > 0 {
		product, err := s.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, false, err
		}
		if err := s.inventoryRepo.AbsorbAccepted(ctx, item.ProductID, job.ServiceCategory, in.QuantityAccepted, product.BasePrice); err != nil {
			// The delivery itself is committed; inventory catches up on the
			// next reconciliation run.
			logger.Error("inventory absorb failed after delivery", "job_id", jobID, "item_id", itemID, "error", err)
		}
	}

	logger.Info("delivery recorded",
		"job_id", jobID, "item_id", itemID, "received", in.QuantityReceived,
		"accepted", in.QuantityAccepted, "status", status)
	return item, false, nil
}

func (s *jobService) ListDeliveries(ctx context.Context, jobID, itemID int64) ([]domain.JobDelivery, error) {
	item, err := s.jobRepo.GetItem(ctx, jobID, itemID)
	if err != nil {
		return nil, err
	}
	return s.jobRepo.ListDeliveries(ctx, item.ID)
}
