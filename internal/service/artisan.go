package service

import (
	"context"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type artisanService struct {
	artisanRepo repository.ArtisanRepository
}

func NewArtisanService(artisanRepo repository.ArtisanRepository) ArtisanService {
	return &artisanService{artisanRepo: artisanRepo}
}

func (s *artisanService) Create(ctx context.Context, a *domain.Artisan) error {
	if a.Name == "" {
		return domain.NewValidationError("artisan name is required")
	}
	a.IsActive = true
	return s.artisanRepo.Create(ctx, a)
}

func (s *artisanService) Get(ctx context.Context, id int64) (*domain.Artisan, *domain.ArtisanStats, error) {
	artisan, err := s.artisanRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	stats, err := s.artisanRepo.Stats(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return artisan, stats, nil
}

func (s *artisanService) Update(ctx context.Context, a *domain.Artisan) error {
	if a.Name == "" {
		return domain.NewValidationError("artisan name is required")
	}
	if _, err := s.artisanRepo.GetByID(ctx, a.ID); err != nil {
		return err
	}
	return s.artisanRepo.Update(ctx, a)
}

func (s *artisanService) Delete(ctx context.Context, id int64) error {
	return s.artisanRepo.Delete(ctx, id)
}

func (s *artisanService) List(ctx context.Context, page, pageSize int) ([]domain.Artisan, int, error) {
	return s.artisanRepo.List(ctx, page, pageSize)
}
