package service

import (
	"context"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
}

func NewInventoryService(inventoryRepo repository.InventoryRepository) InventoryService {
	return &inventoryService{inventoryRepo: inventoryRepo}
}

func (s *inventoryService) ListInventory(ctx context.Context, page, pageSize int) ([]domain.Inventory, int, error) {
	return s.inventoryRepo.ListInventory(ctx, page, pageSize)
}

func (s *inventoryService) ListFinishedStock(ctx context.Context, page, pageSize int) ([]domain.FinishedStock, int, error) {
	return s.inventoryRepo.ListFinishedStock(ctx, page, pageSize)
}
