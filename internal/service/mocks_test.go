package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
)

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) Create(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) FindBySpec(ctx context.Context, productType, animalType, sizeCategory string) (*domain.Product, error) {
	args := m.Called(ctx, productType, animalType, sizeCategory)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) Update(ctx context.Context, p *domain.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductRepository) List(ctx context.Context, page, pageSize int) ([]domain.Product, int, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) AddPriceHistory(ctx context.Context, h *domain.PriceHistory) error {
	args := m.Called(ctx, h)
	return args.Error(0)
}

func (m *MockProductRepository) ListPriceHistory(ctx context.Context, productID int64) ([]domain.PriceHistory, error) {
	args := m.Called(ctx, productID)
	return args.Get(0).([]domain.PriceHistory), args.Error(1)
}

type MockServiceRateRepository struct {
	mock.Mock
}

func (m *MockServiceRateRepository) Upsert(ctx context.Context, r *domain.ServiceRate) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockServiceRateRepository) GetByProductAndCategory(ctx context.Context, productID int64, category domain.ServiceCategory) (*domain.ServiceRate, error) {
	args := m.Called(ctx, productID, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServiceRate), args.Error(1)
}

func (m *MockServiceRateRepository) List(ctx context.Context, page, pageSize int) ([]domain.ServiceRate, int, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.ServiceRate), args.Int(1), args.Error(2)
}

func (m *MockServiceRateRepository) ListRateRows(ctx context.Context) ([]repository.RateRow, error) {
	args := m.Called(ctx)
	return args.Get(0).([]repository.RateRow), args.Error(1)
}

type MockArtisanRepository struct {
	mock.Mock
}

func (m *MockArtisanRepository) Create(ctx context.Context, a *domain.Artisan) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockArtisanRepository) GetByID(ctx context.Context, id int64) (*domain.Artisan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Artisan), args.Error(1)
}

func (m *MockArtisanRepository) Update(ctx context.Context, a *domain.Artisan) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockArtisanRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockArtisanRepository) List(ctx context.Context, page, pageSize int) ([]domain.Artisan, int, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Artisan), args.Int(1), args.Error(2)
}

func (m *MockArtisanRepository) Stats(ctx context.Context, artisanID int64) (*domain.ArtisanStats, error) {
	args := m.Called(ctx, artisanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ArtisanStats), args.Error(1)
}

type MockJobRepository struct {
	mock.Mock
}

func (m *MockJobRepository) Create(ctx context.Context, j *domain.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobRepository) Update(ctx context.Context, j *domain.Job) error {
	args := m.Called(ctx, j)
	return args.Error(0)
}

func (m *MockJobRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobRepository) List(ctx context.Context, filter repository.JobFilter, page, pageSize int) ([]domain.Job, int, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Job), args.Int(1), args.Error(2)
}

func (m *MockJobRepository) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DashboardStats), args.Error(1)
}

func (m *MockJobRepository) GetItem(ctx context.Context, jobID, itemID int64) (*domain.JobItem, error) {
	args := m.Called(ctx, jobID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobItem), args.Error(1)
}

func (m *MockJobRepository) ListItems(ctx context.Context, jobID int64) ([]domain.JobItem, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]domain.JobItem), args.Error(1)
}

func (m *MockJobRepository) DeleteItem(ctx context.Context, jobID, itemID int64) error {
	args := m.Called(ctx, jobID, itemID)
	return args.Error(0)
}

func (m *MockJobRepository) SetItemRating(ctx context.Context, jobID, itemID int64, rating decimal.Decimal) error {
	args := m.Called(ctx, jobID, itemID, rating)
	return args.Error(0)
}

func (m *MockJobRepository) ListDeliveries(ctx context.Context, itemID int64) ([]domain.JobDelivery, error) {
	args := m.Called(ctx, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobDelivery), args.Error(1)
}

func (m *MockJobRepository) GetDeliveryByClientKey(ctx context.Context, clientKey string) (*domain.JobDelivery, error) {
	args := m.Called(ctx, clientKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobDelivery), args.Error(1)
}

func (m *MockJobRepository) SaveDelivery(ctx context.Context, d *domain.JobDelivery, item *domain.JobItem, status domain.JobStatus) error {
	args := m.Called(ctx, d, item, status)
	return args.Error(0)
}

func (m *MockJobRepository) ReconcileStatuses(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJobRepository) ClearDeliveryKeys(ctx context.Context, before time.Time) (int64, error) {
	args := m.Called(ctx, before)
	return args.Get(0).(int64), args.Error(1)
}

type MockInventoryRepository struct {
	mock.Mock
}

func (m *MockInventoryRepository) ListInventory(ctx context.Context, page, pageSize int) ([]domain.Inventory, int, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Inventory), args.Int(1), args.Error(2)
}

func (m *MockInventoryRepository) ListFinishedStock(ctx context.Context, page, pageSize int) ([]domain.FinishedStock, int, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.FinishedStock), args.Int(1), args.Error(2)
}

func (m *MockInventoryRepository) AbsorbAccepted(ctx context.Context, productID int64, category domain.ServiceCategory, quantity int, unitCost decimal.Decimal) error {
	args := m.Called(ctx, productID, category, quantity, unitCost)
	return args.Error(0)
}

type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) Create(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) GetByID(ctx context.Context, id int64) (*domain.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Update(ctx context.Context, c *domain.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCustomerRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCustomerRepository) List(ctx context.Context, page, pageSize int) ([]domain.Customer, int, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Customer), args.Int(1), args.Error(2)
}

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, o *domain.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id int64) (*domain.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Order), args.Error(1)
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id int64, status domain.OrderStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatusConsumingStock(ctx context.Context, o *domain.Order, status domain.OrderStatus) error {
	args := m.Called(ctx, o, status)
	return args.Error(0)
}

func (m *MockOrderRepository) UpdateStatusRestoringStock(ctx context.Context, o *domain.Order, status domain.OrderStatus) error {
	args := m.Called(ctx, o, status)
	return args.Error(0)
}

func (m *MockOrderRepository) List(ctx context.Context, page, pageSize int) ([]domain.Order, int, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Order), args.Int(1), args.Error(2)
}

type MockPayslipRepository struct {
	mock.Mock
}

func (m *MockPayslipRepository) CreateForItems(ctx context.Context, p *domain.Payslip, itemIDs []int64) error {
	args := m.Called(ctx, p, itemIDs)
	return args.Error(0)
}

func (m *MockPayslipRepository) GetByID(ctx context.Context, id int64) (*domain.Payslip, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payslip), args.Error(1)
}

func (m *MockPayslipRepository) List(ctx context.Context, artisanID int64, page, pageSize int) ([]domain.Payslip, int, error) {
	args := m.Called(ctx, artisanID, page, pageSize)
	return args.Get(0).([]domain.Payslip), args.Int(1), args.Error(2)
}

func (m *MockPayslipRepository) DeleteReleasingItems(ctx context.Context, p *domain.Payslip) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPayslipRepository) AttachFile(ctx context.Context, id int64, path string) error {
	args := m.Called(ctx, id, path)
	return args.Error(0)
}

func (m *MockPayslipRepository) ListEligibleItems(ctx context.Context, artisanID int64, periodStart, periodEnd time.Time, category *domain.ServiceCategory) ([]domain.JobItem, error) {
	args := m.Called(ctx, artisanID, periodStart, periodEnd, category)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JobItem), args.Error(1)
}
