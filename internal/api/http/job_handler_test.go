package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"workshop-backend/internal/domain"
	"workshop-backend/internal/repository"
	"workshop-backend/internal/service"
)

type MockJobService struct {
	mock.Mock
}

func (m *MockJobService) Create(ctx context.Context, in service.CreateJobInput) (*domain.Job, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobService) Get(ctx context.Context, id int64) (*domain.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobService) Update(ctx context.Context, id int64, notes string) (*domain.Job, error) {
	args := m.Called(ctx, id, notes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Job), args.Error(1)
}

func (m *MockJobService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockJobService) List(ctx context.Context, filter repository.JobFilter, page, pageSize int) ([]domain.Job, int, error) {
	args := m.Called(ctx, filter, page, pageSize)
	return args.Get(0).([]domain.Job), args.Int(1), args.Error(2)
}

func (m *MockJobService) Dashboard(ctx context.Context) (*repository.DashboardStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.DashboardStats), args.Error(1)
}

func (m *MockJobService) ListItems(ctx context.Context, jobID int64) ([]domain.JobItem, error) {
	args := m.Called(ctx, jobID)
	return args.Get(0).([]domain.JobItem), args.Error(1)
}

func (m *MockJobService) GetItem(ctx context.Context, jobID, itemID int64) (*domain.JobItem, error) {
	args := m.Called(ctx, jobID, itemID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.JobItem), args.Error(1)
}

func (m *MockJobService) DeleteItem(ctx context.Context, jobID, itemID int64) error {
	args := m.Called(ctx, jobID, itemID)
	return args.Error(0)
}

func (m *MockJobService) RateItem(ctx context.Context, jobID, itemID int64, rating decimal.Decimal) error {
	args := m.Called(ctx, jobID, itemID, rating)
	return args.Error(0)
}

func (m *MockJobService) RecordDelivery(ctx context.Context, jobID, itemID int64, in service.DeliveryInput) (*domain.JobItem, bool, error) {
	args := m.Called(ctx, jobID, itemID, in)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*domain.JobItem), args.Bool(1), args.Error(2)
}

func (m *MockJobService) ListDeliveries(ctx context.Context, jobID, itemID int64) ([]domain.JobDelivery, error) {
	args := m.Called(ctx, jobID, itemID)
	return args.Get(0).([]domain.JobDelivery), args.Error(1)
}

func newTestRouter(jobs service.JobService) http.Handler {
	return NewRouter(Services{Jobs: jobs})
}

func TestJobHandler_RecordDelivery(t *testing.T) {
	t.Run("FreshDeliveryIs201", func(t *testing.T) {
		jobs := new(MockJobService)
		item := &domain.JobItem{ID: 11, JobID: 5, QuantityReceived: 5, QuantityAccepted: 5}
		jobs.On("RecordDelivery", mock.Anything, int64(5), int64(11),
			service.DeliveryInput{QuantityReceived: 5, QuantityAccepted: 5}).
			Return(item, false, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/5/items/11/deliveries/",
			strings.NewReader(`{"quantity_received": 5, "quantity_accepted": 5}`))
		rec := httptest.NewRecorder()
		newTestRouter(jobs).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		var got domain.JobItem
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		assert.Equal(t, 5, got.QuantityReceived)
	})

	t.Run("ReplayedClientKeyIs200", func(t *testing.T) {
		jobs := new(MockJobService)
		item := &domain.JobItem{ID: 11, JobID: 5, QuantityReceived: 5, QuantityAccepted: 5}
		jobs.On("RecordDelivery", mock.Anything, int64(5), int64(11),
			service.DeliveryInput{QuantityReceived: 5, QuantityAccepted: 5, ClientKey: "key-1"}).
			Return(item, true, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/5/items/11/deliveries/",
			strings.NewReader(`{"quantity_received": 5, "quantity_accepted": 5, "client_key": "key-1"}`))
		rec := httptest.NewRecorder()
		newTestRouter(jobs).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("OverDeliveryIs409WithRemaining", func(t *testing.T) {
		jobs := new(MockJobService)
		jobs.On("RecordDelivery", mock.Anything, int64(5), int64(11), mock.Anything).
			Return(nil, false, &domain.OverDeliveryError{Requested: 10, Remaining: 8})

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/5/items/11/deliveries/",
			strings.NewReader(`{"quantity_received": 10, "quantity_accepted": 10}`))
		rec := httptest.NewRecorder()
		newTestRouter(jobs).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
		var body struct {
			Error   string         `json:"error"`
			Details map[string]int `json:"details"`
		}
		assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, 8, body.Details["remaining"])
	})

	t.Run("ValidationErrorIs400", func(t *testing.T) {
		jobs := new(MockJobService)
		jobs.On("RecordDelivery", mock.Anything, int64(5), int64(11), mock.Anything).
			Return(nil, false, domain.NewValidationError("quantity_received must be greater than zero, got 0"))

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/5/items/11/deliveries/",
			strings.NewReader(`{"quantity_received": 0, "quantity_accepted": 0}`))
		rec := httptest.NewRecorder()
		newTestRouter(jobs).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("MalformedBodyIs400", func(t *testing.T) {
		jobs := new(MockJobService)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/5/items/11/deliveries/",
			strings.NewReader(`{"quantity_received": `))
		rec := httptest.NewRecorder()
		newTestRouter(jobs).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		jobs.AssertNotCalled(t, "RecordDelivery", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestJobHandler_Create(t *testing.T) {
	t.Run("MissingRateIs422", func(t *testing.T) {
		jobs := new(MockJobService)
		jobs.On("Create", mock.Anything, mock.Anything).
			Return(nil, &domain.PriceNotFoundError{
				ProductType: "woodcraft", AnimalType: "elephant",
				ServiceCategory: "PAINTING", SizeCategory: "large",
			})

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/",
			strings.NewReader(`{"service_category": "PAINTING", "items": [{"artisan": 3, "product": 7, "quantity_ordered": 20}]}`))
		rec := httptest.NewRecorder()
		newTestRouter(jobs).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("MissingJobIs404", func(t *testing.T) {
		jobs := new(MockJobService)
		jobs.On("Get", mock.Anything, int64(99)).
			Return(nil, &domain.NotFoundError{Entity: "job", ID: 99})

		req := httptest.NewRequest(http.MethodGet, "/api/jobs/99/", nil)
		rec := httptest.NewRecorder()
		newTestRouter(jobs).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestPaginationDefaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/jobs/", nil)
	page, pageSize := pagination(req)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageSize, pageSize)

	req = httptest.NewRequest(http.MethodGet, "/api/jobs/?page=3&page_size=500", nil)
	page, pageSize = pagination(req)
	assert.Equal(t, 3, page)
	assert.Equal(t, maxPageSize, pageSize)
}
