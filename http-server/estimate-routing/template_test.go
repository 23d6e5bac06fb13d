package estimate_routing

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"steelestim/internal/storage"
)

type MockTemplateStorage struct {
	mock.Mock
}

func (m *MockTemplateStorage) GetRoutingOperations(ctx context.Context, templateID int64) ([]storage.RoutingOperation, error) {
	args := m.Called(ctx, templateID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.RoutingOperation), args.Error(1)
}

func (m *MockTemplateStorage) GetWorkCenter(ctx context.Context, workCenterID int64) (*storage.WorkCenter, error) {
	args := m.Called(ctx, workCenterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*storage.WorkCenter), args.Error(1)
}

func (m *MockTemplateStorage) GetDependencies(ctx context.Context, dependentWorkCenterID int64, routingID *int64) ([]storage.WorkCenterDependency, error) {
	args := m.Called(ctx, dependentWorkCenterID, routingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]storage.WorkCenterDependency), args.Error(1)
}

func getTemplate(t *testing.T, store TemplateStorage, target string) *httptest.ResponseRecorder {
	t.Helper()

	router := chi.NewRouter()
	router.Get("/api/estimate/routing-template/{id}", EstimateTemplate(slog.Default(), store))

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestEstimateTemplate_Success(t *testing.T) {
	mockStore := new(MockTemplateStorage)

	second := int64(1)
	ops := []storage.RoutingOperation{
		// listed out of chain order on purpose
		{ID: 2, WorkCenterID: 5, CalculationMethod: storage.MethodFixed,
			SetupTimeMinutes: 20, MovementTimeMinutes: 5, WaitingTimeMinutes: 5, PreviousOperationID: &second},
		{ID: 1, WorkCenterID: 5, CalculationMethod: storage.MethodPerUnit,
			ProcessingTimePerUnit: 2, SetupTimeMinutes: 50},
	}

	mockStore.On("GetRoutingOperations", mock.Anything, int64(9)).Return(ops, nil)
	mockStore.On("GetWorkCenter", mock.Anything, int64(5)).Return(&storage.WorkCenter{ID: 5, HourlyRate: 60}, nil)
	mockStore.On("GetDependencies", mock.Anything, int64(5), mock.Anything).Return([]storage.WorkCenterDependency{}, nil)

	rr := getTemplate(t, mockStore, "/api/estimate/routing-template/9?quantity=10")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp TemplateResponse
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)

	require.Len(t, resp.Operations, 2)
	// chain puts the head first
	assert.Equal(t, int64(1), resp.Operations[0].OperationID)
	// (2 + 50/100) * 10 = 25 min, then 20+5+5 = 30 min fixed
	assert.Equal(t, 25.0, resp.Operations[0].TotalMinutes)
	assert.Equal(t, 30.0, resp.Operations[1].TotalMinutes)
	assert.Equal(t, 55.0, resp.TotalMinutes)
	assert.InDelta(t, 55.0, resp.TotalCost, 1e-9)

	// one work center, one lookup
	mockStore.AssertNumberOfCalls(t, "GetWorkCenter", 1)
}

func TestEstimateTemplate_DependencyScalesTime(t *testing.T) {
	mockStore := new(MockTemplateStorage)

	ops := []storage.RoutingOperation{
		{ID: 1, WorkCenterID: 5, CalculationMethod: storage.MethodFixed, SetupTimeMinutes: 60},
	}
	deps := []storage.WorkCenterDependency{
		{ID: 3, DependentWorkCenterID: 5, DependencyType: storage.DependencySequential,
			TimeMultiplier: 1.5, IsActive: true},
	}

	mockStore.On("GetRoutingOperations", mock.Anything, int64(9)).Return(ops, nil)
	mockStore.On("GetWorkCenter", mock.Anything, int64(5)).Return(&storage.WorkCenter{ID: 5, HourlyRate: 60}, nil)
	mockStore.On("GetDependencies", mock.Anything, int64(5), mock.Anything).Return(deps, nil)

	rr := getTemplate(t, mockStore, "/api/estimate/routing-template/9")

	assert.Equal(t, http.StatusOK, rr.Code)

	var resp TemplateResponse
	err := render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp)
	require.NoError(t, err)

	assert.Equal(t, 90.0, resp.TotalMinutes)
	assert.InDelta(t, 90.0, resp.TotalCost, 1e-9)
}

func TestEstimateTemplate_EmptyTemplate(t *testing.T) {
	mockStore := new(MockTemplateStorage)
	mockStore.On("GetRoutingOperations", mock.Anything, int64(9)).Return([]storage.RoutingOperation{}, nil)

	rr := getTemplate(t, mockStore, "/api/estimate/routing-template/9")

	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestEstimateTemplate_CyclicChain(t *testing.T) {
	mockStore := new(MockTemplateStorage)

	first, second := int64(1), int64(2)
	ops := []storage.RoutingOperation{
		{ID: 1, WorkCenterID: 5, CalculationMethod: storage.MethodFixed, PreviousOperationID: &second},
		{ID: 2, WorkCenterID: 5, CalculationMethod: storage.MethodFixed, PreviousOperationID: &first},
	}
	mockStore.On("GetRoutingOperations", mock.Anything, int64(9)).Return(ops, nil)

	rr := getTemplate(t, mockStore, "/api/estimate/routing-template/9")

	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "cycle")
}
