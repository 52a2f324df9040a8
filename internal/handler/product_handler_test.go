package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stocktrack/internal/category"
	"stocktrack/internal/inventory"
	"stocktrack/internal/model"
	"stocktrack/internal/store"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecordStore is a mock implementation of store.RecordStore.
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) ListAll(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *MockRecordStore) Create(ctx context.Context, p model.Product) (string, error) {
	args := m.Called(ctx, p)
	return args.String(0), args.Error(1)
}

func (m *MockRecordStore) Replace(ctx context.Context, id string, p model.Product) error {
	args := m.Called(ctx, id, p)
	return args.Error(0)
}

func (m *MockRecordStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// nopNotifier drops notifications in handler tests.
type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

func newLoadedHandler(t *testing.T, mockStore *MockRecordStore, products []model.Product) (*ProductHandler, *category.Registry) {
	t.Helper()

	mockStore.On("ListAll", mock.Anything).Return(products, nil)
	inv := inventory.New(mockStore, nopNotifier{}, model.DefaultLowStockThreshold, zerolog.Nop())
	require.NoError(t, inv.Load(context.Background()))

	registry := category.NewRegistry(nil)
	registry.MergeProducts(products)

	return NewProductHandler(inv, registry, zerolog.Nop()), registry
}

func testProducts() []model.Product {
	return []model.Product{
		{ID: "1", Name: "Widget", Code: "W-1", Price: 5, Quantity: 2, LowStockThreshold: 5, Category: "Tools"},
		{ID: "2", Name: "Gadget", Code: "G-7", Price: 8, Quantity: 10, LowStockThreshold: 5, Category: "Tools"},
		{ID: "3", Name: "Sponge", Code: "S-2", Price: 1, Quantity: 30, LowStockThreshold: 5, Category: "Cleaning"},
	}
}

func TestProductHandler_List(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		products      []model.Product
		expectedIDs   []string
		expectedState string
		expectedTotal int
	}{
		{
			name:          "No filters returns everything in order",
			query:         "",
			products:      testProducts(),
			expectedIDs:   []string{"1", "2", "3"},
			expectedState: ListStateOK,
			expectedTotal: 3,
		},
		{
			name:          "Case-insensitive search on name",
			query:         "?search=widget",
			products:      testProducts(),
			expectedIDs:   []string{"1"},
			expectedState: ListStateOK,
			expectedTotal: 3,
		},
		{
			name:          "Case-insensitive search on code",
			query:         "?search=w-1",
			products:      testProducts(),
			expectedIDs:   []string{"1"},
			expectedState: ListStateOK,
			expectedTotal: 3,
		},
		{
			name:          "Category filter",
			query:         "?category=Tools",
			products:      testProducts(),
			expectedIDs:   []string{"1", "2"},
			expectedState: ListStateOK,
			expectedTotal: 3,
		},
		{
			name:          "No results is distinct from empty catalogue",
			query:         "?search=zzz",
			products:      testProducts(),
			expectedIDs:   []string{},
			expectedState: ListStateNoResults,
			expectedTotal: 3,
		},
		{
			name:          "Empty catalogue",
			query:         "",
			products:      nil,
			expectedIDs:   []string{},
			expectedState: ListStateEmpty,
			expectedTotal: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _ := newLoadedHandler(t, new(MockRecordStore), tt.products)

			req := httptest.NewRequest(http.MethodGet, "/api/products"+tt.query, nil)
			rec := httptest.NewRecorder()

			h.List(rec, req)

			require.Equal(t, http.StatusOK, rec.Code)

			var resp ProductListResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

			ids := make([]string, 0, len(resp.Products))
			for _, p := range resp.Products {
				ids = append(ids, p.ID)
			}
			assert.Equal(t, tt.expectedIDs, ids)
			assert.Equal(t, tt.expectedState, resp.State)
			assert.Equal(t, tt.expectedTotal, resp.Total)
		})
	}
}

func TestProductHandler_List_MethodNotAllowed(t *testing.T) {
	h, _ := newLoadedHandler(t, new(MockRecordStore), testProducts())

	req := httptest.NewRequest(http.MethodPost, "/api/products", nil)
	rec := httptest.NewRecorder()

	h.List(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	var resp model.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeMethodNotAllowed, resp.Error)
}

func TestProductHandler_LowStock(t *testing.T) {
	h, _ := newLoadedHandler(t, new(MockRecordStore), testProducts())

	req := httptest.NewRequest(http.MethodGet, "/api/products/low-stock", nil)
	rec := httptest.NewRecorder()

	h.LowStock(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var low []model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &low))
	require.Len(t, low, 1)
	assert.Equal(t, "1", low[0].ID)
}

func TestProductHandler_GetByID(t *testing.T) {
	h, _ := newLoadedHandler(t, new(MockRecordStore), testProducts())

	req := httptest.NewRequest(http.MethodGet, "/api/products/1", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req, "1")

	require.Equal(t, http.StatusOK, rec.Code)

	var p model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "Widget", p.Name)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	h, _ := newLoadedHandler(t, new(MockRecordStore), testProducts())

	req := httptest.NewRequest(http.MethodGet, "/api/products/missing", nil)
	rec := httptest.NewRecorder()

	h.GetByID(rec, req, "missing")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_Create(t *testing.T) {
	mockStore := new(MockRecordStore)
	mockStore.On("Create", mock.Anything, mock.Anything).Return("new-id", nil)
	h, registry := newLoadedHandler(t, mockStore, nil)

	body := `{"name":"Juice","code":"J-1","price":2.5,"quantity":6,"category":"Drinks","imageUrl":"https://example.com/j.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var p model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, "new-id", p.ID)
	assert.Equal(t, model.DefaultLowStockThreshold, p.LowStockThreshold)

	// The new category is now registered for filtering.
	assert.True(t, registry.Contains("Drinks"))
	mockStore.AssertExpectations(t)
}

func TestProductHandler_Create_ValidationRejectedBeforeStore(t *testing.T) {
	mockStore := new(MockRecordStore)
	h, _ := newLoadedHandler(t, mockStore, nil)

	body := `{"name":"","code":"J-1","price":2.5,"quantity":6,"category":"Drinks","imageUrl":"https://example.com/j.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp validationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, model.ErrCodeValidation, resp.Error)
	require.Len(t, resp.Fields, 1)
	assert.Equal(t, "name", resp.Fields[0].Field)

	mockStore.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductHandler_Create_InvalidJSON(t *testing.T) {
	h, _ := newLoadedHandler(t, new(MockRecordStore), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProductHandler_Create_StoreFailure(t *testing.T) {
	mockStore := new(MockRecordStore)
	mockStore.On("Create", mock.Anything, mock.Anything).
		Return("", &store.WriteError{Op: "create", Err: assert.AnError})
	h, _ := newLoadedHandler(t, mockStore, nil)

	body := `{"name":"Juice","code":"J-1","price":2.5,"quantity":6,"category":"Drinks","imageUrl":"https://example.com/j.jpg"}`
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Create(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestProductHandler_Update(t *testing.T) {
	mockStore := new(MockRecordStore)
	mockStore.On("Replace", mock.Anything, "1", mock.Anything).Return(nil)
	h, _ := newLoadedHandler(t, mockStore, testProducts())

	body := `{"name":"Widget","code":"W-1","price":5,"quantity":4,"lowStockThreshold":5,"category":"Tools","imageUrl":"https://example.com/w.jpg"}`
	req := httptest.NewRequest(http.MethodPut, "/api/products/1", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Update(rec, req, "1")

	require.Equal(t, http.StatusOK, rec.Code)

	var p model.Product
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	assert.Equal(t, 4, p.Quantity)
}

func TestProductHandler_Update_TargetVanished(t *testing.T) {
	mockStore := new(MockRecordStore)
	mockStore.On("Replace", mock.Anything, "1", mock.Anything).
		Return(&store.NotFoundError{ID: "1"})
	h, _ := newLoadedHandler(t, mockStore, testProducts())

	body := `{"name":"Widget","code":"W-1","price":5,"quantity":4,"category":"Tools","imageUrl":"https://example.com/w.jpg"}`
	req := httptest.NewRequest(http.MethodPut, "/api/products/1", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.Update(rec, req, "1")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProductHandler_Delete(t *testing.T) {
	mockStore := new(MockRecordStore)
	mockStore.On("Delete", mock.Anything, "1").Return(nil)
	h, _ := newLoadedHandler(t, mockStore, testProducts())

	req := httptest.NewRequest(http.MethodDelete, "/api/products/1", nil)
	rec := httptest.NewRecorder()

	h.Delete(rec, req, "1")

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProductHandler_RejectsWhileBusy(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})

	mockStore := new(MockRecordStore)
	mockStore.On("Create", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		close(entered)
		<-release
	}).Return("slow-id", nil)
	h, _ := newLoadedHandler(t, mockStore, nil)

	body := `{"name":"Juice","code":"J-1","price":2.5,"quantity":6,"category":"Drinks","imageUrl":"https://example.com/j.jpg"}`

	first := make(chan struct{})
	go func() {
		defer close(first)
		req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
		rec := httptest.NewRecorder()
		h.Create(rec, req)
		assert.Equal(t, http.StatusCreated, rec.Code)
	}()

	<-entered

	// A second mutation while the first store call is outstanding is
	// turned away, mirroring the disabled submit button.
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(release)
	<-first
}
