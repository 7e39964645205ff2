package handler

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"storecatalog/catalog-service/internal/app/catalog/config"
	"storecatalog/catalog-service/internal/app/catalog/entity"
	"storecatalog/catalog-service/internal/app/catalog/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var testCORS = config.CORSConfig{AllowedOrigins: []string{"http://localhost:3001"}}

func setupTestRouter() http.Handler {
	handler, _, _, _ := setupTestHandler()
	return SetupRoutes(handler, testCORS)
}

func TestRouter_Health(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok", "service": "catalog-service"}`, w.Body.String())
}

func TestRouter_Greeting(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "Hello World"))
}

func TestRouter_Metrics(t *testing.T) {
	router := setupTestRouter()

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestRouter_CategoryLifecycleScenarios(t *testing.T) {
	handler, categoryRepo, productRepo, publisher := setupTestHandler()
	router := SetupRoutes(handler, testCORS)

	categoryRepo.On("Create", mock.Anything, entity.NewCategory{Name: "Books"}).Return(newTestCategory(1, "Books"), nil)
	categoryRepo.On("Delete", mock.Anything, int64(1)).Return(nil, repository.ErrCategoryHasProducts)
	productRepo.On("Update", mock.Anything, int64(1), []entity.Column{}).Return(nil, repository.ErrNoFieldsToUpdate)
	publisher.On("PublishMessage", mock.Anything, "category:1", mock.Anything).Return(nil)

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "create category",
			method:     http.MethodPost,
			path:       "/api/categories",
			body:       `{"name": "Books"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "empty product update",
			method:     http.MethodPut,
			path:       "/api/products/1",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success": false, "message": "No fields to update"}`,
		},
		{
			name:       "delete category with products",
			method:     http.MethodDelete,
			path:       "/api/categories/1",
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"success": false, "message": "Cannot delete category with associated products"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, w.Body.String())
			} else {
				assert.Contains(t, w.Body.String(), `"message":"Category created successfully"`)
				assert.Contains(t, w.Body.String(), `"success":true`)
			}
			assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		})
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	router := setupTestRouter()

	req := httptest.NewRequest(http.MethodOptions, "/api/products", nil)
	req.Header.Set("Origin", "http://localhost:3001")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	assert.Equal(t, "http://localhost:3001", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_NoOriginsSkipsCORS(t *testing.T) {
	handler, _, _, _ := setupTestHandler()

	assert.NotPanics(t, func() {
		SetupRoutes(handler, config.CORSConfig{})
	})
}
