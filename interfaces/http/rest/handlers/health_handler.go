package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"novamarket/application/services"
	"novamarket/pkg/common"
	"novamarket/pkg/utils"
)

// HealthHandler reports API, store, and cache status
type HealthHandler struct {
	service *services.ProductService
	logger  *zap.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(service *services.ProductService, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		logger:  logger,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status        string `json:"status"`
	Message       string `json:"message"`
	Database      string `json:"database,omitempty"`
	Cache         string `json:"cache"`
	Timestamp     string `json:"timestamp"`
	ProductsCount *int64 `json:"productsCount,omitempty"`
}

// Health handles GET /api/health. The store check doubles as the liveness
// probe: a failing count means the database connection is down, 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	cacheStatus := "disabled"
	if h.service.CacheConnected() {
		cacheStatus = "connected"
	}

	count, err := h.service.Count(r.Context())
	if err != nil {
		h.logger.Error("Health check failed", zap.Error(err))
		common.RespondJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "error",
			Message:   "Database connection issue",
			Cache:     cacheStatus,
			Timestamp: utils.NowRFC3339(),
		})
		return
	}

	common.RespondJSON(w, http.StatusOK, HealthResponse{
		Status:        "ok",
		Message:       "Nova Marketplace API is running",
		Database:      "connected",
		Cache:         cacheStatus,
		Timestamp:     utils.NowRFC3339(),
		ProductsCount: &count,
	})
}
