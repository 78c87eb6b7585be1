package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/Laju-Ride-Hailing/service-rides/internal/application"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/auth"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/middleware"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/response"
)

// AdminPricingHandler handles admin HTTP requests for pricing management.
type AdminPricingHandler struct {
	service *application.PricingService
}

// NewAdminPricingHandler creates a new AdminPricingHandler.
func NewAdminPricingHandler(service *application.PricingService) *AdminPricingHandler {
	return &AdminPricingHandler{service: service}
}

// RegisterRoutes registers admin pricing routes.
func (h *AdminPricingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminRole)
	{
		admin.POST("/pricing-configs", h.CreateConfig)
		admin.GET("/pricing-configs", h.ListConfigs)
	}
}

// CreateConfig handles POST /api/v1/admin/pricing-configs.
func (h *AdminPricingHandler) CreateConfig(c *gin.Context) {
	var req application.CreatePricingConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateConfig(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListConfigs handles GET /api/v1/admin/pricing-configs.
func (h *AdminPricingHandler) ListConfigs(c *gin.Context) {
	page, limit := parsePagination(c)

	configs, total, err := h.service.ListConfigs(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, configs, total, page, limit)
}
