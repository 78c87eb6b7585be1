package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Laju-Ride-Hailing/service-rides/internal/application"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/auth"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/middleware"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/response"
)

// QuoteHandler handles HTTP requests for fare quotes.
type QuoteHandler struct {
	service *application.QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(service *application.QuoteService) *QuoteHandler {
	return &QuoteHandler{service: service}
}

// RegisterRoutes registers all quote routes on the given router group.
func (h *QuoteHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	quotes := r.Group("/api/v1/quotes")
	quotes.Use(authMW)
	{
		quotes.POST("", middleware.RequireRole(auth.RoleRider), h.GenerateQuote)
		quotes.GET("/:id", h.GetQuote)
	}
}

// GenerateQuote handles POST /api/v1/quotes.
func (h *QuoteHandler) GenerateQuote(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.GenerateQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.GenerateQuote(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// GetQuote handles GET /api/v1/quotes/:id. An expired quote and a quote that
// never existed return the same not-found error.
func (h *QuoteHandler) GetQuote(c *gin.Context) {
	quoteID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid quote ID")
		return
	}

	result, err := h.service.GetQuote(c.Request.Context(), quoteID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
