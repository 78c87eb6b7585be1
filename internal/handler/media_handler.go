package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Laju-Ride-Hailing/service-rides/internal/media"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/auth"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/middleware"
	"github.com/Laju-Ride-Hailing/service-rides/pkg/response"
)

// maxUploadBytes caps accepted upload size at 10 MiB.
const maxUploadBytes = 10 << 20

// MediaHandler handles file uploads to the external media host.
type MediaHandler struct {
	uploader media.Uploader
}

// NewMediaHandler creates a new MediaHandler.
func NewMediaHandler(uploader media.Uploader) *MediaHandler {
	return &MediaHandler{uploader: uploader}
}

// RegisterRoutes registers the media routes on the given router group.
func (h *MediaHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)

	m := r.Group("/api/v1/media")
	m.Use(authMW)
	{
		m.POST("", h.Upload)
	}
}

// Upload handles POST /api/v1/media with a multipart "file" field and
// returns the hosted URL.
func (h *MediaHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBytes)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "failed to read uploaded file")
		return
	}
	defer file.Close()

	url, err := h.uploader.Upload(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{"url": url})
}
