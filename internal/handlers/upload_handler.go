package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/arefin88/pulse/backend/pkg/firebase"
	"github.com/labstack/echo/v4"
)

const maxUploadSize = 2 << 20 // 2MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// UploadHandler handles image uploads to object storage
type UploadHandler struct {
	uploader        firebase.Uploader
	avatarBucket    string
	postImageBucket string
}

// NewUploadHandler creates a new UploadHandler
func NewUploadHandler(uploader firebase.Uploader, avatarBucket, postImageBucket string) *UploadHandler {
	return &UploadHandler{
		uploader:        uploader,
		avatarBucket:    avatarBucket,
		postImageBucket: postImageBucket,
	}
}

// RegisterUploadRoutes registers the upload route
func (h *UploadHandler) RegisterUploadRoutes(g *echo.Group) {
	g.POST("/upload", h.Upload)
}

// Upload accepts a multipart image file of at most 2MB and stores it in the
// bucket named by the "bucket" form field (avatars or posts).
func (h *UploadHandler) Upload(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}
	if fileHeader.Size > maxUploadSize {
		return echo.NewHTTPError(http.StatusBadRequest, "File exceeds the 2MB limit")
	}

	var bucket string
	switch c.FormValue("bucket") {
	case "avatars":
		bucket = h.avatarBucket
	case "posts", "":
		bucket = h.postImageBucket
	default:
		return echo.NewHTTPError(http.StatusBadRequest, "Unknown bucket")
	}

	src, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to read uploaded file")
	}
	defer src.Close()

	// Sniff the MIME type from content rather than trusting the header
	buf := make([]byte, 512)
	n, err := src.Read(buf)
	if err != nil && n == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "Failed to read uploaded file")
	}
	contentType := http.DetectContentType(buf[:n])
	if !allowedImageTypes[contentType] {
		return echo.NewHTTPError(http.StatusBadRequest, "Only image uploads are allowed")
	}
	if _, err := src.Seek(0, 0); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to rewind uploaded file")
	}

	objectName := fmt.Sprintf("%d/%d%s", currentUserID, time.Now().UnixNano(),
		strings.ToLower(filepath.Ext(fileHeader.Filename)))

	url, err := h.uploader.Upload(c.Request().Context(), bucket, objectName, contentType, src)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Upload failed")
	}

	return c.JSON(http.StatusCreated, echo.Map{"url": url})
}
