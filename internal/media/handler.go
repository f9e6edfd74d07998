package media

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts media endpoints under the provided router group.
func RegisterRoutes(group *gin.RouterGroup, service *Service) {
	handler := &httpHandler{service: service}
	group.POST("/media/signed-urls", handler.signedURLs)
	group.DELETE("/media/files", handler.deleteFiles)
}

type httpHandler struct {
	service *Service
}

type fileRequest struct {
	Filename    string `json:"filename" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type signedURLsRequest struct {
	Files []fileRequest `json:"files" binding:"required,min=1,dive"`
}

type signedURLResponse struct {
	UploadURL string `json:"uploadUrl"`
	Key       string `json:"key"`
}

func (h *httpHandler) signedURLs(c *gin.Context) {
	var req signedURLsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid signed-urls payload"})
		return
	}

	files := make([]FileRequest, 0, len(req.Files))
	for _, f := range req.Files {
		files = append(files, FileRequest{Filename: f.Filename, ContentType: f.ContentType})
	}

	signed, err := h.service.SignedURLs(c.Request.Context(), files)
	if err != nil {
		if err == ErrEmptyBatch {
			c.JSON(http.StatusBadRequest, gin.H{"error": "files must not be empty"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate upload URLs"})
		return
	}

	resp := make([]signedURLResponse, 0, len(signed))
	for _, s := range signed {
		resp = append(resp, signedURLResponse{UploadURL: s.UploadURL, Key: s.Key})
	}

	c.JSON(http.StatusOK, resp)
}

func (h *httpHandler) deleteFiles(c *gin.Context) {
	raw := c.Query("keys")
	if strings.TrimSpace(raw) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "keys query parameter is required"})
		return
	}

	var keys []string
	for _, key := range strings.Split(raw, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}

	// Per-key outcomes are logged server-side only; the caller always
	// proceeds as though deletion succeeded.
	h.service.DeleteAll(c.Request.Context(), keys)

	c.Status(http.StatusNoContent)
}
