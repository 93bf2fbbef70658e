package api

import (
	"io"
	"log"
	"net/http"
	"strings"

	"bakked-marketing/internal/storage"
	"bakked-marketing/internal/store"

	"github.com/gin-gonic/gin"
)

type MediaHandler struct {
	Storage *storage.SupabaseStorage
	Media   store.MediaStore
}

func NewMediaHandler(stor *storage.SupabaseStorage, media store.MediaStore) *MediaHandler {
	return &MediaHandler{Storage: stor, Media: media}
}

// UploadMedia stores an image or video and returns its public URL.
func (h *MediaHandler) UploadMedia(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") && !strings.HasPrefix(contentType, "video/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only image and video files are allowed"})
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to read file"})
		return
	}

	publicURL, err := h.Storage.Upload(c.Request.Context(), data, header.Filename, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload file"})
		return
	}

	if dbErr := h.Media.Save(c.Request.Context(), publicURL); dbErr != nil {
		log.Printf("Media record skipped: %v", dbErr)
	}

	c.JSON(http.StatusOK, gin.H{"storage_url": publicURL, "filename": header.Filename})
}
