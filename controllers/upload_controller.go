package controllers

import (
	"fmt"
	"log"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const maxUploadBytes = 5 << 20 // 5MB

var allowedImageExts = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
}

type UploadController struct {
	uploadDir string
}

func NewUploadController(uploadDir string) *UploadController {
	return &UploadController{uploadDir: uploadDir}
}

// HandleUpload stores the multipart "image" field under the upload
// directory and returns the /uploads/ reference the chat endpoint accepts.
func (ct *UploadController) HandleUpload(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file provided"})
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExts[ext] {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only .png, .jpg and .gif format allowed!"})
		return
	}
	if file.Size > maxUploadBytes {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image must be smaller than 5MB"})
		return
	}

	filename := fmt.Sprintf("%d%s", time.Now().UnixMilli(), ext)
	if err := c.SaveUploadedFile(file, filepath.Join(ct.uploadDir, filename)); err != nil {
		log.Printf("Error saving upload: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"filename": filename,
		"path":     "/uploads/" + filename,
	})
}
