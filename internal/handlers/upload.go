package handlers

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"tailorhub/internal/storage"
)

const maxImageSize = 5 << 20

var allowedImageExtensions = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

var allowedUploadFolders = map[string]struct{}{
	"designs":  {},
	"fabrics":  {},
	"profiles": {},
}

// validateImageUpload checks size, extension and declared MIME type before
// any bytes leave for the object store.
func validateImageUpload(file *multipart.FileHeader) (string, error) {
	extension := strings.ToLower(filepath.Ext(file.Filename))
	if extension == "" {
		return "", fmt.Errorf("image file extension is required")
	}
	contentType, ok := allowedImageExtensions[extension]
	if !ok {
		return "", fmt.Errorf("unsupported image type: %s", extension)
	}
	if file.Size > maxImageSize {
		return "", fmt.Errorf("image file too large (max 5MB)")
	}
	if declared := file.Header.Get("Content-Type"); declared != "" && !strings.HasPrefix(declared, "image/") {
		return "", fmt.Errorf("file is not an image")
	}
	return contentType, nil
}

func uploadObjectKey(folder, extension string) string {
	return path.Join("uploads", folder, uuid.NewString()+extension)
}

/*
POST /uploads
- One file per request; the response carries the stable public URL the
  catalog or profile document should store.
*/
func UploadImage(store storage.ImageStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		const route = "POST /uploads"
		defer handlePanic(c, route)

		folder := strings.TrimSpace(c.PostForm("folder"))
		if folder == "" {
			folder = "designs"
		}
		if _, ok := allowedUploadFolders[folder]; !ok {
			respondWithError(c, http.StatusBadRequest, route, "invalid upload folder")
			return
		}

		file, err := c.FormFile("image")
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, "image file is required")
			return
		}

		contentType, err := validateImageUpload(file)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, route, err.Error())
			return
		}

		src, err := file.Open()
		if err != nil {
			log.Printf("[%s] open upload failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}
		defer src.Close()

		key := uploadObjectKey(folder, strings.ToLower(filepath.Ext(file.Filename)))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()

		url, err := store.Put(ctx, key, src, file.Size, contentType)
		if err != nil {
			log.Printf("[%s] object store put failed: %v", route, err)
			respondWithError(c, http.StatusInternalServerError, route, "upload failed")
			return
		}

		log.Printf("[%s] stored %s (%d bytes)", route, key, file.Size)
		c.JSON(http.StatusCreated, gin.H{
			"key": key,
			"url": url,
		})
	}
}
