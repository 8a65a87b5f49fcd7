package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"school_transport/internal/storage"
)

// MaxUploadSize is the largest accepted document, in bytes.
const MaxUploadSize = 10 << 20

const uploadCacheControl = "public, max-age=31536000, immutable"

type UploadController struct {
	store storage.Store
	now   func() time.Time
}

func NewUploadController(store storage.Store) *UploadController {
	return &UploadController{store: store, now: time.Now}
}

// Serve streams a stored document. Paths escaping the upload root are
// refused with 403.
func (u *UploadController) Serve(c *gin.Context) {
	obj, err := u.store.Open(c.Request.Context(), c.Param("filepath"))
	if err != nil {
		switch err {
		case storage.ErrOutsideRoot:
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		case storage.ErrNotExist:
			c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		default:
			respondError(c, err)
		}
		return
	}
	defer obj.Body.Close()

	c.DataFromReader(http.StatusOK, obj.Size, obj.ContentType, obj.Body, map[string]string{
		"Cache-Control": uploadCacheControl,
	})
}

// Upload stores a driver document sent as the multipart "file" field and
// returns its key under documents/.
func (u *UploadController) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if header.Size > MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("file exceeds %d MB", MaxUploadSize>>20)})
		return
	}
	if !storage.IsAllowedExt(header.Filename) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "only jpg, jpeg, png, gif, webp and pdf files are allowed"})
		return
	}

	file, err := header.Open()
	if err != nil {
		respondError(c, err)
		return
	}
	defer file.Close()

	name := filepath.Base(header.Filename)
	key := fmt.Sprintf("documents/%d_%s%s", u.now().Unix(), uuid.NewString(), filepath.Ext(name))
	if err := u.store.Save(c.Request.Context(), key, file, header.Size, storage.ContentType(name)); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"path": key,
		"url":  "/uploads/" + key,
	})
}
