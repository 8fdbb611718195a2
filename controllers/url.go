package controllers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"goshortly/middleware"
	"goshortly/models"
	"goshortly/shortener"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UrlManager is the slice of shortener.Service the controller needs.
type UrlManager interface {
	Create(ctx context.Context, rawUrl string, ownerId *string) (*models.Url, error)
	Resolve(ctx context.Context, code string) (string, error)
	ListForOwner(ctx context.Context, ownerId string) ([]models.Url, error)
	Update(ctx context.Context, id, rawUrl, requesterId string) (*models.Url, error)
	Delete(ctx context.Context, id, requesterId string) (*models.Url, error)
}

type UrlController struct {
	Shortener UrlManager
	Log       *zap.Logger
	// BaseUrl is the public origin that short codes are appended to.
	BaseUrl string
}

type urlReqData struct {
	LongUrl string `json:"longUrl" binding:"required"`
}

func (u UrlController) Shorten(c *gin.Context) {
	var req urlReqData
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Log.Warn("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	var ownerId *string
	if id, ok := middleware.Subject(c); ok {
		ownerId = &id
	}
	record, err := u.Shortener.Create(c.Request.Context(), req.LongUrl, ownerId)
	if err != nil {
		if errors.Is(err, shortener.ErrInvalidFormat) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid URL format"})
			return
		}
		u.Log.Error("create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, u.recordJSON(record))
}

func (u UrlController) List(c *gin.Context) {
	ownerId, ok := middleware.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	records, err := u.Shortener.ListForOwner(c.Request.Context(), ownerId)
	if err != nil {
		u.Log.Error("list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	out := make([]gin.H, 0, len(records))
	for i := range records {
		out = append(out, u.recordJSON(&records[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (u UrlController) Update(c *gin.Context) {
	requesterId, ok := middleware.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	var req urlReqData
	if err := c.ShouldBindJSON(&req); err != nil {
		u.Log.Warn("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	record, err := u.Shortener.Update(c.Request.Context(), c.Param("id"), req.LongUrl, requesterId)
	if err != nil {
		u.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.recordJSON(record))
}

func (u UrlController) Delete(c *gin.Context) {
	requesterId, ok := middleware.Subject(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	record, err := u.Shortener.Delete(c.Request.Context(), c.Param("id"), requesterId)
	if err != nil {
		u.writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, u.recordJSON(record))
}

func (u UrlController) Redirect(c *gin.Context) {
	longUrl, err := u.Shortener.Resolve(c.Request.Context(), c.Param("code"))
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "url not found"})
			return
		}
		u.Log.Error("resolve failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	// 302, not 301: clients must keep coming back so clicks stay countable.
	c.Redirect(http.StatusFound, longUrl)
}

func (u UrlController) writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, shortener.ErrInvalidFormat):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid URL format"})
	case errors.Is(err, shortener.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "url not found"})
	case errors.Is(err, shortener.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "not allowed"})
	default:
		u.Log.Error("url operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func (u UrlController) recordJSON(record *models.Url) gin.H {
	return gin.H{
		"id":        record.Id,
		"longUrl":   record.LongUrl,
		"shortUrl":  fmt.Sprintf("%s/%s", u.BaseUrl, record.ShortCode),
		"ownerId":   record.OwnerId,
		"clicks":    record.Clicks,
		"createdAt": record.CreatedAt,
		"updatedAt": record.UpdatedAt,
	}
}
