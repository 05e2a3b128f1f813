// Package api exposes rendered walls over HTTP.
package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vkfeed/vkfeed/internal/feed"
	"github.com/vkfeed/vkfeed/internal/models"
	"github.com/vkfeed/vkfeed/internal/vk"
	"github.com/vkfeed/vkfeed/internal/wall"
	"github.com/vkfeed/vkfeed/pkg/logging"
)

// WallReader reads a profile's wall into feed items.
type WallReader interface {
	Read(ctx context.Context, profileName string, opts wall.ReadOptions) (*models.Wall, error)
}

// Router sets up API routes
type Router struct {
	reader WallReader
	logger *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(reader WallReader) *Router {
	return &Router{
		reader: reader,
		logger: logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.GET("/health", r.healthHandler)
	engine.GET("/feed/:profile", r.feedHandler)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "vkfeed",
	})
}

// feedHandler serves a profile's wall as an RSS document
func (r *Router) feedHandler(c *gin.Context) {
	profile := c.Param("profile")

	opts := wall.ReadOptions{}
	var err error
	if opts.ForeignPosts, err = boolQuery(c, "foreign_posts"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "foreign_posts must be a boolean"})
		return
	}
	if opts.ShowPhoto, err = boolQuery(c, "show_photo"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "show_photo must be a boolean"})
		return
	}

	result, err := r.reader.Read(c.Request.Context(), profile, opts)
	if err != nil {
		r.sendError(c, profile, err)
		return
	}

	body, err := feed.Render(result)
	if err != nil {
		r.logger.Error("Failed to render feed", zap.String("profile", profile), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render feed"})
		return
	}

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", body)
}

func (r *Router) sendError(c *gin.Context, profile string, err error) {
	var serverErr *vk.ServerError
	if errors.As(err, &serverErr) {
		status := http.StatusBadGateway
		if serverErr.Code == vk.ErrCodeInvalidUser {
			status = http.StatusNotFound
		}

		r.logger.Warn("Wall read rejected upstream",
			zap.String("profile", profile),
			zap.Int("code", serverErr.Code),
			zap.String("message", serverErr.Message))

		c.JSON(status, gin.H{"error": serverErr.Message})
		return
	}

	var connErr *vk.ConnectionError
	if errors.As(err, &connErr) {
		r.logger.Error("Upstream API unreachable", zap.String("profile", profile), zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream API unreachable"})
		return
	}

	r.logger.Error("Wall read failed", zap.String("profile", profile), zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func boolQuery(c *gin.Context, name string) (bool, error) {
	value := c.Query(name)
	if value == "" {
		return false, nil
	}
	return strconv.ParseBool(value)
}
