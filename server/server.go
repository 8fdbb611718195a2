package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"goshortly/auth"
	"goshortly/controllers"
	"goshortly/middleware"
	"goshortly/shortener"
	"goshortly/tokens"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second
)

func NewRouter(authService *auth.Service, urlService *shortener.Service, issuer *tokens.Issuer, logger *zap.Logger, baseUrl string) *gin.Engine {
	router := gin.Default()
	router.HandleMethodNotAllowed = true

	health := new(controllers.HealthController)
	router.GET("/health", health.Status)

	authCtl := controllers.AuthController{
		Auth: authService,
		Log:  logger,
	}
	router.POST("/auth/register", withTimeout(authCtl.Register, defaultTimeout))
	router.POST("/auth/login", withTimeout(authCtl.Login, defaultTimeout))

	url := controllers.UrlController{
		Shortener: urlService,
		Log:       logger,
		BaseUrl:   strings.TrimRight(baseUrl, "/"),
	}
	router.POST("/shorten",
		middleware.Auth(issuer, middleware.Optional),
		withTimeout(url.Shorten, defaultTimeout))

	owned := router.Group("/urls", middleware.Auth(issuer, middleware.Required))
	owned.GET("", withTimeout(url.List, defaultTimeout))
	owned.PATCH("/:id", withTimeout(url.Update, defaultTimeout))
	owned.DELETE("/:id", withTimeout(url.Delete, defaultTimeout))

	router.GET("/:code", withTimeout(url.Redirect, defaultTimeout))

	return router
}

func withTimeout(handler gin.HandlerFunc, timeout time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		ch := make(chan struct{}, 1)
		go func() {
			defer func() {
				_ = gin.Recovery()
			}()
			handler(c)
			ch <- struct{}{}
		}()

		select {
		case <-ch:
			c.Next()
		case <-time.After(timeout):
			c.AbortWithStatus(http.StatusRequestTimeout)
			c.String(http.StatusRequestTimeout, http.StatusText(http.StatusRequestTimeout))
			return
		}
	}
}
