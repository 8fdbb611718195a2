package controllers

import (
	"context"
	"errors"
	"net/http"

	"goshortly/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Identity is the slice of auth.Service the controller needs.
type Identity interface {
	Register(ctx context.Context, email, password, name string) (*auth.Session, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
}

type AuthController struct {
	Auth Identity
	Log  *zap.Logger
}

type registerReqData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name" binding:"required"`
}

type loginReqData struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (a AuthController) Register(c *gin.Context) {
	var req registerReqData
	if err := c.ShouldBindJSON(&req); err != nil {
		a.Log.Warn("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	session, err := a.Auth.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		if errors.Is(err, auth.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		a.Log.Error("register failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusCreated, sessionJSON(session))
}

func (a AuthController) Login(c *gin.Context) {
	var req loginReqData
	if err := c.ShouldBindJSON(&req); err != nil {
		a.Log.Warn("invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	session, err := a.Auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		a.Log.Error("login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	c.JSON(http.StatusOK, sessionJSON(session))
}

func sessionJSON(s *auth.Session) gin.H {
	return gin.H{
		"accessToken": s.Token,
		"user": gin.H{
			"id":    s.User.Id,
			"email": s.User.Email,
			"name":  s.User.Name,
		},
	}
}
