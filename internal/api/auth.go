package api

import (
	"net/http"

	"bakked-marketing/internal/config"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	Config *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{Config: cfg}
}

type AuthRequest struct {
	Password string `json:"password" binding:"required"`
}

// VerifyPassword checks the shared CRM password.
func (h *AuthHandler) VerifyPassword(c *gin.Context) {
	var req AuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if h.Config.AppPassword == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Password not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"valid": req.Password == h.Config.AppPassword})
}
