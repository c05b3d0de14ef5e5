package handler

import (
	"net/http"

	"Supply_Library/internal/service"

	"github.com/gin-gonic/gin"
)

type EmailHandler struct {
	svc *service.EmailService
}

type SendCodeReq struct {
	Email string `json:"email" binding:"required,email"`
}

func NewEmailHandler(svc *service.EmailService) *EmailHandler {
	return &EmailHandler{svc: svc}
}

// SendCode scope 从路径取，register/reset 以外拒绝
func (h *EmailHandler) SendCode(c *gin.Context) {
	var req SendCodeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	switch c.Param("scope") {
	case service.ScopeRegister:
		if err := h.svc.SendRegisterCode(req.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
	case service.ScopeReset:
		if err := h.svc.SendResetCode(req.Email); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid scope"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "send code successfully"})
}
