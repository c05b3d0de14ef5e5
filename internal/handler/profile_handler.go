package handler

import (
	"net/http"

	"Supply_Library/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	svc *service.ProfileService
}

func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

// Me 当前用户的 profile，缺失时惰性创建
func (h *ProfileHandler) Me(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.svc.Get(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req struct {
		FullName string `json:"full_name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.Update(userID, req.FullName); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "avatar file required"})
		return
	}
	defer file.Close()

	url, err := h.svc.SaveAvatar(userID, file)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}
