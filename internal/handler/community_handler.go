package handler

import (
	"net/http"
	"strconv"

	"Supply_Library/internal/service"

	"github.com/gin-gonic/gin"
)

type CommunityHandler struct {
	svc        *service.CommunityService
	profileSvc *service.ProfileService
}

type CommunityCreateReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

func NewCommunityHandler(svc *service.CommunityService, profileSvc *service.ProfileService) *CommunityHandler {
	return &CommunityHandler{svc: svc, profileSvc: profileSvc}
}

func (h *CommunityHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req CommunityCreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	community, err := h.svc.Create(userID, req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, community)
}

// List 当前用户加入的社区
func (h *CommunityHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	list, err := h.svc.UserCommunities(userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *CommunityHandler) Detail(c *gin.Context) {
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	community, err := h.svc.Detail(c.Request.Context(), communityID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, community)
}

func (h *CommunityHandler) Join(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Join(c.Request.Context(), communityID, userID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CommunityHandler) Leave(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.svc.Leave(c.Request.Context(), communityID, userID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

func (h *CommunityHandler) Members(c *gin.Context) {
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	members, err := h.svc.Members(communityID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": members})
}

// UploadAvatar 社区头像，管理员专属
func (h *CommunityHandler) UploadAvatar(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	file, _, err := c.Request.FormFile("avatar")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "avatar file required"})
		return
	}
	defer file.Close()

	url, err := h.profileSvc.SaveCommunityAvatar(communityID, userID, file)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar_url": url})
}

func pathID(c *gin.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid id"})
		return 0, false
	}
	return id, true
}
