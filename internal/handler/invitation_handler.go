package handler

import (
	"net/http"

	"Supply_Library/internal/service"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	svc        *service.InvitationService
	profileSvc *service.ProfileService
}

type InviteReq struct {
	Email string `json:"email" binding:"required,email"`
}

type RespondReq struct {
	Accept *bool `json:"accept" binding:"required"`
}

func NewInvitationHandler(svc *service.InvitationService, profileSvc *service.ProfileService) *InvitationHandler {
	return &InvitationHandler{svc: svc, profileSvc: profileSvc}
}

// Invite 管理员给某个邮箱发社区邀请
func (h *InvitationHandler) Invite(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req InviteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	inv, err := h.svc.Invite(communityID, userID, req.Email)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}

// CommunityList 某社区的全部邀请，管理员可见
func (h *InvitationHandler) CommunityList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	list, err := h.svc.CommunityInvitations(communityID, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

// MyList 当前用户邮箱收到的 pending 邀请
func (h *InvitationHandler) MyList(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	profile, err := h.profileSvc.Get(userID)
	if err != nil {
		fail(c, err)
		return
	}

	list, err := h.svc.UserInvitations(profile.Email)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Respond 接受或拒绝邀请
func (h *InvitationHandler) Respond(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	invitationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req RespondReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	inv, err := h.svc.Respond(invitationID, userID, *req.Accept)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, inv)
}
