package handler

import (
	"net/http"
	"strconv"

	"Supply_Library/internal/service"

	"github.com/gin-gonic/gin"
)

type ItemHandler struct {
	svc *service.ItemService
}

func NewItemHandler(svc *service.ItemService) *ItemHandler {
	return &ItemHandler{svc: svc}
}

// CommunityItems 社区内全部共享物品
func (h *ItemHandler) CommunityItems(c *gin.Context) {
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	items, err := h.svc.CommunityItems(communityID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": items})
}

// SearchOwn 搜自己的物品；带 community_id 时排除已在该社区的
func (h *ItemHandler) SearchOwn(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	query := c.Query("q")
	var communityID uint64
	if s := c.Query("community_id"); s != "" {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid community_id"})
			return
		}
		communityID = id
	}

	items, err := h.svc.SearchUserItems(userID, query, communityID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": items})
}

// CreateInCommunity 建物品并共享到社区
func (h *ItemHandler) CreateInCommunity(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	communityID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var input service.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	item, err := h.svc.CreateItem(input, communityID, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreatePersonal 不共享的个人物品
func (h *ItemHandler) CreatePersonal(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var input service.CreateItemInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	item, err := h.svc.CreatePersonalItem(input, userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// Share 已有物品共享到社区
func (h *ItemHandler) Share(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	itemID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req struct {
		CommunityID uint64 `json:"community_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}

	if err := h.svc.AddItemToCommunity(itemID, req.CommunityID, userID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Accessible 可见物品：自己的 + 所在社区的
func (h *ItemHandler) Accessible(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.svc.AccessibleItems(userID, limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": items})
}

// Search 跨社区搜索，结果按物品ID去重
func (h *ItemHandler) Search(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))
	items, err := h.svc.SearchCommunityItems(userID, c.Query("q"), limit)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": items})
}
