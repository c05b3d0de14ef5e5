package handler

import (
	"net/http"

	"Supply_Library/internal/service"

	"github.com/gin-gonic/gin"
)

type SheetHandler struct {
	svc *service.SheetService
}

func NewSheetHandler(svc *service.SheetService) *SheetHandler {
	return &SheetHandler{svc: svc}
}

// Items 旧版表格导入的只读物品清单
func (h *SheetHandler) Items(c *gin.Context) {
	if !h.svc.Enabled() {
		c.JSON(http.StatusNotFound, gin.H{"msg": "sheet import not configured"})
		return
	}

	items, err := h.svc.FetchItems(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"msg": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"list": items})
}
