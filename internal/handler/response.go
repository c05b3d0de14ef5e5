package handler

import (
	"errors"
	"net/http"

	"Supply_Library/internal/middleware"
	"Supply_Library/internal/service"

	"github.com/gin-gonic/gin"
)

// fail 按哨兵错误映射状态码，其余一律 400
func fail(c *gin.Context, err error) {
	status := http.StatusBadRequest
	switch {
	case errors.Is(err, service.ErrNotAdmin):
		status = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAlreadyMember),
		errors.Is(err, service.ErrInvitationPending),
		errors.Is(err, service.ErrItemAlreadyShared):
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

func currentUser(c *gin.Context) (uint64, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized"})
	}
	return id, ok
}
