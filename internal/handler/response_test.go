package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"Supply_Library/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFailStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not admin", service.ErrNotAdmin, http.StatusForbidden},
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"already member", service.ErrAlreadyMember, http.StatusConflict},
		{"pending invitation", service.ErrInvitationPending, http.StatusConflict},
		{"item already shared", service.ErrItemAlreadyShared, http.StatusConflict},
		{"closed invitation", service.ErrInvitationClosed, http.StatusBadRequest},
		{"anything else", errors.New("boom"), http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			fail(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
