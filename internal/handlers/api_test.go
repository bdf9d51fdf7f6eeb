package handlers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/hamagold/nti-admin/internal/ledger"
	"github.com/hamagold/nti-admin/internal/store"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
	}{
		{ledger.ErrValidation, http.StatusBadRequest},
		{ledger.ErrForbidden, http.StatusForbidden},
		{ledger.ErrPrecondition, http.StatusConflict},
		{ledger.ErrConflict, http.StatusConflict},
		{store.ErrDuplicate, http.StatusConflict},
		{store.ErrVersionConflict, http.StatusConflict},
		{store.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		respondError(c, fmt.Errorf("op failed: %w", tc.err))
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}
}
