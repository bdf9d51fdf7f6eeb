package handlers

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func testContext(t *testing.T, url string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", url, nil)
	return c
}

func TestPageParams(t *testing.T) {
	page, size := pageParams(testContext(t, "/api/students?page=3&pageSize=50"))
	assert.Equal(t, 3, page)
	assert.Equal(t, 50, size)

	// Defaults and clamping.
	page, size = pageParams(testContext(t, "/api/students"))
	assert.Equal(t, 1, page)
	assert.Equal(t, DefaultPageSize, size)

	page, size = pageParams(testContext(t, "/api/students?page=-2&pageSize=9999"))
	assert.Equal(t, 1, page)
	assert.Equal(t, MaxPageSize, size)
}

func TestCreatePaginatedResponse(t *testing.T) {
	c := testContext(t, "/api/students?page=2&pageSize=10")

	resp := CreatePaginatedResponse(c, []string{"a", "b"}, 25)
	assert.Equal(t, int64(25), resp.TotalRows)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Equal(t, 2, resp.CurrentPage)
	assert.Equal(t, 10, resp.PageSize)

	empty := CreatePaginatedResponse(c, nil, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
