package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func queryContext(rawQuery string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+rawQuery, nil)
	return c
}

func TestFromContextDefaults(t *testing.T) {
	q := FromContext(queryContext(""))
	assert.Equal(t, Query{Page: 1, Size: 20}, q)
}

func TestFromContextPageSize(t *testing.T) {
	q := FromContext(queryContext("page=3&size=50"))
	assert.Equal(t, Query{Page: 3, Size: 50}, q)
}

func TestFromContextClamps(t *testing.T) {
	q := FromContext(queryContext("page=0&size=9999"))
	assert.Equal(t, Query{Page: 1, Size: MaxSize}, q)

	q = FromContext(queryContext("page=abc&size=-1"))
	assert.Equal(t, Query{Page: 1, Size: DefaultSize}, q)
}

func TestFromContextLimitOffset(t *testing.T) {
	q := FromContext(queryContext("limit=10&offset=30"))
	assert.Equal(t, Query{Page: 4, Size: 10}, q)

	q = FromContext(queryContext("limit=10"))
	assert.Equal(t, Query{Page: 1, Size: 10}, q)

	q = FromContext(queryContext("limit=10&offset=-5"))
	assert.Equal(t, Query{Page: 1, Size: 10}, q)
}
