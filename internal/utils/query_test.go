package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yukikurage/foodgram-api/internal/constants"
)

func contextWithQuery(query string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/api/users/subscriptions?"+query, nil)
	return c
}

func TestGetRecipesLimit(t *testing.T) {
	tests := []struct {
		query string
		want  int
	}{
		{"recipes_limit=1", 1},
		{"recipes_limit=25", 25},
		{"recipes_limit=0", 0},
		{"recipes_limit=abc", constants.NoLimit},
		{"recipes_limit=-3", constants.NoLimit},
		{"", constants.NoLimit},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, GetRecipesLimit(contextWithQuery(tt.query)))
		})
	}
}

func TestGetBoolFlag(t *testing.T) {
	assert.True(t, GetBoolFlag(contextWithQuery("is_favorited=1"), constants.QueryIsFavorited))
	assert.True(t, GetBoolFlag(contextWithQuery("is_favorited=true"), constants.QueryIsFavorited))
	assert.False(t, GetBoolFlag(contextWithQuery("is_favorited=0"), constants.QueryIsFavorited))
	assert.False(t, GetBoolFlag(contextWithQuery(""), constants.QueryIsFavorited))
}

func TestParseID(t *testing.T) {
	id, ok := ParseID("42")
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	_, ok = ParseID("0")
	assert.False(t, ok)
	_, ok = ParseID("abc")
	assert.False(t, ok)
}
