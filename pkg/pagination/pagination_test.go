package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func contextWithQuery(query string) *gin.Context {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/?"+query, nil)
	return c
}

func TestParse(t *testing.T) {
	tests := []struct {
		query string
		want  Params
	}{
		{"", Params{Page: 1, Limit: 20, Offset: 0}},
		{"page=3&limit=10", Params{Page: 3, Limit: 10, Offset: 20}},
		{"page=0&limit=0", Params{Page: 1, Limit: 20, Offset: 0}},
		{"page=abc&limit=-5", Params{Page: 1, Limit: 20, Offset: 0}},
		{"limit=1000", Params{Page: 1, Limit: 100, Offset: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(contextWithQuery(tt.query)))
		})
	}
}

func TestParseWithDefault(t *testing.T) {
	assert.Equal(t, 50, ParseWithDefault(contextWithQuery(""), AuditDefaultLimit).Limit)
	assert.Equal(t, 5, ParseWithDefault(contextWithQuery("limit=5"), AuditDefaultLimit).Limit)
}
