package router

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type queryRequest struct {
	TopicID string `json:"topic_id"`
	Offset  int    `json:"offset"`
	Deleted bool   `json:"deleted"`
	Skipped string `json:"-"`
}

func TestBindQuery(t *testing.T) {
	r := httptest.NewRequest("GET",
		"/getTopic?topic_id=abc&offset=10&deleted=true&ignored=x", nil)

	var req queryRequest
	require.NoError(t, bindQuery(r, &req))
	require.Equal(t, "abc", req.TopicID)
	require.Equal(t, 10, req.Offset)
	require.True(t, req.Deleted)
	require.Empty(t, req.Skipped)
}

func TestBindQuery_InvalidNumber(t *testing.T) {
	r := httptest.NewRequest("GET", "/getTopic?offset=ten", nil)

	var req queryRequest
	require.Error(t, bindQuery(r, &req))
}

func TestBindJSON(t *testing.T) {
	r := httptest.NewRequest("POST", "/createTopic",
		strings.NewReader(`{"topic_id": "abc", "offset": 3}`))

	var req queryRequest
	require.NoError(t, bindJSON(r, &req))
	require.Equal(t, "abc", req.TopicID)
	require.Equal(t, 3, req.Offset)

	// An empty body binds a zero request.
	var empty queryRequest
	require.NoError(t, bindJSON(httptest.NewRequest("POST", "/createTopic", nil), &empty))
}
