package router_test

import (
	"encoding/json"
	"regexp"
	"strings"
	"testing"

	_ "vidtube-go/api/openapi"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

var pathParam = regexp.MustCompile(`:(\w+)`)

func TestOpenAPIDocumentsEveryRoute(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api", doc.BasePath)

	srv := newServer(t, 100)
	documented := 0
	for _, route := range srv.engine.Routes() {
		if !strings.HasPrefix(route.Path, doc.BasePath+"/") {
			continue
		}
		path := pathParam.ReplaceAllString(strings.TrimPrefix(route.Path, doc.BasePath), "{$1}")
		method := strings.ToLower(route.Method)
		if assert.Contains(t, doc.Paths, path, "undocumented route %s %s", route.Method, route.Path) {
			assert.Contains(t, doc.Paths[path], method, "undocumented route %s %s", route.Method, route.Path)
		}
		documented++
	}
	assert.Equal(t, 42, documented)
}
