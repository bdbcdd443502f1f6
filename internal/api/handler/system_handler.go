package handler

import (
	"net/http"

	"vidtube-go/internal/api/response"

	"github.com/gin-gonic/gin"
)

// SystemHandler 健康检查与根路径
type SystemHandler struct {
	name    string
	version string
}

func NewSystemHandler(name, version string) *SystemHandler {
	return &SystemHandler{name: name, version: version}
}

func (h *SystemHandler) Health(c *gin.Context) {
	response.OK(c, "OK", gin.H{"status": "ok"})
}

func (h *SystemHandler) Root(c *gin.Context) {
	response.OK(c, "Welcome to "+h.name, gin.H{
		"name":    h.name,
		"version": h.version,
		"docs":    "/swagger/index.html",
	})
}

// NotFound 未匹配路由
func NotFound(c *gin.Context) {
	response.Fail(c, http.StatusNotFound, "Route not found: "+c.Request.Method+" "+c.Request.URL.Path)
}
