// Package web 嵌入管理后台前端构建产物并提供静态服务
package web

import (
	"embed"
	"io/fs"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed dist/*
var embeddedFS embed.FS

// apiPrefixes 不由静态服务处理的路径前缀
var apiPrefixes = []string{"/api/", "/health"}

// StaticHandler 管理后台静态文件处理器
type StaticHandler struct {
	fs http.FileSystem
}

// NewStaticHandler 创建静态文件处理器，distPath 非空时改为从磁盘读取
func NewStaticHandler(distPath string) *StaticHandler {
	if distPath != "" {
		return &StaticHandler{fs: http.Dir(distPath)}
	}
	subFS, err := fs.Sub(embeddedFS, "dist")
	if err != nil {
		return &StaticHandler{fs: http.Dir("./web/dist")}
	}
	return &StaticHandler{fs: http.FS(subFS)}
}

func isAPIPath(path string) bool {
	for _, prefix := range apiPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// serveIndex 返回首页，前端路由由 SPA 自行处理
func (h *StaticHandler) serveIndex(c *gin.Context) {
	c.FileFromFS("index.html", h.fs)
}

// SPAHandler 兜底路由：API 路径返回 404，其余回退到首页
func (h *StaticHandler) SPAHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		if isAPIPath(path) {
			c.JSON(http.StatusNotFound, gin.H{
				"code": 404,
				"msg":  "接口不存在",
			})
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.JSON(http.StatusMethodNotAllowed, gin.H{
				"code": 405,
				"msg":  "方法不允许",
			})
			return
		}

		file, err := h.fs.Open(strings.TrimPrefix(path, "/"))
		if err != nil {
			h.serveIndex(c)
			return
		}
		stat, err := file.Stat()
		file.Close()
		if err != nil || stat.IsDir() {
			h.serveIndex(c)
			return
		}
		c.FileFromFS(strings.TrimPrefix(path, "/"), h.fs)
	}
}
