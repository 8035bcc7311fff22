// Package webui serves the compiled admin frontend from the binary itself.
// Any path that is not a real file falls back to index.html so client-side
// routing works on hard refresh.
package webui

import (
	"embed"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

//go:embed all:dist
var dist embed.FS

// Assets with a content hash in the filename can be cached forever;
// index.html must always be revalidated so deploys take effect.
const (
	assetCacheControl = "public, max-age=31536000, immutable"
	indexCacheControl = "no-cache"
)

// Handler returns the SPA fallback handler. It is registered as gin's
// NoRoute handler so API routes always win.
func Handler() gin.HandlerFunc {
	sub, err := fs.Sub(dist, "dist")
	if err != nil {
		panic("webui: dist bundle missing: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(sub))

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		p := strings.TrimPrefix(c.Request.URL.Path, "/")
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}

		if p != "" && fileExists(sub, p) {
			if isHashedAsset(p) {
				c.Header("Cache-Control", assetCacheControl)
			}
			fileServer.ServeHTTP(c.Writer, c.Request)
			return
		}

		index, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "frontend bundle not embedded"})
			return
		}
		c.Header("Cache-Control", indexCacheControl)
		c.Data(http.StatusOK, "text/html; charset=utf-8", index)
	}
}

func fileExists(fsys fs.FS, name string) bool {
	info, err := fs.Stat(fsys, name)
	return err == nil && !info.IsDir()
}

// isHashedAsset reports whether the path looks like a build artifact under
// assets/ rather than an entry document.
func isHashedAsset(p string) bool {
	if !strings.HasPrefix(p, "assets/") {
		return false
	}
	switch path.Ext(p) {
	case ".js", ".css", ".woff", ".woff2", ".svg", ".png", ".jpg", ".ico":
		return true
	}
	return false
}
