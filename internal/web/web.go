// Package web はフロントのビルド出力（dist）を埋め込み、SPA のルーティングを受け持つ。
package web

import (
	"embed"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"pantry-backend/internal/platform/apierr"
)

// dist はフロントのビルド結果で置き換える
//
//go:embed dist
var embedded embed.FS

// Pages はクライアント側で描画する画面。これ以外のパスは not-found 画面（404）
var Pages = []string{
	"/", "/auth", "/dashboard", "/inventory", "/volunteers",
	"/suggestions", "/scan", "/submit-suggestion",
}

type SPA struct {
	files http.FileSystem
}

func New() (*SPA, error) {
	sub, err := fs.Sub(embedded, "dist")
	if err != nil {
		return nil, err
	}
	return NewFromFS(sub), nil
}

func NewFromFS(fsys fs.FS) *SPA {
	return &SPA{files: http.FS(fsys)}
}

// RegisterRoutes: 画面ルートは 200、それ以外は NoRoute で処理
func (s *SPA) RegisterRoutes(r *gin.Engine) {
	for _, p := range Pages {
		r.GET(p, s.page)
	}
	r.NoRoute(s.NoRoute)
}

func (s *SPA) page(c *gin.Context) {
	s.serveIndex(c, http.StatusOK)
}

func (s *SPA) NoRoute(c *gin.Context) {
	// API は対象外
	if c.Request.URL.Path == "/api" || strings.HasPrefix(c.Request.URL.Path, "/api/") {
		c.JSON(http.StatusNotFound, apierr.BodyOf(apierr.CodeNotFound, "no such endpoint"))
		return
	}

	reqPath := strings.TrimPrefix(path.Clean(c.Request.URL.Path), "/")
	if reqPath != "" && reqPath != "index.html" {
		// 実ファイルがあるならそれを返す（Content-Type を推測、キャッシュ付与）
		if f, err := s.files.Open(reqPath); err == nil {
			defer f.Close()
			if fi, err := f.Stat(); err == nil && !fi.IsDir() {
				if ct := mime.TypeByExtension(path.Ext(reqPath)); ct != "" {
					c.Header("Content-Type", ct)
				}
				c.Header("Cache-Control", "public, max-age=86400, immutable")
				http.ServeContent(c.Writer, c.Request, reqPath, fi.ModTime(), f)
				return
			}
		}
	}

	// なければ not-found 画面（index.html）を 404 で返す
	s.serveIndex(c, http.StatusNotFound)
}

func (s *SPA) serveIndex(c *gin.Context, status int) {
	f, err := s.files.Open("index.html")
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	// ServeContent は 200 固定なので自前で書く
	c.Header("Cache-Control", "no-cache")
	c.DataFromReader(status, fi.Size(), "text/html; charset=utf-8", f, nil)
}
