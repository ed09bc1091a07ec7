// Package server 提供已入库 EQ 文档的只读浏览接口
package server

import (
	"database/sql"
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/BecaLiang/stg-final/internal/store"
)

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	store   *store.Store
	blobDir string
}

// NewServer 创建服务器
func NewServer(st *store.Store, blobDir string, devMode bool) *Server {
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		router:  gin.Default(),
		store:   st,
		blobDir: blobDir,
	}
	s.setupRoutes()
	return s
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: 0, Message: "success", Data: data})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{Code: code, Message: message})
}

// setupRoutes 设置路由
func (s *Server) setupRoutes() {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.GET("/eqs", s.listDocuments)
		api.GET("/eqs/:id", s.getDocument)
		api.GET("/files/:key", s.downloadFile)
	}
}

// listDocuments 文档列表
func (s *Server) listDocuments(c *gin.Context) {
	docs, err := s.store.ListDocuments()
	if err != nil {
		errorResponse(c, 500, err.Error())
		return
	}
	success(c, docs)
}

// getDocument 单个文档（含问题与图片引用）
func (s *Server) getDocument(c *gin.Context) {
	doc, err := s.store.GetDocument(c.Param("id"))
	if errors.Is(err, sql.ErrNoRows) {
		errorResponse(c, 404, "document not found")
		return
	}
	if err != nil {
		errorResponse(c, 500, err.Error())
		return
	}
	success(c, doc)
}

// downloadFile 按存储键下载 blob（仅本地 blob 目录模式可用）
func (s *Server) downloadFile(c *gin.Context) {
	key := c.Param("key")

	ref, err := s.store.GetFileByKey(key)
	if errors.Is(err, sql.ErrNoRows) {
		errorResponse(c, 404, "file not found")
		return
	}
	if err != nil {
		errorResponse(c, 500, err.Error())
		return
	}

	localPath := filepath.Join(s.blobDir, filepath.Base(key))
	if _, err := os.Stat(localPath); err != nil {
		errorResponse(c, 404, "blob not available locally")
		return
	}

	c.Header("Content-Type", ref.Type)
	c.File(localPath)
}

// Run 启动服务
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}

// Handler 暴露底层 http.Handler（测试用）
func (s *Server) Handler() http.Handler {
	return s.router
}
