package content

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/viziocraft/studio/pkg/middleware"
)

// Server はコンテンツサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// services は読み込み済みのサービス定義。起動後は変更しない。
	services []Service
}

// NewServer は新しいコンテンツサーバーを生成する。
func NewServer(port string) (*Server, error) {
	services, err := LoadServices()
	if err != nil {
		return nil, fmt.Errorf("サービス定義の読み込みに失敗: %w", err)
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	s := &Server{
		router:   router,
		port:     port,
		services: services,
	}
	s.setupRoutes()

	return s, nil
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	{
		// サービス一覧取得
		api.GET("/services", s.handleListServices)
		// サービス詳細取得
		api.GET("/services/:id", s.handleGetService)
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "content"})
	})
}

// handleListServices は全サービスの一覧を返す。
func (s *Server) handleListServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services": s.services,
		"total":    len(s.services),
	})
}

// handleGetService は指定されたIDのサービス詳細を返す。
func (s *Server) handleGetService(c *gin.Context) {
	serviceID := c.Param("id")
	for _, svc := range s.services {
		if svc.ID == serviceID {
			c.JSON(http.StatusOK, svc)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "サービスが見つかりません"})
}
