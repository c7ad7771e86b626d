package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/viziocraft/studio/pkg/httpclient"
	"github.com/viziocraft/studio/pkg/middleware"
)

// Server はAPI Gatewayサービスの HTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// serviceURLs は内部サービスのURL。
	serviceURLs serviceURLConfig
	// proxyClient はプロキシ用のHTTPクライアント。
	proxyClient *http.Client
}

// serviceURLConfig は内部サービスのURL設定。
type serviceURLConfig struct {
	Catalog   string
	Content   string
	Assistant string
	Contact   string
}

// NewServer は新しいGatewayサーバーを生成する。
func NewServer(port string) *Server {
	urls := serviceURLConfig{
		Catalog:   getEnvOr("CATALOG_URL", "http://localhost:8081"),
		Content:   getEnvOr("CONTENT_URL", "http://localhost:8082"),
		Assistant: getEnvOr("ASSISTANT_URL", "http://localhost:8083"),
		Contact:   getEnvOr("CONTACT_URL", "http://localhost:8084"),
	}

	frontendURL := getEnvOr("FRONTEND_URL", "http://localhost:3000")

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORS([]string{frontendURL}))
	router.Use(middleware.RequestID())

	s := &Server{
		router:      router,
		port:        port,
		serviceURLs: urls,
		proxyClient: &http.Client{Timeout: 15 * time.Second},
	}
	s.setupRoutes()

	return s
}

// Run はHTTPサーバーを起動する。
func (s *Server) Run() error {
	return s.router.Run(fmt.Sprintf(":%s", s.port))
}

// setupRoutes はAPIルーティングを設定する。
func (s *Server) setupRoutes() {
	api := s.router.Group("/api/v1")
	{
		// カタログ（プロキシ）
		for _, collection := range []string{"gallery", "learning"} {
			base := "/api/v1/" + collection
			api.GET("/"+collection, s.handleProxy(s.serviceURLs.Catalog, base))
			api.GET("/"+collection+"/categories", s.handleProxy(s.serviceURLs.Catalog, base+"/categories"))
			api.GET("/"+collection+"/stats", s.handleProxy(s.serviceURLs.Catalog, base+"/stats"))
			api.GET("/"+collection+"/:id", s.handleProxyWithParam(s.serviceURLs.Catalog, base+"/", "id"))
		}

		// サービスコンテンツ（プロキシ）
		api.GET("/services", s.handleProxy(s.serviceURLs.Content, "/api/v1/services"))
		api.GET("/services/:id", s.handleProxyWithParam(s.serviceURLs.Content, "/api/v1/services/", "id"))

		// アシスタント（プロキシ）
		api.POST("/chat", s.handleProxy(s.serviceURLs.Assistant, "/api/v1/chat"))
		api.GET("/chat/suggestions", s.handleProxy(s.serviceURLs.Assistant, "/api/v1/chat/suggestions"))
		api.GET("/chat/sessions/:id", s.handleProxyWithParam(s.serviceURLs.Assistant, "/api/v1/chat/sessions/", "id"))

		// 問い合わせ（プロキシ）
		api.POST("/contact", s.handleProxy(s.serviceURLs.Contact, "/api/v1/contact"))
	}

	// ヘルスチェック（内部サービスの状態を集約）
	s.router.GET("/health", s.handleHealth())
}

// handleProxy は指定されたサービスにリクエストをプロキシするハンドラを返す。
func (s *Server) handleProxy(baseURL, path string) gin.HandlerFunc {
	return func(c *gin.Context) {
		proxyURL := baseURL + path
		if c.Request.URL.RawQuery != "" {
			proxyURL += "?" + c.Request.URL.RawQuery
		}
		s.doProxy(c, c.Request.Method, proxyURL)
	}
}

// handleProxyWithParam はURLパラメータを含むプロキシハンドラを返す。
func (s *Server) handleProxyWithParam(baseURL, pathPrefix, paramName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		proxyURL := baseURL + pathPrefix + c.Param(paramName)
		if c.Request.URL.RawQuery != "" {
			proxyURL += "?" + c.Request.URL.RawQuery
		}
		s.doProxy(c, c.Request.Method, proxyURL)
	}
}

// doProxy はリクエストを内部サービスにプロキシする共通処理。
// リクエストIDヘッダーを転送する。
func (s *Server) doProxy(c *gin.Context, method, url string) {
	req, err := http.NewRequestWithContext(c.Request.Context(), method, url, c.Request.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "プロキシリクエストの作成に失敗しました"})
		return
	}

	// 元のリクエストヘッダーを転送
	req.Header.Set("Content-Type", c.GetHeader("Content-Type"))
	req.Header.Set(middleware.HeaderRequestID, middleware.GetRequestID(c))

	resp, err := s.proxyClient.Do(req)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "内部サービスとの通信に失敗しました"})
		log.Printf("プロキシエラー: url=%s, request_id=%s, error=%v", url, middleware.GetRequestID(c), err)
		return
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "レスポンスの読み取りに失敗しました"})
		return
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.StatusCode, contentType, body)
}

// handleHealth は各内部サービスのヘルスチェック結果を集約して返すハンドラを返す。
func (s *Server) handleHealth() gin.HandlerFunc {
	targets := map[string]string{
		"catalog":   s.serviceURLs.Catalog,
		"content":   s.serviceURLs.Content,
		"assistant": s.serviceURLs.Assistant,
		"contact":   s.serviceURLs.Contact,
	}

	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()
		ctx = httpclient.WithRequestID(ctx, middleware.GetRequestID(c))

		status := http.StatusOK
		services := make(map[string]string, len(targets))
		for name, baseURL := range targets {
			var health struct {
				Status string `json:"status"`
			}
			if err := httpclient.New(baseURL).GetJSON(ctx, "/health", &health); err != nil {
				services[name] = "unreachable"
				status = http.StatusServiceUnavailable
				continue
			}
			services[name] = health.Status
		}

		overall := "ok"
		if status != http.StatusOK {
			overall = "degraded"
		}
		c.JSON(status, gin.H{
			"status":   overall,
			"service":  "gateway",
			"services": services,
		})
	}
}

// getEnvOr は環境変数を取得し、設定されていない場合はデフォルト値を返す。
func getEnvOr(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
