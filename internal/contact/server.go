package contact

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/viziocraft/studio/pkg/middleware"
)

// Server は問い合わせサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// store は問い合わせ送信のストア。
	store *Store
}

// NewServer は新しい問い合わせサーバーを生成する。
func NewServer(port string, store *Store) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	s := &Server{
		router: router,
		port:   port,
		store:  store,
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
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-key"
	}

	api := s.router.Group("/api/v1")
	{
		// 問い合わせフォームの送信
		api.POST("/contact", s.handleSubmit)
	}

	// 問い合わせ管理（内部API）
	internal := api.Group("/internal")
	internal.Use(middleware.StaffAuth(jwtSecret))
	{
		// 送信一覧の取得
		internal.GET("/submissions", s.handleListSubmissions)
		// 対応済みへの更新
		internal.PUT("/submissions/:id/handled", s.handleMarkHandled)
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "contact"})
	})
}

// submitRequest は問い合わせフォームのリクエストボディ。
type submitRequest struct {
	// Name は送信者の名前。必須。
	Name string `json:"name" binding:"required"`
	// Email は送信者のメールアドレス。必須。
	Email string `json:"email" binding:"required,email"`
	// Company は送信者の会社名。
	Company string `json:"company"`
	// Service は問い合わせ対象のサービスID。必須。
	Service string `json:"service" binding:"required"`
	// Budget は予算帯。
	Budget string `json:"budget"`
	// Timeline は希望納期。
	Timeline string `json:"timeline"`
	// Message は問い合わせ本文。必須。
	Message string `json:"message" binding:"required"`
}

// handleSubmit は問い合わせフォームの送信を受け付ける。
func (s *Server) handleSubmit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "入力内容が不正です: " + err.Error()})
		return
	}

	sub := Submission{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Email:     req.Email,
		Company:   req.Company,
		Service:   req.Service,
		Budget:    req.Budget,
		Timeline:  req.Timeline,
		Message:   req.Message,
		Status:    StatusReceived,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.store.Insert(sub); err != nil {
		log.Printf("問い合わせの保存エラー: request_id=%s, error=%v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "問い合わせの受付に失敗しました"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":     sub.ID,
		"status": sub.Status,
	})
}

// handleListSubmissions は問い合わせ送信の一覧を返す。
// statusクエリパラメータで対応状況を絞り込める。
func (s *Server) handleListSubmissions(c *gin.Context) {
	status := c.Query("status")
	if status != "" && status != StatusReceived && status != StatusHandled {
		c.JSON(http.StatusBadRequest, gin.H{"error": "statusはreceivedまたはhandledを指定してください"})
		return
	}

	submissions, err := s.store.List(status)
	if err != nil {
		log.Printf("問い合わせ一覧の取得エラー: request_id=%s, error=%v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "問い合わせ一覧の取得に失敗しました"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"submissions": submissions,
		"total":       len(submissions),
	})
}

// handleMarkHandled は指定された問い合わせを対応済みにする。
func (s *Server) handleMarkHandled(c *gin.Context) {
	found, err := s.store.MarkHandled(c.Param("id"))
	if err != nil {
		log.Printf("問い合わせの更新エラー: request_id=%s, error=%v", middleware.GetRequestID(c), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "問い合わせの更新に失敗しました"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "問い合わせが見つかりません"})
		return
	}

	log.Printf("問い合わせを対応済みにしました: id=%s, staff_id=%s", c.Param("id"), middleware.GetStaffID(c))
	c.JSON(http.StatusOK, gin.H{"status": StatusHandled})
}
