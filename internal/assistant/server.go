package assistant

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/viziocraft/studio/pkg/middleware"
)

// Server はアシスタントサービスのHTTPサーバー。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// store はチャットセッションのストア。
	store *SessionStore
}

// NewServer は新しいアシスタントサーバーを生成する。
func NewServer(port string) *Server {
	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	s := &Server{
		router: router,
		port:   port,
		store:  NewSessionStore(),
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
		// メッセージ送信（session_id省略時は新規セッション）
		api.POST("/chat", s.handleChat)
		// セッションの会話履歴取得
		api.GET("/chat/sessions/:id", s.handleGetSession)
		// 質問候補の取得
		api.GET("/chat/suggestions", s.handleSuggestions)
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "assistant"})
	})
}

// chatRequest はメッセージ送信リクエストのボディ。
type chatRequest struct {
	// Message はユーザーの発言。必須。
	Message string `json:"message" binding:"required"`
	// SessionID は継続するセッションのID。省略時は新規セッションを開始する。
	SessionID string `json:"session_id"`
}

// handleChat はユーザーのメッセージを受け取り、アシスタントの応答を返す。
func (s *Server) handleChat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "messageは必須です"})
		return
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.store.Create().ID
	}

	reply, ok := s.store.Append(sessionID, req.Message, Respond(req.Message))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id": sessionID,
		"response":   reply,
	})
}

// handleGetSession は指定されたセッションの会話履歴を返す。
func (s *Server) handleGetSession(c *gin.Context) {
	session, ok := s.store.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "セッションが見つかりません"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// handleSuggestions はチャットUIに表示する質問候補を返す。
func (s *Server) handleSuggestions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"suggestions": SuggestedQuestions})
}
