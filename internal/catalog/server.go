package catalog

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/viziocraft/studio/pkg/middleware"
)

// defaultPageSize はpage_size未指定時の1ページあたりの件数。
const defaultPageSize = 20

// maxPageSize はpage_sizeの上限。これを超える指定は上限に丸める。
const maxPageSize = 100

// validDifficulties は教材の難易度として有効な値。
var validDifficulties = map[string]struct{}{
	"beginner":     {},
	"intermediate": {},
	"advanced":     {},
}

// Server はカタログクエリサービスのHTTPサーバー。
// コレクションのスナップショットを保持し、読み取りクエリを純粋関数Queryに委譲する。
type Server struct {
	// router はGinのHTTPルーター。
	router *gin.Engine
	// port はサーバーのリッスンポート。
	port string
	// mu はcollectionsの入れ替えを保護する。
	mu sync.RWMutex
	// collections はコレクション名からスナップショットへのマップ。
	collections map[string]*Collection
}

// NewServer は新しいカタログクエリサーバーを生成する。
// 埋め込みデータから全コレクションを読み込んで検証する。
func NewServer(port string) (*Server, error) {
	collections := make(map[string]*Collection, 2)
	for _, name := range []string{CollectionGallery, CollectionLearning} {
		col, err := Load(name)
		if err != nil {
			return nil, fmt.Errorf("コレクション %s の読み込みに失敗: %w", name, err)
		}
		collections[name] = col
	}

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.RequestID())

	s := &Server{
		router:      router,
		port:        port,
		collections: collections,
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
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		jwtSecret = "dev-secret-key"
	}

	api := s.router.Group("/api/v1")
	for _, name := range []string{CollectionGallery, CollectionLearning} {
		grp := api.Group("/" + name)
		{
			// 検索・絞り込み・並び替え付き一覧取得
			grp.GET("", s.handleQuery(name))
			// カテゴリ登録簿と件数の取得
			grp.GET("/categories", s.handleCategories(name))
			// コレクション全体の統計取得
			grp.GET("/stats", s.handleStats(name))
			// アイテム詳細取得
			grp.GET("/:id", s.handleGetByID(name))
		}
	}

	// コレクション管理（内部API）
	internal := api.Group("/internal")
	internal.Use(middleware.StaffAuth(jwtSecret))
	{
		// 埋め込みデータからのスナップショット再構築
		internal.POST("/reload", s.handleReload())
	}

	// ヘルスチェック
	s.router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "service": "catalog"})
	})
}

// collection は指定されたコレクションの現在のスナップショットを返す。
func (s *Server) collection(name string) *Collection {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collections[name]
}

// itemResponse はカタログアイテムのJSONレスポンス構造。
type itemResponse struct {
	// ID はアイテムの一意識別子。
	ID string `json:"id"`
	// Kind はアイテムの種別。
	Kind Kind `json:"kind"`
	// Title はアイテムのタイトル。
	Title string `json:"title"`
	// Description はアイテムの説明文。
	Description string `json:"description"`
	// Category はアイテムのカテゴリ。
	Category string `json:"category"`
	// Tags はアイテムのタグ一覧。
	Tags []string `json:"tags"`
	// Attribution はクライアント名または講師名。
	Attribution string `json:"attribution"`
	// CreatedAt は作成日（YYYY-MM-DD形式）。
	CreatedAt string `json:"created_at"`
	// Views は閲覧数（受講者数）。
	Views int64 `json:"views"`
	// Likes はいいね数（評価）。
	Likes float64 `json:"likes"`
	// Featured は注目アイテムかどうか。
	Featured bool `json:"featured"`
	// Difficulty は教材の難易度。メディア作品では省略される。
	Difficulty string `json:"difficulty,omitempty"`
	// DurationSeconds は動画・チュートリアルの長さ（秒）。該当しない場合はnull。
	DurationSeconds *float64 `json:"duration_seconds,omitempty"`
	// Lessons はコースのレッスン数。該当しない場合はnull。
	Lessons *int `json:"lessons,omitempty"`
	// Thumbnail はサムネイル画像のパス。
	Thumbnail string `json:"thumbnail"`
	// Src はメディア本体のパス。
	Src string `json:"src,omitempty"`
}

// toItemResponse はカタログアイテムを外部レスポンス形式に変換する。
func toItemResponse(it Item) itemResponse {
	resp := itemResponse{
		ID:          it.ID,
		Kind:        it.Kind,
		Title:       it.Title,
		Description: it.Description,
		Category:    it.Category,
		Tags:        it.Tags,
		Attribution: it.Attribution,
		CreatedAt:   it.CreatedAt,
		Views:       it.Views,
		Likes:       it.Likes,
		Featured:    it.Featured,
		Difficulty:  it.Difficulty,
		Thumbnail:   it.Thumbnail,
		Src:         it.Src,
	}
	if it.DurationSeconds > 0 {
		resp.DurationSeconds = &it.DurationSeconds
	}
	if it.LessonCount > 0 {
		resp.Lessons = &it.LessonCount
	}
	return resp
}

// toItemResponses はカタログアイテムのスライスを外部レスポンス形式のスライスに変換する。
func toItemResponses(items []Item) []itemResponse {
	responses := make([]itemResponse, 0, len(items))
	for _, it := range items {
		responses = append(responses, toItemResponse(it))
	}
	return responses
}

// splitCSV はカンマ区切りのクエリパラメータを要素に分割する。
// 空要素は取り除く。
func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			values = append(values, v)
		}
	}
	return values
}

// parseQueryRequest はクエリパラメータから問い合わせ内容を組み立てる。
// 不正な列挙値・日付・数値はエラーとして返し、ハンドラ側で400にマップする。
func parseQueryRequest(c *gin.Context, name string) (Request, error) {
	req := Request{
		Search:     c.Query("search"),
		Categories: splitCSV(c.Query("categories")),
		SortKey:    SortByDate,
		SortOrder:  OrderDesc,
		Page:       1,
		PageSize:   defaultPageSize,
	}

	allowed := kindsByCollection[name]
	for _, k := range splitCSV(c.Query("kinds")) {
		kind := Kind(k)
		found := false
		for _, a := range allowed {
			if kind == a {
				found = true
				break
			}
		}
		if !found {
			return Request{}, fmt.Errorf("種別 %q はこのコレクションでは指定できません", k)
		}
		req.Kinds = append(req.Kinds, kind)
	}

	// 難易度を持つのはラーニング教材のみ。他のコレクションでの指定は拒否する。
	if difficulties := splitCSV(c.Query("difficulties")); len(difficulties) > 0 {
		if name != CollectionLearning {
			return Request{}, fmt.Errorf("難易度はコレクション %s では指定できません", name)
		}
		for _, d := range difficulties {
			if _, ok := validDifficulties[d]; !ok {
				return Request{}, fmt.Errorf("難易度 %q は指定できません", d)
			}
			req.Difficulties = append(req.Difficulties, d)
		}
	}

	if v := c.Query("featured"); v != "" {
		featured, err := strconv.ParseBool(v)
		if err != nil {
			return Request{}, fmt.Errorf("featured %q は真偽値ではありません", v)
		}
		req.Featured = &featured
	}

	if v := c.Query("from"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return Request{}, fmt.Errorf("開始日 %q はYYYY-MM-DD形式ではありません", v)
		}
		req.From = &d
	}
	if v := c.Query("to"); v != "" {
		d, err := time.Parse(time.DateOnly, v)
		if err != nil {
			return Request{}, fmt.Errorf("終了日 %q はYYYY-MM-DD形式ではありません", v)
		}
		req.To = &d
	}

	switch key := SortKey(c.DefaultQuery("sort", string(SortByDate))); key {
	case SortByDate, SortByViews, SortByLikes, SortByTitle:
		req.SortKey = key
	default:
		return Request{}, fmt.Errorf("並び替えキー %q は指定できません", key)
	}

	switch order := SortOrder(c.DefaultQuery("order", string(OrderDesc))); order {
	case OrderAsc, OrderDesc:
		req.SortOrder = order
	default:
		return Request{}, fmt.Errorf("並び順 %q は指定できません", order)
	}

	if v := c.Query("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil {
			return Request{}, fmt.Errorf("ページ番号 %q は整数ではありません", v)
		}
		req.Page = page
	}
	if v := c.Query("page_size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil {
			return Request{}, fmt.Errorf("ページサイズ %q は整数ではありません", v)
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		req.PageSize = size
	}

	return req, nil
}

// handleQuery はコレクションへの問い合わせを処理するハンドラを返す。
// 絞り込み・並び替え・ページネーションの仕様はQuery関数に従う。
func (s *Server) handleQuery(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		req, err := parseQueryRequest(c, name)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		col := s.collection(name)
		res := Query(col.Items, req)

		page := req.Page
		if page < 1 {
			page = 1
		}
		size := req.PageSize
		if size < 1 {
			size = 1
		}

		c.JSON(http.StatusOK, gin.H{
			"items":         toItemResponses(res.Items),
			"total_matched": res.TotalMatched,
			"total_pages":   res.TotalPages,
			"page":          page,
			"page_size":     size,
			"facet_counts":  res.FacetCounts,
		})
	}
}

// handleGetByID は指定されたIDのアイテム詳細を返すハンドラを返す。
func (s *Server) handleGetByID(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		itemID := c.Param("id")
		col := s.collection(name)
		for _, it := range col.Items {
			if it.ID == itemID {
				c.JSON(http.StatusOK, toItemResponse(it))
				return
			}
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "アイテムが見つかりません"})
	}
}

// handleCategories はカテゴリ登録簿とコレクション全体での件数を返すハンドラを返す。
func (s *Server) handleCategories(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := s.collection(name)

		counts := make(map[string]int, len(col.Categories))
		for _, it := range col.Items {
			counts[it.Category]++
		}

		type categoryCount struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		categories := make([]categoryCount, 0, len(col.Categories))
		for _, cat := range col.Categories {
			categories = append(categories, categoryCount{Name: cat, Count: counts[cat]})
		}

		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

// handleStats はコレクション全体の統計を返すハンドラを返す。
func (s *Server) handleStats(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		col := s.collection(name)
		c.JSON(http.StatusOK, Stats(col.Items))
	}
}

// handleReload は埋め込みデータから全コレクションを再読み込みするハンドラを返す。
// 検証に失敗した場合は既存のスナップショットを維持する。
func (s *Server) handleReload() gin.HandlerFunc {
	return func(c *gin.Context) {
		reloaded := make(map[string]*Collection, 2)
		for _, name := range []string{CollectionGallery, CollectionLearning} {
			col, err := Load(name)
			if err != nil {
				log.Printf("コレクション再読み込みエラー: collection=%s, error=%v", name, err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "コレクションの再読み込みに失敗しました"})
				return
			}
			reloaded[name] = col
		}

		s.mu.Lock()
		s.collections = reloaded
		s.mu.Unlock()

		log.Printf("コレクションを再読み込みしました: staff_id=%s, gallery=%d, learning=%d",
			middleware.GetStaffID(c), len(reloaded[CollectionGallery].Items), len(reloaded[CollectionLearning].Items))

		c.JSON(http.StatusOK, gin.H{
			"message":  "コレクションの再読み込みが完了しました",
			"gallery":  len(reloaded[CollectionGallery].Items),
			"learning": len(reloaded[CollectionLearning].Items),
		})
	}
}
