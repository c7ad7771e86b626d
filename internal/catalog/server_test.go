package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/viziocraft/studio/pkg/middleware"
)

const testSecret = "test-jwt-secret"

// newTestServer はテスト用のカタログサーバーを生成する。
func newTestServer(t *testing.T) *Server {
	t.Helper()
	t.Setenv("JWT_SECRET", testSecret)
	gin.SetMode(gin.TestMode)
	s, err := NewServer("8080")
	if err != nil {
		t.Fatalf("NewServer() error = %v", err)
	}
	return s
}

// queryResponse は一覧エンドポイントのレスポンスのテスト用構造。
type queryResponse struct {
	Items        []itemResponse `json:"items"`
	TotalMatched int            `json:"total_matched"`
	TotalPages   int            `json:"total_pages"`
	Page         int            `json:"page"`
	PageSize     int            `json:"page_size"`
	FacetCounts  map[string]int `json:"facet_counts"`
}

func doRequest(t *testing.T, s *Server, method, path string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func TestServer_一覧取得(t *testing.T) {
	s := newTestServer(t)

	t.Run("正常系_デフォルトは作成日降順の20件", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/gallery", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d: %s", w.Code, http.StatusOK, w.Body.String())
		}

		var resp queryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		if resp.Page != 1 || resp.PageSize != defaultPageSize {
			t.Errorf("page = %d, page_size = %d", resp.Page, resp.PageSize)
		}
		if resp.TotalMatched == 0 {
			t.Error("TotalMatched = 0")
		}
		if len(resp.Items) > defaultPageSize {
			t.Errorf("len(items) = %d が既定ページサイズを超過", len(resp.Items))
		}
		// 作成日降順になっているか確認する。
		for i := 1; i < len(resp.Items); i++ {
			if resp.Items[i-1].CreatedAt < resp.Items[i].CreatedAt {
				t.Errorf("作成日降順でない: %s < %s", resp.Items[i-1].CreatedAt, resp.Items[i].CreatedAt)
			}
		}
	})

	t.Run("正常系_検索と絞り込みの組み合わせ", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet,
			"/api/v1/gallery?search=ai&categories=AI+Solutions&sort=views&order=desc", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}

		var resp queryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		for _, it := range resp.Items {
			if it.Category != "AI Solutions" {
				t.Errorf("アイテム %s のカテゴリが %s", it.ID, it.Category)
			}
		}
		for i := 1; i < len(resp.Items); i++ {
			if resp.Items[i-1].Views < resp.Items[i].Views {
				t.Errorf("閲覧数降順でない: %d < %d", resp.Items[i-1].Views, resp.Items[i].Views)
			}
		}
		if resp.FacetCounts == nil {
			t.Error("facet_countsがない")
		}
	})

	t.Run("正常系_ページサイズは上限に丸める", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/gallery?page_size=1000", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var resp queryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		if resp.PageSize != maxPageSize {
			t.Errorf("page_size = %d, want %d", resp.PageSize, maxPageSize)
		}
	})

	t.Run("正常系_ラーニングの難易度絞り込み", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/learning?difficulties=beginner", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var resp queryResponse
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		for _, it := range resp.Items {
			if it.Difficulty != "beginner" {
				t.Errorf("アイテム %s の難易度が %s", it.ID, it.Difficulty)
			}
		}
	})

	t.Run("異常系_不正な並び替えキー", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/gallery?sort=price", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("異常系_不正な日付", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/gallery?from=2024-13-99", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("異常系_featuredが真偽値でない", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/gallery?featured=yes", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("異常系_ページ番号が整数でない", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/gallery?page=first", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("異常系_コレクションに合わない種別", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/gallery?kinds=course", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("異常系_不正な難易度", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/learning?difficulties=expert", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})

	t.Run("異常系_ギャラリーでの難易度指定", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/gallery?difficulties=beginner", nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
		}
	})
}

func TestServer_詳細取得(t *testing.T) {
	s := newTestServer(t)

	t.Run("正常系_存在するアイテム", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/gallery/ai-chatbot-demo", nil)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}
		var it itemResponse
		if err := json.Unmarshal(w.Body.Bytes(), &it); err != nil {
			t.Fatalf("レスポンスのパースに失敗: %v", err)
		}
		if it.ID != "ai-chatbot-demo" {
			t.Errorf("ID = %s", it.ID)
		}
		if it.DurationSeconds == nil {
			t.Error("動画アイテムにduration_secondsがない")
		}
	})

	t.Run("異常系_存在しないアイテム", func(t *testing.T) {
		w := doRequest(t, s, http.MethodGet, "/api/v1/gallery/no-such-item", nil)
		if w.Code != http.StatusNotFound {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNotFound)
		}
	})
}

func TestServer_カテゴリ一覧(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/gallery/categories", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Categories []struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		} `json:"categories"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("レスポンスのパースに失敗: %v", err)
	}
	if len(resp.Categories) == 0 {
		t.Fatal("カテゴリが空")
	}
	// 登録簿の宣言順が保たれる。
	if resp.Categories[0].Name != "AI Solutions" {
		t.Errorf("先頭カテゴリ = %s, want AI Solutions", resp.Categories[0].Name)
	}
	total := 0
	for _, c := range resp.Categories {
		total += c.Count
	}
	col, err := Load(CollectionGallery)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if total != len(col.Items) {
		t.Errorf("カテゴリ件数の合計 %d がアイテム総数 %d と一致しない", total, len(col.Items))
	}
}

func TestServer_統計(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/api/v1/learning/stats", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}

	var got Summary
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("レスポンスのパースに失敗: %v", err)
	}
	if got.TotalItems != got.Tutorials+got.Courses {
		t.Errorf("ラーニングの総数 %d がチュートリアル+コース %d と一致しない",
			got.TotalItems, got.Tutorials+got.Courses)
	}
}

func TestServer_再読み込み(t *testing.T) {
	s := newTestServer(t)

	t.Run("異常系_トークンなしは401", func(t *testing.T) {
		w := doRequest(t, s, http.MethodPost, "/api/v1/internal/reload", nil)
		if w.Code != http.StatusUnauthorized {
			t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
		}
	})

	t.Run("正常系_スタッフトークンで再読み込み", func(t *testing.T) {
		token, err := middleware.GenerateStaffToken(testSecret, "staff-1", "ops@viziocraft.example")
		if err != nil {
			t.Fatalf("GenerateStaffToken() error = %v", err)
		}
		header := http.Header{}
		header.Set("Authorization", "Bearer "+token)

		w := doRequest(t, s, http.MethodPost, "/api/v1/internal/reload", header)
		if w.Code != http.StatusOK {
			t.Fatalf("status = %d: %s", w.Code, w.Body.String())
		}

		// 再読み込み後も一覧取得できる。
		w = doRequest(t, s, http.MethodGet, "/api/v1/gallery", nil)
		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})
}

func TestServer_ヘルスチェック(t *testing.T) {
	s := newTestServer(t)

	w := doRequest(t, s, http.MethodGet, "/health", nil)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
}
