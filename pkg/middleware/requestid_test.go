package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// TestRequestID はリクエストIDミドルウェアを検証する。
func TestRequestID(t *testing.T) {
	t.Parallel()

	t.Run("IDが未指定の場合は新しいUUIDが発行されること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		got := w.Header().Get(HeaderRequestID)
		if got == "" {
			t.Fatal("X-Request-IDヘッダーが設定されていません")
		}
		if _, err := uuid.Parse(got); err != nil {
			t.Errorf("X-Request-ID = %q はUUID形式ではありません: %v", got, err)
		}
	})

	t.Run("クライアントが指定したIDが引き継がれること", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.Use(RequestID())
		router.GET("/test", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"request_id": GetRequestID(c)})
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req.Header.Set(HeaderRequestID, "client-supplied-id")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		if got := w.Header().Get(HeaderRequestID); got != "client-supplied-id" {
			t.Errorf("X-Request-ID = %q, want %q", got, "client-supplied-id")
		}
	})

	t.Run("ミドルウェア未適用の場合GetRequestIDは空文字列を返すこと", func(t *testing.T) {
		t.Parallel()

		router := gin.New()
		router.GET("/test", func(c *gin.Context) {
			if id := GetRequestID(c); id != "" {
				t.Errorf("GetRequestID = %q, want 空文字列", id)
			}
			c.Status(http.StatusOK)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
	})
}
