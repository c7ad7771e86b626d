package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// StaffClaims は運用スタッフ向けJWTトークンのクレーム（ペイロード）を表す。
// カタログの再読み込みや問い合わせ対応など、内部APIの呼び出しに使用する。
type StaffClaims struct {
	jwt.RegisteredClaims
	// StaffID はスタッフの一意識別子。
	StaffID string `json:"staff_id"`
	// Email はスタッフのメールアドレス。
	Email string `json:"email"`
}

// GenerateStaffToken はスタッフ情報からJWTトークンを生成する。
// 運用ツールが内部APIを呼び出す前に発行する。有効期限は24時間。
func GenerateStaffToken(secret, staffID, email string) (string, error) {
	claims := StaffClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "viziocraft-ops",
		},
		StaffID: staffID,
		Email:   email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("JWTトークンの署名に失敗: %w", err)
	}
	return signed, nil
}

// StaffAuth はスタッフ用JWTトークンを検証するGinミドルウェアを返す。
// 検証に成功した場合、コンテキストに "staff_id" と "staff_email" を設定する。
// 公開APIには適用せず、/internal配下のエンドポイントのみを保護する。
func StaffAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Authorizationヘッダーが必要です",
			})
			return
		}

		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Bearer トークン形式が不正です",
			})
			return
		}

		claims := &StaffClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "トークンが無効です",
			})
			return
		}

		c.Set("staff_id", claims.StaffID)
		c.Set("staff_email", claims.Email)
		c.Next()
	}
}

// GetStaffID はGinコンテキストからスタッフIDを取得する。
// StaffAuthミドルウェアが事前に適用されている必要がある。
func GetStaffID(c *gin.Context) string {
	v, _ := c.Get("staff_id")
	if id, ok := v.(string); ok {
		return id
	}
	return ""
}
