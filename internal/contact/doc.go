// Package contact は問い合わせフォームの受付と管理のHTTP APIを提供する。
// 送信内容はSQLiteに保存し、管理系エンドポイントはスタッフトークンで保護する。
package contact
