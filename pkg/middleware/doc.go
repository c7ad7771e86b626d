// Package middleware はGinベースのHTTP APIで使用する共通ミドルウェアを提供する。
//
// パニックリカバリ、CORS設定、リクエストIDの付与、および運用スタッフ向け
// 内部APIを保護するJWT検証など、全サービスで共通して使用するミドルウェアを含む。
package middleware
