// Package gateway はフロントエンドからの全リクエストを受け付けるAPI Gatewayを提供する。
// CORSとリクエストIDの付与を行い、各内部サービスへリクエストをプロキシする。
package gateway
