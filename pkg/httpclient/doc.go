// Package httpclient はサービス間のHTTP通信を行うクライアントを提供する。
//
// gatewayサービスが内部サービスのAPIを呼び出す際に使用する。
// タイムアウト設定とリクエストIDの伝播など、サービス間の通信パターンを統一する。
package httpclient
