// Package content は提供サービスの静的コンテンツを配信するHTTP APIを提供する。
// サービス定義は埋め込みYAMLから起動時に読み込み、読み取り専用で扱う。
package content
