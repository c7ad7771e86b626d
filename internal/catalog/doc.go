// Package catalog はカタログクエリサービスの内部実装を提供する。
//
// ギャラリー作品とラーニング教材の2つのコレクションを扱う。
// コレクションは起動時に埋め込みデータから読み込まれ、以降は不変のスナップショット
// として公開される。検索・絞り込み・並び替え・ページネーションはすべて
// 純粋関数Queryが行い、サーバーは状態を持たない。
package catalog
