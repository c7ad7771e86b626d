// Package assistant はサイト訪問者向けのバーチャルアシスタント「Hoàng Anh」の
// チャットAPIを提供する。応答はキーワードルールによる定型文で、
// セッションごとの会話履歴をメモリ上に保持する。
package assistant
