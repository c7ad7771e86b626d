// カタログクエリサービスのエントリポイント。
// ギャラリー作品とラーニング教材の検索・絞り込み・並び替え・ページネーションを担当する。
package main

import (
	"log"
	"os"

	"github.com/viziocraft/studio/internal/catalog"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8081"
	}

	server, err := catalog.NewServer(port)
	if err != nil {
		log.Fatalf("カタログサーバーの初期化に失敗: %v", err)
	}

	log.Printf("カタログサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("カタログサービスの起動に失敗: %v", err)
	}
}
