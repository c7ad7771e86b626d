// コンテンツサービスのエントリポイント。
// 提供サービスの定義（機能、技術、導入事例、実績プロジェクト）を配信する。
package main

import (
	"log"
	"os"

	"github.com/viziocraft/studio/internal/content"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8082"
	}

	server, err := content.NewServer(port)
	if err != nil {
		log.Fatalf("コンテンツサーバーの初期化に失敗: %v", err)
	}

	log.Printf("コンテンツサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("コンテンツサービスの起動に失敗: %v", err)
	}
}
