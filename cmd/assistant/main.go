// アシスタントサービスのエントリポイント。
// サイト訪問者向けチャットの応答とセッション管理を担当する。
package main

import (
	"log"
	"os"

	"github.com/viziocraft/studio/internal/assistant"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8083"
	}

	server := assistant.NewServer(port)

	log.Printf("アシスタントサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("アシスタントサービスの起動に失敗: %v", err)
	}
}
