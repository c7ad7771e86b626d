// 問い合わせサービスのエントリポイント。
// 問い合わせフォームの受付とスタッフ向けの管理APIを担当する。
package main

import (
	"log"
	"os"

	"github.com/viziocraft/studio/internal/contact"
)

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8084"
	}

	dsn := os.Getenv("CONTACT_DB")
	if dsn == "" {
		dsn = "/data/contact.db?_journal_mode=WAL&_busy_timeout=5000"
	}

	store, err := contact.NewStore(dsn)
	if err != nil {
		log.Fatalf("問い合わせストアの初期化に失敗: %v", err)
	}
	defer store.Close()

	server := contact.NewServer(port, store)

	log.Printf("問い合わせサービスを起動します: :%s", port)
	if err := server.Run(); err != nil {
		log.Fatalf("問い合わせサービスの起動に失敗: %v", err)
	}
}
