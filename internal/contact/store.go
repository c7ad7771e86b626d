package contact

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/viziocraft/studio/pkg/migration"
)

//go:embed migrations
var migrationsFS embed.FS

// StatusReceived は受付済みの問い合わせを表す。
const StatusReceived = "received"

// StatusHandled は対応済みの問い合わせを表す。
const StatusHandled = "handled"

// Submission は問い合わせフォームの送信1件を表す。
type Submission struct {
	// ID は送信の一意識別子。
	ID string `json:"id"`
	// Name は送信者の名前。
	Name string `json:"name"`
	// Email は送信者のメールアドレス。
	Email string `json:"email"`
	// Company は送信者の会社名。任意。
	Company string `json:"company,omitempty"`
	// Service は問い合わせ対象のサービスID。
	Service string `json:"service"`
	// Budget は予算帯の表示文字列。任意。
	Budget string `json:"budget,omitempty"`
	// Timeline は希望納期の表示文字列。任意。
	Timeline string `json:"timeline,omitempty"`
	// Message は問い合わせ本文。
	Message string `json:"message"`
	// Status は対応状況（received または handled）。
	Status string `json:"status"`
	// CreatedAt は受付時刻。
	CreatedAt time.Time `json:"created_at"`
}

// Store は問い合わせ送信の永続化を担う。
type Store struct {
	db *sql.DB
}

// NewStore はデータベース接続を開き、マイグレーションを適用してストアを返す。
func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("データベース接続のオープンに失敗: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("データベースへの接続に失敗: %w", err)
	}
	if err := migration.Apply(db, migrationsFS, "migrations"); err != nil {
		return nil, fmt.Errorf("マイグレーションの適用に失敗: %w", err)
	}
	return &Store{db: db}, nil
}

// Close はデータベース接続を閉じる。
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert は問い合わせ送信を保存する。
func (s *Store) Insert(sub Submission) error {
	_, err := s.db.Exec(`
		INSERT INTO submissions (id, name, email, company, service, budget, timeline, message, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.Name, sub.Email, sub.Company, sub.Service,
		sub.Budget, sub.Timeline, sub.Message, sub.Status, sub.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("問い合わせの保存に失敗: %w", err)
	}
	return nil
}

// List は問い合わせ送信を新しい順に返す。
// statusが空でない場合は対応状況で絞り込む。
func (s *Store) List(status string) ([]Submission, error) {
	query := `
		SELECT id, name, email, company, service, budget, timeline, message, status, created_at
		FROM submissions`
	args := []any{}
	if status != "" {
		query += " WHERE status = ?"
		args = append(args, status)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("問い合わせ一覧の取得に失敗: %w", err)
	}
	defer rows.Close()

	submissions := []Submission{}
	for rows.Next() {
		var sub Submission
		if err := rows.Scan(
			&sub.ID, &sub.Name, &sub.Email, &sub.Company, &sub.Service,
			&sub.Budget, &sub.Timeline, &sub.Message, &sub.Status, &sub.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("問い合わせ行の読み取りに失敗: %w", err)
		}
		submissions = append(submissions, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("問い合わせ一覧の走査に失敗: %w", err)
	}

	return submissions, nil
}

// MarkHandled は指定された問い合わせを対応済みにする。
// 該当する送信がない場合はfalseを返す。
func (s *Store) MarkHandled(id string) (bool, error) {
	res, err := s.db.Exec(`UPDATE submissions SET status = ? WHERE id = ?`, StatusHandled, id)
	if err != nil {
		return false, fmt.Errorf("問い合わせの更新に失敗: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("更新件数の取得に失敗: %w", err)
	}
	return affected > 0, nil
}
