package catalog

import "time"

// Kind はカタログアイテムの種別を表す。
type Kind string

const (
	// KindImage はギャラリーの静止画作品を表す。
	KindImage Kind = "image"
	// KindVideo はギャラリーの動画作品を表す。
	KindVideo Kind = "video"
	// KindTutorial はラーニングセンターの単発チュートリアルを表す。
	KindTutorial Kind = "tutorial"
	// KindCourse はラーニングセンターの複数レッスン構成のコースを表す。
	KindCourse Kind = "course"
)

// Item は閲覧可能なコンテンツ1件を表す。
// ギャラリーのメディア作品とラーニングセンターの教材を同じ型で扱い、
// ラーニング教材では受講者数をViews、評価をLikesとして集計する。
type Item struct {
	// ID はアイテムの一意識別子（スラッグ）。コレクション内で重複しない。
	ID string `yaml:"id" json:"id"`
	// Kind はアイテムの種別。
	Kind Kind `yaml:"kind" json:"kind"`
	// Title はアイテムのタイトル。検索対象。
	Title string `yaml:"title" json:"title"`
	// Description はアイテムの説明文。検索対象。
	Description string `yaml:"description" json:"description"`
	// Category はアイテムが属するカテゴリ。コレクションのカテゴリ登録簿に含まれる値のみ有効。
	Category string `yaml:"category" json:"category"`
	// Tags はアイテムに付与されたタグ。検索対象。
	Tags []string `yaml:"tags" json:"tags"`
	// Attribution はクライアント名または講師名。検索対象。
	Attribution string `yaml:"attribution" json:"attribution"`
	// CreatedAt は作成日（YYYY-MM-DD形式）。並び替えと期間絞り込みに使用する。
	CreatedAt string `yaml:"created_at" json:"created_at"`
	// Views は閲覧数（教材の場合は受講者数）。
	Views int64 `yaml:"views" json:"views"`
	// Likes はいいね数（教材の場合は5段階評価）。
	Likes float64 `yaml:"likes" json:"likes"`
	// Featured は注目アイテムかどうか。
	Featured bool `yaml:"featured" json:"featured"`
	// Difficulty は教材の難易度（beginner/intermediate/advanced）。メディア作品では空。
	Difficulty string `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
	// DurationSeconds は動画・チュートリアルの長さ（秒）。該当しない場合は0。
	DurationSeconds float64 `yaml:"duration_seconds,omitempty" json:"duration_seconds,omitempty"`
	// LessonCount はコースのレッスン数。該当しない場合は0。
	LessonCount int `yaml:"lessons,omitempty" json:"lessons,omitempty"`
	// Thumbnail はサムネイル画像のパス。
	Thumbnail string `yaml:"thumbnail" json:"thumbnail"`
	// Src はメディア本体のパス。
	Src string `yaml:"src,omitempty" json:"src,omitempty"`
}

// CreatedDate はCreatedAtをカレンダー日付として解釈する。
// 解釈できない場合はゼロ値とfalseを返す。呼び出し側は日付比較から除外すること。
func (i Item) CreatedDate() (time.Time, bool) {
	d, err := time.Parse(time.DateOnly, i.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}
