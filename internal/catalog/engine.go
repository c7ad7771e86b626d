package catalog

import (
	"cmp"
	"slices"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// SortKey は並び替えの基準を表す。
type SortKey string

const (
	// SortByDate は作成日で並び替える。
	SortByDate SortKey = "date"
	// SortByViews は閲覧数（受講者数）で並び替える。
	SortByViews SortKey = "views"
	// SortByLikes はいいね数（評価）で並び替える。
	SortByLikes SortKey = "likes"
	// SortByTitle はタイトルの辞書順で並び替える。大文字小文字は区別しない。
	SortByTitle SortKey = "title"
)

// SortOrder は並び替えの方向を表す。
type SortOrder string

const (
	// OrderAsc は昇順を表す。
	OrderAsc SortOrder = "asc"
	// OrderDesc は降順を表す。
	OrderDesc SortOrder = "desc"
)

// Request はカタログへの1回の問い合わせ内容を表す。
// ゼロ値は「全件を作成日降順で1ページ目から返す」問い合わせとして扱える。
type Request struct {
	// Search は空白区切りの検索語。すべての語が検索対象フィールドのいずれかに
	// 部分一致した場合のみマッチする。空文字列は全件にマッチする。
	Search string
	// Categories は絞り込むカテゴリ。空の場合は絞り込まない。複数指定はOR。
	Categories []string
	// Kinds は絞り込むアイテム種別。空の場合は絞り込まない。複数指定はOR。
	Kinds []Kind
	// Difficulties は絞り込む難易度。空の場合は絞り込まない。複数指定はOR。
	Difficulties []string
	// Featured は注目アイテムのみ（true）・注目以外のみ（false）に絞り込む。
	// nilの場合は絞り込まない。
	Featured *bool
	// From は作成日の下限（その日を含む）。nilの場合は下限なし。
	From *time.Time
	// To は作成日の上限（その日を含む）。nilの場合は上限なし。
	To *time.Time
	// SortKey は並び替えの基準。未指定（空文字列）は作成日順。
	SortKey SortKey
	// SortOrder は並び替えの方向。未指定は降順。
	SortOrder SortOrder
	// Page は1始まりのページ番号。1未満は1に丸める。
	Page int
	// PageSize は1ページあたりの件数。1未満は1に丸める。
	PageSize int
}

// Result は問い合わせ結果を表す。
type Result struct {
	// Items は要求されたページに含まれるアイテム。長さはPageSize以下。
	Items []Item
	// TotalMatched はページネーション前の全マッチ件数。
	TotalMatched int
	// TotalPages は総ページ数。マッチ0件でも最小1。
	TotalPages int
	// FacetCounts はカテゴリごとのマッチ件数。カテゴリ以外の全フィルタを
	// 適用した集合に対して数えるため、カテゴリ絞り込みの「(N)」バッジに使える。
	FacetCounts map[string]int
}

// Query はカタログと問い合わせ内容から、並び替え済み・ページネーション済みの
// 結果を導出する純粋関数。itemsを変更せず、同じ引数に対して常に同じ結果を返す。
// 並び順はID昇順のタイブレークにより決定的で、降順指定でもタイブレークは反転しない。
func Query(items []Item, req Request) Result {
	page := req.Page
	if page < 1 {
		page = 1
	}
	size := req.PageSize
	if size < 1 {
		size = 1
	}

	tokens := searchTokens(req.Search)

	// カテゴリ以外の全フィルタを適用した集合。ファセット集計の母集合になる。
	base := make([]Item, 0, len(items))
	for _, it := range items {
		if !matchesSearch(it, tokens) {
			continue
		}
		if len(req.Kinds) > 0 && !slices.Contains(req.Kinds, it.Kind) {
			continue
		}
		if len(req.Difficulties) > 0 && !slices.Contains(req.Difficulties, it.Difficulty) {
			continue
		}
		if req.Featured != nil && it.Featured != *req.Featured {
			continue
		}
		if !matchesDateRange(it, req.From, req.To) {
			continue
		}
		base = append(base, it)
	}

	facets := make(map[string]int)
	for _, it := range base {
		facets[it.Category]++
	}

	matched := base
	if len(req.Categories) > 0 {
		matched = make([]Item, 0, len(base))
		for _, it := range base {
			if slices.Contains(req.Categories, it.Category) {
				matched = append(matched, it)
			}
		}
	}

	total := len(matched)
	totalPages := (total + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}

	sortItems(matched, req.SortKey, req.SortOrder)

	start := (page - 1) * size
	end := start + size
	pageItems := []Item{}
	if start < total {
		if end > total {
			end = total
		}
		pageItems = matched[start:end]
	}

	return Result{
		Items:        pageItems,
		TotalMatched: total,
		TotalPages:   totalPages,
		FacetCounts:  facets,
	}
}

// fold は検索・比較用にテキストを正規化する。
// ベトナム語の合成済み・分解済み文字が混在してもマッチするようNFC正規化してから小文字化する。
func fold(s string) string {
	return strings.ToLower(norm.NFC.String(s))
}

// searchTokens は検索語を正規化してトークンに分割する。
func searchTokens(search string) []string {
	return strings.Fields(fold(search))
}

// matchesSearch はアイテムが全検索トークンにマッチするか判定する。
// 検索対象はタイトル・説明文・帰属（クライアント/講師）・カテゴリ・タグ。
func matchesSearch(it Item, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}
	haystack := fold(strings.Join([]string{
		it.Title,
		it.Description,
		it.Attribution,
		it.Category,
		strings.Join(it.Tags, " "),
	}, " "))
	for _, token := range tokens {
		if !strings.Contains(haystack, token) {
			return false
		}
	}
	return true
}

// matchesDateRange はアイテムの作成日が期間内（両端を含む）にあるか判定する。
// 境界が両方nilの場合は常にマッチする。作成日が解釈できないアイテムは、
// いずれかの境界が指定されている場合のみ除外される。
func matchesDateRange(it Item, from, to *time.Time) bool {
	if from == nil && to == nil {
		return true
	}
	d, ok := it.CreatedDate()
	if !ok {
		return false
	}
	if from != nil && d.Before(*from) {
		return false
	}
	if to != nil && d.After(*to) {
		return false
	}
	return true
}

// sortItems はアイテム列をインプレースで並び替える。
// 主キーが等しい場合は並び順の指定に関わらずID昇順で順序を確定させる。
func sortItems(items []Item, key SortKey, order SortOrder) {
	desc := order != OrderAsc
	sort.Slice(items, func(i, j int) bool {
		c := compareItems(items[i], items[j], key)
		if desc {
			c = -c
		}
		if c != 0 {
			return c < 0
		}
		return items[i].ID < items[j].ID
	})
}

// compareItems は並び替えキーに基づいて2つのアイテムを比較する。
// 未知のキーは作成日扱いとし、解釈できない作成日はゼロ値（最古）として比較する。
func compareItems(a, b Item, key SortKey) int {
	switch key {
	case SortByViews:
		return cmp.Compare(a.Views, b.Views)
	case SortByLikes:
		return cmp.Compare(a.Likes, b.Likes)
	case SortByTitle:
		return strings.Compare(fold(a.Title), fold(b.Title))
	default:
		ad, _ := a.CreatedDate()
		bd, _ := b.CreatedDate()
		return ad.Compare(bd)
	}
}

// Summary はコレクション全体の集計値。ページヘッダーの統計バッジ表示に使用する。
type Summary struct {
	// TotalItems はコレクションの総アイテム数。
	TotalItems int `json:"total_items"`
	// Images は静止画作品の数。
	Images int `json:"images"`
	// Videos は動画作品の数。
	Videos int `json:"videos"`
	// Tutorials はチュートリアルの数。
	Tutorials int `json:"tutorials"`
	// Courses はコースの数。
	Courses int `json:"courses"`
	// Featured は注目アイテムの数。
	Featured int `json:"featured"`
	// TotalViews は閲覧数（受講者数）の合計。
	TotalViews int64 `json:"total_views"`
	// TotalLikes はいいね数（評価値）の合計。
	TotalLikes float64 `json:"total_likes"`
}

// Stats はコレクション全体の集計値を算出する。
func Stats(items []Item) Summary {
	var s Summary
	s.TotalItems = len(items)
	for _, it := range items {
		switch it.Kind {
		case KindImage:
			s.Images++
		case KindVideo:
			s.Videos++
		case KindTutorial:
			s.Tutorials++
		case KindCourse:
			s.Courses++
		}
		if it.Featured {
			s.Featured++
		}
		s.TotalViews += it.Views
		s.TotalLikes += it.Likes
	}
	return s
}
