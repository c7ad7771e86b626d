package catalog

import (
	"embed"
	"fmt"
	"log"
	"slices"

	"gopkg.in/yaml.v3"
)

//go:embed data
var dataFS embed.FS

// CollectionGallery はギャラリー作品コレクションの名前。
const CollectionGallery = "gallery"

// CollectionLearning はラーニング教材コレクションの名前。
const CollectionLearning = "learning"

// kindsByCollection は各コレクションで許可されるアイテム種別。
var kindsByCollection = map[string][]Kind{
	CollectionGallery:  {KindImage, KindVideo},
	CollectionLearning: {KindTutorial, KindCourse},
}

// Collection は検証済みのカタログコレクション。
// Itemsは読み込み後に変更してはならない。再読み込み時は新しいCollectionを作る。
type Collection struct {
	// Name はコレクション名（gallery または learning）。
	Name string
	// Categories はこのコレクションで有効なカテゴリの登録簿。データファイルで宣言する。
	Categories []string
	// Items は検証済みのアイテム列。
	Items []Item
}

// collectionFile はデータファイルのYAML構造。
type collectionFile struct {
	// Categories は有効なカテゴリの宣言。アイテムはここにあるカテゴリのみ使用できる。
	Categories []string `yaml:"categories"`
	// Items はアイテム定義の一覧。
	Items []Item `yaml:"items"`
}

// Load は埋め込みデータファイルからコレクションを読み込んで検証する。
// ID重複・登録簿にないカテゴリ・コレクションに合わない種別・負の指標値はエラーとする。
// 作成日が解釈できないアイテムは警告ログを出して残す（期間絞り込みからは除外される）。
func Load(name string) (*Collection, error) {
	if _, ok := kindsByCollection[name]; !ok {
		return nil, fmt.Errorf("未知のコレクション: %s", name)
	}

	raw, err := dataFS.ReadFile("data/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("データファイルの読み込みに失敗: %w", err)
	}

	return parseCollection(name, raw)
}

// parseCollection はYAMLバイト列からコレクションを組み立てて検証する。
func parseCollection(name string, raw []byte) (*Collection, error) {
	allowed := kindsByCollection[name]

	var file collectionFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("データファイルのパースに失敗: %w", err)
	}

	if len(file.Categories) == 0 {
		return nil, fmt.Errorf("コレクション %s にカテゴリ登録簿がありません", name)
	}
	registry := make(map[string]struct{}, len(file.Categories))
	for _, cat := range file.Categories {
		if _, dup := registry[cat]; dup {
			return nil, fmt.Errorf("カテゴリ %q が重複して宣言されています", cat)
		}
		registry[cat] = struct{}{}
	}

	seen := make(map[string]struct{}, len(file.Items))
	for _, it := range file.Items {
		if it.ID == "" {
			return nil, fmt.Errorf("IDが空のアイテムがあります（title=%q）", it.Title)
		}
		if _, dup := seen[it.ID]; dup {
			return nil, fmt.Errorf("アイテムID %q が重複しています", it.ID)
		}
		seen[it.ID] = struct{}{}

		if !slices.Contains(allowed, it.Kind) {
			return nil, fmt.Errorf("アイテム %s の種別 %q はコレクション %s では使用できません", it.ID, it.Kind, name)
		}
		if _, ok := registry[it.Category]; !ok {
			return nil, fmt.Errorf("アイテム %s のカテゴリ %q は登録簿にありません", it.ID, it.Category)
		}
		if it.Views < 0 || it.Likes < 0 {
			return nil, fmt.Errorf("アイテム %s の指標値が負です", it.ID)
		}
		if _, ok := it.CreatedDate(); !ok {
			log.Printf("[Catalog] アイテム %s の作成日 %q が解釈できません。期間絞り込みから除外されます", it.ID, it.CreatedAt)
		}
	}

	return &Collection{
		Name:       name,
		Categories: file.Categories,
		Items:      file.Items,
	}, nil
}
