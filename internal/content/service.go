package content

import (
	"embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed data
var dataFS embed.FS

// Project はサービスの実績プロジェクト1件を表す。
type Project struct {
	// ID はプロジェクトの一意識別子（スラッグ）。
	ID string `yaml:"id" json:"id"`
	// Name はプロジェクト名。
	Name string `yaml:"name" json:"name"`
	// Partner はクライアント・パートナー名。
	Partner string `yaml:"partner" json:"partner"`
	// Image はプロジェクト画像のパス。
	Image string `yaml:"image" json:"image"`
	// Description はプロジェクトの説明文。
	Description string `yaml:"description" json:"description"`
}

// CaseStudy はサービスの導入事例を表す。
type CaseStudy struct {
	// Client は事例のクライアント名。
	Client string `yaml:"client" json:"client"`
	// Challenge は導入前の課題。
	Challenge string `yaml:"challenge" json:"challenge"`
	// Solution は提供した解決策。
	Solution string `yaml:"solution" json:"solution"`
	// Results は定量的な成果の一覧。
	Results []string `yaml:"results" json:"results"`
	// Testimonial はクライアントの声。
	Testimonial string `yaml:"testimonial" json:"testimonial"`
	// Rating は5段階評価。
	Rating int `yaml:"rating" json:"rating"`
}

// BeforeAfter は導入前後の比較を表す。
type BeforeAfter struct {
	// Before は導入前の状態。
	Before string `yaml:"before" json:"before"`
	// After は導入後の状態。
	After string `yaml:"after" json:"after"`
	// Improvement は改善の要約。
	Improvement string `yaml:"improvement" json:"improvement"`
}

// Service は提供サービス1件を表す。
type Service struct {
	// ID はサービスの一意識別子（スラッグ）。URLパスに使用する。
	ID string `yaml:"id" json:"id"`
	// Name はサービス名。
	Name string `yaml:"name" json:"name"`
	// Description はサービスの概要。
	Description string `yaml:"description" json:"description"`
	// Features は提供内容の一覧。
	Features []string `yaml:"features" json:"features"`
	// Technologies は使用技術の一覧。
	Technologies []string `yaml:"technologies" json:"technologies"`
	// PriceRange は価格帯の表示文字列。
	PriceRange string `yaml:"price_range" json:"price_range"`
	// Timeline は標準的な納期の表示文字列。
	Timeline string `yaml:"timeline" json:"timeline"`
	// CaseStudy は代表的な導入事例。
	CaseStudy CaseStudy `yaml:"case_study" json:"case_study"`
	// BeforeAfter は導入前後の比較。事例がない場合はnil。
	BeforeAfter *BeforeAfter `yaml:"before_after,omitempty" json:"before_after,omitempty"`
	// Projects は実績プロジェクトの一覧。
	Projects []Project `yaml:"projects" json:"projects"`
}

// servicesFile はデータファイルのYAML構造。
type servicesFile struct {
	Services []Service `yaml:"services"`
}

// LoadServices は埋め込みデータファイルからサービス定義を読み込んで検証する。
// ID重複と必須フィールドの欠落はエラーとする。
func LoadServices() ([]Service, error) {
	raw, err := dataFS.ReadFile("data/services.yaml")
	if err != nil {
		return nil, fmt.Errorf("データファイルの読み込みに失敗: %w", err)
	}

	var file servicesFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("データファイルのパースに失敗: %w", err)
	}

	seen := make(map[string]struct{}, len(file.Services))
	for _, svc := range file.Services {
		if svc.ID == "" || svc.Name == "" {
			return nil, fmt.Errorf("IDまたは名前が空のサービスがあります（id=%q, name=%q）", svc.ID, svc.Name)
		}
		if _, dup := seen[svc.ID]; dup {
			return nil, fmt.Errorf("サービスID %q が重複しています", svc.ID)
		}
		seen[svc.ID] = struct{}{}

		projectSeen := make(map[string]struct{}, len(svc.Projects))
		for _, p := range svc.Projects {
			if p.ID == "" {
				return nil, fmt.Errorf("サービス %s にIDが空のプロジェクトがあります", svc.ID)
			}
			if _, dup := projectSeen[p.ID]; dup {
				return nil, fmt.Errorf("サービス %s のプロジェクトID %q が重複しています", svc.ID, p.ID)
			}
			projectSeen[p.ID] = struct{}{}
		}
	}

	return file.Services, nil
}
