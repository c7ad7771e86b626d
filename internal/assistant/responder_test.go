package assistant

import (
	"strings"
	"testing"

	"golang.org/x/text/unicode/norm"
)

func TestRespond(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "正常系_AIキーワード",
			message: "Dịch vụ AI Solutions của bạn bao gồm những gì?",
			want:    "AI Solutions",
		},
		{
			name:    "正常系_automationキーワード",
			message: "Can you help with automation?",
			want:    "AI Solutions",
		},
		{
			name:    "正常系_videoキーワード",
			message: "Chi phí sản xuất video như thế nào?",
			want:    "Video Production",
		},
		{
			name:    "正常系_học キーワード",
			message: "Tôi muốn học thêm về motion graphics",
			want:    "Learning Center",
		},
		{
			name:    "正常系_contactキーワード",
			message: "How do I contact the team?",
			want:    "contact@viziocraft.design",
		},
		{
			name:    "正常系_納期の質問",
			message: "Dự án mất bao lâu để hoàn thành?",
			want:    "Thời gian hoàn thành",
		},
		{
			name:    "正常系_大文字でも一致",
			message: "TELL ME ABOUT YOUR AI SERVICES",
			want:    "AI Solutions",
		},
		{
			name:    "正常系_一致なしはフォールバック",
			message: "xin chào",
			want:    "Cảm ơn bạn đã liên hệ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Respond(tt.message)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Respond(%q) = %q, want substring %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestRespond_分解済みのベトナム語(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message string
		want    string
	}{
		{
			name:    "正常系_分解済みのhọcが一致する",
			message: norm.NFD.String("tôi muốn học nâng cao"),
			want:    "Learning Center",
		},
		{
			name:    "正常系_分解済みのliên hệが一致する",
			message: norm.NFD.String("làm sao để liên hệ?"),
			want:    "contact@viziocraft.design",
		},
		{
			name:    "正常系_分解済みのsản xuấtが一致する",
			message: norm.NFD.String("chi phí sản xuất"),
			want:    "Video Production",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Respond(tt.message)
			if !strings.Contains(got, tt.want) {
				t.Errorf("Respond(%q) = %q, want substring %q", tt.message, got, tt.want)
			}
		})
	}
}

func TestRespond_ルールの優先順位(t *testing.T) {
	t.Parallel()

	// "ai"と"video"の両方を含む場合は先に定義されたAIルールが勝つ。
	got := Respond("ai video editing")
	if !strings.Contains(got, "AI Solutions") {
		t.Errorf("Respond() = %q, want AI Solutionsの応答", got)
	}
}
