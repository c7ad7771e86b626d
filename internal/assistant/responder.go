package assistant

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Greeting はセッション開始時にアシスタントが送る挨拶文。
const Greeting = "Xin chào! Tôi là Hoàng Anh, trợ lý ảo của VizioCraft Design. Tôi có thể giúp bạn tìm hiểu về dịch vụ của chúng tôi và trả lời các câu hỏi. Bạn cần hỗ trợ gì không?"

// fallbackReply はどのルールにも一致しない場合の応答。
const fallbackReply = "Cảm ơn bạn đã liên hệ! Tôi hiểu bạn quan tâm đến dịch vụ của chúng tôi. Để tư vấn chính xác nhất, bạn có thể chia sẻ thêm về dự án hoặc nhu cầu cụ thể. Hoặc bạn có thể liên hệ trực tiếp với team qua email: contact@viziocraft.design để được hỗ trợ chi tiết hơn."

// rule はキーワード群と応答文の組。キーワードはいずれか1つの部分一致で発火する。
type rule struct {
	keywords []string
	reply    string
}

// rules は適用順に評価される応答ルール。先に一致したものが優先される。
var rules = []rule{
	{
		keywords: []string{"ai", "automation"},
		reply:    "Dịch vụ AI Solutions của chúng tôi bao gồm: Intelligent Agents, Business Process Automation, No-code/Low-code Solutions, và AI-powered Analytics. Chúng tôi có thể giúp bạn tự động hóa quy trình kinh doanh và tích hợp AI vào hệ thống hiện tại. Bạn có muốn tìm hiểu chi tiết về dịch vụ nào không?",
	},
	{
		keywords: []string{"video", "sản xuất"},
		reply:    "Dịch vụ Video Production của chúng tôi bao gồm: AI-enhanced Video Creation, 3D Animation, Motion Graphics, và Post-production Services. Chi phí sẽ phụ thuộc vào độ phức tạp và thời lượng video. Bạn có thể chia sẻ thêm về dự án để tôi tư vấn cụ thể hơn không?",
	},
	{
		keywords: []string{"học", "course", "tutorial"},
		reply:    "Chúng tôi có Learning Center với nhiều khóa học và tutorial về AI, Video Production, Web Development, và Marketing. Bạn có thể truy cập phần Learning để xem các khóa học miễn phí và trả phí. Bạn quan tâm đến lĩnh vực nào nhất?",
	},
	{
		keywords: []string{"liên hệ", "contact"},
		reply:    "Bạn có thể liên hệ với chúng tôi qua: Email: contact@viziocraft.design, Phone: +848 68 68 99 12, hoặc điền form liên hệ trên website. Chúng tôi sẽ phản hồi trong vòng 24 giờ. Bạn muốn tôi hỗ trợ điền form liên hệ không?",
	},
	{
		keywords: []string{"thời gian", "bao lâu"},
		reply:    "Thời gian hoàn thành dự án phụ thuộc vào quy mô và độ phức tạp: AI Solutions (2-6 tháng), Video Production (2-8 tuần), Web Development (1-4 tháng). Chúng tôi sẽ đưa ra timeline cụ thể sau khi tìm hiểu yêu cầu của bạn. Bạn có dự án cụ thể nào cần tư vấn không?",
	},
}

// SuggestedQuestions はチャットUIに表示する質問の候補。
var SuggestedQuestions = []string{
	"Dịch vụ AI Solutions của bạn bao gồm những gì?",
	"Chi phí sản xuất video như thế nào?",
	"Tôi có thể học các khóa học online không?",
	"Làm thế nào để liên hệ với team?",
	"Thời gian hoàn thành dự án thường là bao lâu?",
}

// Respond はユーザーのメッセージに対する応答文を返す。
// 大文字小文字を区別せず、ルールの定義順に最初に一致したものを返す。
// ベトナム語の分解済み文字でもキーワードに一致するようNFC正規化してから照合する。
func Respond(message string) string {
	folded := strings.ToLower(norm.NFC.String(message))
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(folded, kw) {
				return r.reply
			}
		}
	}
	return fallbackReply
}
