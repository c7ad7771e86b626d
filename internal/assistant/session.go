package assistant

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxTranscriptLength は1セッションに保持するメッセージ数の上限。
// 超過した場合は古いメッセージから破棄する。
const maxTranscriptLength = 100

// SenderUser はユーザーが送信したメッセージを表す。
const SenderUser = "user"

// SenderAssistant はアシスタントが送信したメッセージを表す。
const SenderAssistant = "assistant"

// Message はチャットの発言1件を表す。
type Message struct {
	// ID はメッセージの一意識別子。
	ID string `json:"id"`
	// Sender は発言者（user または assistant）。
	Sender string `json:"sender"`
	// Text は発言内容。
	Text string `json:"text"`
	// Timestamp は発言時刻。
	Timestamp time.Time `json:"timestamp"`
}

// Session はチャットセッション1件を表す。
type Session struct {
	// ID はセッションの一意識別子。
	ID string `json:"id"`
	// Messages は会話履歴。古い順。
	Messages []Message `json:"messages"`
	// CreatedAt はセッションの開始時刻。
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore はチャットセッションをメモリ上に保持する。
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewSessionStore は空のセッションストアを生成する。
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]*Session),
	}
}

// Create は挨拶メッセージ入りの新しいセッションを作成して返す。
func (s *SessionStore) Create() *Session {
	now := time.Now()
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		Messages: []Message{
			{
				ID:        uuid.NewString(),
				Sender:    SenderAssistant,
				Text:      Greeting,
				Timestamp: now,
			},
		},
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	return session
}

// Get は指定されたIDのセッションのコピーを返す。存在しない場合はfalse。
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}

	copied := *session
	copied.Messages = make([]Message, len(session.Messages))
	copy(copied.Messages, session.Messages)
	return copied, true
}

// Append はセッションにユーザーの発言とアシスタントの応答を追記する。
// セッションが存在しない場合はfalseを返す。
func (s *SessionStore) Append(id string, userText, assistantText string) (Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Message{}, false
	}

	now := time.Now()
	reply := Message{
		ID:        uuid.NewString(),
		Sender:    SenderAssistant,
		Text:      assistantText,
		Timestamp: now,
	}
	session.Messages = append(session.Messages,
		Message{
			ID:        uuid.NewString(),
			Sender:    SenderUser,
			Text:      userText,
			Timestamp: now,
		},
		reply,
	)

	// 履歴の上限を超えたら古いメッセージを落とす。
	if overflow := len(session.Messages) - maxTranscriptLength; overflow > 0 {
		session.Messages = session.Messages[overflow:]
	}

	return reply, true
}
