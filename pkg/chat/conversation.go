package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
)

// Responder は最新の発言に対する応答を返すチャット相手です。
type Responder interface {
	SendMessage(ctx context.Context, text string) (string, error)
}

// Conversation は1人の利用者との表示用会話ログです。
// ログは追記のみで、送信は1件ずつ直列に処理されます。
type Conversation struct {
	responder Responder

	sendMu sync.Mutex // 応答待ちの間、次の送信を待たせる
	mu     sync.RWMutex
	log    []domain.ChatMessage
}

// NewConversation は空の会話を作成します。
func NewConversation(r Responder) (*Conversation, error) {
	if r == nil {
		return nil, fmt.Errorf("responder is required")
	}
	return &Conversation{responder: r}, nil
}

// Open はログが空のときだけ挨拶メッセージを1件追加します。
func (c *Conversation) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.log) == 0 {
		c.log = append(c.log, newMessage(prompts.ChatGreeting, domain.SenderBot))
	}
}

// Send はユーザーの発言をログに追加し、応答を受け取って追加します。
// 応答に失敗した場合はお詫びの定型文をボットの発言として追加し、それを返すと同時にエラーも返します。
// ユーザーの発言は失敗時も取り消しません。
func (c *Conversation) Send(ctx context.Context, text string) (string, error) {
	if domain.IsBlank(text) {
		return "", domain.ErrEmptyInput
	}

	c.sendMu.Lock()
	defer c.sendMu.Unlock()

	c.add(newMessage(text, domain.SenderUser))

	reply, err := c.responder.SendMessage(ctx, text)
	if err != nil {
		slog.ErrorContext(ctx, "Chat response failed", "error", err)
		c.add(newMessage(prompts.ChatApology, domain.SenderBot))
		return prompts.ChatApology, err
	}

	c.add(newMessage(reply, domain.SenderBot))
	return reply, nil
}

// Messages はログのコピーを返します。
func (c *Conversation) Messages() []domain.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.ChatMessage, len(c.log))
	copy(out, c.log)
	return out
}

func (c *Conversation) add(m domain.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.log = append(c.log, m)
}

func newMessage(text string, sender domain.Sender) domain.ChatMessage {
	return domain.ChatMessage{
		ID:     uuid.NewString(),
		Text:   text,
		Sender: sender,
	}
}
