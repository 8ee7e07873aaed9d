package chat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
)

// Assistant は脚本家向けのチャットアシスタントです。
// プロバイダ側のセッションは最初の利用時に1度だけ作成し、以降は同じものを使い回します。
type Assistant struct {
	starter adapters.ChatStarter
	model   string

	mu      sync.Mutex
	session adapters.ChatSession
}

// NewAssistant は Assistant を初期化します。セッションはまだ作成しません。
func NewAssistant(starter adapters.ChatStarter, model string) (*Assistant, error) {
	if starter == nil {
		return nil, fmt.Errorf("chat starter is required")
	}
	if model == "" {
		return nil, fmt.Errorf("model is required")
	}
	return &Assistant{starter: starter, model: model}, nil
}

// EnsureSession はセッションが未作成なら作成します。作成済みなら何もしません。
func (a *Assistant) EnsureSession(ctx context.Context) error {
	_, err := a.ensureSession(ctx)
	return err
}

func (a *Assistant) ensureSession(ctx context.Context) (adapters.ChatSession, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.session != nil {
		return a.session, nil
	}

	session, err := a.starter.StartChat(ctx, a.model, prompts.ChatSystemInstruction)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to start session: %w", domain.ErrChat, err)
	}
	slog.InfoContext(ctx, "Chat session initialized", "model", a.model)
	a.session = session
	return session, nil
}

// SendMessage は最新のユーザー発言だけを送信し、応答テキストを返します。
// 過去の発言はプロバイダ側のセッションが保持している前提で再送しません。
// 履歴を保持しないプロバイダに差し替える場合は、ここで会話ログ全体を送る必要があります。
func (a *Assistant) SendMessage(ctx context.Context, text string) (string, error) {
	session, err := a.ensureSession(ctx)
	if err != nil {
		return "", err
	}

	reply, err := session.SendMessage(ctx, text)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrChat, err)
	}
	return reply, nil
}
