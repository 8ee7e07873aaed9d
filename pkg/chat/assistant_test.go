package chat

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/shouni/go-storyboard-kit/pkg/adapters"
	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mocks ---

type mockSession struct {
	mu    sync.Mutex
	sent  []string
	reply string
	err   error
}

func (m *mockSession) SendMessage(ctx context.Context, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, text)
	return m.reply, m.err
}

type mockStarter struct {
	session  *mockSession
	err      error
	starts   atomic.Int32
	lastInst string
}

func (m *mockStarter) StartChat(ctx context.Context, model, systemInstruction string) (adapters.ChatSession, error) {
	m.starts.Add(1)
	m.lastInst = systemInstruction
	if m.err != nil {
		return nil, m.err
	}
	return m.session, nil
}

// --- Tests ---

func TestNewAssistant_Validation(t *testing.T) {
	_, err := NewAssistant(nil, "gemini-2.5-flash")
	assert.Error(t, err)
	_, err = NewAssistant(&mockStarter{}, "")
	assert.Error(t, err)
}

func TestAssistant_EnsureSession_Idempotent(t *testing.T) {
	starter := &mockStarter{session: &mockSession{}}
	a, err := NewAssistant(starter, "gemini-2.5-flash")
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, a.EnsureSession(context.Background()))
		}()
	}
	wg.Wait()
	require.NoError(t, a.EnsureSession(context.Background()))

	assert.EqualValues(t, 1, starter.starts.Load())
	assert.Equal(t, prompts.ChatSystemInstruction, starter.lastInst)
}

func TestAssistant_SendMessage_OnlyLatestText(t *testing.T) {
	session := &mockSession{reply: "Use a low angle."}
	starter := &mockStarter{session: session}
	a, _ := NewAssistant(starter, "gemini-2.5-flash")

	_, err := a.SendMessage(context.Background(), "first question")
	require.NoError(t, err)
	reply, err := a.SendMessage(context.Background(), "second question")
	require.NoError(t, err)

	assert.Equal(t, "Use a low angle.", reply)
	assert.Equal(t, []string{"first question", "second question"}, session.sent)
	assert.EqualValues(t, 1, starter.starts.Load(), "session is created lazily once")
}

func TestAssistant_SendMessage_Failures(t *testing.T) {
	t.Run("セッション作成失敗", func(t *testing.T) {
		boom := errors.New("invalid key")
		a, _ := NewAssistant(&mockStarter{err: boom}, "m")

		_, err := a.SendMessage(context.Background(), "hi")
		assert.ErrorIs(t, err, domain.ErrChat)
		assert.ErrorIs(t, err, boom)
	})

	t.Run("送信失敗", func(t *testing.T) {
		boom := errors.New("timeout")
		a, _ := NewAssistant(&mockStarter{session: &mockSession{err: boom}}, "m")

		_, err := a.SendMessage(context.Background(), "hi")
		assert.ErrorIs(t, err, domain.ErrChat)
		assert.ErrorIs(t, err, boom)
	})
}
