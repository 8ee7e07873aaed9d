package chat

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shouni/go-storyboard-kit/pkg/domain"
	"github.com/shouni/go-storyboard-kit/pkg/prompts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockResponder struct {
	sendFunc func(ctx context.Context, text string) (string, error)
}

func (m *mockResponder) SendMessage(ctx context.Context, text string) (string, error) {
	return m.sendFunc(ctx, text)
}

func echoResponder() *mockResponder {
	return &mockResponder{sendFunc: func(ctx context.Context, text string) (string, error) {
		return "echo: " + text, nil
	}}
}

func newTestConversation(t *testing.T, r Responder) *Conversation {
	t.Helper()
	c, err := NewConversation(r)
	require.NoError(t, err)
	return c
}

func TestNewConversation_RequiresResponder(t *testing.T) {
	_, err := NewConversation(nil)
	assert.Error(t, err)
}

func TestConversation_Open_GreetsOnce(t *testing.T) {
	c := newTestConversation(t, echoResponder())
	c.Open()
	c.Open()

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, domain.SenderBot, msgs[0].Sender)
	assert.Equal(t, prompts.ChatGreeting, msgs[0].Text)
	assert.NotEmpty(t, msgs[0].ID)
}

func TestConversation_Open_NoGreetingWhenLogExists(t *testing.T) {
	c := newTestConversation(t, echoResponder())
	_, err := c.Send(context.Background(), "hello")
	require.NoError(t, err)

	c.Open()
	msgs := c.Messages()
	require.Len(t, msgs, 2)
	assert.Equal(t, domain.SenderUser, msgs[0].Sender)
}

func TestConversation_Send_Success(t *testing.T) {
	c := newTestConversation(t, echoResponder())
	c.Open()

	reply, err := c.Send(context.Background(), "How long is a scene?")
	require.NoError(t, err)
	assert.Equal(t, "echo: How long is a scene?", reply)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, domain.ChatMessage{ID: msgs[1].ID, Text: "How long is a scene?", Sender: domain.SenderUser}, msgs[1])
	assert.Equal(t, domain.SenderBot, msgs[2].Sender)
	assert.NotEqual(t, msgs[1].ID, msgs[2].ID)
}

func TestConversation_Send_BlankIsRejected(t *testing.T) {
	c := newTestConversation(t, echoResponder())
	c.Open()

	_, err := c.Send(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyInput)
	assert.Len(t, c.Messages(), 1)
}

func TestConversation_Send_FailureAppendsApology(t *testing.T) {
	boom := fmt.Errorf("%w: connection reset", domain.ErrChat)
	c := newTestConversation(t, &mockResponder{sendFunc: func(ctx context.Context, text string) (string, error) {
		return "", boom
	}})
	c.Open()

	reply, err := c.Send(context.Background(), "Are you there?")
	assert.True(t, errors.Is(err, domain.ErrChat))
	assert.Equal(t, prompts.ChatApology, reply)

	msgs := c.Messages()
	require.Len(t, msgs, 3)
	assert.Equal(t, "Are you there?", msgs[1].Text, "user message is kept")
	assert.Equal(t, domain.SenderBot, msgs[2].Sender)
	assert.Equal(t, prompts.ChatApology, msgs[2].Text)
}

func TestConversation_Send_Serialized(t *testing.T) {
	var mu sync.Mutex
	inFlight, maxInFlight := 0, 0
	c := newTestConversation(t, &mockResponder{sendFunc: func(ctx context.Context, text string) (string, error) {
		mu.Lock()
		inFlight++
		maxInFlight = max(maxInFlight, inFlight)
		mu.Unlock()

		time.Sleep(2 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
		return "ok", nil
	}})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Send(context.Background(), fmt.Sprintf("message %d", i))
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxInFlight)
	msgs := c.Messages()
	require.Len(t, msgs, 16)
	for i := 0; i < len(msgs); i += 2 {
		assert.Equal(t, domain.SenderUser, msgs[i].Sender, "each user message is followed by its reply")
		assert.Equal(t, domain.SenderBot, msgs[i+1].Sender)
	}
}

func TestConversation_Messages_ReturnsCopy(t *testing.T) {
	c := newTestConversation(t, echoResponder())
	c.Open()

	msgs := c.Messages()
	msgs[0].Text = "tampered"
	assert.Equal(t, prompts.ChatGreeting, c.Messages()[0].Text)
}
