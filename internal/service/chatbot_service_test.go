package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"college-portal-be/internal/dto"
	"college-portal-be/internal/pkg/apperror"
	"college-portal-be/pkg/llm/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingArchivePublisher struct {
	mu       sync.Mutex
	payloads []*ArchiveExchangeMessage
}

func (p *recordingArchivePublisher) PublishArchiveExchange(ctx context.Context, payload *ArchiveExchangeMessage) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.payloads = append(p.payloads, payload)
	return nil
}

func newGatewayStub(status int, reply string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		})
	}))
}

func TestChatbotAsk(t *testing.T) {
	stub := newGatewayStub(http.StatusOK, "Admissions open in June.")
	defer stub.Close()

	archive := &recordingArchivePublisher{}
	svc := NewChatbotService(gateway.NewGatewayProvider(stub.URL, "", "test-model"), archive, nopLogger{})

	userId := uuid.New()
	res, err := svc.Ask(context.Background(), &userId, &dto.ChatbotRequest{
		Message: "When do admissions open?",
		Role:    "student",
		History: []dto.ChatbotTurnPayload{
			{Role: "user", Content: "hi"},
			{Role: "model", Content: "hello, how can I help?"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Admissions open in June.", res.Reply)

	require.Len(t, archive.payloads, 1)
	stored := archive.payloads[0]
	assert.Equal(t, "When do admissions open?", stored.Question)
	assert.Equal(t, "Admissions open in June.", stored.Answer)
	assert.Equal(t, "student", stored.Role)
	require.NotNil(t, stored.UserId)
	assert.Equal(t, userId, *stored.UserId)
	assert.Len(t, stored.History, 2)
}

func TestChatbotAskDefaultsToVisitor(t *testing.T) {
	stub := newGatewayStub(http.StatusOK, "ok")
	defer stub.Close()

	archive := &recordingArchivePublisher{}
	svc := NewChatbotService(gateway.NewGatewayProvider(stub.URL, "", "test-model"), archive, nopLogger{})

	_, err := svc.Ask(context.Background(), nil, &dto.ChatbotRequest{Message: "hello"})
	require.NoError(t, err)

	require.Len(t, archive.payloads, 1)
	assert.Equal(t, "visitor", archive.payloads[0].Role)
	assert.Nil(t, archive.payloads[0].UserId)
}

func TestChatbotAskRateLimited(t *testing.T) {
	stub := newGatewayStub(http.StatusTooManyRequests, "")
	defer stub.Close()

	archive := &recordingArchivePublisher{}
	svc := NewChatbotService(gateway.NewGatewayProvider(stub.URL, "", "test-model"), archive, nopLogger{})

	_, err := svc.Ask(context.Background(), nil, &dto.ChatbotRequest{Message: "hello"})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeUnavailable, apperror.CodeOf(err))
	assert.Contains(t, err.Error(), "too many requests")
	assert.Empty(t, archive.payloads, "failed calls are never archived")
}

func TestChatbotAskCreditsExhausted(t *testing.T) {
	stub := newGatewayStub(http.StatusPaymentRequired, "")
	defer stub.Close()

	svc := NewChatbotService(gateway.NewGatewayProvider(stub.URL, "", "test-model"), &recordingArchivePublisher{}, nopLogger{})

	_, err := svc.Ask(context.Background(), nil, &dto.ChatbotRequest{Message: "hello"})
	require.Error(t, err)
	assert.Equal(t, apperror.CodeUnavailable, apperror.CodeOf(err))
	assert.Contains(t, err.Error(), "out of capacity")
}
