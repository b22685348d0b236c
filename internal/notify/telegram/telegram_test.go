package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tyazhprofil/site/internal/domain"
)

func TestNotifyLead(t *testing.T) {
	var got sendMessageRequest
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer srv.Close()

	client := New("123:ABC", "-100200", WithBaseURL(srv.URL))
	err := client.NotifyLead(context.Background(), &domain.Lead{Name: "Иван", Phone: "+7 900", Message: "Нужны люди"})
	require.NoError(t, err)

	assert.Equal(t, "/bot123:ABC/sendMessage", gotPath)
	assert.Equal(t, "-100200", got.ChatID)
	assert.Contains(t, got.Text, "Иван")
	assert.Contains(t, got.Text, "+7 900")
	assert.Contains(t, got.Text, "Нужны люди")
}

func TestSendMessage_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	defer srv.Close()

	err := New("t", "c", WithBaseURL(srv.URL)).SendMessage(context.Background(), "hi")
	assert.ErrorContains(t, err, "chat not found")
}

func TestSendMessage_RedactsToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close()

	err := New("very-secret-token", "c", WithBaseURL(srv.URL)).SendMessage(context.Background(), "hi")
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "very-secret-token")
}

func TestFormatLead_OmitsEmptyMessage(t *testing.T) {
	text := FormatLead(&domain.Lead{Name: "Пётр", Phone: "+7 901"})
	assert.NotContains(t, text, "Сообщение")
}
