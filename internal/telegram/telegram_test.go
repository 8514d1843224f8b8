package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// botAPI is a minimal Bot API double that records sendMessage calls
type botAPI struct {
	mu       sync.Mutex
	paths    []string
	texts    []string
	chatIDs  []string
	failWith string
}

func (b *botAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseMultipartForm(1 << 20)

	b.mu.Lock()
	b.paths = append(b.paths, r.URL.Path)
	b.texts = append(b.texts, r.FormValue("text"))
	b.chatIDs = append(b.chatIDs, r.FormValue("chat_id"))
	failWith := b.failWith
	b.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if failWith != "" {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"ok":          false,
			"error_code":  400,
			"description": failWith,
		})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"ok": true,
		"result": map[string]interface{}{
			"message_id": 123,
			"date":       0,
			"chat":       map[string]interface{}{"id": 789, "type": "private"},
			"text":       "ok",
		},
	})
}

func newTestClient(t *testing.T, api *botAPI) *Client {
	t.Helper()
	server := httptest.NewServer(api)
	t.Cleanup(server.Close)

	client, err := NewClient("test-token", "12345", WithServerURL(server.URL))
	if err != nil {
		t.Fatalf("NewClient() unexpected error: %v", err)
	}
	return client
}

func TestNewClient_Validation(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		chatID  string
		wantErr bool
	}{
		{"valid", "token", "123", false},
		{"missing token", "", "123", true},
		{"missing chat", "token", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.token, tt.chatID)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSendMessage_Success(t *testing.T) {
	api := &botAPI{}
	client := newTestClient(t, api)

	if err := client.SendMessage(context.Background(), "<b>Hello</b>"); err != nil {
		t.Fatalf("SendMessage() unexpected error: %v", err)
	}

	if len(api.paths) != 1 || !strings.HasSuffix(api.paths[0], "/sendMessage") {
		t.Errorf("paths = %v, want one sendMessage call", api.paths)
	}
	if !strings.Contains(api.paths[0], "test-token") {
		t.Errorf("path %q does not carry the bot token", api.paths[0])
	}
	if api.texts[0] != "<b>Hello</b>" {
		t.Errorf("text = %q", api.texts[0])
	}
	if !strings.Contains(api.chatIDs[0], "12345") {
		t.Errorf("chat_id = %q", api.chatIDs[0])
	}
}

func TestSendMessage_APIError(t *testing.T) {
	api := &botAPI{failWith: "Bad Request: chat not found"}
	client := newTestClient(t, api)

	err := client.SendMessage(context.Background(), "Test message")
	if err == nil {
		t.Fatal("SendMessage() expected error")
	}
}

func TestSendMessage_Validation(t *testing.T) {
	api := &botAPI{}
	client := newTestClient(t, api)

	if err := client.SendMessage(context.Background(), ""); err == nil {
		t.Error("SendMessage(\"\") expected error")
	}
	if err := client.SendMessage(context.Background(), strings.Repeat("x", MaxMessageLength+1)); err == nil {
		t.Error("SendMessage() over the length limit expected error")
	}
	if len(api.paths) != 0 {
		t.Errorf("invalid messages reached the API: %v", api.paths)
	}
}
