package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/pfrederiksen/venue-slots/internal/filter"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/api/", 5*time.Second)
}

func TestFetchSlots_Query(t *testing.T) {
	var gotPath, gotQuery, gotAgent string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data": [], "total_count": 0}`))
	})

	_, err := client.FetchSlots(context.Background(), filter.Filter{City: "NYC", Guests: 6})
	if err != nil {
		t.Fatalf("FetchSlots() unexpected error: %v", err)
	}

	if gotPath != "/api/data" {
		t.Errorf("path = %q, want /api/data", gotPath)
	}
	if gotQuery != "city=NYC&guests=6" {
		t.Errorf("query = %q, want city=NYC&guests=6", gotQuery)
	}
	if gotAgent != UserAgent {
		t.Errorf("User-Agent = %q", gotAgent)
	}
}

func TestFetchSlots_EmptyFilterSendsNoQuery(t *testing.T) {
	var gotQuery string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = w.Write([]byte(`{"data": []}`))
	})

	if _, err := client.FetchSlots(context.Background(), filter.Filter{}); err != nil {
		t.Fatal(err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}
}

func TestFetchSlots_ResponseCascade(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		contentType string
		body        string
		wantCount   int
		wantErr     error
		wantStatus  int
		wantMessage string
	}{
		{
			name:      "success",
			status:    200,
			body:      `{"data": [{"venue_name": "Swingers (NYC)", "date": "2025-03-01", "time": "7:00 PM", "guests": 6}], "total_count": 1}`,
			wantCount: 1,
		},
		{
			name:      "missing data is zero results",
			status:    200,
			body:      `{"total_count": 0}`,
			wantCount: 0,
		},
		{
			name:      "null data is zero results",
			status:    200,
			body:      `{"data": null}`,
			wantCount: 0,
		},
		{
			name:    "empty body",
			status:  200,
			body:    "",
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "whitespace body",
			status:  200,
			body:    "  \n ",
			wantErr: ErrEmptyResponse,
		},
		{
			name:    "invalid json",
			status:  200,
			body:    "<html>oops",
			wantErr: ErrInvalidResponse,
		},
		{
			name:    "data is not a list",
			status:  200,
			body:    `{"data": {"venue_name": "x"}}`,
			wantErr: ErrInvalidResponse,
		},
		{
			name:        "json error field",
			status:      500,
			body:        `{"error": "db down"}`,
			wantStatus:  500,
			wantMessage: "db down",
		},
		{
			name:        "json message field",
			status:      400,
			body:        `{"message": "bad guests"}`,
			wantStatus:  400,
			wantMessage: "bad guests",
		},
		{
			name:        "error preferred over message",
			status:      422,
			body:        `{"error": "first", "message": "second"}`,
			wantStatus:  422,
			wantMessage: "first",
		},
		{
			name:        "raw text",
			status:      503,
			body:        "maintenance window",
			wantStatus:  503,
			wantMessage: "maintenance window",
		},
		{
			name:        "empty error body",
			status:      502,
			body:        "",
			wantStatus:  502,
			wantMessage: "502 Bad Gateway",
		},
		{
			name:        "html proxy page",
			status:      502,
			contentType: "text/html",
			body:        "<html><head><title>502 Bad Gateway</title></head><body><h1>502 Bad Gateway</h1><hr>nginx</body></html>",
			wantStatus:  502,
			wantMessage: "502 Bad Gateway",
		},
		{
			name:        "html without title",
			status:      504,
			contentType: "text/html; charset=utf-8",
			body:        "<html><body><p>Gateway   timed out</p><script>var x;</script></body></html>",
			wantStatus:  504,
			wantMessage: "Gateway timed out",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
				if tt.contentType != "" {
					w.Header().Set("Content-Type", tt.contentType)
				}
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			slots, err := client.FetchSlots(context.Background(), filter.Filter{City: "NYC"})

			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantStatus != 0:
				var se *StatusError
				if !errors.As(err, &se) {
					t.Fatalf("error = %v, want *StatusError", err)
				}
				if se.Code != tt.wantStatus {
					t.Errorf("Code = %d, want %d", se.Code, tt.wantStatus)
				}
				if se.Message != tt.wantMessage {
					t.Errorf("Message = %q, want %q", se.Message, tt.wantMessage)
				}
				if !IsStatus(err, tt.wantStatus) {
					t.Errorf("IsStatus(%d) = false", tt.wantStatus)
				}
			default:
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if slots == nil {
					t.Fatal("slots is nil, want empty slice")
				}
				if len(slots) != tt.wantCount {
					t.Errorf("got %d slots, want %d", len(slots), tt.wantCount)
				}
			}
		})
	}
}

func TestFetchSlots_LongErrorBodyKeepsValidUTF8(t *testing.T) {
	body := "a" + strings.Repeat("é", 400)
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(body))
	})

	_, err := client.FetchSlots(context.Background(), filter.Filter{})
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("error = %v, want *StatusError", err)
	}
	msg := statusErr.Message
	if !utf8.ValidString(msg) {
		t.Errorf("message is not valid UTF-8: %q", msg)
	}
	if !strings.HasSuffix(msg, "...") || len(msg) > maxErrorText+len("...") {
		t.Errorf("message not truncated: %d bytes", len(msg))
	}
	if !strings.HasPrefix(body, strings.TrimSuffix(msg, "...")) {
		t.Errorf("truncated message is not a prefix of the body")
	}
}

func TestFetch_Metadata(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": [{"venue_name": "A"}, 42, {"venue_name": "B"}], "total_count": 3}`))
	})

	result, err := client.Fetch(context.Background(), filter.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Slots) != 2 || result.Skipped != 1 || result.TotalCount != 3 {
		t.Errorf("result = %+v", result)
	}
}

func TestFetchSlots_TransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	client := NewClient(base, time.Second)
	_, err := client.FetchSlots(context.Background(), filter.Filter{})
	if err == nil {
		t.Fatal("expected error for closed server")
	}
	var se *StatusError
	if errors.As(err, &se) {
		t.Errorf("transport failure reported as status error: %v", err)
	}
}

func TestFetchSlots_ContextCanceled(t *testing.T) {
	release := make(chan struct{})
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.FetchSlots(ctx, filter.Filter{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestClearData(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"message": "Data cleared successfully"}`))
	})

	if err := client.ClearData(context.Background()); err != nil {
		t.Fatalf("ClearData() unexpected error: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/api/clear_data" {
		t.Errorf("request = %s %s, want POST /api/clear_data", gotMethod, gotPath)
	}
}

func TestClearData_Error(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": "not allowed"}`))
	})

	err := client.ClearData(context.Background())
	if err == nil || err.Error() != "not allowed" {
		t.Errorf("ClearData() error = %v, want not allowed", err)
	}
}

func TestStatus(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/status" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"running": true, "progress": "Processing Swingers slots for 2025-03-01", "completed": false, "error": null, "current_date": "2025-03-01", "total_slots_found": 14, "website": "swingers_nyc"}`))
	})

	status, err := client.Status(context.Background())
	if err != nil {
		t.Fatalf("Status() unexpected error: %v", err)
	}
	if !status.Running || status.TotalSlotsFound != 14 || status.CurrentDate != "2025-03-01" {
		t.Errorf("status = %+v", status)
	}
	if !strings.Contains(status.Progress, "Swingers") {
		t.Errorf("Progress = %q", status.Progress)
	}
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient("http://localhost:8010/api///", 0)
	if client.BaseURL() != "http://localhost:8010/api" {
		t.Errorf("BaseURL() = %q", client.BaseURL())
	}
	if client.httpClient.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", client.httpClient.Timeout, DefaultTimeout)
	}
}
