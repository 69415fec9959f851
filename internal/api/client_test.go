package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nvu/mailterm/internal/model"
)

func newTestClient(handler http.Handler) (*Client, *httptest.Server) {
	srv := httptest.NewServer(handler)
	return NewClient(srv.URL, 5*time.Second), srv
}

func TestGetAttachesSessionCookie(t *testing.T) {
	var gotCookie string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ck, err := r.Cookie("session"); err == nil {
			gotCookie = ck.Value
		}
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c.SetToken("tok-123")
	var out map[string]string
	if err := c.Get(context.Background(), "/mail/inbox", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if gotCookie != "tok-123" {
		t.Errorf("session cookie = %q, want tok-123", gotCookie)
	}
}

func TestRotatedCookieIsCaptured(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "rotated"})
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	c.SetToken("original")
	var out map[string]string
	if err := c.Get(context.Background(), "/auth/me", &out); err != nil {
		t.Fatalf("get: %v", err)
	}
	if c.Token() != "rotated" {
		t.Errorf("token = %q, want rotated", c.Token())
	}
}

func TestUnauthorizedReturnsAuthErrorAndClearsToken(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c.SetToken("stale")
	err := c.Get(context.Background(), "/mail/inbox", nil)
	if !IsAuthError(err) {
		t.Fatalf("err = %v, want AuthError", err)
	}
	if c.Token() != "" {
		t.Errorf("token = %q, want cleared", c.Token())
	}
}

func TestForbiddenIsAuthError(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	if err := c.Get(context.Background(), "/auth/users", nil); !IsAuthError(err) {
		t.Fatalf("err = %v, want AuthError", err)
	}
}

func TestErrorUsesServerMessage(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"message": "recipient required"})
	}))
	defer srv.Close()

	err := c.Post(context.Background(), "/mail/send", map[string]string{}, nil)
	if err == nil || err.Error() != "recipient required" {
		t.Fatalf("err = %v, want recipient required", err)
	}
}

func TestErrorFallsBackToGenericMessage(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("<html>panic</html>"))
	}))
	defer srv.Close()

	err := c.Get(context.Background(), "/mail/inbox", nil)
	if err == nil || err.Error() != genericFailureMessage {
		t.Fatalf("err = %v, want generic message", err)
	}
}

func TestFailedRequestIsNotRetried(t *testing.T) {
	requests := 0
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if err := c.Get(context.Background(), "/mail/inbox", nil); err == nil {
		t.Fatal("expected error")
	}
	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}
}

func TestListFolderBuildsQuery(t *testing.T) {
	var gotQuery string
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(MailPage{Total: 0})
	}))
	defer srv.Close()

	unread := false
	_, err := c.ListFolder(context.Background(), model.FolderInbox, ListOptions{
		Page:   2,
		Limit:  25,
		Search: "invoice",
		IsRead: &unread,
	})
	if err != nil {
		t.Fatalf("list folder: %v", err)
	}

	for _, want := range []string{"folder=inbox", "page=2", "limit=25", "search=invoice", "isRead=false"} {
		if !containsParam(gotQuery, want) {
			t.Errorf("query %q missing %q", gotQuery, want)
		}
	}
}

func containsParam(query, param string) bool {
	for _, part := range strings.Split(query, "&") {
		if part == param {
			return true
		}
	}
	return false
}

func TestBatchSendsSingleRequest(t *testing.T) {
	requests := 0
	var gotReq BatchRequest
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewDecoder(r.Body).Decode(&gotReq)
		json.NewEncoder(w).Encode(BatchResult{
			Results: []BatchItemResult{
				{ID: "m1", OK: true},
				{ID: "m2", OK: false, Message: "not found"},
			},
		})
	}))
	defer srv.Close()

	result, err := c.Batch(context.Background(), BatchRequest{
		Op:     BatchMove,
		IDs:    []string{"m1", "m2"},
		Folder: model.FolderArchive,
	})
	if err != nil {
		t.Fatalf("batch: %v", err)
	}

	if requests != 1 {
		t.Errorf("server saw %d requests, want 1", requests)
	}
	if gotReq.Op != BatchMove || len(gotReq.IDs) != 2 {
		t.Errorf("request = %+v", gotReq)
	}
	failed := result.Failed()
	if len(failed) != 1 || failed[0].ID != "m2" {
		t.Errorf("failed = %+v, want m2", failed)
	}
}

func TestTokenAccessIsConcurrencySafe(t *testing.T) {
	c, srv := newTestClient(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "rotated"})
		json.NewEncoder(w).Encode(map[string]string{})
	}))
	defer srv.Close()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				switch n % 4 {
				case 0:
					c.SetToken("tok")
				case 1:
					_ = c.Token()
				case 2:
					c.ClearToken()
				default:
					var out map[string]string
					_ = c.Get(context.Background(), "/auth/me", &out)
				}
			}
		}(i)
	}
	wg.Wait()

	if got := c.Token(); got != "" && got != "tok" && got != "rotated" {
		t.Errorf("token = %q, want one of the written values", got)
	}
}
