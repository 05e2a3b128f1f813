package vk

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/vkfeed/vkfeed/pkg/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(&config.VKConfig{
		APIURL:  server.URL + "/",
		SiteURL: "https://vk.com/",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	return client, server
}

func TestCall(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/method/users.get" {
			t.Errorf("unexpected path: %v", r.URL.Path)
		}
		if r.URL.Query().Get("language") != "0" {
			t.Errorf("language parameter missing: %v", r.URL.RawQuery)
		}
		w.Write([]byte(`{"response": [{"uid": 1}]}`))
	})

	raw, err := client.Call(context.Background(), "users.get", url.Values{"uid": {"1"}})
	if err != nil {
		t.Fatalf("Call failed: %v", err)
	}
	if string(raw) != `[{"uid": 1}]` {
		t.Errorf("unexpected response payload: %s", raw)
	}
}

func TestCallServerError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"error_code": 15, "error_msg": "Access denied"}}`))
	})

	_, err := client.Call(context.Background(), "wall.get", url.Values{})

	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected *ServerError, got %T: %v", err, err)
	}
	if serverErr.Code != 15 {
		t.Errorf("Code = %v, want 15", serverErr.Code)
	}
	if serverErr.Message != "Access denied." {
		t.Errorf("Message = %v, want normalized period", serverErr.Message)
	}
}

func TestCallMissingResponse(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	_, err := client.Call(context.Background(), "wall.get", url.Values{})

	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected *ServerError, got %T: %v", err, err)
	}
	if serverErr.Message != genericAPIError {
		t.Errorf("Message = %v, want %v", serverErr.Message, genericAPIError)
	}
}

func TestCallConnectionError(t *testing.T) {
	t.Run("invalid JSON", func(t *testing.T) {
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		})

		_, err := client.Call(context.Background(), "wall.get", url.Values{})

		var connErr *ConnectionError
		if !errors.As(err, &connErr) {
			t.Fatalf("expected *ConnectionError, got %T: %v", err, err)
		}
	})

	t.Run("unreachable server", func(t *testing.T) {
		client, server := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
		server.Close()

		_, err := client.Call(context.Background(), "wall.get", url.Values{})

		var connErr *ConnectionError
		if !errors.As(err, &connErr) {
			t.Fatalf("expected *ConnectionError, got %T: %v", err, err)
		}
	})
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected string
	}{
		{
			"empty message",
			"",
			"Ошибка вызова API.",
		},
		{
			"blocked group",
			"Access denied: group is blocked",
			"Страница временно заблокирована и проверяется администраторами, " +
				"так как некоторые пользователи считают, что она не соответствует правилам сайта.",
		},
		{
			"private community",
			"Access denied: this wall available only for community members",
			"Это частное сообщество. Доступ только по приглашениям администраторов.",
		},
		{
			"deleted user",
			"User was deleted or banned",
			"Пользователь удален или забанен.",
		},
		{
			"pass through with period added",
			"Unknown method passed",
			"Unknown method passed.",
		},
		{
			"pass through with period kept",
			"Something failed.",
			"Something failed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := translateError(tt.message)
			if result != tt.expected {
				t.Errorf("translateError(%q) = %q, want %q", tt.message, result, tt.expected)
			}
		})
	}
}

func TestResolveProfileUser(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/method/users.get" {
			t.Errorf("unexpected path: %v", r.URL.Path)
		}
		w.Write([]byte(`{"response": [{"uid": 42, "first_name": "Вася", "last_name": "Пупкин",
			"photo": "small.jpg", "photo_medium": "medium.jpg", "photo_big": "big.jpg"}]}`))
	})

	actor, err := client.ResolveProfile(context.Background(), "durov")
	if err != nil {
		t.Fatalf("ResolveProfile failed: %v", err)
	}

	if actor.ID != 42 {
		t.Errorf("ID = %v, want 42", actor.ID)
	}
	if actor.Name != "Вася Пупкин" {
		t.Errorf("Name = %v, want full name", actor.Name)
	}
	if actor.Photo != "big.jpg" {
		t.Errorf("Photo = %v, want the big variant", actor.Photo)
	}
}

func TestResolveProfileGroupFallback(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/method/users.get":
			w.Write([]byte(`{"error": {"error_code": 113, "error_msg": "Invalid user id"}}`))
		case "/method/groups.getById":
			if gid := r.URL.Query().Get("gid"); gid != "club77" {
				t.Errorf("alias should be rewritten to club form, got gid=%v", gid)
			}
			w.Write([]byte(`{"response": [{"gid": 77, "name": "Клуб", "photo_medium": "medium.jpg", "photo": "small.jpg"}]}`))
		default:
			t.Errorf("unexpected path: %v", r.URL.Path)
		}
	})

	actor, err := client.ResolveProfile(context.Background(), "public77")
	if err != nil {
		t.Fatalf("ResolveProfile failed: %v", err)
	}

	if actor.ID != -77 {
		t.Errorf("ID = %v, want negated group ID", actor.ID)
	}
	if actor.Name != "Клуб" {
		t.Errorf("Name = %v, want group name", actor.Name)
	}
	if actor.Photo != "medium.jpg" {
		t.Errorf("Photo = %v, want the medium variant", actor.Photo)
	}
}

func TestResolveProfileNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/method/users.get":
			w.Write([]byte(`{"error": {"error_code": 113, "error_msg": "Invalid user id"}}`))
		case "/method/groups.getById":
			w.Write([]byte(`{"error": {"error_code": 125, "error_msg": "Invalid group id"}}`))
		}
	})

	_, err := client.ResolveProfile(context.Background(), "nosuch")

	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected *ServerError, got %T: %v", err, err)
	}
	if serverErr.Code != ErrCodeInvalidUser {
		t.Errorf("Code = %v, want %v", serverErr.Code, ErrCodeInvalidUser)
	}
	if serverErr.Message != ErrProfileNotFound {
		t.Errorf("Message = %v, want %v", serverErr.Message, ErrProfileNotFound)
	}
}

func TestResolveProfileOtherErrorPassesThrough(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"error_code": 6, "error_msg": "Too many requests per second"}}`))
	})

	_, err := client.ResolveProfile(context.Background(), "durov")

	var serverErr *ServerError
	if !errors.As(err, &serverErr) {
		t.Fatalf("expected *ServerError, got %T: %v", err, err)
	}
	if serverErr.Code != 6 {
		t.Errorf("Code = %v, want 6", serverErr.Code)
	}
}

func TestFetchWall(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/method/wall.get" {
			t.Errorf("unexpected path: %v", r.URL.Path)
		}
		query := r.URL.Query()
		if query.Get("owner_id") != "-77" {
			t.Errorf("owner_id = %v, want -77", query.Get("owner_id"))
		}
		if query.Get("extended") != "1" {
			t.Errorf("extended = %v, want 1", query.Get("extended"))
		}
		w.Write([]byte(`{"response": {"wall": [1, {"id": 10, "from_id": -77, "date": 1000, "text": "пост"}],
			"profiles": [], "groups": [{"gid": 77, "name": "Клуб", "photo": "g.jpg"}]}}`))
	})

	page, err := client.FetchWall(context.Background(), -77)
	if err != nil {
		t.Fatalf("FetchWall failed: %v", err)
	}

	if page.Count != 1 || len(page.Posts) != 1 {
		t.Fatalf("unexpected page: %+v", page)
	}
	if page.Posts[0].Text != "пост" {
		t.Errorf("post text = %v, want пост", page.Posts[0].Text)
	}
}
