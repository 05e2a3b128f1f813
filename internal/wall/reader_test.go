package wall

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/vkfeed/vkfeed/internal/vk"
	"github.com/vkfeed/vkfeed/pkg/config"
)

func newTestReader(t *testing.T, handler http.HandlerFunc) *Reader {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := vk.New(&config.VKConfig{
		APIURL:  server.URL + "/",
		SiteURL: "https://vk.com/",
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Failed to create client: %v", err)
	}

	return NewReader(client, newTestRenderer(), "https://vk.com/")
}

func TestRead(t *testing.T) {
	reader := newTestReader(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/method/users.get":
			w.Write([]byte(`{"response": [{"uid": 1, "first_name": "Вася", "last_name": "Пупкин",
				"photo_big": "big.jpg", "photo": "small.jpg"}]}`))
		case "/method/wall.get":
			w.Write([]byte(`{"response": {"wall": [3,
				{"id": 10, "from_id": 1, "date": 1000, "text": "свой пост"},
				{"id": 11, "from_id": 2, "date": 2000, "text": "чужой пост"},
				{"id": 12, "from_id": 1, "date": 3000, "text": "еще свой"}],
				"profiles": [
					{"uid": 1, "first_name": "Вася", "last_name": "Пупкин", "photo": "vasya.jpg"},
					{"uid": 2, "first_name": "Петя", "last_name": "Иванов", "photo": "petya.jpg"}],
				"groups": []}}`))
		default:
			t.Errorf("unexpected path: %v", r.URL.Path)
		}
	})

	result, err := reader.Read(context.Background(), "durov", ReadOptions{})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if result.URL != "https://vk.com/durov" {
		t.Errorf("wall URL = %v, want profile URL", result.URL)
	}
	if result.Name != "Вася Пупкин" {
		t.Errorf("wall name = %v, want owner name", result.Name)
	}
	if result.Photo != "big.jpg" {
		t.Errorf("wall photo = %v, want resolved photo", result.Photo)
	}

	// The foreign post is excluded and relative order is preserved.
	if len(result.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(result.Items))
	}
	if result.Items[0].Text != "свой пост" || result.Items[1].Text != "еще свой" {
		t.Errorf("unexpected items: %+v", result.Items)
	}
}

func TestReadForeignPosts(t *testing.T) {
	reader := newTestReader(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/method/users.get":
			w.Write([]byte(`{"response": [{"uid": 1, "first_name": "Вася", "last_name": "Пупкин", "photo": "p.jpg"}]}`))
		case "/method/wall.get":
			w.Write([]byte(`{"response": {"wall": [2,
				{"id": 10, "from_id": 1, "date": 1000, "text": "свой"},
				{"id": 11, "from_id": 2, "date": 2000, "text": "чужой"}],
				"profiles": [
					{"uid": 1, "first_name": "Вася", "last_name": "Пупкин", "photo": "vasya.jpg"},
					{"uid": 2, "first_name": "Петя", "last_name": "Иванов", "photo": "petya.jpg"}],
				"groups": []}}`))
		}
	})

	result, err := reader.Read(context.Background(), "durov", ReadOptions{ForeignPosts: true})
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	if len(result.Items) != 2 {
		t.Fatalf("items = %d, want both posts", len(result.Items))
	}
	if result.Items[1].Title != "Петя Иванов" {
		t.Errorf("foreign item title = %v, want its author's name", result.Items[1].Title)
	}
}

func TestReadResolutionFailureAborts(t *testing.T) {
	reader := newTestReader(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"error": {"error_code": 113, "error_msg": "Invalid user id"}}`))
	})

	if _, err := reader.Read(context.Background(), "nosuch", ReadOptions{}); err == nil {
		t.Fatal("expected resolution failure to abort the read")
	}
}
