package device

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_State(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cochera/estado":
			_, _ = w.Write([]byte("ON"))
		case "/cuarto1/estado":
			_, _ = w.Write([]byte("OFF"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)

	on, err := c.State(context.Background(), "cochera")
	if err != nil {
		t.Fatalf("State(cochera): %v", err)
	}
	if !on {
		t.Fatal("expected cochera on")
	}

	on, err = c.State(context.Background(), "cuarto1")
	if err != nil {
		t.Fatalf("State(cuarto1): %v", err)
	}
	if on {
		t.Fatal("non-ON body must read as off")
	}
}

func TestClient_Toggle_ReportsDeviceAnswer(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cochera/toggle" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Method != http.MethodGet {
			t.Errorf("unexpected method %s", r.Method)
		}
		calls++
		if calls%2 == 1 {
			_, _ = w.Write([]byte("ON"))
		} else {
			_, _ = w.Write([]byte("OFF"))
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", time.Second) // trailing slash is trimmed

	on, err := c.Toggle(context.Background(), "cochera")
	if err != nil || !on {
		t.Fatalf("first toggle = (%v, %v)", on, err)
	}
	on, err = c.Toggle(context.Background(), "cochera")
	if err != nil || on {
		t.Fatalf("second toggle = (%v, %v)", on, err)
	}
	if calls != 2 {
		t.Fatalf("toggle requests = %d, want one per call", calls)
	}
}

func TestClient_Probe(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/estado" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, time.Second).Probe(context.Background()); err != nil {
		t.Fatalf("Probe: %v", err)
	}
}

func TestClient_NonOKStatusIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if on, err := c.Toggle(context.Background(), "cuarto1"); err == nil || on {
		t.Fatalf("expected error on 503, got (%v, %v)", on, err)
	}
}

func TestClient_TransportFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // connection refused from here on

	c := NewClient(srv.URL, time.Second)
	if on, err := c.Toggle(context.Background(), "cuarto1"); err == nil || on {
		t.Fatalf("expected transport error, got (%v, %v)", on, err)
	}
	if err := c.Probe(context.Background()); err == nil {
		t.Fatal("expected probe error")
	}
}
