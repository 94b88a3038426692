package preview

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func servePage(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFetchOpenGraphMetadata(t *testing.T) {
	srv := servePage(t, `<!DOCTYPE html>
<html>
<head>
<title>Plain title</title>
<meta property="og:title" content="OG title">
<meta property="og:description" content="OG description">
<meta property="og:image" content="https://example.com/cover.png">
<meta name="description" content="Plain description">
</head>
<body><p>Hello</p></body>
</html>`)

	p, err := Fetch(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	// Open Graph values win over the plain <title> and description tags.
	if p.Title != "OG title" {
		t.Errorf("Expected OG title, got %q", p.Title)
	}
	if p.Description != "OG description" {
		t.Errorf("Expected OG description, got %q", p.Description)
	}
	if p.Image != "https://example.com/cover.png" {
		t.Errorf("Expected OG image, got %q", p.Image)
	}
}

func TestFetchFallsBackToPlainTags(t *testing.T) {
	srv := servePage(t, `<html>
<head>
<title>  Weekend reading  </title>
<meta name="description" content="Ten links worth your time">
</head>
<body></body>
</html>`)

	p, err := Fetch(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if p.Title != "Weekend reading" {
		t.Errorf("Expected trimmed page title, got %q", p.Title)
	}
	if p.Description != "Ten links worth your time" {
		t.Errorf("Expected meta description, got %q", p.Description)
	}
	if p.Image != "" {
		t.Errorf("Expected no image, got %q", p.Image)
	}
}

func TestFetchPageWithoutMetadata(t *testing.T) {
	srv := servePage(t, `<html><head></head><body>nothing here</body></html>`)

	p, err := Fetch(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if p.Title != "" || p.Description != "" || p.Image != "" {
		t.Errorf("Expected empty preview, got %+v", p)
	}
}

func TestFetchNon2xxStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	if _, err := Fetch(context.Background(), srv.Client(), srv.URL); err == nil {
		t.Errorf("Expected error for 404 response")
	}
}

func TestFetchContextTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if _, err := Fetch(ctx, srv.Client(), srv.URL); err == nil {
		t.Errorf("Expected error when the context deadline expires")
	}
}

func TestFetchBadURL(t *testing.T) {
	if _, err := Fetch(context.Background(), nil, "http://[::1]:namedport"); err == nil {
		t.Errorf("Expected error for malformed URL")
	}
}
