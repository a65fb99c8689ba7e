package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func nopLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func TestNewHTTPLookupAdapter_RequiresPlaceholder(t *testing.T) {
	if _, err := NewHTTPLookupAdapter("https://api.example.com/lookup", time.Second, nopLogger(), true); err == nil {
		t.Fatal("template without {num} must be rejected")
	}
}

func TestHTTPLookupAdapter_SubstitutesNumber(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data": [{"mobile": "9876543210", "name": "JOHN DOE"}]}`))
	}))
	defer srv.Close()

	a, err := NewHTTPLookupAdapter(srv.URL+"/search/{num}", time.Second, nopLogger(), true)
	if err != nil {
		t.Fatalf("NewHTTPLookupAdapter failed: %v", err)
	}

	records, err := a.Lookup(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if gotPath != "/search/9876543210" {
		t.Errorf("requested path %q, want the number substituted", gotPath)
	}
	if len(records) != 1 || records[0].Name != "JOHN DOE" {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestHTTPLookupAdapter_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	a, _ := NewHTTPLookupAdapter(srv.URL+"/{num}", time.Second, nopLogger(), true)
	if _, err := a.Lookup(context.Background(), "9876543210"); err == nil {
		t.Fatal("expected an error for a 502 response")
	}
}

func TestHTTPLookupAdapter_NoRecordsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"message": "No records found"}`))
	}))
	defer srv.Close()

	a, _ := NewHTTPLookupAdapter(srv.URL+"/{num}", time.Second, nopLogger(), true)
	records, err := a.Lookup(context.Background(), "9876543210")
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("expected no records, got %d", len(records))
	}
}

func TestHTTPLookupAdapter_ContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	a, _ := NewHTTPLookupAdapter(srv.URL+"/{num}", 10*time.Second, nopLogger(), true)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := a.Lookup(ctx, "9876543210"); err == nil {
		t.Fatal("expected an error when the context expires")
	}
}
