package source

import (
	"context"
	"errors"
	"testing"
)

type stubFetcher struct {
	body    []byte
	err     error
	refresh bool
	calls   int
}

func (f *stubFetcher) FetchDocument(_ context.Context, _ string, refresh bool) ([]byte, bool, error) {
	f.calls++
	f.refresh = refresh
	return f.body, f.calls > 1, f.err
}

func TestStatic(t *testing.T) {
	s := Static{{0, 0, 'a'}, {1, 1, 'b'}}
	got, err := s.Triples(context.Background())
	if err != nil {
		t.Fatalf("Triples() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Triples() = %v", got)
	}
	got[0].Char = 'z'
	if s[0].Char != 'a' {
		t.Error("Triples() should return a copy")
	}
}

func TestStaticCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := (Static{}).Triples(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Triples() error = %v, want context.Canceled", err)
	}
}

func TestDocument(t *testing.T) {
	f := &stubFetcher{body: []byte(publishedDoc)}
	doc := NewDocument(f, "https://example.com/pub", DefaultColumns).Refresh(true)

	got, err := doc.Triples(context.Background())
	if err != nil {
		t.Fatalf("Triples() error: %v", err)
	}
	if len(got) != 3 {
		t.Errorf("Triples() returned %d triples, want 3", len(got))
	}
	if !f.refresh {
		t.Error("Refresh(true) should be passed to the fetcher")
	}
	if doc.CacheHit() {
		t.Error("first fetch should not report a cache hit")
	}
	if string(doc.Body()) != publishedDoc {
		t.Error("Body() should return the fetched document")
	}
}

func TestDocumentFetchError(t *testing.T) {
	want := errors.New("boom")
	doc := NewDocument(&stubFetcher{err: want}, "https://example.com", DefaultColumns)
	if _, err := doc.Triples(context.Background()); !errors.Is(err, want) {
		t.Errorf("Triples() error = %v, want %v", err, want)
	}
}

func TestTripleString(t *testing.T) {
	if got := (Triple{X: 1, Y: 2, Char: 'q'}).String(); got != "(1, 2, 'q')" {
		t.Errorf("String() = %q", got)
	}
}
