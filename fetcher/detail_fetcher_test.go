package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brief-scraper/parser"
)

func setupMockPageServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/found", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><div class="other">x</div><div class="intro className">
			  你好, Hello  </div></body></html>`))
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<html><body><div class="other">x</div></body></html>`))
	})
	mux.HandleFunc("/gbk-meta", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><head><meta charset="gbk"></head><body><div class="className">` + gbkHello + `</div></body></html>`))
	})
	mux.HandleFunc("/gbk-header", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=gbk")
		_, _ = w.Write([]byte(`<html><head><meta charset="gbk"></head><body><div class="className">` + gbkHello + `</div></body></html>`))
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestExtractor() *DetailExtractor {
	return NewDetailExtractor(NewClient(2*time.Second, "test-agent"), parser.NewDetailParser("className"))
}

func TestExtract_Found(t *testing.T) {
	server := setupMockPageServer(t)

	text, err := newTestExtractor().Extract(context.Background(), server.URL+"/found")
	require.NoError(t, err)
	assert.Equal(t, "你好, Hello", text)
}

func TestExtract_SameURLTwice(t *testing.T) {
	server := setupMockPageServer(t)
	de := newTestExtractor()

	for i := 0; i < 2; i++ {
		text, err := de.Extract(context.Background(), server.URL+"/found")
		require.NoError(t, err, "attempt %d", i+1)
		assert.Equal(t, "你好, Hello", text)
	}
}

func TestExtract_GBKPages(t *testing.T) {
	server := setupMockPageServer(t)
	de := newTestExtractor()

	for _, path := range []string{"/gbk-meta", "/gbk-header"} {
		t.Run(path, func(t *testing.T) {
			text, err := de.Extract(context.Background(), server.URL+path)
			require.NoError(t, err)
			assert.Equal(t, "你好", text)
		})
	}
}

func TestExtract_NotFound(t *testing.T) {
	server := setupMockPageServer(t)

	text, err := newTestExtractor().Extract(context.Background(), server.URL+"/missing")
	assert.ErrorIs(t, err, parser.ErrElementNotFound)
	assert.Contains(t, err.Error(), "/missing")
	assert.Empty(t, text)
}

func TestExtract_StatusError(t *testing.T) {
	server := setupMockPageServer(t)

	_, err := newTestExtractor().Extract(context.Background(), server.URL+"/gone")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusGone, statusErr.StatusCode)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestExtract_InvalidURL(t *testing.T) {
	_, err := newTestExtractor().Extract(context.Background(), "not a url")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestExtractWithClass(t *testing.T) {
	server := setupMockPageServer(t)

	text, err := newTestExtractor().ExtractWithClass(context.Background(), server.URL+"/found", "other")
	require.NoError(t, err)
	assert.Equal(t, "x", text)
}

type panickingGetter struct{}

func (panickingGetter) Get(context.Context, string) (*Response, error) {
	panic("boom")
}

func TestExtract_PanicRecovered(t *testing.T) {
	de := NewDetailExtractor(panickingGetter{}, parser.NewDetailParser("className"))

	text, err := de.Extract(context.Background(), "http://x/1")
	assert.ErrorIs(t, err, ErrUnexpected)
	assert.Contains(t, err.Error(), "boom")
	assert.Empty(t, text)
}
