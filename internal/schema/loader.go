package schema

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sync"
	"time"
)

// Loader fetches the raw bytes of a schema document.
type Loader interface {
	Load(ctx context.Context, uri *url.URL) ([]byte, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, uri *url.URL) ([]byte, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, uri *url.URL) ([]byte, error) {
	return f(ctx, uri)
}

// FileLoader reads file:// documents.
type FileLoader struct{}

// Load reads the file at uri.Path.
func (FileLoader) Load(_ context.Context, uri *url.URL) ([]byte, error) {
	data, err := os.ReadFile(uri.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", uri.Path, err)
	}

	return data, nil
}

// HTTPLoader fetches http:// and https:// documents.
type HTTPLoader struct {
	Client *http.Client
}

// NewHTTPLoader creates an HTTPLoader whose requests are bounded by timeout.
func NewHTTPLoader(timeout time.Duration) *HTTPLoader {
	return &HTTPLoader{Client: &http.Client{Timeout: timeout}}
}

// Load performs a GET request for uri without its fragment.
func (l *HTTPLoader) Load(ctx context.Context, uri *url.URL) ([]byte, error) {
	u := *uri
	u.Fragment = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", u.String(), err)
	}

	req.Header.Set("Accept", "application/schema+json, application/json, application/yaml")

	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", u.String(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", u.String(), resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", u.String(), err)
	}

	return data, nil
}

// MemoryLoader serves documents registered in memory, keyed by URI
// without fragment. It is safe for concurrent use.
type MemoryLoader struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemoryLoader creates an empty MemoryLoader.
func NewMemoryLoader() *MemoryLoader {
	return &MemoryLoader{docs: make(map[string][]byte)}
}

// Put registers a document.
func (l *MemoryLoader) Put(uri string, data []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.docs[uri] = data
}

// Load returns the registered document.
func (l *MemoryLoader) Load(_ context.Context, uri *url.URL) ([]byte, error) {
	u := *uri
	u.Fragment = ""

	l.mu.RLock()
	defer l.mu.RUnlock()

	data, ok := l.docs[u.String()]
	if !ok {
		return nil, fmt.Errorf("document %s is not registered", u.String())
	}

	return data, nil
}
