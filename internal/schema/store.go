package schema

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultDelimiters split $ref fragments when no other delimiters are configured.
const DefaultDelimiters = "#/."

// ErrUnresolvableReference is returned when a $ref target cannot be loaded
// or its fragment path does not exist.
var ErrUnresolvableReference = errors.New("unresolvable reference")

// Store loads schema documents and fragments, caching them by normalized URI.
// A Store is safe for concurrent use.
type Store struct {
	ctx     context.Context
	logger  *zap.Logger
	loaders map[string]Loader

	mu        sync.Mutex
	schemas   map[string]*Schema
	anonymous map[anonymousKey]*Schema
}

type anonymousKey struct {
	doc      *Schema
	fragment string
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for load and cache events.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithLoader registers a loader for a URI scheme.
func WithLoader(scheme string, l Loader) Option {
	return func(s *Store) {
		s.loaders[scheme] = l
	}
}

// WithHTTPTimeout replaces the http and https loaders with ones bounded by timeout.
func WithHTTPTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		l := NewHTTPLoader(timeout)
		s.loaders["http"] = l
		s.loaders["https"] = l
	}
}

// NewStore creates a Store with file, http and https loaders. ctx bounds
// every fetch made by the store.
func NewStore(ctx context.Context, opts ...Option) *Store {
	httpLoader := NewHTTPLoader(10 * time.Second)

	s := &Store{
		ctx:    ctx,
		logger: zap.NewNop(),
		loaders: map[string]Loader{
			"file":  FileLoader{},
			"http":  httpLoader,
			"https": httpLoader,
		},
		schemas:   make(map[string]*Schema),
		anonymous: make(map[anonymousKey]*Schema),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Load returns the document at location, which is either an absolute URI
// or a file path.
func (s *Store) Load(location string) (*Schema, error) {
	u, err := parseLocation(location)
	if err != nil {
		return nil, err
	}

	return s.create(u, DefaultDelimiters)
}

// Add parses data and caches it as the document identified by uri.
func (s *Store) Add(uri string, data []byte) (*Schema, error) {
	u, err := parseLocation(uri)
	if err != nil {
		return nil, err
	}

	u.Fragment = ""
	u.RawFragment = ""
	id := normalize(u)

	node, err := Parse(u.Path, data)
	if err != nil {
		return nil, err
	}

	sch := NewSchema(id, node, nil)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.schemas[id] = sch

	return sch, nil
}

// Create resolves ref relative to parent and returns the referenced schema.
// Fragments are split on any character of delimiters; a bare "#" is the
// document parent belongs to.
func (s *Store) Create(parent *Schema, ref, delimiters string) (*Schema, error) {
	if ref == "#" && parent != nil {
		return parent.Document(), nil
	}

	ref = strings.TrimSuffix(ref, "#")

	if strings.HasPrefix(ref, "#") && (parent == nil || parent.ID() == "") {
		return s.createAnonymous(parent, ref, delimiters)
	}

	var target *url.URL

	if parent == nil || parent.ID() == "" {
		u, err := parseLocation(ref)
		if err != nil {
			return nil, err
		}

		target = u
	} else {
		base, err := url.Parse(parent.ID())
		if err != nil {
			return nil, fmt.Errorf("%w: invalid base %q: %w", ErrUnresolvableReference, parent.ID(), err)
		}

		r, err := url.Parse(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid $ref %q: %w", ErrUnresolvableReference, ref, err)
		}

		target = base.ResolveReference(r)
	}

	return s.create(target, delimiters)
}

func (s *Store) createAnonymous(parent *Schema, ref, delimiters string) (*Schema, error) {
	if parent == nil {
		return nil, fmt.Errorf("%w: fragment %q has no base document", ErrUnresolvableReference, ref)
	}

	doc := parent.Document()
	key := anonymousKey{doc: doc, fragment: ref}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sch, ok := s.anonymous[key]; ok {
		return sch, nil
	}

	node, err := ResolveFragment(doc.Content(), ref, delimiters)
	if err != nil {
		return nil, err
	}

	sch := NewSchema("", node, doc)
	if node == doc.Content() {
		sch = doc
	}

	s.anonymous[key] = sch

	return sch, nil
}

func (s *Store) create(id *url.URL, delimiters string) (*Schema, error) {
	key := normalize(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if sch, ok := s.schemas[key]; ok {
		s.logger.Debug("schema cache hit", zap.String("id", key))
		return sch, nil
	}

	base := *id
	base.Fragment = ""
	base.RawFragment = ""
	baseKey := normalize(&base)

	doc, ok := s.schemas[baseKey]
	if !ok {
		data, err := s.fetch(&base)
		if err != nil {
			return nil, err
		}

		node, err := Parse(base.Path, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnresolvableReference, err)
		}

		doc = NewSchema(baseKey, node, nil)
		s.schemas[baseKey] = doc
		s.logger.Debug("schema document loaded", zap.String("id", baseKey))
	}

	if id.Fragment == "" {
		return doc, nil
	}

	node, err := ResolveFragment(doc.Content(), "#"+id.Fragment, delimiters)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", baseKey, err)
	}

	sch := NewSchema(key, node, doc)
	s.schemas[key] = sch

	return sch, nil
}

func (s *Store) fetch(u *url.URL) ([]byte, error) {
	loader, ok := s.loaders[u.Scheme]
	if !ok {
		return nil, fmt.Errorf("%w: no loader for scheme %q in %s", ErrUnresolvableReference, u.Scheme, u.String())
	}

	data, err := loader.Load(s.ctx, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnresolvableReference, err)
	}

	return data, nil
}

// parseLocation parses an absolute URI, or turns a file path into a file:// URI.
func parseLocation(location string) (*url.URL, error) {
	if u, err := url.Parse(location); err == nil && len(u.Scheme) > 1 {
		return u, nil
	}

	file, fragment, _ := strings.Cut(location, "#")

	abs, err := filepath.Abs(file)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid path %q: %w", ErrUnresolvableReference, location, err)
	}

	return &url.URL{Scheme: "file", Path: filepath.ToSlash(abs), Fragment: fragment}, nil
}

func normalize(u *url.URL) string {
	c := *u
	if c.Path != "" {
		c.Path = path.Clean(c.Path)
		c.RawPath = ""
	}

	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)

	return c.String()
}
