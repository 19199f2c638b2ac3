package mcpserver

import (
	"container/list"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/conjurego/definition"
	"github.com/erraggy/conjurego/internal/options"
)

// definitionInput represents the two ways a Conjure IR document can be
// provided to a tool. Exactly one of File or Content must be set.
type definitionInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a Conjure IR file on disk (.json, .yml or .yaml)"`
	Content string `json:"content,omitempty" jsonschema:"Inline Conjure IR document content"`
	Format  string `json:"format,omitempty"  jsonschema:"Format of inline content: json (default) or yaml"`
}

// cacheEntry is one cached definition. Entries live in a recency list, most
// recently used at the front.
type cacheEntry struct {
	key     string
	def     *definition.ConjureDefinition
	expires time.Time
}

func (e *cacheEntry) expired(now time.Time) bool {
	return !e.expires.IsZero() && now.After(e.expires)
}

// definitionCacheStore is the session-scoped cache of loaded definitions.
// File inputs are keyed by absolute path and modification time, content
// inputs by a hash of format and content. Expired entries are dropped on
// lookup and by the background sweeper.
type definitionCacheStore struct {
	mu             sync.Mutex
	byKey          map[string]*list.Element
	recency        *list.List
	maxSize        int
	sweeperStarted atomic.Bool
}

func newDefinitionCache(maxSize int) *definitionCacheStore {
	return &definitionCacheStore{
		byKey:   make(map[string]*list.Element),
		recency: list.New(),
		maxSize: maxSize,
	}
}

var defCache = newDefinitionCache(cfg.CacheMaxSize)

// get returns the cached definition for key, or nil.
func (c *definitionCacheStore) get(key string) *definition.ConjureDefinition {
	c.mu.Lock()
	defer c.mu.Unlock()
	el, ok := c.byKey[key]
	if !ok {
		return nil
	}
	e := el.Value.(*cacheEntry)
	if e.expired(time.Now()) {
		c.removeLocked(el)
		return nil
	}
	c.recency.MoveToFront(el)
	return e.def
}

// putWithTTL stores def under key, evicting the least recently used entry
// when the cache is full.
func (c *definitionCacheStore) putWithTTL(key string, def *definition.ConjureDefinition, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &cacheEntry{key: key, def: def, expires: time.Now().Add(ttl)}
	if el, ok := c.byKey[key]; ok {
		el.Value = e
		c.recency.MoveToFront(el)
		return
	}
	for c.recency.Len() > 0 && c.recency.Len() >= c.maxSize {
		c.removeLocked(c.recency.Back())
	}
	c.byKey[key] = c.recency.PushFront(e)
}

func (c *definitionCacheStore) removeLocked(el *list.Element) {
	delete(c.byKey, el.Value.(*cacheEntry).key)
	c.recency.Remove(el)
}

// sweep drops every expired entry.
func (c *definitionCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for el := c.recency.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*cacheEntry).expired(now) {
			c.removeLocked(el)
		}
		el = next
	}
}

// startSweeper sweeps every interval until ctx is done. At most one sweeper
// runs per cache.
func (c *definitionCacheStore) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
}

// reset empties the cache.
func (c *definitionCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.byKey)
	c.recency.Init()
}

func (c *definitionCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recency.Len()
}

// format returns the document format of inline content.
func (s definitionInput) format() (definition.Format, error) {
	switch strings.ToLower(s.Format) {
	case "", "json", "jsonc":
		return definition.FormatJSON, nil
	case "yaml", "yml":
		return definition.FormatYAML, nil
	default:
		return 0, fmt.Errorf("unsupported format %q; use json or yaml", s.Format)
	}
}

// cacheKey creates a cache key for the input, or "" when it cannot be cached.
func (s definitionInput) cacheKey() string {
	switch {
	case s.File != "":
		absPath, err := filepath.Abs(s.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case s.Content != "":
		h := sha256.Sum256([]byte(strings.ToLower(s.Format) + "\x00" + s.Content))
		return "content:" + hex.EncodeToString(h[:])
	default:
		return ""
	}
}

// resolve loads the definition from whichever input was provided, using the
// cache when it is enabled. The returned definition is shared and must not
// be modified.
func (s definitionInput) resolve() (*definition.ConjureDefinition, error) {
	const msg = "exactly one of file or content must be provided"
	if err := options.RequireOneSource(msg, msg, s.File != "", s.Content != ""); err != nil {
		return nil, err
	}
	if s.Content != "" && int64(len(s.Content)) > cfg.MaxInlineSize {
		return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set CONJUREGO_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}

	var key string
	ttl := cfg.CacheContentTTL
	if cfg.CacheEnabled {
		key = s.cacheKey()
		if s.File != "" {
			ttl = cfg.CacheFileTTL
		}
	}
	if key != "" {
		if cached := defCache.get(key); cached != nil {
			return cached, nil
		}
	}

	var def *definition.ConjureDefinition
	var err error
	if s.File != "" {
		def, err = definition.Load(s.File)
	} else {
		var format definition.Format
		if format, err = s.format(); err != nil {
			return nil, err
		}
		def, err = definition.LoadBytes([]byte(s.Content), format)
	}
	if err != nil {
		return nil, err
	}

	if key != "" {
		defCache.putWithTTL(key, def, ttl)
	}
	return def, nil
}
