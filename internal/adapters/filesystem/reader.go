package filesystem

import (
	"fmt"
	"os"
	"sync/atomic"

	lru "github.com/hashicorp/golang-lru/v2"

	"docgraph/internal/ports"
)

// DefaultCacheSize is the number of documents kept by a CachedReader
const DefaultCacheSize = 4096

// Reader implements ports.DocumentReader with plain file reads
type Reader struct{}

var _ ports.DocumentReader = (*Reader)(nil)

// NewReader creates a new filesystem reader
func NewReader() *Reader {
	return &Reader{}
}

// ReadDocument returns the content of the file at absPath
func (r *Reader) ReadDocument(absPath string) (string, error) {
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}
	return string(content), nil
}

// cachedDocument is a document body along with the file state it was read at
type cachedDocument struct {
	modTime int64
	size    int64
	content string
}

// CachedReader serves unchanged documents from memory.
// A document is re-read whenever its size or modification time changes.
// It is safe for concurrent use.
type CachedReader struct {
	next   ports.DocumentReader
	cache  *lru.Cache[string, cachedDocument]
	hits   atomic.Int64
	misses atomic.Int64
}

var _ ports.DocumentReader = (*CachedReader)(nil)

// NewCachedReader wraps next with an LRU cache holding up to size documents
func NewCachedReader(next ports.DocumentReader, size int) (*CachedReader, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	cache, err := lru.New[string, cachedDocument](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create document cache: %w", err)
	}
	return &CachedReader{next: next, cache: cache}, nil
}

// ReadDocument returns the cached content when the file has not changed
func (r *CachedReader) ReadDocument(absPath string) (string, error) {
	info, err := os.Stat(absPath)
	if err != nil {
		r.cache.Remove(absPath)
		return "", fmt.Errorf("failed to stat document: %w", err)
	}

	if doc, ok := r.cache.Get(absPath); ok &&
		doc.modTime == info.ModTime().UnixNano() && doc.size == info.Size() {
		r.hits.Add(1)
		return doc.content, nil
	}

	r.misses.Add(1)
	content, err := r.next.ReadDocument(absPath)
	if err != nil {
		r.cache.Remove(absPath)
		return "", err
	}

	r.cache.Add(absPath, cachedDocument{
		modTime: info.ModTime().UnixNano(),
		size:    info.Size(),
		content: content,
	})
	return content, nil
}

// Forget drops a document from the cache
func (r *CachedReader) Forget(absPath string) {
	r.cache.Remove(absPath)
}

// Stats returns the number of cache hits and misses so far
func (r *CachedReader) Stats() (hits, misses int64) {
	return r.hits.Load(), r.misses.Load()
}
