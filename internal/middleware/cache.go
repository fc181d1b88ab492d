package middleware

// In-memory cache; golang-lru evicts the least recently used responses first.

import (
	"bytes"
	"net/http"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

const (
	CacheHeader = "X-Cache"
	cacheHit    = "HIT"
	cacheMiss   = "MISS"
)

type cachedResponse struct {
	contentType string
	body        []byte
	expires     time.Time
}

// ResponseCache memoizes successful GET responses for ttl, keyed on the full URL.
type ResponseCache struct {
	cache *lru.Cache
	ttl   time.Duration
	now   func() time.Time
}

func NewResponseCache(size int, ttl time.Duration) (*ResponseCache, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &ResponseCache{cache: cache, ttl: ttl, now: time.Now}, nil
}

// Purge drops every cached response.
func (c *ResponseCache) Purge() {
	c.cache.Purge()
}

// bufferingWriter tees the body so it can be stored once the handler is done.
type bufferingWriter struct {
	http.ResponseWriter
	status int
	buf    bytes.Buffer
	once   sync.Once
}

func (w *bufferingWriter) WriteHeader(code int) {
	w.once.Do(func() { w.status = code })
	w.ResponseWriter.WriteHeader(code)
}

func (w *bufferingWriter) Write(b []byte) (int, error) {
	w.once.Do(func() { w.status = http.StatusOK })
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (c *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}
		key := r.URL.String()

		if v, ok := c.cache.Get(key); ok {
			entry := v.(cachedResponse)
			if c.now().Before(entry.expires) {
				w.Header().Set("Content-Type", entry.contentType)
				w.Header().Set(CacheHeader, cacheHit)
				w.Write(entry.body)
				return
			}
			c.cache.Remove(key)
		}

		w.Header().Set(CacheHeader, cacheMiss)
		bw := &bufferingWriter{ResponseWriter: w}
		next.ServeHTTP(bw, r)

		// errors are never cached
		if bw.status == http.StatusOK {
			c.cache.Add(key, cachedResponse{
				contentType: w.Header().Get("Content-Type"),
				body:        bw.buf.Bytes(),
				expires:     c.now().Add(c.ttl),
			})
		}
	})
}
