package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"
)

// Timeout bounds request handling at d. When the deadline passes before the
// handler has produced any output, the client gets a 503; a handler that
// already started writing keeps its response. The handler itself sees the
// deadline through its request context, which the API client honors.
func Timeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			gw := &guardedWriter{ResponseWriter: w}

			done := make(chan struct{})
			go func() {
				defer close(done)
				next.ServeHTTP(gw, r.WithContext(ctx))
			}()

			select {
			case <-done:
			case <-ctx.Done():
				gw.timedOut()
			}
		})
	}
}

// guardedWriter serializes header writes so the handler goroutine and the
// timeout path cannot both answer the request.
type guardedWriter struct {
	http.ResponseWriter
	mu    sync.Mutex
	wrote bool
}

func (g *guardedWriter) WriteHeader(code int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.wrote {
		return
	}
	g.wrote = true
	g.ResponseWriter.WriteHeader(code)
}

func (g *guardedWriter) Write(b []byte) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.wrote {
		g.wrote = true
		g.ResponseWriter.WriteHeader(http.StatusOK)
	}
	return g.ResponseWriter.Write(b)
}

// timedOut answers 503 unless the handler got there first.
func (g *guardedWriter) timedOut() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.wrote {
		return
	}
	g.wrote = true
	g.ResponseWriter.Header().Set("Content-Type", "text/plain; charset=utf-8")
	g.ResponseWriter.WriteHeader(http.StatusServiceUnavailable)
	_, _ = g.ResponseWriter.Write([]byte("Request timeout"))
}
