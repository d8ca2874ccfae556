package router

import (
	"context"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/flitframe/flit/pkg/response"
)

// ServeHTTP adapts net/http requests onto Handle, making App usable with any
// stdlib server or httptest. While the app is draining it answers 503 without
// touching the route table.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Add to the wait group before checking shutdown status so Shutdown
	// cannot miss an in-flight request.
	a.wg.Add(1)

	a.shutdownMu.RLock()
	draining := a.shutdown
	a.shutdownMu.RUnlock()

	if draining {
		a.wg.Done()
		http.Error(w, "Service Unavailable", http.StatusServiceUnavailable)
		return
	}
	defer a.wg.Done()

	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			a.logger.Error("Failed to read request body",
				zap.Error(err),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		r.Body.Close()
	}

	resp := a.Handle(r.Context(), r.Method, r.URL.RequestURI(), r.Header, body)
	writeResponse(w, resp)
}

// writeResponse copies a finalized response onto the wire. net/http writes
// its own reason phrase, so the response's StatusText cannot cross this
// particular transport.
func writeResponse(w http.ResponseWriter, resp *response.Response) {
	for k, vs := range resp.Header {
		for _, v := range vs {
			w.Header().Add(k, v)
		}
	}
	w.WriteHeader(resp.StatusCode)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}

// Listen starts an HTTP server on addr and blocks until the server stops.
// A close triggered by Shutdown is not reported as an error.
func (a *App) Listen(addr string) error {
	srv := &http.Server{Addr: addr, Handler: a}

	a.srvMu.Lock()
	a.srv = srv
	a.srvMu.Unlock()

	if err := srv.ListenAndServe(); err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully shuts the app down. It stops accepting new requests,
// closes the listener if Listen was used, and waits for in-flight requests to
// complete. If the context is canceled first, its error is returned.
func (a *App) Shutdown(ctx context.Context) error {
	a.shutdownMu.Lock()
	a.shutdown = true
	a.shutdownMu.Unlock()

	a.srvMu.Lock()
	srv := a.srv
	a.srvMu.Unlock()
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			return err
		}
	}

	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
