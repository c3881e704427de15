package httpd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/avral/tessera/pkg/domain"
	"github.com/avral/tessera/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// Dispatcher is the part of the dispatch core the HTTP adapter needs.
type Dispatcher interface {
	Resolve(ctx context.Context, ctrl ports.Controller, req *domain.Request) (*domain.Response, error)
}

// Option configures the handler.
type Option func(*handler)

// WithPrimitive registers a primitive resolver, e.g. the authenticated
// principal for domain.LoggedInUser.
func WithPrimitive(name domain.Primitive, fn PrimitiveFunc) Option {
	return func(h *handler) {
		h.primitives[name.String()] = fn
	}
}

// WithLogger sets the handler's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *handler) {
		h.logger = logger
	}
}

// PersistCookie is the cookie name used when a response carries a string
// persist value.
const PersistCookie = "tessera-persist"

type handler struct {
	dispatcher Dispatcher
	primitives map[string]PrimitiveFunc
	logger     *slog.Logger
}

// NewHandler mounts the dispatcher behind a chi router. Every path is
// routed; resolution happens in the manifest tree, not the mux.
func NewHandler(d Dispatcher, opts ...Option) http.Handler {
	h := &handler{
		dispatcher: d,
		primitives: make(map[string]PrimitiveFunc),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(h)
	}

	r := chi.NewRouter()
	r.HandleFunc("/*", h.serve)
	return r
}

func (h *handler) serve(w http.ResponseWriter, r *http.Request) {
	ctrl := NewController(r, h.primitives)
	req := &domain.Request{
		Invocation: r.URL.Path,
		Data:       rawData(r),
		Origin:     r,
	}

	resp, err := h.dispatcher.Resolve(r.Context(), ctrl, req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeResponse(w, r, resp)
}

// writeError maps the framework error taxonomy onto HTTP status codes.
func (h *handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrProgramNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrTooManyArguments), errors.Is(err, domain.ErrMissingArguments):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrNoViewMethod):
		status = http.StatusNotAcceptable
	}
	if status == http.StatusInternalServerError {
		h.logger.Error("dispatch failed", "err", err)
	}
	http.Error(w, err.Error(), status)
}

func (h *handler) writeResponse(w http.ResponseWriter, r *http.Request, resp *domain.Response) {
	if persist, ok := resp.Persist.(string); ok && persist != "" {
		http.SetCookie(w, &http.Cookie{
			Name:  PersistCookie,
			Value: persist,
			Path:  "/",
		})
	}

	if signal, ok := resp.Signal(); ok {
		switch s := signal.(type) {
		case domain.Redirection:
			http.Redirect(w, r, s.Path, http.StatusFound)
		default:
			h.logger.Error("unhandled control signal", "signal", signal.ControlName())
			http.Error(w, "unhandled control signal", http.StatusInternalServerError)
		}
		return
	}

	if resp.Mimetype != "" {
		w.Header().Set("Content-Type", resp.Mimetype)
	}

	switch body := resp.Body.(type) {
	case string:
		fmt.Fprint(w, body)
	case []byte:
		w.Write(body)
	default:
		if err := json.NewEncoder(w).Encode(body); err != nil {
			h.logger.Error("response encode failed", "err", err)
		}
	}
}
