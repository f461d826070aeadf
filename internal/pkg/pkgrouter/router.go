package pkgrouter

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkgerror"
	"github.com/shandysiswandi/gofindway/internal/pkg/pkguid"
)

const HeaderRequestID = "X-Request-Id"

type Handler func(ctx context.Context, r *http.Request) (any, error)

type Router struct {
	mux  chi.Router
	uuid pkguid.StringID
}

type Response struct {
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func NewRouter(uuid pkguid.StringID) *Router {
	mux := chi.NewRouter()
	mux.Use(middleware.Recoverer)

	r := &Router{mux: mux, uuid: uuid}
	mux.Use(r.requestID)
	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, Response{Message: "endpoint not found"})
	})
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Message: "method not allowed"})
	})

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Response{Message: "ok"})
	})

	return r
}

func (r *Router) GET(path string, h Handler) {
	r.mux.Get(path, r.serve(h))
}

// Handle mounts a plain http.Handler, e.g. promhttp.
func (r *Router) Handle(path string, h http.Handler) {
	r.mux.Handle(path, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

func (r *Router) serve(h Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx := req.Context()
		data, err := h(ctx, req)
		if err != nil {
			e := pkgerror.As(err)
			status := statusFromCode(e.Code())
			if e.Type() == pkgerror.TypeServer {
				slog.ErrorContext(ctx, "request failed",
					"path", req.URL.Path,
					"request_id", w.Header().Get(HeaderRequestID),
					"error", err,
				)
			}
			writeJSON(w, status, Response{Message: e.Msg()})
			return
		}
		writeJSON(w, http.StatusOK, Response{Message: "success", Data: data})
	}
}

func (r *Router) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		id := req.Header.Get(HeaderRequestID)
		if id == "" {
			id = r.uuid.Generate()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, req)
	})
}

func statusFromCode(code pkgerror.Code) int {
	switch code {
	case pkgerror.CodeInvalidInput:
		return http.StatusBadRequest
	case pkgerror.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // the client is gone if this fails
	json.NewEncoder(w).Encode(body)
}
