package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/visflow/pkg/cache"
	"github.com/matzehuels/visflow/pkg/dataflow"
	"github.com/matzehuels/visflow/pkg/editor"
	"github.com/matzehuels/visflow/pkg/errors"
	"github.com/matzehuels/visflow/pkg/observability"
)

// serveCommand creates the serve command: a read-only HTTP preview of a
// loaded diagram.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a diagram over HTTP",
		Long: `Serve a diagram over HTTP.

Routes:
  GET  /health        liveness check
  GET  /diagram       the diagram document as JSON
  GET  /diagram.svg   the rendered diagram (?detailed=true for values)
  GET  /nodes/{id}    one node with its state and output values
  POST /propagate     recompute every node`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			ed, _, err := c.loadEditor(args[0], nil, nil)
			if err != nil {
				return err
			}
			rc, err := c.newCache(ctx, noCache)
			if err != nil {
				return err
			}
			defer rc.Close()

			if addr == "" {
				addr = c.Config.ServeAddr
			}
			return listen(ctx, addr, newServer(ed, rc, c.Logger), c.Logger)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: serve_addr from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "bypass the render cache")
	return cmd
}

// listen serves h on addr until ctx ends.
func listen(ctx context.Context, addr string, s *server, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	printSuccess("Serving on %s", StyleHighlight.Render("http://"+addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// server exposes one editor over HTTP. The editor is not safe for
// concurrent use, so every handler holds mu.
type server struct {
	mu     sync.Mutex
	ed     *editor.Editor
	cache  cache.Cache
	logger *log.Logger
	start  time.Time
}

func newServer(ed *editor.Editor, c cache.Cache, logger *log.Logger) *server {
	return &server{ed: ed, cache: c, logger: logger, start: time.Now()}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/health", s.handleHealth)
	r.Get("/diagram", s.handleDiagram)
	r.Get("/diagram.svg", s.handleSVG)
	r.Get("/nodes/{id}", s.handleNode)
	r.Post("/propagate", s.handlePropagate)
	return r
}

// observe reports every request to the server hooks and the debug log.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.Server().OnRequest(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request", "method", r.Method, "route", route, "status", status, "took", elapsed)
	})
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status  string `json:"status"`
	Diagram string `json:"diagram"`
	Uptime  string `json:"uptime"`
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	name := s.ed.Diagram().Name()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Diagram: name,
		Uptime:  time.Since(s.start).Round(time.Second).String(),
	})
}

func (s *server) handleDiagram(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	save := s.ed.SerializeDiagram()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, save)
}

func (s *server) handleSVG(w http.ResponseWriter, r *http.Request) {
	opts := renderOpts{format: formatSVG, detailed: r.URL.Query().Get("detailed") == "true"}

	s.mu.Lock()
	svg, cached, err := renderCached(r.Context(), s.cache, s.ed.Diagram(), s.ed.SerializeDiagram(), opts)
	s.mu.Unlock()
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	if cached {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	_, _ = w.Write(svg)
}

// nodeResponse is the body of GET /nodes/{id}.
type nodeResponse struct {
	ID       dataflow.NodeID                    `json:"id"`
	Type     string                             `json:"type"`
	Layer    int                                `json:"layer"`
	Position dataflow.Point                     `json:"position"`
	State    dataflow.Metadata                  `json:"state"`
	Outputs  map[dataflow.PortID]dataflow.Value `json:"outputs"`
	Error    string                             `json:"error,omitempty"`
}

func (s *server) handleNode(w http.ResponseWriter, r *http.Request) {
	id := dataflow.NodeID(chi.URLParam(r, "id"))

	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.ed.Diagram().Node(id)
	if !ok {
		writeError(w, errors.New(errors.ErrCodeNodeNotFound, "node %s not found", id))
		return
	}

	resp := nodeResponse{
		ID:       n.ID,
		Type:     n.Type,
		Layer:    n.Layer,
		Position: n.Position,
		State:    n.State,
		Outputs:  map[dataflow.PortID]dataflow.Value{},
	}
	for _, p := range n.Outputs {
		resp.Outputs[p.ID] = p.Value
	}
	if n.Err != nil {
		resp.Error = n.Err.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

// propagateResponse is the body of POST /propagate.
type propagateResponse struct {
	Processed []dataflow.NodeID `json:"processed"`
	Failed    []dataflow.NodeID `json:"failed"`
	Skipped   []dataflow.NodeID `json:"skipped"`
	Cycle     bool              `json:"cycle"`
}

func (s *server) handlePropagate(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	res := s.ed.PropagateAll()
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, propagateResponse{
		Processed: nonNil(res.Processed),
		Failed:    nonNil(res.Failed),
		Skipped:   nonNil(res.Skipped),
		Cycle:     res.Cycle,
	})
}

func nonNil(ids []dataflow.NodeID) []dataflow.NodeID {
	if ids == nil {
		return []dataflow.NodeID{}
	}
	return ids
}

// errorResponse is the body of every failed request.
type errorResponse struct {
	Code    errors.Code `json:"code,omitempty"`
	Message string      `json:"message"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.IsLookupFailure(err):
		status = http.StatusNotFound
	case errors.Is(err, errors.ErrCodeInvalidInput), errors.Is(err, errors.ErrCodeInvalidFormat):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, errorResponse{Code: errors.GetCode(err), Message: errors.UserMessage(err)})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
