// Package server exposes the comparison pages and the AHP session over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-ahpgen/pkg/compose"
	"github.com/goliatone/go-ahpgen/pkg/document"
	"github.com/goliatone/go-ahpgen/pkg/render"
	"github.com/goliatone/go-ahpgen/pkg/renderers"
	"github.com/goliatone/go-ahpgen/pkg/renderers/vanilla"
	"github.com/goliatone/go-ahpgen/pkg/session"
	"github.com/goliatone/go-ahpgen/pkg/templates"
)

const (
	defaultChoice1         = "Cracow University of Technology"
	defaultVerdict         = "Is better"
	defaultShutdownTimeout = 5 * time.Second
	maxPayloadBytes        = 1 << 20
	htmlFormat             = "vanilla"
	apiFormat              = "json"
)

// Option customises a Server.
type Option func(*Server)

// WithLogger sets the logger; the server logs under the "webserver" name.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStore sets the session store.
func WithStore(store session.Store) Option {
	return func(s *Server) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTemplatesFS overrides the embedded page templates.
func WithTemplatesFS(fsys fs.FS) Option {
	return func(s *Server) {
		if fsys != nil {
			s.templates = fsys
		}
	}
}

// WithStaticFS overrides the embedded browser assets.
func WithStaticFS(fsys fs.FS) Option {
	return func(s *Server) {
		if fsys != nil {
			s.static = fsys
		}
	}
}

// WithThemeStyle sets the CSS injected at {THEME_STYLE}.
func WithThemeStyle(css string) Option {
	return func(s *Server) {
		s.themeStyle = css
	}
}

// WithDefaultChoices sets the values /compare uses when a query parameter is
// absent. choice2 is also the verdict shown next to the winner on /results.
func WithDefaultChoices(choice1, choice2 string) Option {
	return func(s *Server) {
		if choice1 != "" {
			s.choice1 = choice1
		}
		if choice2 != "" {
			s.choice2 = choice2
		}
	}
}

// WithRenderer replaces the HTML renderer used for the ranking tables.
func WithRenderer(renderer render.Renderer) Option {
	return func(s *Server) {
		if renderer != nil {
			s.renderer = renderer
		}
	}
}

// WithRegistry sets the renderers /api/results picks from by format name or
// Accept header.
func WithRegistry(registry *render.Registry) Option {
	return func(s *Server) {
		if registry != nil {
			s.registry = registry
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown in Serve.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// Server serves the pages and the session API.
type Server struct {
	logger          *zap.Logger
	store           session.Store
	templates       fs.FS
	static          fs.FS
	renderer        render.Renderer
	registry        *render.Registry
	composer        *compose.Composer
	loader          document.Loader
	themeStyle      string
	choice1         string
	choice2         string
	shutdownTimeout time.Duration
	apiSource       []byte
	api             *apiSpec
	handler         http.Handler
}

// New builds a Server over the embedded templates and assets. WithStore is
// required. The embedded API document is validated here and every request
// to a documented operation is checked against it.
func New(options ...Option) (*Server, error) {
	s := &Server{
		logger:          zap.NewNop(),
		templates:       templates.TemplatesFS(),
		static:          templates.StaticFS(),
		choice1:         defaultChoice1,
		choice2:         defaultVerdict,
		shutdownTimeout: defaultShutdownTimeout,
		apiSource:       apiDoc,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.store == nil {
		return nil, errors.New("server: session store is required")
	}
	s.logger = s.logger.Named("webserver")

	api, err := loadAPISpec(context.Background(), s.apiSource)
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	s.api = api
	s.logger.Debug("api document loaded", zap.Int("operations", len(api.routes())))

	if s.registry == nil {
		registry, err := renderers.NewRegistry(vanilla.WithTemplatesFS(s.templates))
		if err != nil {
			return nil, fmt.Errorf("server: renderers: %w", err)
		}
		s.registry = registry
	}
	if s.renderer == nil {
		html, err := s.registry.Get(htmlFormat)
		if err != nil {
			return nil, fmt.Errorf("server: results renderer: %w", err)
		}
		s.renderer = html
	}

	s.loader = document.NewLoader(document.WithFileSystem(s.templates))
	s.composer = compose.New(
		compose.WithLoader(s.loader),
		compose.WithComparison(document.SourceFromFS(s.templates, templates.ComparisonName)),
		compose.WithIndex(document.SourceFromFS(s.templates, templates.IndexName)),
		compose.WithSanitizer(compose.StrictSanitizer()),
		compose.WithThemeStyle(s.themeStyle),
	)
	s.handler = s.routes()
	return s, nil
}

// Handler returns the HTTP handler with request logging applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /static/{path...}", s.handleStatic)
	mux.HandleFunc("/submitSetup", s.handleSubmitSetup)
	mux.HandleFunc("/submit", s.handleSubmit)
	mux.HandleFunc("GET /results", s.handleResults)
	mux.HandleFunc("GET /api/results", s.handleAPIResults)
	mux.HandleFunc("GET /compare", s.handleCompare)
	mux.HandleFunc("GET /openapi.yaml", s.handleAPIDoc)
	mux.HandleFunc("GET /openapi.json", s.handleAPIDocJSON)
	return s.logRequests(guardTraversal(s.validateRequests(mux)))
}

// Run listens on addr and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully. It returns nil after a clean shutdown.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          zap.NewStdLog(s.logger),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", zap.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server: shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: serve: %w", err)
	}
	return nil
}
