package web

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	limitmem "github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/models/aigc"
	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/services/session"
	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/services/stores"
	"github.com/nikhildevireddy/cf-ai-swe-project/pkg/settings"
)

type Service interface {
	Serve(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Config wires the router's collaborators explicitly; the server itself
// keeps no conversation state.
type Config struct {
	Addr  string
	Debug bool

	Registry *session.Registry
	Content  stores.KeyValue
	Preset   aigc.Preset
}

type server struct {
	Addr string
	cfg  Config

	reg     *session.Registry
	content stores.KeyValue
	preset  aigc.Preset

	ar *chi.Mux     // app router
	hs *http.Server // http server
}

// New return new web server
func New(cfg Config) Service {
	ar := chi.NewMux()
	if cfg.Debug {
		ar.Use(middleware.Logger)
	}
	ar.Use(middleware.Recoverer, middleware.RealIP)

	s := &server{
		Addr: cfg.Addr, ar: ar,
		cfg:     cfg,
		reg:     cfg.Registry,
		content: cfg.Content,
		preset:  cfg.Preset,
	}
	if s.preset.Welcome != nil {
		logger().Infow("loaded preset welcome", "size", len(s.preset.Welcome.Content))
	}
	s.strapRouter()

	s.hs = &http.Server{
		Addr:    s.Addr,
		Handler: s.ar,
	}

	if cfg.Debug {
		logger().Infow("routes:")
		walkFunc := func(method string, route string, handler http.Handler, middlewares ...func(http.Handler) http.Handler) error {
			route = strings.Replace(route, "/*/", "/", -1)
			fmt.Fprintf(os.Stderr, "DEBUG: %-6s %-24s --> %s (%d mw)\n", method, route, nameOfFunction(handler), len(middlewares))
			return nil
		}

		if err := chi.Walk(ar, walkFunc); err != nil {
			logger().Infow("router walk fail", "err", err)
		}
	}
	return s
}

func (s *server) Serve(ctx context.Context) error {
	// Run HTTP server
	runErrChan := make(chan error)
	t := time.AfterFunc(time.Millisecond*200, func() {
		runErrChan <- s.hs.ListenAndServe()
	})

	defer t.Stop()
	logger().Infow("Listen on", "addr", s.hs.Addr)

	// Wait
	for {
		select {
		case runErr := <-runErrChan:
			if runErr != nil {
				logger().Infow("run http server failed",
					"err", runErr,
				)
				return runErr
			}
		case <-ctx.Done():
			logger().Info("http server has been stopped")
			return ctx.Err()
		}
	}
}

func (s *server) Stop(ctx context.Context) error {
	if err := s.hs.Shutdown(ctx); err != nil {
		logger().Fatalw("Server Shutdown", "err", err)
		return err
	}
	return nil
}

func (s *server) rateLimitMw() func(next http.Handler) http.Handler {
	rate, err := limiter.NewRateFromFormatted(settings.Current.APIRateLimit)
	if err != nil {
		logger().Infow("parse rate limit fail", "limit", settings.Current.APIRateLimit, "err", err)
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(rw, req)
			})
		}
	}
	return stdlib.NewMiddleware(limiter.New(limitmem.NewStore(), rate)).Handler
}
