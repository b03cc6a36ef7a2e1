package httpserver

import (
	"errors"
	"sync"

	"github.com/gin-gonic/gin"

	"task-description-updater/internal/middleware"
	"task-description-updater/internal/poller"
	"task-description-updater/pkg/log"
)

// StatusSource exposes the poller state served on /status.
type StatusSource interface {
	Status() poller.Status
}

// HTTPServer holds all dependencies for the status server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string
	mw          middleware.Middleware

	// set once the hierarchy is resolved
	state *state
}

type state struct {
	mu     sync.RWMutex
	source StatusSource
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string
	Middleware  middleware.Config
}

// New creates a new HTTPServer instance with its routes mapped.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:           logger,
		gin:         gin.New(),
		port:        cfg.Port,
		mode:        cfg.Mode,
		environment: cfg.Environment,
		mw:          middleware.New(logger, cfg.Middleware),
		state:       &state{},
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	srv.mapHandlers()
	return srv, nil
}

// Attach marks the service ready and serves src on /status.
func (srv HTTPServer) Attach(src StatusSource) {
	srv.state.mu.Lock()
	srv.state.source = src
	srv.state.mu.Unlock()
}

func (srv HTTPServer) statusSource() StatusSource {
	srv.state.mu.RLock()
	defer srv.state.mu.RUnlock()
	return srv.state.source
}

// Handler returns the routed engine.
func (srv HTTPServer) Handler() *gin.Engine {
	return srv.gin
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
