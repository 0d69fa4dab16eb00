package devserver

import (
	"context"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rileyhilliard/hwmon/internal/errors"
	"github.com/rileyhilliard/hwmon/internal/logger"
	"github.com/rileyhilliard/hwmon/internal/telemetry"
)

// Defaults for Options fields left at their zero value.
const (
	DefaultAddr       = ":8080"
	DefaultMaxHosts   = 100
	DefaultMaxRecords = 100
	DefaultRateLimit  = 100
	DefaultRateBurst  = 200
	DefaultLimit      = 100

	pruneInterval = time.Hour
	pruneAfter    = 24 * time.Hour
	shutdownWait  = 5 * time.Second
)

// Options configures a Server.
type Options struct {
	Addr       string
	MaxHosts   int
	MaxRecords int
	RateLimit  float64 // requests per second per client IP on /api
	RateBurst  int

	// AccessLog receives gin's request log. Defaults to stderr.
	AccessLog io.Writer
	Logger    logger.Logger
}

func (o Options) withDefaults() Options {
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.MaxHosts < 1 {
		o.MaxHosts = DefaultMaxHosts
	}
	if o.MaxRecords < 1 {
		o.MaxRecords = DefaultMaxRecords
	}
	if o.RateLimit <= 0 {
		o.RateLimit = DefaultRateLimit
	}
	if o.RateBurst < 1 {
		o.RateBurst = DefaultRateBurst
	}
	if o.AccessLog == nil {
		o.AccessLog = os.Stderr
	}
	if o.Logger == nil {
		o.Logger = logger.NewEnvLogger("[serve]")
	}
	return o
}

// Server is the demo telemetry backend: agents POST samples, dashboards read
// them over HTTP and receive pushes over /ws.
type Server struct {
	opts   Options
	store  *Store
	hub    *Hub
	engine *gin.Engine
	log    logger.Logger
	now    func() time.Time
}

// New builds a server and its routes.
func New(opts Options) *Server {
	opts = opts.withDefaults()
	s := &Server{
		opts:  opts,
		store: NewStore(opts.MaxHosts, opts.MaxRecords),
		hub:   NewHub(opts.Logger),
		log:   opts.Logger,
		now:   time.Now,
	}
	s.engine = s.routes()
	return s
}

func (s *Server) routes() *gin.Engine {
	r := gin.New()
	r.Use(gin.LoggerWithWriter(s.opts.AccessLog), gin.Recovery())

	api := r.Group("/api")
	api.Use(rateLimit(newIPLimiter(s.opts.RateLimit, s.opts.RateBurst), s.log))
	{
		api.POST("/hardware", s.handleHardware)
		api.GET("/hosts", s.handleHosts)
		api.GET("/hosts/:hostname", s.handleHost)
		api.GET("/latest", s.handleLatest)
	}

	r.GET("/ws", s.handleWebsocket)
	return r
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.engine }

// Store returns the backing store.
func (s *Server) Store() *Store { return s.store }

// Hub returns the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrServer,
			"Couldn't listen on "+s.opts.Addr,
			"Pick another address with --addr or stop whatever is using the port.")
	}
	return s.Serve(ctx, ln)
}

// Serve runs the hub and HTTP server on ln, shutting both down gracefully
// when ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go s.hub.Run(ctx)
	go s.prune(ctx)

	srv := &http.Server{Handler: s.engine, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	s.log.Info("listening on %s", ln.Addr())

	select {
	case err := <-errc:
		if err != nil && err != http.ErrServerClosed {
			return errors.WrapWithCode(err, errors.ErrServer, "Server stopped unexpectedly", "")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownWait)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.WrapWithCode(err, errors.ErrServer, "Server didn't shut down cleanly", "")
	}
	return nil
}

func (s *Server) prune(ctx context.Context) {
	ticker := time.NewTicker(pruneInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.store.Prune(pruneAfter); n > 0 {
				s.log.Info("pruned %d silent hosts", n)
			}
		}
	}
}

func (s *Server) handleHardware(c *gin.Context) {
	var sample telemetry.Sample
	if err := c.ShouldBindJSON(&sample); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body"})
		return
	}
	if sample.Hostname == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hostname is required"})
		return
	}
	now := s.now()
	if sample.Timestamp.IsZero() {
		sample.Timestamp = now
	}

	if evicted := s.store.Add(sample); evicted != "" {
		s.log.Info("evicted %s to make room for %s", evicted, sample.Hostname)
	}

	frame, err := Frame(telemetry.MessageHardwareInfo, s.store.Latest(), now)
	if err != nil {
		s.log.Error("%v", err)
	} else {
		s.hub.Broadcast(frame)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "received",
		"timestamp": now.Unix(),
	})
}

func (s *Server) handleHosts(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Hosts())
}

func (s *Server) handleHost(c *gin.Context) {
	limit, ok := parseLimit(c.Query("limit"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
		return
	}

	history, found := s.store.Host(c.Param("hostname"), limit)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "host not found"})
		return
	}
	c.JSON(http.StatusOK, history)
}

func (s *Server) handleLatest(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.Latest())
}

func (s *Server) handleWebsocket(c *gin.Context) {
	welcome, err := Frame(telemetry.MessageHostList, s.store.Hosts(), s.now())
	if err != nil {
		s.log.Error("%v", err)
		welcome = nil
	}
	s.hub.Serve(c.Writer, c.Request, welcome)
}

// parseLimit reads ?limit=. Empty means DefaultLimit; anything that is not a
// positive integer is rejected. Limits above the retained count are fine.
func parseLimit(raw string) (int, bool) {
	if raw == "" {
		return DefaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
