package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/cockroachdb/errors"
	"github.com/enorith/injectparam/config"
	"github.com/enorith/injectparam/router"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

type RouterRegister func(rw *router.Wrapper, k *Kernel)

type Server struct {
	k      *Kernel
	cfg    config.Config
	logger *zap.Logger
}

func (s *Server) Kernel() *Kernel {
	return s.k
}

// Serve registers routes and serves until SIGINT or SIGTERM.
func (s *Server) Serve(register RouterRegister) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.ServeContext(ctx, register)
}

// ServeContext registers routes and serves until ctx is done.
func (s *Server) ServeContext(ctx context.Context, register RouterRegister) error {
	register(s.k.Wrapper(), s.k)

	switch s.cfg.Handler {
	case config.HandlerNetHttp:
		return s.serveNetHttp(ctx)
	default:
		return s.serveFastHttp(ctx)
	}
}

func (s *Server) serveFastHttp(ctx context.Context) error {
	srv := s.GetFastHttpServer()
	logger := s.logger.With(zap.String("handler", string(config.HandlerFastHttp)), zap.String("addr", s.cfg.Addr))

	errs := make(chan error, 1)
	go func() {
		errs <- srv.ListenAndServe(s.cfg.Addr)
	}()
	logger.Info("served", zap.String("version", Version))

	select {
	case err := <-errs:
		return errors.Wrapf(err, "listen %s", s.cfg.Addr)
	case <-ctx.Done():
	}

	logger.Info("stopping")
	if err := srv.Shutdown(); err != nil {
		return errors.Wrap(err, "fasthttp shutdown")
	}
	logger.Info("stopped")

	return nil
}

func (s *Server) serveNetHttp(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.cfg.Addr,
		Handler:      s.k,
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
		IdleTimeout:  s.cfg.IdleTimeout,
	}
	logger := s.logger.With(zap.String("handler", string(config.HandlerNetHttp)), zap.String("addr", s.cfg.Addr))

	errs := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()
	logger.Info("served", zap.String("version", Version))

	select {
	case err := <-errs:
		return errors.Wrapf(err, "listen %s", s.cfg.Addr)
	case <-ctx.Done():
	}

	logger.Info("stopping")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "net/http shutdown")
	}
	logger.Info("stopped")

	return nil
}

func (s *Server) GetFastHttpServer() *fasthttp.Server {
	return &fasthttp.Server{
		Handler:            s.k.FastHttpHandler,
		Concurrency:        s.cfg.Concurrency,
		TCPKeepalive:       s.k.IsKeepAlive(),
		MaxRequestBodySize: s.cfg.MaxRequestBodySize,
		ReadTimeout:        s.cfg.ReadTimeout,
		WriteTimeout:       s.cfg.WriteTimeout,
		IdleTimeout:        s.cfg.IdleTimeout,
	}
}

// NewLogger builds the production zap logger at the configured level.
func NewLogger(cfg config.Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Debug {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(cfg.LogLevel)

	return zc.Build()
}

func NewServer(cr router.ContainerRegister, cfg config.Config, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	k := NewKernel(cr, cfg.Debug, logger)
	k.KeepAlive(cfg.KeepAlive)
	k.OutputLog = cfg.AccessLog
	if cfg.Cors.Enabled() {
		k.Use(NewCors(cfg.Cors))
	}

	return &Server{k: k, cfg: cfg, logger: logger}
}
