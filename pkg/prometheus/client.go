package prometheus

import (
	"context"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/cockroachdb/errors"
	"github.com/lk2023060901/paragon/pkg/logger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Client Prometheus 客户端，持有独立的 Registry
// 启用 HTTP 时作为 app.Server 由应用统一启动与停止
type Client struct {
	config   *Config
	registry *prometheus.Registry
	logger   logger.Logger

	httpServer *http.Server
	listener   net.Listener

	closed atomic.Bool
}

// New 创建 Prometheus 客户端
func New(cfg *Config, l logger.Logger) (*Client, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if l == nil {
		l = logger.NewNoop()
	}

	c := &Client{
		config:   cfg,
		registry: prometheus.NewRegistry(),
		logger:   l.Named("prometheus"),
	}

	// 注册默认采集器
	if cfg.EnableGoCollector {
		c.registry.MustRegister(collectors.NewGoCollector())
	}
	if cfg.EnableProcessCollector {
		c.registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	return c, nil
}

// Registry 获取底层 Registry
func (c *Client) Registry() *prometheus.Registry {
	return c.registry
}

// Register 注册采集器
func (c *Client) Register(cs ...prometheus.Collector) error {
	if c.IsClosed() {
		return ErrClientClosed
	}
	for _, col := range cs {
		if err := c.registry.Register(col); err != nil {
			return errors.Wrap(err, "register collector")
		}
	}
	return nil
}

// Handler 返回 HTTP Handler（用于集成到现有 HTTP 服务器）
func (c *Client) Handler() http.Handler {
	return promhttp.HandlerFor(
		c.registry,
		promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		},
	)
}

// Config 获取配置
func (c *Client) Config() *Config {
	return c.config
}

// Addr HTTP 服务实际监听地址，未启动时为空
func (c *Client) Addr() string {
	if c.listener == nil {
		return ""
	}
	return c.listener.Addr().String()
}

// Start 启动独立的 HTTP 服务器，未启用时直接返回
func (c *Client) Start() error {
	if c.IsClosed() {
		return ErrClientClosed
	}
	if !c.config.HTTPServer.Enabled || c.httpServer != nil {
		return nil
	}

	ln, err := net.Listen("tcp", c.config.HTTPServer.Addr)
	if err != nil {
		return errors.Wrapf(err, "listen %s", c.config.HTTPServer.Addr)
	}

	mux := http.NewServeMux()
	mux.Handle(c.config.HTTPServer.Path, c.Handler())

	c.listener = ln
	c.httpServer = &http.Server{
		Handler:      mux,
		ReadTimeout:  c.config.HTTPServer.Timeout,
		WriteTimeout: c.config.HTTPServer.Timeout,
	}

	go func() {
		if err := c.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			c.logger.Error("metrics http server stopped", "error", err)
		}
	}()

	c.logger.Info("metrics http server started", "addr", ln.Addr().String(), "path", c.config.HTTPServer.Path)
	return nil
}

// Stop 停止 HTTP 服务器
func (c *Client) Stop() error {
	return c.Close()
}

// Close 关闭客户端
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	if c.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), c.config.HTTPServer.Timeout)
		defer cancel()
		return c.httpServer.Shutdown(ctx)
	}

	return nil
}

// IsClosed 检查客户端是否已关闭
func (c *Client) IsClosed() bool {
	return c.closed.Load()
}
