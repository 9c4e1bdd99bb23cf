package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/coolify-notifications/push-relay/pkg/events"
	"github.com/coolify-notifications/push-relay/relay"
	"github.com/coolify-notifications/push-relay/shared/settings"
	"github.com/coolify-notifications/push-relay/shared/version"
)

const (
	requestIDHeader = "X-Request-Id"
	logEntryKey     = "logEntry"

	shutdownTimeout = 5 * time.Second
)

// Handler delivers a parsed webhook payload.
type Handler interface {
	Handle(logEntry *log.Entry, raw []byte, payload events.Payload) relay.Response
}

type Server interface {
	Serve(ctx context.Context) error
	Handler() http.Handler
}

func NewServer(cfg settings.Server, handler Handler, gatherer prometheus.Gatherer) *server {
	s := &server{cfg: cfg, handler: handler, engine: gin.New()}
	s.engine.Use(gin.Recovery(), withRequestLog())

	s.engine.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true, "service": version.Name})
	})
	health := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
	s.engine.GET("/health", health)
	s.engine.GET("/healthz", health)

	webhook := []gin.HandlerFunc{requireSecret(cfg.Secret)}
	if cfg.RateLimit > 0 {
		webhook = append(webhook, limit(rate.NewLimiter(rate.Limit(cfg.RateLimit), burst(cfg))))
	}
	webhook = append(webhook, s.webhook)
	s.engine.POST(cfg.WebhookPath, webhook...)

	if cfg.MetricsPath != "" && gatherer != nil {
		s.engine.GET(cfg.MetricsPath, gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	}
	return s
}

type server struct {
	cfg     settings.Server
	handler Handler
	engine  *gin.Engine
}

func burst(cfg settings.Server) int {
	if cfg.RateBurst > 0 {
		return cfg.RateBurst
	}
	if b := int(cfg.RateLimit); b > 1 {
		return b
	}
	return 1
}

func (s *server) Handler() http.Handler {
	return s.engine
}

func (s *server) webhook(c *gin.Context) {
	logEntry := requestLog(c)
	raw, err := ioutil.ReadAll(io.LimitReader(c.Request.Body, s.cfg.MaxBodyBytes+1))
	if err != nil {
		logEntry.Warnf("Failed to read webhook body: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid payload"})
		return
	}
	if int64(len(raw)) > s.cfg.MaxBodyBytes {
		logEntry.Warnf("Webhook body exceeds %d bytes", s.cfg.MaxBodyBytes)
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"ok": false, "error": "Payload too large"})
		return
	}
	payload, err := events.ParsePayload(raw)
	if err != nil {
		logEntry.Warnf("Rejected webhook payload: %v", err)
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid payload"})
		return
	}
	logEntry = logEntry.WithField("event", payload.Event())
	logEntry.Infof("Received webhook event '%s'", payload.Event())

	res := s.handler.Handle(logEntry, raw, payload)
	c.JSON(res.Status, res.Body)
}

func (s *server) Serve(ctx context.Context) error {
	httpServer := &http.Server{Addr: fmt.Sprintf(":%d", s.cfg.Port), Handler: s.engine}
	errs := make(chan error, 1)
	go func() {
		log.Infof("%s listening on port %d, webhook path %s", version.UserAgent(), s.cfg.Port, s.cfg.WebhookPath)
		errs <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func withRequestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		// only well-formed ids are echoed and logged
		id := uuid.New().String()
		if parsed, err := uuid.Parse(c.GetHeader(requestIDHeader)); err == nil {
			id = parsed.String()
		}
		c.Header(requestIDHeader, id)
		logEntry := log.WithField("request", id)
		c.Set(logEntryKey, logEntry)

		start := time.Now()
		c.Next()
		logEntry.WithFields(log.Fields{
			"method":  c.Request.Method,
			"path":    c.Request.URL.Path,
			"status":  c.Writer.Status(),
			"elapsed": time.Since(start).String(),
		}).Debug("Request processed")
	}
}

func requestLog(c *gin.Context) *log.Entry {
	if val, ok := c.Get(logEntryKey); ok {
		if logEntry, ok := val.(*log.Entry); ok {
			return logEntry
		}
	}
	return log.NewEntry(log.StandardLogger())
}

func limit(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			requestLog(c).Warn("Webhook rate limit exceeded")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "Too many requests"})
			return
		}
		c.Next()
	}
}
