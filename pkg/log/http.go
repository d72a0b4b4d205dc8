package log

import (
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

// HTTPLogger logs outbound HTTP requests and responses through a
// logrus.Logger.
type HTTPLogger struct {
	logger *log.Logger
}

// NewHTTPLogger creates a new HTTPLogger instance
func NewHTTPLogger(logger *log.Logger) *HTTPLogger {
	return &HTTPLogger{
		logger: logger,
	}
}

// LogRequest logs information about an HTTP request
func (l *HTTPLogger) LogRequest(req *http.Request) {
	l.logger.WithFields(log.Fields{
		"method": req.Method,
		"url":    req.URL.String(),
		"host":   req.Host,
		"path":   req.URL.Path,
	}).Info("HTTP request")
}

// LogResponse logs information about an HTTP response
func (l *HTTPLogger) LogResponse(req *http.Request, res *http.Response, err error, duration time.Duration) {
	durationMs := duration / time.Millisecond

	fields := log.Fields{
		"method":     req.Method,
		"url":        req.URL.String(),
		"host":       req.Host,
		"path":       req.URL.Path,
		"durationMs": durationMs,
	}

	if err != nil {
		fields["error"] = err.Error()
		l.logger.WithFields(fields).Error("HTTP response error")
	} else {
		fields["status"] = res.StatusCode
		l.logger.WithFields(fields).Info("HTTP response")
	}
}

// Transport is an http.RoundTripper that logs each request/response pair
// before delegating to the wrapped transport.
type Transport struct {
	rt     http.RoundTripper
	logger *HTTPLogger
}

// NewTransport wraps rt with request/response logging. A nil rt falls back to
// http.DefaultTransport.
func NewTransport(rt http.RoundTripper, logger *HTTPLogger) *Transport {
	if rt == nil {
		rt = http.DefaultTransport
	}
	return &Transport{rt: rt, logger: logger}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.logger.LogRequest(req)
	start := time.Now()
	res, err := t.rt.RoundTrip(req)
	t.logger.LogResponse(req, res, err, time.Since(start))
	return res, err
}
