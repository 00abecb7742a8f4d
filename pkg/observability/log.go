package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug line on a charmbracelet logger.
// It implements LayoutHooks, CacheHooks and RequestHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks writing to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Install registers h for every hook category.
func (h *LogHooks) Install() {
	SetLayoutHooks(h)
	SetCacheHooks(h)
	SetRequestHooks(h)
}

func (h *LogHooks) OnLayoutStart(_ context.Context, profile string, tileCount int) {
	h.logger.Debug("layout start", "profile", profile, "tiles", tileCount)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, profile string, rowCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("layout failed", "profile", profile, "duration", d, "err", err)
		return
	}
	h.logger.Debug("layout done", "profile", profile, "rows", rowCount, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render start", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.logger.Debug("render done", "formats", formats, "duration", d, "err", err)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("request", "method", method, "route", route, "status", status, "duration", d)
}

func (h *LogHooks) OnRateLimited(_ context.Context, client string) {
	h.logger.Debug("rate limited", "client", client)
}

var (
	_ LayoutHooks  = (*LogHooks)(nil)
	_ CacheHooks   = (*LogHooks)(nil)
	_ RequestHooks = (*LogHooks)(nil)
)
