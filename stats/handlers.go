package stats

import (
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Handler exposes the hit beacon and the summary endpoint.
type Handler struct {
	store   *Store
	log     zerolog.Logger
	limiter *hitLimiter
}

// NewHandler creates a Handler backed by the given store.
func NewHandler(store *Store, log zerolog.Logger) *Handler {
	return &Handler{
		store:   store,
		log:     log,
		limiter: newHitLimiter(30, time.Minute),
	}
}

// Hit records one page view from the client beacon. It always answers
// 204: a dropped or invalid hit is not the client's problem.
func (h *Handler) Hit(c echo.Context) error {
	var req HitRequest
	if err := c.Bind(&req); err != nil || req.Path == "" {
		return c.NoContent(http.StatusNoContent)
	}
	if !strings.HasPrefix(req.Path, "/") || strings.HasPrefix(req.Path, "/admin") {
		return c.NoContent(http.StatusNoContent)
	}

	ip := c.RealIP()
	if !h.limiter.allow(ip) {
		return c.NoContent(http.StatusNoContent)
	}

	ua := c.Request().UserAgent()
	if isBot(ua) {
		return c.NoContent(http.StatusNoContent)
	}

	browser, os, device := parseUserAgent(ua)
	visit := Visit{
		VisitorID: visitorID(h.store.salt, ip, ua),
		Browser:   browser,
		OS:        os,
		Device:    device,
		Path:      req.Path,
		Referrer:  cleanReferrer(req.Referrer),
		Timestamp: time.Now(),
	}
	if err := h.store.RecordVisit(visit); err != nil {
		h.log.Warn().Err(err).Msg("record visit failed")
	}
	return c.NoContent(http.StatusNoContent)
}

// Summary answers aggregated stats as JSON. Periods: 1d, 7d (default), 30d.
func (h *Handler) Summary(c echo.Context) error {
	period := c.QueryParam("period")
	var since time.Time
	switch period {
	case "1d":
		since = time.Now().AddDate(0, 0, -1)
	case "30d":
		since = time.Now().AddDate(0, 0, -30)
	default:
		period = "7d"
		since = time.Now().AddDate(0, 0, -7)
	}
	sum, err := h.store.Summarize(since, period)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sum)
}

// hitLimiter caps recorded hits per IP per window so a stuck tab or a script
// cannot flood the visits table.
type hitLimiter struct {
	mu     sync.Mutex
	hits   map[string][]time.Time
	max    int
	window time.Duration
}

func newHitLimiter(max int, window time.Duration) *hitLimiter {
	l := &hitLimiter{
		hits:   make(map[string][]time.Time),
		max:    max,
		window: window,
	}
	go l.cleanup()
	return l
}

// cleanup evicts clients with no hits inside the window, so the map does not
// grow with every IP ever seen.
func (l *hitLimiter) cleanup() {
	ticker := time.NewTicker(l.window)
	for range ticker.C {
		cutoff := time.Now().Add(-l.window)
		l.mu.Lock()
		for ip, hits := range l.hits {
			kept := hits[:0]
			for _, t := range hits {
				if t.After(cutoff) {
					kept = append(kept, t)
				}
			}
			if len(kept) == 0 {
				delete(l.hits, ip)
			} else {
				l.hits[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

func (l *hitLimiter) allow(ip string) bool {
	now := time.Now()
	cutoff := now.Add(-l.window)

	l.mu.Lock()
	defer l.mu.Unlock()

	kept := l.hits[ip][:0]
	for _, t := range l.hits[ip] {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.max {
		l.hits[ip] = kept
		return false
	}
	l.hits[ip] = append(kept, now)
	return true
}
