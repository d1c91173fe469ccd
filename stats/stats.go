// Package stats provides privacy-first page view counting. No cookies, no
// raw IP storage: visitors are identified by a salted hash of IP and
// User-Agent, with the salt generated per installation.
package stats

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
	"strings"
	"time"
)

var referrerDomain = regexp.MustCompile(`^https?://(?:www\.)?([^/]+)`)

// Visit is a single recorded page view.
type Visit struct {
	ID        int64     `json:"-"`
	VisitorID string    `json:"visitor_id"`
	Browser   string    `json:"browser"`
	OS        string    `json:"os"`
	Device    string    `json:"device"`
	Path      string    `json:"path"`
	Referrer  string    `json:"referrer"`
	Timestamp time.Time `json:"timestamp"`
}

// HitRequest is the beacon payload sent from the client.
type HitRequest struct {
	Path     string `json:"path"`
	Referrer string `json:"referrer"`
}

// Summary holds aggregated page view data for one period.
type Summary struct {
	Period         string      `json:"period"`
	UniqueVisitors int         `json:"unique_visitors"`
	TotalViews     int         `json:"total_views"`
	TopPages       []PageStat  `json:"top_pages"`
	DailyViews     []DailyView `json:"daily_views"`
}

// PageStat is the view count for one path.
type PageStat struct {
	Path  string `json:"path"`
	Views int    `json:"views"`
}

// DailyView is the view count for one day.
type DailyView struct {
	Date  string `json:"date"`
	Views int    `json:"views"`
}

// visitorID derives the anonymous visitor fingerprint from the salted IP and
// User-Agent.
func visitorID(salt, ip, userAgent string) string {
	h := sha256.New()
	h.Write([]byte(salt + ip + "|" + userAgent))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// parseUserAgent extracts browser, OS, and device class from a User-Agent.
func parseUserAgent(ua string) (browser, os, device string) {
	ua = strings.ToLower(ua)

	// More specific patterns first: Chrome UAs also contain "safari",
	// Edge UAs contain "chrome".
	switch {
	case strings.Contains(ua, "firefox"):
		browser = "Firefox"
	case strings.Contains(ua, "opera") || strings.Contains(ua, "opr"):
		browser = "Opera"
	case strings.Contains(ua, "edg"):
		browser = "Edge"
	case strings.Contains(ua, "chrome"):
		browser = "Chrome"
	case strings.Contains(ua, "safari"):
		browser = "Safari"
	default:
		browser = "Other"
	}

	// Android before Linux since Android UAs contain "linux".
	switch {
	case strings.Contains(ua, "windows"):
		os = "Windows"
	case strings.Contains(ua, "android"):
		os = "Android"
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		os = "iOS"
	case strings.Contains(ua, "macintosh") || strings.Contains(ua, "mac os"):
		os = "macOS"
	case strings.Contains(ua, "linux"):
		os = "Linux"
	default:
		os = "Other"
	}

	// iPad UAs contain "mobile", so tablet wins.
	switch {
	case strings.Contains(ua, "tablet") || strings.Contains(ua, "ipad"):
		device = "Tablet"
	case strings.Contains(ua, "mobile"):
		device = "Mobile"
	default:
		device = "Desktop"
	}

	return
}

// isBot reports whether the User-Agent looks like a crawler. Bot hits are
// dropped instead of counted.
func isBot(ua string) bool {
	ua = strings.ToLower(ua)
	for _, marker := range []string{
		"bot", "crawler", "spider", "crawl", "slurp", "scrape",
		"facebookexternalhit", "yandex", "baidu",
	} {
		if strings.Contains(ua, marker) {
			return true
		}
	}
	return false
}

// cleanReferrer reduces a referrer URL to a readable source name.
func cleanReferrer(ref string) string {
	if ref == "" {
		return "Direct"
	}
	lower := strings.ToLower(ref)
	for marker, name := range map[string]string{
		"google.":     "Google",
		"bing.":       "Bing",
		"duckduckgo.": "DuckDuckGo",
		"github.":     "GitHub",
	} {
		if strings.Contains(lower, marker) {
			return name
		}
	}
	matches := referrerDomain.FindStringSubmatch(ref)
	if len(matches) > 1 {
		return matches[1]
	}
	return "Other"
}
