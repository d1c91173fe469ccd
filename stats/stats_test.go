package stats

import (
	"testing"
	"time"
)

func TestVisitorIDDeterministic(t *testing.T) {
	a := visitorID("salt", "192.0.2.1", "Mozilla/5.0")
	b := visitorID("salt", "192.0.2.1", "Mozilla/5.0")
	if a != b {
		t.Errorf("same inputs produced different IDs: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Errorf("visitor ID length = %d, want 16", len(a))
	}
}

func TestVisitorIDSensitivity(t *testing.T) {
	base := visitorID("salt", "192.0.2.1", "Mozilla/5.0")
	if visitorID("other", "192.0.2.1", "Mozilla/5.0") == base {
		t.Error("different salt should change the ID")
	}
	if visitorID("salt", "192.0.2.2", "Mozilla/5.0") == base {
		t.Error("different IP should change the ID")
	}
	if visitorID("salt", "192.0.2.1", "curl/8.0") == base {
		t.Error("different User-Agent should change the ID")
	}
}

func TestParseUserAgent(t *testing.T) {
	tests := []struct {
		ua      string
		browser string
		os      string
		device  string
	}{
		{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36",
			"Chrome", "Windows", "Desktop",
		},
		{
			"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Safari/537.36 Edg/120.0",
			"Edge", "Windows", "Desktop",
		},
		{
			"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Safari/605.1.15",
			"Safari", "macOS", "Desktop",
		},
		{
			"Mozilla/5.0 (X11; Linux x86_64; rv:120.0) Gecko/20100101 Firefox/120.0",
			"Firefox", "Linux", "Desktop",
		},
		{
			"Mozilla/5.0 (Linux; Android 14; Pixel 8) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0 Mobile Safari/537.36",
			"Chrome", "Android", "Mobile",
		},
		{
			"Mozilla/5.0 (iPad; CPU OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1",
			"Safari", "iOS", "Tablet",
		},
		{"curl/8.4.0", "Other", "Other", "Desktop"},
	}
	for _, tt := range tests {
		browser, os, device := parseUserAgent(tt.ua)
		if browser != tt.browser || os != tt.os || device != tt.device {
			t.Errorf("parseUserAgent(%q) = (%s, %s, %s), want (%s, %s, %s)",
				tt.ua, browser, os, device, tt.browser, tt.os, tt.device)
		}
	}
}

func TestIsBot(t *testing.T) {
	bots := []string{
		"Mozilla/5.0 (compatible; Googlebot/2.1; +http://www.google.com/bot.html)",
		"Mozilla/5.0 (compatible; bingbot/2.0)",
		"facebookexternalhit/1.1",
		"Mozilla/5.0 (compatible; YandexBot/3.0)",
		"some-crawler/1.0",
	}
	for _, ua := range bots {
		if !isBot(ua) {
			t.Errorf("isBot(%q) = false, want true", ua)
		}
	}

	humans := []string{
		"Mozilla/5.0 (Windows NT 10.0) Chrome/120.0",
		"Mozilla/5.0 (iPhone; CPU iPhone OS 17_0) Safari/604.1",
	}
	for _, ua := range humans {
		if isBot(ua) {
			t.Errorf("isBot(%q) = true, want false", ua)
		}
	}
}

func TestCleanReferrer(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{"", "Direct"},
		{"https://www.google.com/search?q=go", "Google"},
		{"https://duckduckgo.com/", "DuckDuckGo"},
		{"https://github.com/someone/repo", "GitHub"},
		{"https://www.example.org/page", "example.org"},
		{"https://news.ycombinator.com/item?id=1", "news.ycombinator.com"},
		{"not a url", "Other"},
	}
	for _, tt := range tests {
		if got := cleanReferrer(tt.ref); got != tt.want {
			t.Errorf("cleanReferrer(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestHitLimiter(t *testing.T) {
	l := newHitLimiter(2, time.Minute)
	ip := "192.0.2.1"

	if !l.allow(ip) || !l.allow(ip) {
		t.Fatal("first two hits should be allowed")
	}
	if l.allow(ip) {
		t.Error("third hit inside window should be blocked")
	}
	if !l.allow("192.0.2.2") {
		t.Error("other IP should not be affected")
	}
}

func TestHitLimiterEvictsIdleClients(t *testing.T) {
	l := newHitLimiter(5, 10*time.Millisecond)
	l.allow("192.0.2.1")
	l.allow("192.0.2.2")

	time.Sleep(50 * time.Millisecond)

	l.mu.Lock()
	entries := len(l.hits)
	l.mu.Unlock()
	if entries != 0 {
		t.Errorf("%d idle client entries still tracked, want 0", entries)
	}
}

func TestHitLimiterWindowExpiry(t *testing.T) {
	l := newHitLimiter(1, 10*time.Millisecond)
	if !l.allow("192.0.2.1") {
		t.Fatal("first hit should be allowed")
	}
	if l.allow("192.0.2.1") {
		t.Fatal("second hit inside window should be blocked")
	}
	time.Sleep(20 * time.Millisecond)
	if !l.allow("192.0.2.1") {
		t.Error("hit after window should be allowed")
	}
}
