package models

import (
	"time"
)

// CrawlEvent represents an event published to RabbitMQ
type CrawlEvent struct {
	Type       string    `json:"type"`           // "progress", "url_discovered", "completed", "error", "sitemap_discovered", "tier_switch"
	JobID      string    `json:"job_id"`
	URL        string    `json:"url,omitempty"`
	Depth      int       `json:"depth,omitempty"`
	Progress   string    `json:"progress,omitempty"`   // Human-readable progress message
	Timestamp  time.Time `json:"timestamp"`
	Total      int       `json:"total,omitempty"`      // Total URLs found so far
	PageCount  int       `json:"page_count,omitempty"` // Total pages crawled
	Error      string    `json:"error,omitempty"`
	Tier       string    `json:"tier,omitempty"`       // "sitemap", "html", "headless"
}

// StageEvent reports run-level progress (C16): the HTTP dispatcher
// publishes one when a run starts, one when it completes, and one when
// it fails, alongside CrawlEvents on the same bus so a single websocket
// stream shows crawl-level and run-level progress together.
type StageEvent struct {
	Type      string        `json:"type"` // "stage_started", "stage_completed", "stage_failed"
	RunID     string        `json:"run_id"`
	Stage     string        `json:"stage"` // "crawl" (started), "report" (completed), "pipeline" or "persist" (failed)
	Duration  time.Duration `json:"duration,omitempty"`
	Error     string        `json:"error,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// WebSocketMessage represents a real-time update message sent to WebSocket clients
type WebSocketMessage struct {
	Type      string    `json:"type"`             // "progress", "url_discovered", "completed", "connected", "error", "sitemap_discovered", "tier_switch"
	JobID     string    `json:"job_id"`
	URL       string    `json:"url,omitempty"`
	Depth     int       `json:"depth,omitempty"`
	Progress  string    `json:"progress,omitempty"`   // Human-readable progress message
	Timestamp time.Time `json:"timestamp"`
	Total     int       `json:"total,omitempty"`      // Total URLs found
	PageCount int       `json:"page_count,omitempty"` // Total pages crawled
	Error     string    `json:"error,omitempty"`
	Tier      string    `json:"tier,omitempty"`       // "sitemap", "html", "headless"
}