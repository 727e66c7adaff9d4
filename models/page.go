package models

import "time"

// PageRecord is the normalized record of one fetched page (spec §4.2),
// field set grounded on original_source/backend/app/services/audit_engine.py's
// CrawlData dataclass and the teacher's content_helpers.go extraction.
type PageRecord struct {
	URL             string            `json:"url" bson:"url"`
	FinalURL        string            `json:"final_url" bson:"final_url"`
	StatusCode      int               `json:"status_code" bson:"status_code"`
	FetchedAt       time.Time         `json:"fetched_at" bson:"fetched_at"`
	Depth           int               `json:"depth" bson:"depth"`
	Rendered        bool              `json:"rendered" bson:"rendered"`
	ContentType     string            `json:"content_type" bson:"content_type"`

	Title             string   `json:"title" bson:"title"`
	TitleLength       int      `json:"title_length" bson:"title_length"`
	MetaDescription   string   `json:"meta_description" bson:"meta_description"`
	MetaDescLength    int      `json:"meta_description_length" bson:"meta_description_length"`
	H1                []string `json:"h1" bson:"h1"`
	H1Count           int      `json:"h1_count" bson:"h1_count"`
	HeadingOrder      []string `json:"heading_order" bson:"heading_order"` // e.g. ["h1","h2","h2","h3"]
	CanonicalURL      string   `json:"canonical_url" bson:"canonical_url"`
	ViewportMeta      bool     `json:"viewport_meta" bson:"viewport_meta"`
	CharsetDeclared   bool     `json:"charset_declared" bson:"charset_declared"`
	Lang              string   `json:"lang" bson:"lang"`
	HasStructuredData bool     `json:"has_structured_data" bson:"has_structured_data"`
	StructuredTypes   []string `json:"structured_types,omitempty" bson:"structured_types,omitempty"`
	OpenGraph         map[string]string `json:"open_graph,omitempty" bson:"open_graph,omitempty"`
	TwitterCard       map[string]string `json:"twitter_card,omitempty" bson:"twitter_card,omitempty"`
	Hreflang          map[string]string `json:"hreflang,omitempty" bson:"hreflang,omitempty"`

	RobotsNoIndex  bool `json:"robots_noindex" bson:"robots_noindex"`
	RobotsNoFollow bool `json:"robots_nofollow" bson:"robots_nofollow"`

	InternalLinks int `json:"internal_links" bson:"internal_links"`
	ExternalLinks int `json:"external_links" bson:"external_links"`
	TotalLinks    int `json:"total_links" bson:"total_links"`

	ImagesTotal       int `json:"images_total" bson:"images_total"`
	ImagesWithoutAlt  int `json:"images_without_alt" bson:"images_without_alt"`
	Images            []ImageRecord `json:"images,omitempty" bson:"images,omitempty"`

	WordCount       int    `json:"word_count" bson:"word_count"`
	TextContent     string `json:"text_content,omitempty" bson:"text_content,omitempty"`
	TextContentHash string `json:"text_content_hash" bson:"text_content_hash"` // blake3, 128-bit

	ResponseHeaders map[string]string `json:"response_headers,omitempty" bson:"response_headers,omitempty"`
	// RedirectStatus is the status code of the first redirect hop seen
	// while fetching this URL (0 if none), captured via a RoundTripper so
	// the 301-vs-302 distinction survives the HTTP client auto-following
	// the chain to its final destination.
	RedirectStatus int `json:"redirect_status,omitempty" bson:"redirect_status,omitempty"`

	ViewportContent        string `json:"viewport_content,omitempty" bson:"viewport_content,omitempty"`
	InternalNofollowLinks  int    `json:"internal_nofollow_links" bson:"internal_nofollow_links"`
	StructuredDataErrors   int    `json:"structured_data_errors" bson:"structured_data_errors"`
	HasPluginContent       bool   `json:"has_plugin_content" bson:"has_plugin_content"`

	FetchErrorKind string `json:"fetch_error_kind,omitempty" bson:"fetch_error_kind,omitempty"`
	FetchError     string `json:"fetch_error,omitempty" bson:"fetch_error,omitempty"`
}

// ImageRecord is one <img> found on a page (spec §3's images[] contract),
// width/height parsed straight from the static HTML attributes rather
// than the rendered layout box.
type ImageRecord struct {
	URL    string `json:"url" bson:"url"`
	Alt    string `json:"alt,omitempty" bson:"alt,omitempty"`
	Width  int    `json:"width,omitempty" bson:"width,omitempty"`
	Height int    `json:"height,omitempty" bson:"height,omitempty"`
}
