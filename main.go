package main

import "github.com/seoaudit/pipeline/config"

// The dispatcher binary: a thin HTTP server around the audit pipeline,
// configured entirely from the environment (see config.Load). Batch
// audits with full control over crawl/report options belong to the
// seoaudit CLI under cmd/seoaudit instead.
func main() {
	StartAPIServer(config.Load())
}
