package crawl

import (
	"context"
	"log"
	"runtime"
	"sync"
	"time"

	"github.com/seoaudit/pipeline/extract"
	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/render"
	"github.com/temoto/robotstxt"
)

// calculateOptimalWorkers sizes the pool from the configured worker count,
// bounded the way the teacher's services/workerpool.go
// calculateOptimalWorkers bounds its content-scrape pool (floor of 1,
// ceiling of 4x CPU cores) — generalized from that function's
// memory/CPU heuristic to a simpler CPU-only bound since the crawl pool's
// bottleneck is network latency, not local compute.
func calculateOptimalWorkers(requested int) int {
	if requested <= 0 {
		requested = 10
	}
	ceiling := runtime.NumCPU() * 4
	if ceiling < 4 {
		ceiling = 4
	}
	if requested > ceiling {
		return ceiling
	}
	return requested
}

// EventPublisher is the narrow slice of the job dispatcher's event bus the
// pool needs, matching the teacher's PublishCrawlEvent call shape.
type EventPublisher interface {
	Publish(models.CrawlEvent)
}

// Pool is the C9 crawl worker pool: N goroutines draining a shared
// Frontier, each running fetch -> (maybe render) -> extract -> enqueue.
// Adapted from the teacher's services/workerpool.go Job/JobResult
// dispatch pattern, repurposed from content-scrape jobs to crawl jobs.
type Pool struct {
	cfg       models.CrawlConfig
	frontier  *Frontier
	pacer     *Pacer
	fetcher   *Fetcher
	renderer  render.Renderer
	robots    *robotstxt.RobotsData
	publisher EventPublisher
	runID     string

	mu    sync.Mutex
	pages []models.PageRecord
	edges []models.LinkEdge
	stats models.CrawlStats
}

// NewPool wires the components C9 depends on. robots may be nil if the
// caller chose not to respect robots.txt (CrawlConfig.RespectRobots=false).
func NewPool(cfg models.CrawlConfig, runID string, frontier *Frontier, pacer *Pacer, fetcher *Fetcher, renderer render.Renderer, robots *robotstxt.RobotsData, publisher EventPublisher) *Pool {
	return &Pool{
		cfg:       cfg,
		frontier:  frontier,
		pacer:     pacer,
		fetcher:   fetcher,
		renderer:  renderer,
		robots:    robots,
		publisher: publisher,
		runID:     runID,
	}
}

// Run seeds the frontier with cfg.SeedURL and drains it with
// calculateOptimalWorkers(cfg.Workers) goroutines until the frontier is
// empty or the context is cancelled (spec §4.9's bounded worker pool).
func (p *Pool) Run(ctx context.Context) (models.CrawlArtifact, error) {
	started := time.Now()

	seed, err := models.ParseURL(p.cfg.SeedURL)
	if err != nil {
		return models.CrawlArtifact{}, err
	}
	p.frontier.Push(seed, 0)

	workers := calculateOptimalWorkers(p.cfg.Workers)
	var wg sync.WaitGroup
	idle := make(chan struct{}, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			p.worker(ctx, workerID, idle, workers)
		}(i)
	}
	wg.Wait()

	artifact := models.CrawlArtifact{
		RunID:      p.runID,
		SeedURL:    p.cfg.SeedURL,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Pages:      p.pages,
		Edges:      p.edges,
		Stats:      p.stats,
	}
	return artifact, nil
}

// worker repeatedly pops from the frontier until it's been empty long
// enough that every worker agrees there's nothing left (idle handshake),
// or the context is done.
func (p *Pool) worker(ctx context.Context, workerID int, idle chan struct{}, totalWorkers int) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		u, depth, ok := p.frontier.Pop()
		if !ok {
			idle <- struct{}{}
			if len(idle) >= totalWorkers {
				return
			}
			select {
			case <-ctx.Done():
				return
			case <-time.After(50 * time.Millisecond):
			}
			<-idle
			continue
		}

		if p.cfg.MaxDepth > 0 && depth > p.cfg.MaxDepth {
			continue
		}
		if p.robots != nil && !Allowed(p.robots, p.cfg.UserAgent, u.Path) {
			p.frontier.Visited(u)
			continue
		}

		p.publish(models.CrawlEvent{Type: "progress", JobID: p.runID, URL: u.String(), Depth: depth, Timestamp: time.Now()})
		log.Printf("🕷️  [worker %d] fetching (depth %d): %s", workerID, depth, u.String())

		page, links, anchors := p.visit(u, depth)

		p.mu.Lock()
		p.pages = append(p.pages, page)
		p.stats.PagesVisited++
		for _, l := range links {
			p.edges = append(p.edges, models.LinkEdge{From: u.String(), To: l.String(), Anchor: anchors[l.String()]})
		}
		p.mu.Unlock()

		success := page.StatusCode >= 200 && page.StatusCode < 400 && page.FetchErrorKind == ""
		delay := p.pacer.Next(success)
		time.Sleep(delay)

		if p.cfg.MaxDepth == 0 || depth < p.cfg.MaxDepth {
			for _, l := range links {
				p.frontier.Push(l, depth+1)
			}
		}
	}
}

func (p *Pool) visit(u models.Url, depth int) (models.PageRecord, []models.Url, map[string]string) {
	result := p.fetcher.Fetch(u.String())
	if result.Err != nil {
		p.mu.Lock()
		p.stats.Errors++
		p.mu.Unlock()
		return models.PageRecord{
			URL:            u.String(),
			FinalURL:       u.String(),
			StatusCode:     result.StatusCode,
			Depth:          depth,
			FetchedAt:      time.Now(),
			FetchErrorKind: string(result.ErrorKind),
			FetchError:     result.Err.Error(),
		}, nil, nil
	}

	html := result.Body
	rendered := false
	x := extract.NewExtractor()
	staticRec, _, _, _ := x.ExtractWithAnchors(u.String(), html)

	if p.renderer != nil && render.ShouldRender(html, staticRec.WordCount) {
		renderCtx, cancel := context.WithTimeout(context.Background(), p.cfg.RequestTimeout)
		renderedHTML, err := p.renderer.Render(renderCtx, u.String(), p.cfg.RequestTimeout)
		cancel()
		if err == nil && renderedHTML != "" {
			html = renderedHTML
			rendered = true
			p.mu.Lock()
			p.stats.RenderedPages++
			p.mu.Unlock()
		} else if err != nil {
			p.mu.Lock()
			p.stats.RendererCrashes++
			p.mu.Unlock()
			log.Printf("⚠️  [render] falling back to static HTML for %s: %v", u.String(), err)
		}
	}

	rec, links, anchors, err := x.ExtractWithAnchors(u.String(), html)
	if err != nil {
		p.mu.Lock()
		p.stats.Errors++
		p.mu.Unlock()
		return models.PageRecord{
			URL: u.String(), FinalURL: result.FinalURL, StatusCode: result.StatusCode,
			Depth: depth, FetchedAt: time.Now(), FetchErrorKind: "parse_failure", FetchError: err.Error(),
		}, nil, nil
	}

	rec.FinalURL = result.FinalURL
	rec.StatusCode = result.StatusCode
	rec.ContentType = result.ContentType
	rec.ResponseHeaders = result.Headers
	rec.RedirectStatus = result.RedirectStatus
	rec.Depth = depth
	rec.FetchedAt = time.Now()
	rec.Rendered = rendered

	return rec, links, anchors
}

func (p *Pool) publish(evt models.CrawlEvent) {
	if p.publisher == nil {
		return
	}
	p.publisher.Publish(evt)
}
