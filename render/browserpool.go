package render

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// BrowserInstance wraps one headless Chrome instance, matching the
// teacher's services/browserpool.go shape.
type BrowserInstance struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
	inUse    bool
}

// BrowserPool bounds concurrent headless renders, adapted near-verbatim
// from the teacher's services/browserpool.go (Get/Release/Shutdown,
// chromium launch flags), generalized to spec §4.5's pool-size-3 default
// and crash-restart policy (a crashed browser is discarded and replaced,
// not returned to the pool).
type BrowserPool struct {
	mu        sync.Mutex
	instances []*BrowserInstance
	size      int
	binPath   string
}

// NewBrowserPool builds a pool of size headless Chrome instances (spec
// default 3), lazily launched on first Get.
func NewBrowserPool(size int, chromiumBinPath string) *BrowserPool {
	if size <= 0 {
		size = 3
	}
	return &BrowserPool{size: size, binPath: chromiumBinPath}
}

func (p *BrowserPool) createBrowser() (*BrowserInstance, error) {
	l := launcher.New().
		Headless(true).
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu")
	if p.binPath != "" {
		l = l.Bin(p.binPath)
	}
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("render: launch chromium: %w", err)
	}
	b := rod.New().ControlURL(url)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("render: connect to chromium: %w", err)
	}
	return &BrowserInstance{browser: b, launcher: l}, nil
}

// Get returns an idle browser instance, launching a new one if the pool
// hasn't reached its size cap yet, or blocking-via-retry otherwise. This
// keeps the teacher's lazy-pool-growth shape rather than pre-warming all
// instances at startup.
func (p *BrowserPool) Get(ctx context.Context) (*BrowserInstance, error) {
	for {
		p.mu.Lock()
		for _, inst := range p.instances {
			if !inst.inUse {
				inst.inUse = true
				p.mu.Unlock()
				return inst, nil
			}
		}
		if len(p.instances) < p.size {
			p.mu.Unlock()
			inst, err := p.createBrowser()
			if err != nil {
				return nil, err
			}
			inst.inUse = true
			p.mu.Lock()
			p.instances = append(p.instances, inst)
			p.mu.Unlock()
			return inst, nil
		}
		p.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}
}

// Release returns inst to the pool. If crashed is true (the renderer
// panicked or the underlying process died), the instance is discarded
// instead — a fresh one is launched on the next Get — implementing the
// RendererCrash recovery spec §7 requires.
func (p *BrowserPool) Release(inst *BrowserInstance, crashed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !crashed {
		inst.inUse = false
		return
	}

	log.Printf("🔥 [RENDER POOL] browser crashed, discarding instance")
	for i, existing := range p.instances {
		if existing == inst {
			p.instances = append(p.instances[:i], p.instances[i+1:]...)
			break
		}
	}
	_ = inst.browser.Close()
	if inst.launcher != nil {
		inst.launcher.Cleanup()
	}
}

// Shutdown closes every browser in the pool.
func (p *BrowserPool) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, inst := range p.instances {
		_ = inst.browser.Close()
		if inst.launcher != nil {
			inst.launcher.Cleanup()
		}
	}
	p.instances = nil
}

// Renderer is the C5 JS-rendering contract the crawl worker pool depends
// on, kept narrow so a fake can stand in for it in tests.
type Renderer interface {
	Render(ctx context.Context, url string, timeout time.Duration) (html string, err error)
}

// PooledRenderer implements Renderer over a BrowserPool.
type PooledRenderer struct {
	pool *BrowserPool
}

// NewPooledRenderer wraps pool as a Renderer.
func NewPooledRenderer(pool *BrowserPool) *PooledRenderer {
	return &PooledRenderer{pool: pool}
}

// Render navigates to url in a pooled browser, waits for the page's load
// event (it does not wait for the network to go idle), scrolls and pauses
// 300ms to trigger lazy-loaded content (matching the teacher's
// tryJSDOMRendering sequence) and returns the resulting DOM's HTML.
func (r *PooledRenderer) Render(ctx context.Context, url string, timeout time.Duration) (html string, err error) {
	inst, err := r.pool.Get(ctx)
	if err != nil {
		return "", err
	}
	crashed := false
	defer func() {
		if rec := recover(); rec != nil {
			crashed = true
			err = fmt.Errorf("render: panic rendering %s: %v", url, rec)
		}
		r.pool.Release(inst, crashed)
	}()

	page := inst.browser.Timeout(timeout).MustPage()
	defer page.Close()

	if navErr := page.Navigate(url); navErr != nil {
		crashed = true
		return "", fmt.Errorf("render: navigate %s: %w", url, navErr)
	}
	if waitErr := page.WaitLoad(); waitErr != nil {
		return "", fmt.Errorf("render: wait load %s: %w", url, waitErr)
	}
	// Scroll to trigger lazy-loaded content, matching tryJSDOMRendering.
	_ = page.Mouse.Scroll(0, 2000, 1)
	time.Sleep(300 * time.Millisecond)

	html, err = page.HTML()
	if err != nil {
		return "", fmt.Errorf("render: extract html %s: %w", url, err)
	}
	return html, nil
}
