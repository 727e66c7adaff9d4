package crawl

import (
	"github.com/rs/zerolog"
	"github.com/seoaudit/pipeline/models"
)

// FuncEventPublisher adapts a plain function into an EventPublisher, so
// the HTTP dispatcher can forward crawl events to services.PublishCrawlEvent
// (a message broker) without crawl importing services back.
type FuncEventPublisher func(models.CrawlEvent)

func (f FuncEventPublisher) Publish(evt models.CrawlEvent) { f(evt) }


// LogEventPublisher is the default EventPublisher for CLI runs where no
// message broker is wired: it logs each CrawlEvent at debug level
// instead of dropping it, replacing the teacher's RabbitMQ
// PublishCrawlEvent call with a structured zerolog line.
type LogEventPublisher struct {
	Logger zerolog.Logger
}

func (p LogEventPublisher) Publish(evt models.CrawlEvent) {
	p.Logger.Debug().
		Str("type", evt.Type).
		Str("url", evt.URL).
		Int("depth", evt.Depth).
		Int("page_count", evt.PageCount).
		Str("error", evt.Error).
		Msg("crawl event")
}
