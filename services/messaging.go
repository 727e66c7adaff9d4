package services

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"github.com/seoaudit/pipeline/config"
	"github.com/seoaudit/pipeline/models"
)

var messagingLog = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Str("component", "messaging").Logger()

// InitRabbitMQ connects to rabbitURL and declares the exchange every run's
// events publish onto, exactly as the teacher's InitRabbitMQ did — only
// the exchange name and routing-key namespace below move from "crawler"
// to "seoaudit".
func InitRabbitMQ(rabbitURL string) error {
	var err error

	config.RabbitConnection, err = amqp.Dial(rabbitURL)
	if err != nil {
		return fmt.Errorf("dial rabbitmq: %w", err)
	}

	config.RabbitChannel, err = config.RabbitConnection.Channel()
	if err != nil {
		return fmt.Errorf("open channel: %w", err)
	}

	err = config.RabbitChannel.ExchangeDeclare(
		config.ExchangeName,
		"topic",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	messagingLog.Info().Str("url", rabbitURL).Msg("connected to rabbitmq")
	return nil
}

// CreateRunQueue creates a temporary queue bound to the run's crawl- and
// stage-event routing keys, renamed from CreateJobQueue now that a "job"
// is a pipeline Run rather than a bare crawl.
func CreateRunQueue(runID string) (string, error) {
	if config.RabbitChannel == nil {
		return "", fmt.Errorf("rabbitmq not connected")
	}

	if config.RabbitChannel.IsClosed() {
		messagingLog.Warn().Msg("channel closed, reconnecting")
		var err error
		config.RabbitChannel, err = config.RabbitConnection.Channel()
		if err != nil {
			return "", fmt.Errorf("recreate channel: %w", err)
		}
	}

	queueName := fmt.Sprintf("seoaudit_ws_%s_%d", runID, time.Now().UnixNano())

	queue, err := config.RabbitChannel.QueueDeclare(
		queueName,
		false,
		true,
		true,
		false,
		amqp.Table{
			"x-message-ttl": int32(3600000),
		},
	)
	if err != nil {
		return "", fmt.Errorf("declare queue: %w", err)
	}

	routingKeys := []string{
		fmt.Sprintf("seoaudit.%s.crawl.*", runID),
		fmt.Sprintf("seoaudit.%s.stage.*", runID),
	}
	for _, routingKey := range routingKeys {
		if err := config.RabbitChannel.QueueBind(queue.Name, routingKey, config.ExchangeName, false, nil); err != nil {
			return "", fmt.Errorf("bind %s: %w", routingKey, err)
		}
	}

	return queue.Name, nil
}

// ConsumeRunEvents streams a run's crawl events from queueName into
// eventChan until stopChan closes, the same ack/nack/requeue pattern the
// teacher's ConsumeJobEvents used.
func ConsumeRunEvents(queueName string, eventChan chan<- models.CrawlEvent, stopChan <-chan bool) error {
	if config.RabbitChannel == nil {
		return fmt.Errorf("rabbitmq not connected")
	}

	if config.RabbitChannel.IsClosed() {
		messagingLog.Warn().Msg("channel closed, reconnecting")
		var err error
		config.RabbitChannel, err = config.RabbitConnection.Channel()
		if err != nil {
			return fmt.Errorf("recreate channel: %w", err)
		}
	}

	msgs, err := config.RabbitChannel.Consume(queueName, "", false, true, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", queueName, err)
	}

	go func() {
		defer close(eventChan)

		for {
			select {
			case <-stopChan:
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var event models.CrawlEvent
				if err := json.Unmarshal(msg.Body, &event); err != nil {
					messagingLog.Warn().Err(err).Msg("failed to unmarshal event")
					msg.Nack(false, false)
					continue
				}

				select {
				case eventChan <- event:
					msg.Ack(false)
				case <-stopChan:
					msg.Nack(false, true)
					return
				}
			}
		}
	}()

	return nil
}

// PublishCrawlEvent fire-and-forgets evt onto the exchange under
// seoaudit.{run_id}.crawl.{type}, mirroring the teacher's
// PublishCrawlEvent routing-key shape.
func PublishCrawlEvent(evt models.CrawlEvent) {
	publish(fmt.Sprintf("seoaudit.%s.crawl.%s", evt.JobID, evt.Type), evt)
}

// PublishStageEvent fire-and-forgets evt onto
// seoaudit.{run_id}.stage.{stage}, the pipeline-orchestrator counterpart
// to PublishCrawlEvent that the teacher had no equivalent for — added so
// RunID-scoped websocket subscribers see stage transitions alongside
// crawl progress on the one queue CreateRunQueue binds.
func PublishStageEvent(evt models.StageEvent) {
	publish(fmt.Sprintf("seoaudit.%s.stage.%s", evt.RunID, evt.Stage), evt)
}

func publish(routingKey string, payload any) {
	if config.RabbitChannel == nil || config.RabbitChannel.IsClosed() {
		return
	}

	body, err := json.Marshal(payload)
	if err != nil {
		messagingLog.Warn().Err(err).Msg("failed to marshal event")
		return
	}

	go func() {
		err := config.RabbitChannel.Publish(
			config.ExchangeName,
			routingKey,
			false,
			false,
			amqp.Publishing{
				ContentType:  "application/json",
				Body:         body,
				Timestamp:    time.Now(),
				DeliveryMode: amqp.Persistent,
			},
		)
		if err != nil {
			messagingLog.Warn().Err(err).Str("routing_key", routingKey).Msg("failed to publish event")
		}
	}()
}

// CloseRabbitMQ releases the channel and connection on shutdown.
func CloseRabbitMQ() {
	if config.RabbitChannel != nil {
		config.RabbitChannel.Close()
	}
	if config.RabbitConnection != nil {
		config.RabbitConnection.Close()
	}
}
