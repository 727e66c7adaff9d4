package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/seoaudit/pipeline/config"
	"github.com/seoaudit/pipeline/models"
	"github.com/seoaudit/pipeline/services"
)

// HandleRunEvents handles GET /runs/{id}/events, streaming a run's
// crawl and stage events over a websocket. Adapted from the teacher's
// HandleWebSocket: a temporary RabbitMQ queue per connection, bound to
// this run's routing keys, replacing the job-only routing keys with
// CreateRunQueue's crawl+stage pair.
func HandleRunEvents(w http.ResponseWriter, r *http.Request) {
	runID := mux.Vars(r)["id"]

	conn, err := config.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	queueName, err := services.CreateRunQueue(runID)
	if err != nil {
		conn.WriteJSON(models.WebSocketMessage{Type: "error", JobID: runID, Error: "failed to create event queue", Timestamp: time.Now()})
		return
	}

	if err := conn.WriteJSON(models.WebSocketMessage{Type: "connected", JobID: runID, Progress: "connected to live updates", Timestamp: time.Now()}); err != nil {
		return
	}

	eventChan := make(chan models.CrawlEvent, 100)
	stopChan := make(chan bool, 1)

	if err := services.ConsumeRunEvents(queueName, eventChan, stopChan); err != nil {
		conn.WriteJSON(models.WebSocketMessage{Type: "error", JobID: runID, Error: "failed to start event consumption", Timestamp: time.Now()})
		return
	}

	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				stopChan <- true
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-eventChan:
			if !ok {
				return
			}
			msg := models.WebSocketMessage{
				Type:      event.Type,
				JobID:     event.JobID,
				URL:       event.URL,
				Depth:     event.Depth,
				Progress:  event.Progress,
				Timestamp: event.Timestamp,
				Total:     event.Total,
				PageCount: event.PageCount,
				Error:     event.Error,
				Tier:      event.Tier,
			}
			if err := conn.WriteJSON(msg); err != nil {
				stopChan <- true
				return
			}
		case <-stopChan:
			return
		}
	}
}
