package worker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"hri-companion/internal/model"
	"hri-companion/internal/store"
)

// PromptRelayWorker consumes session events and forwards the generated
// prompt to the robot's webhook so the device can speak it without polling.
type PromptRelayWorker struct {
	conn       *amqp.Connection
	queueName  string
	webhookURL string
	httpClient *http.Client

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewPromptRelayWorker(conn *amqp.Connection, queueName, webhookURL string) *PromptRelayWorker {
	return &PromptRelayWorker{
		conn:       conn,
		queueName:  queueName,
		webhookURL: webhookURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (w *PromptRelayWorker) Start(ctx context.Context) error {
	if w.cancel != nil {
		return nil
	}

	workerCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	ch, err := w.conn.Channel()
	if err != nil {
		cancel()
		return fmt.Errorf("open worker channel failed: %w", err)
	}

	_, err = ch.QueueDeclare(
		w.queueName,
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("declare worker queue failed: %w", err)
	}

	deliveries, err := ch.Consume(
		w.queueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		_ = ch.Close()
		cancel()
		return fmt.Errorf("consume queue failed: %w", err)
	}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		defer ch.Close()

		for {
			select {
			case <-workerCtx.Done():
				return
			case d, ok := <-deliveries:
				if !ok {
					return
				}

				var session model.Session
				if err := json.Unmarshal(d.Body, &session); err != nil {
					log.Printf("relay decode session event failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				if err := w.forward(workerCtx, session); err != nil {
					log.Printf("relay forward prompt failed: %v", err)
					_ = d.Nack(false, false)
					continue
				}

				_ = d.Ack(false)
			}
		}
	}()

	return nil
}

func (w *PromptRelayWorker) forward(ctx context.Context, session model.Session) error {
	payload, err := json.Marshal(map[string]string{
		"session_id": session.ID,
		"child_id":   session.ChildID,
		"prompt":     session.Prompt,
		"created_at": store.FormatTime(session.CreatedAt),
	})
	if err != nil {
		return fmt.Errorf("marshal webhook payload failed: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request failed: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook response status %d", resp.StatusCode)
	}
	return nil
}

func (w *PromptRelayWorker) Close() {
	if w.cancel != nil {
		w.cancel()
	}
	w.wg.Wait()
}
