package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"

	"github.com/imrishuroy/go-mouse-storefront/internal/idempotency"
	"github.com/imrishuroy/go-mouse-storefront/internal/orders"
)

// seenPrefix namespaces the worker's dedupe records apart from checkout keys.
const seenPrefix = "metrics:"

// MetricsRecorder records one placed order.
type MetricsRecorder interface {
	RecordOrderPlaced(ctx context.Context, ev orders.PlacedEvent) error
}

// Processor turns order.placed events into metrics, once per order.
type Processor struct {
	metrics MetricsRecorder
	seen    *idempotency.Store
}

// NewProcessor creates a new worker processor. seen dedupes SQS redeliveries.
func NewProcessor(metrics MetricsRecorder, seen *idempotency.Store) *Processor {
	return &Processor{metrics: metrics, seen: seen}
}

// Handle processes an SQS batch and reports the messages that should be
// retried. Lambda redelivers only those; repeated failures go to the DLQ.
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) (events.SQSEventResponse, error) {
	var resp events.SQSEventResponse
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			log.Printf("[worker] message=%s error: %v", rec.MessageId, err)
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: rec.MessageId,
			})
		}
	}
	return resp, nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	if t := eventType(rec); t != "" && t != orders.EventOrderPlaced {
		log.Printf("[worker] skipping event_type=%s message=%s", t, rec.MessageId)
		return nil
	}

	var ev orders.PlacedEvent
	if err := json.Unmarshal([]byte(rec.Body), &ev); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if ev.OrderID == "" {
		return fmt.Errorf("message has no order_id")
	}

	key := seenPrefix + ev.OrderID
	claimed, err := p.seen.CreateIfNotExists(ctx, key)
	if err != nil {
		return fmt.Errorf("dedupe order=%s: %w", ev.OrderID, err)
	}
	if !claimed {
		log.Printf("[worker] duplicate event for order=%s", ev.OrderID)
		return nil
	}

	if err := p.metrics.RecordOrderPlaced(ctx, ev); err != nil {
		_ = p.seen.MarkFailed(ctx, key, err.Error())
		return fmt.Errorf("record metrics for order=%s: %w", ev.OrderID, err)
	}
	if err := p.seen.MarkDone(ctx, key, ev.OrderID, "", 0); err != nil {
		return fmt.Errorf("mark order=%s done: %w", ev.OrderID, err)
	}

	log.Printf("[worker] recorded order=%s city=%s total=%.2f items=%d", ev.OrderID, ev.City, ev.Total, ev.ItemCount)
	return nil
}

func eventType(rec events.SQSMessage) string {
	attr, ok := rec.MessageAttributes["event_type"]
	if !ok || attr.StringValue == nil {
		return ""
	}
	return *attr.StringValue
}
