package main

import (
	"context"
	"log"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/go-mouse-storefront/internal/aws"
	"github.com/imrishuroy/go-mouse-storefront/internal/config"
	"github.com/imrishuroy/go-mouse-storefront/internal/idempotency"
	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	want := aws.CloudWatch
	if cfg.StoreBackend == kv.BackendDynamoDB {
		want |= aws.DynamoDB
	}
	clients, err := aws.NewAWSClients(ctx, want)
	if err != nil {
		log.Fatalf("failed to init aws clients: %v", err)
	}

	store, closeStore, err := kv.Open(ctx, cfg.StoreOptions(clients.DynamoDB))
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer closeStore()

	p := NewProcessor(
		aws.NewMetrics(clients.CloudWatch, cfg.MetricsNamespace),
		idempotency.NewStore(store, cfg.IdempotencyTTL),
	)

	// If RUN_LOCAL=true, we can optionally simulate a single SQS event for local testing.
	if cfg.RunLocal {
		testBody := os.Getenv("LOCAL_SQS_BODY")
		if testBody == "" {
			testBody = `{"order_id":"ORD-local-1","city":"Beirut","total":99.99,"item_count":1,"created_at":0}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{MessageId: "local-1", Body: testBody},
			},
		}
		resp, err := p.Handle(ctx, event)
		if err != nil || len(resp.BatchItemFailures) > 0 {
			log.Fatalf("local handler error: %v failures=%d", err, len(resp.BatchItemFailures))
		}
		return
	}

	lambda.Start(p.Handle)
}
