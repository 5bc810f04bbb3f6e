package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/imrishuroy/go-mouse-storefront/internal/aws"
	"github.com/imrishuroy/go-mouse-storefront/internal/catalog"
	"github.com/imrishuroy/go-mouse-storefront/internal/config"
	"github.com/imrishuroy/go-mouse-storefront/internal/handlers"
	"github.com/imrishuroy/go-mouse-storefront/internal/kv"
	"github.com/imrishuroy/go-mouse-storefront/internal/owner"
)

func setupRouter(cfg handlers.HandlerConfig, origins []string) (*gin.Engine, *handlers.Services) {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:  origins,
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", owner.HeaderToken, handlers.HeaderIdempotencyKey},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	svc := handlers.RegisterRoutes(r, cfg)
	return r, svc
}

func main() {
	ctx := context.Background()
	cfg := config.Load()

	// AWS is only needed for the DynamoDB backend and the order queue.
	var want aws.Service
	if cfg.StoreBackend == kv.BackendDynamoDB {
		want |= aws.DynamoDB
	}
	if cfg.OrdersQueueURL != "" {
		want |= aws.SQS
	}
	clients := &aws.AWSClients{}
	if want != 0 {
		var err error
		clients, err = aws.NewAWSClients(ctx, want)
		if err != nil {
			log.Fatalf("failed to init aws clients: %v", err)
		}
	}

	store, closeStore, err := kv.Open(ctx, cfg.StoreOptions(clients.DynamoDB))
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreBackend, err)
	}
	defer closeStore()
	log.Printf("[api] using %s store", cfg.StoreBackend)

	hcfg := handlers.HandlerConfig{
		Store:     kv.Watch(store),
		Owner:     owner.NewTokenResolver(cfg.OwnerTokenHash),
		TTLWindow: cfg.IdempotencyTTL,
	}
	if cfg.OrdersQueueURL != "" {
		hcfg.Notifier = aws.NewPublisher(clients.SQS, cfg.OrdersQueueURL)
	}
	if cfg.OwnerTokenHash == "" {
		log.Printf("[api] OWNER_TOKEN_HASH not set; admin routes will deny every request")
	}

	r, svc := setupRouter(hcfg, cfg.CORSOrigins)

	if cfg.SeedSampleProducts {
		if _, err := svc.Catalog.Seed(ctx, catalog.SampleProducts()); err != nil {
			log.Fatalf("failed to seed products: %v", err)
		}
	}

	// if environment variable RUN_LOCAL is set to "true", run local HTTP server for development.
	if cfg.RunLocal {
		addr := ":" + cfg.Port
		log.Printf("running local server on %s", addr)
		if err := r.Run(addr); err != nil {
			log.Fatalf("failed to run local server: %v", err)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
