package aws

import (
	"context"
	"testing"
)

func TestLoadAWSConfig_DefaultRegion(t *testing.T) {
	t.Setenv("AWS_ENDPOINT_OVERRIDE", "")
	t.Setenv("AWS_REGION", "")

	cfg, err := LoadAWSConfig(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Region != "us-east-1" {
		t.Fatalf("expected default region 'us-east-1', got %s", cfg.Region)
	}
}

func TestLoadAWSConfig_WithEndpointOverride(t *testing.T) {
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("AWS_ENDPOINT_OVERRIDE", "http://localhost:4566")

	cfg, err := LoadAWSConfig(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Region != "eu-west-1" {
		t.Fatalf("region mismatch, got %s", cfg.Region)
	}
	if cfg.BaseEndpoint == nil || *cfg.BaseEndpoint != "http://localhost:4566" {
		t.Fatalf("expected base endpoint override, got %v", cfg.BaseEndpoint)
	}
}

func TestNewAWSClients_BuildsOnlyRequested(t *testing.T) {
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_ENDPOINT_OVERRIDE", "")

	clients, err := NewAWSClients(context.Background(), SQS|CloudWatch)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clients.DynamoDB != nil {
		t.Fatalf("dynamodb client was not requested")
	}
	if clients.SQS == nil || clients.CloudWatch == nil {
		t.Fatalf("expected sqs and cloudwatch clients, got %+v", clients)
	}
}
