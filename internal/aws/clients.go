package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

// Service selects which clients NewAWSClients builds.
type Service uint8

const (
	DynamoDB Service = 1 << iota
	SQS
	CloudWatch
)

// AWSClients bundles the service clients a binary asked for. Clients that
// were not requested are nil.
type AWSClients struct {
	DynamoDB   DynamoDBAPI
	SQS        SQSAPI
	CloudWatch CloudWatchAPI
}

// NewAWSClients loads AWS config once and builds a client for each service
// in want.
func NewAWSClients(ctx context.Context, want Service) (*AWSClients, error) {
	cfg, err := LoadAWSConfig(ctx)
	if err != nil {
		return nil, err
	}

	clients := &AWSClients{}
	if want&DynamoDB != 0 {
		clients.DynamoDB = dynamodb.NewFromConfig(cfg)
	}
	if want&SQS != 0 {
		clients.SQS = sqs.NewFromConfig(cfg)
	}
	if want&CloudWatch != 0 {
		clients.CloudWatch = cloudwatch.NewFromConfig(cfg)
	}
	return clients, nil
}
