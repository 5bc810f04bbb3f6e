package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
)

// DynamoDBAPI is the subset of the DynamoDB client used by Dynamo.
type DynamoDBAPI interface {
	PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error)
	GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error)
	TransactWriteItems(ctx context.Context, params *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error)
}

// entry is the shape persisted in the kv DynamoDB table.
type entry struct {
	Key       string    `dynamodbav:"kv_key"` // PK
	Value     string    `dynamodbav:"value"`  // JSON document
	UpdatedAt time.Time `dynamodbav:"updated_at"`
}

// Dynamo stores each key as one item in a DynamoDB table keyed by kv_key.
type Dynamo struct {
	client    DynamoDBAPI
	tableName string
	nowFunc   func() time.Time
}

// NewDynamo returns a Store backed by tableName.
func NewDynamo(client DynamoDBAPI, tableName string) *Dynamo {
	return &Dynamo{
		client:    client,
		tableName: tableName,
		nowFunc:   time.Now,
	}
}

func (d *Dynamo) Get(ctx context.Context, key string) ([]byte, error) {
	out, err := d.client.GetItem(ctx, &dyn.GetItemInput{
		TableName:      &d.tableName,
		Key:            map[string]types.AttributeValue{"kv_key": &types.AttributeValueMemberS{Value: key}},
		ConsistentRead: awsBool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	if len(out.Item) == 0 {
		return nil, ErrNotFound
	}
	var e entry
	if err := attributevalue.UnmarshalMap(out.Item, &e); err != nil {
		return nil, fmt.Errorf("unmarshal item: %w", err)
	}
	return []byte(e.Value), nil
}

func (d *Dynamo) Set(ctx context.Context, key string, value []byte) error {
	item, err := d.item(key, value)
	if err != nil {
		return err
	}
	if _, err := d.client.PutItem(ctx, &dyn.PutItemInput{TableName: &d.tableName, Item: item}); err != nil {
		return fmt.Errorf("put item: %w", err)
	}
	return nil
}

func (d *Dynamo) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	item, err := d.item(key, value)
	if err != nil {
		return false, err
	}
	_, err = d.client.PutItem(ctx, &dyn.PutItemInput{
		TableName:           &d.tableName,
		Item:                item,
		ConditionExpression: awsString("attribute_not_exists(kv_key)"),
	})
	if err != nil {
		// detect conditional check failure
		var sc smithy.APIError
		if errors.As(err, &sc) && sc.ErrorCode() == "ConditionalCheckFailedException" {
			return false, nil
		}
		return false, fmt.Errorf("put item: %w", err)
	}
	return true, nil
}

// SetMany writes all entries in one TransactWriteItems call.
func (d *Dynamo) SetMany(ctx context.Context, entries map[string][]byte) error {
	if len(entries) == 0 {
		return nil
	}
	transactItems := make([]types.TransactWriteItem, 0, len(entries))
	for k, v := range entries {
		item, err := d.item(k, v)
		if err != nil {
			return err
		}
		transactItems = append(transactItems, types.TransactWriteItem{
			Put: &types.Put{TableName: &d.tableName, Item: item},
		})
	}

	_, err := d.client.TransactWriteItems(ctx, &dyn.TransactWriteItemsInput{TransactItems: transactItems})
	if err != nil {
		var tce *types.TransactionCanceledException
		if errors.As(err, &tce) {
			return fmt.Errorf("transaction canceled: %w", err)
		}
		return fmt.Errorf("transact write: %w", err)
	}
	return nil
}

func (d *Dynamo) item(key string, value []byte) (map[string]types.AttributeValue, error) {
	item, err := attributevalue.MarshalMap(entry{Key: key, Value: string(value), UpdatedAt: d.nowFunc().UTC()})
	if err != nil {
		return nil, fmt.Errorf("marshal item: %w", err)
	}
	return item, nil
}

func awsString(s string) *string { return &s }

func awsBool(b bool) *bool { return &b }
