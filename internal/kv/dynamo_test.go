package kv

import (
	"context"
	"errors"
	"sync"
	"testing"

	dyn "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// mockDynamo is a minimal in-memory DynamoDB supporting the calls the kv
// backend makes. It stores items per table: table -> kv_key -> item.
type mockDynamo struct {
	mu            sync.Mutex
	tables        map[string]map[string]map[string]types.AttributeValue
	transactCalls int
	failTransact  bool
}

func newMockDynamo() *mockDynamo {
	return &mockDynamo{
		tables: map[string]map[string]map[string]types.AttributeValue{},
	}
}

func (m *mockDynamo) ensureTable(tbl string) {
	if _, ok := m.tables[tbl]; !ok {
		m.tables[tbl] = map[string]map[string]types.AttributeValue{}
	}
}

func pkOf(item map[string]types.AttributeValue) (string, error) {
	v, ok := item["kv_key"].(*types.AttributeValueMemberS)
	if !ok {
		return "", errors.New("no kv_key attribute")
	}
	return v.Value, nil
}

func (m *mockDynamo) PutItem(ctx context.Context, params *dyn.PutItemInput, optFns ...func(*dyn.Options)) (*dyn.PutItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := *params.TableName
	m.ensureTable(table)
	pk, err := pkOf(params.Item)
	if err != nil {
		return nil, err
	}
	if params.ConditionExpression != nil && *params.ConditionExpression == "attribute_not_exists(kv_key)" {
		if _, exists := m.tables[table][pk]; exists {
			return nil, &types.ConditionalCheckFailedException{}
		}
	}
	m.tables[table][pk] = params.Item
	return &dyn.PutItemOutput{}, nil
}

func (m *mockDynamo) GetItem(ctx context.Context, params *dyn.GetItemInput, optFns ...func(*dyn.Options)) (*dyn.GetItemOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	table := *params.TableName
	m.ensureTable(table)
	pk, err := pkOf(params.Key)
	if err != nil {
		return nil, err
	}
	item, ok := m.tables[table][pk]
	if !ok {
		return &dyn.GetItemOutput{}, nil
	}
	return &dyn.GetItemOutput{Item: item}, nil
}

func (m *mockDynamo) TransactWriteItems(ctx context.Context, params *dyn.TransactWriteItemsInput, optFns ...func(*dyn.Options)) (*dyn.TransactWriteItemsOutput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactCalls++
	if m.failTransact {
		return nil, &types.TransactionCanceledException{}
	}
	for _, it := range params.TransactItems {
		p := it.Put
		if p == nil {
			continue
		}
		table := *p.TableName
		m.ensureTable(table)
		pk, err := pkOf(p.Item)
		if err != nil {
			return nil, err
		}
		m.tables[table][pk] = p.Item
	}
	return &dyn.TransactWriteItemsOutput{}, nil
}

func TestDynamoStore(t *testing.T) {
	mock := newMockDynamo()
	exerciseStore(t, NewDynamo(mock, "storefront-kv"))

	if mock.transactCalls != 1 {
		t.Fatalf("expected SetMany to issue one transaction, got %d", mock.transactCalls)
	}
	item, ok := mock.tables["storefront-kv"]["orders"]
	if !ok {
		t.Fatalf("orders item not stored")
	}
	if v, ok := item["value"].(*types.AttributeValueMemberS); !ok || v.Value != `["o1"]` {
		t.Fatalf("unexpected stored value: %+v", item["value"])
	}
}

func TestDynamoStore_SetManyCanceled(t *testing.T) {
	mock := newMockDynamo()
	mock.failTransact = true
	s := NewDynamo(mock, "storefront-kv")

	err := s.SetMany(context.Background(), map[string][]byte{"orders": []byte(`[]`), "cart": []byte(`{}`)})
	if err == nil {
		t.Fatalf("expected transaction canceled error, got nil")
	}
	var tce *types.TransactionCanceledException
	if !errors.As(err, &tce) {
		t.Fatalf("expected wrapped TransactionCanceledException, got %v", err)
	}
	if len(mock.tables["storefront-kv"]) != 0 {
		t.Fatalf("no items should be written on canceled transaction")
	}
}
