package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	"github.com/imrishuroy/go-mouse-storefront/internal/orders"
)

// Metric names emitted per placed order.
const (
	MetricOrdersPlaced = "OrdersPlaced"
	MetricOrderValue   = "OrderValue"
	MetricItemsSold    = "ItemsSold"
)

// Metrics publishes order metrics to CloudWatch under one namespace.
type Metrics struct {
	CW        CloudWatchAPI
	Namespace string
}

// NewMetrics returns a Metrics bound to a namespace.
func NewMetrics(cw CloudWatchAPI, namespace string) *Metrics {
	return &Metrics{CW: cw, Namespace: namespace}
}

// RecordOrderPlaced emits the order count, value and item count, dimensioned by city.
func (m *Metrics) RecordOrderPlaced(ctx context.Context, ev orders.PlacedEvent) error {
	ts := time.UnixMilli(ev.CreatedAt).UTC()
	dims := []cwtypes.Dimension{{Name: awsString("City"), Value: awsString(ev.City)}}

	datum := func(name string, value float64, unit cwtypes.StandardUnit) cwtypes.MetricDatum {
		return cwtypes.MetricDatum{
			MetricName: awsString(name),
			Dimensions: dims,
			Value:      &value,
			Unit:       unit,
			Timestamp:  &ts,
		}
	}

	_, err := m.CW.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace: &m.Namespace,
		MetricData: []cwtypes.MetricDatum{
			datum(MetricOrdersPlaced, 1, cwtypes.StandardUnitCount),
			datum(MetricOrderValue, ev.Total, cwtypes.StandardUnitNone),
			datum(MetricItemsSold, float64(ev.ItemCount), cwtypes.StandardUnitCount),
		},
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}
