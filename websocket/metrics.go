// Package websocket - websocket/metrics.go
package websocket

import (
	"os"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"

	"go-bet-tips/logger"
)

// Namespace for all BetTips metrics
var metricsNamespace = "BetTips"

// Reuse a single CloudWatch client for all metrics calls
var cwClient = cloudwatch.New(session.Must(session.NewSession()))

// metricsEnabled gates CloudWatch calls so local runs without AWS
// credentials stay quiet.
var metricsEnabled = os.Getenv("METRICS_ENABLED") == "true"

// PublishLiveConnections pushes the current WebSocket connection count.
func PublishLiveConnections(count int) {
	putMetric("LiveConnections", float64(count), "Count")
}

// PublishCatalogSize pushes the prediction catalog size.
func PublishCatalogSize(count int) {
	putMetric("CatalogSize", float64(count), "Count")
}

// PublishIngestionLatency pushes the bootstrap generation latency (in ms).
func PublishIngestionLatency(latencyMs float64) {
	putMetric("IngestionLatencyMs", latencyMs, "Milliseconds")
}

// -----------------------------------------------------------
// internal helper function to package up CloudWatch calls
// -----------------------------------------------------------
func putMetric(metricName string, value float64, unit string) {
	if !metricsEnabled {
		return
	}
	_, err := cwClient.PutMetricData(&cloudwatch.PutMetricDataInput{
		Namespace: aws.String(metricsNamespace),
		MetricData: []*cloudwatch.MetricDatum{
			{
				MetricName: aws.String(metricName),
				Timestamp:  aws.Time(time.Now()),
				Value:      aws.Float64(value),
				Unit:       aws.String(unit),
			},
		},
	})

	if err != nil {
		logger.Error.Printf("[putMetric] CloudWatch metric failed (%s): %v", metricName, err)
	}
}
