package client

import (
	"github.com/VictoriaMetrics/metrics"
)

// Client-side counters, exposed through the default VictoriaMetrics
// registry; applications embed them in their own /metrics handler via
// metrics.WritePrometheus.
var (
	searchesTotal      = metrics.NewCounter(`hmmnet_client_searches_total`)
	searchErrorsTotal  = metrics.NewCounter(`hmmnet_client_search_errors_total`)
	bytesSentTotal     = metrics.NewCounter(`hmmnet_client_bytes_sent_total`)
	bytesReceivedTotal = metrics.NewCounter(`hmmnet_client_bytes_received_total`)
	searchDuration     = metrics.NewHistogram(`hmmnet_client_search_duration_seconds`)
)
