package messages

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var histogramResponseTime = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: "tracker",
		Subsystem: "telegram",
		Name:      "histogram_response_time_seconds",
		Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2},
	},
	[]string{"command", "error"},
)

func observeResponse(cmd string, elapsed time.Duration, err bool) {
	histogramResponseTime.
		WithLabelValues(commandLabel(cmd), strconv.FormatBool(err)).
		Observe(elapsed.Seconds())
}

// commandLabel keeps arbitrary user text out of metric labels.
func commandLabel(cmd string) string {
	for _, known := range commands {
		if cmd == known {
			return cmd
		}
	}
	if cmd == "" {
		return "text"
	}
	return "unknown"
}
