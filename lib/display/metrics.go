package display

import (
	"fmt"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

const (
	sourceAdopted = "adopted"
	sourcePath    = "path"
)

var connectDuration = metrics.NewHistogram("wlconn_connect_duration_seconds")

// observe records the outcome of one connect attempt in the default
// VictoriaMetrics set.
func observe(source string, start time.Time, err error) {
	connectDuration.Update(time.Since(start).Seconds())
	metrics.GetOrCreateCounter(fmt.Sprintf(`wlconn_connect_total{source=%q}`, source)).Inc()
	if err != nil {
		metrics.GetOrCreateCounter(fmt.Sprintf(`wlconn_connect_errors_total{kind=%q}`, KindOf(err))).Inc()
	}
}
