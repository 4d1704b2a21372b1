// Package prometheus counts log entries per level and package prefix, and
// exports the metrics of a run in the node exporter textfile format.
package prometheus

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

const (
	prefixKey     = "prefix"
	defaultPrefix = "global"
)

var supportedLevels = []logrus.Level{logrus.InfoLevel, logrus.WarnLevel, logrus.ErrorLevel}

// LogrusCollector is a logrus hook to collect log counters.
type LogrusCollector struct {
	counterVec *prometheus.CounterVec
}

// NewLogrusCollector registers the log counter with reg and returns a hook that
// increments it. Registering twice with the same registerer panics.
func NewLogrusCollector(reg prometheus.Registerer) *LogrusCollector {
	return &LogrusCollector{
		counterVec: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "log_entries_total",
			Help: "Total number of log messages.",
		}, []string{"level", "prefix"}),
	}
}

// Fire is called on every log call.
func (hook *LogrusCollector) Fire(entry *logrus.Entry) error {
	prefix := defaultPrefix
	if value, ok := entry.Data[prefixKey]; ok {
		if prefix, ok = value.(string); !ok {
			return errors.Errorf("prefix of type %T is not a string", value)
		}
	}
	hook.counterVec.WithLabelValues(entry.Level.String(), prefix).Inc()
	return nil
}

// Levels return a slice of levels supported by this hook.
func (*LogrusCollector) Levels() []logrus.Level {
	return supportedLevels
}
