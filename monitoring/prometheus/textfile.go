package prometheus

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "prometheus")

// WriteMetrics writes every metric gathered by g to path in the text
// exposition format. The file is replaced atomically.
func WriteMetrics(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return errors.Wrapf(err, "could not write metrics to %s", path)
	}
	log.WithField("path", path).Debug("Wrote metrics")
	return nil
}
