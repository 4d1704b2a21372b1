package accumulator

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "accumulator")
