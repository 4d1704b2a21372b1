package proof

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "proof")
