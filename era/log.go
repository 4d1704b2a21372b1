package era

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "era")
