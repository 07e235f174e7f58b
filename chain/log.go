package chain

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "chain")
