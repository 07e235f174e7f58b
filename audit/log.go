package audit

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "audit")
