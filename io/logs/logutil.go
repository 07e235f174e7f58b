// Package logs mirrors everything written to stdout into an optional
// log file and scrubs credentials from URLs before they are logged.
package logs

import (
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

const logFilePermissions = 0600

func addLogWriter(w io.Writer) {
	mw := io.MultiWriter(logrus.StandardLogger().Out, w)
	logrus.SetOutput(mw)
}

// ConfigurePersistentLogging adds a log-to-file writer. File content is
// identical to stdout.
func ConfigurePersistentLogging(logFileName string) error {
	logrus.WithField("logFileName", logFileName).Info("Logs will be made persistent")
	f, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermissions) // #nosec G304
	if err != nil {
		return err
	}

	addLogWriter(f)

	logrus.Info("File logging initialized")
	return nil
}

// MaskCredentialsLogging masks a URL's userinfo, URI and fragment
// before logging, leaving the scheme and host untouched:
// [scheme:][//[userinfo@]host][/]path[?query][#fragment] becomes
// [scheme:][//[***]host][/***][#***]. Strings that do not parse as
// URLs are returned as is.
func MaskCredentialsLogging(currURL string) string {
	maskedURL := currURL
	u, err := url.Parse(currURL)
	if err != nil {
		return currURL
	}
	if u.User != nil {
		maskedURL = strings.Replace(maskedURL, u.User.String(), "***", 1)
	}
	if len(u.RequestURI()) > 1 { // Ignore the '/'
		maskedURL = strings.Replace(maskedURL, u.RequestURI(), "/***", 1)
	}
	if len(u.Fragment) > 0 {
		maskedURL = strings.Replace(maskedURL, u.RawFragment, "***", 1)
	}
	return maskedURL
}
