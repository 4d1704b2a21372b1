// Package logs configures the process wide logrus logger: its output format and
// an optional copy of every entry written to a file.
package logs

import (
	"io"
	"os"
	"path/filepath"

	joonix "github.com/joonix/log"
	"github.com/pkg/errors"
	"github.com/prysmaticlabs/eraauth/io/file"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Formats lists the names accepted by SetFormat.
var Formats = []string{"text", "fluentd", "json"}

// SetFormat installs the named formatter on the standard logger. Text output
// is uncolored when persistent is set.
func SetFormat(format string, persistent bool) error {
	f, err := newFormatter(format, persistent)
	if err != nil {
		return err
	}
	logrus.SetFormatter(f)
	return nil
}

func newFormatter(format string, plain bool) (logrus.Formatter, error) {
	switch format {
	case "text":
		return &prefixed.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
			DisableColors:   plain,
		}, nil
	case "fluentd":
		return joonix.NewFormatter(), nil
	case "json":
		return &logrus.JSONFormatter{}, nil
	}
	return nil, errors.Errorf("unknown log format %s", format)
}

// SetVerbosity parses a logrus level name and applies it to the standard logger.
func SetVerbosity(verbosity string) error {
	level, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	return nil
}

// ConfigurePersistentLogging tees the standard logger into logFileName, appending
// to it if it exists. A missing parent directory is created with 0700 permissions.
func ConfigurePersistentLogging(logFileName string) error {
	expanded, err := file.ExpandPath(logFileName)
	if err != nil {
		return err
	}
	dir := filepath.Dir(expanded)
	exists, err := file.HasDir(dir)
	if err != nil {
		return err
	}
	if !exists {
		if err := file.MkdirAll(dir); err != nil {
			return err
		}
	}
	out, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, file.ReadWritePermissions) // #nosec G304
	if err != nil {
		return errors.Wrapf(err, "could not open log file %s", expanded)
	}
	logrus.SetOutput(io.MultiWriter(logrus.StandardLogger().Out, out))
	logrus.WithField("path", expanded).Info("Writing logs to file")
	return nil
}
