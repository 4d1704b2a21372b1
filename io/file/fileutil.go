// Package file reads and writes the reference and proof files handled by the
// command line tool.
package file

import (
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// ReadWritePermissions are the permissions of files written by this package.
	ReadWritePermissions = os.FileMode(0600)
	// ReadWriteExecutePermissions are the permissions of directories created by this package.
	ReadWriteExecutePermissions = os.FileMode(0700)
)

// ExpandPath resolves a leading ~/ to the home directory, substitutes
// environment variables and returns the cleaned absolute path. ~user forms are
// not expanded.
func ExpandPath(p string) (string, error) {
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, "~\\") {
		if home := homeDir(); home != "" {
			p = filepath.Join(home, p[2:])
		}
	}
	return filepath.Abs(os.ExpandEnv(p))
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if u, err := user.Current(); err == nil {
		return u.HomeDir
	}
	return ""
}

// HasDir reports whether dirPath names an existing directory.
func HasDir(dirPath string) (bool, error) {
	info, err := stat(dirPath)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// MkdirAll creates dirPath and its parents with 0700 permissions. An existing
// directory must already have exactly those permissions.
func MkdirAll(dirPath string) error {
	expanded, err := ExpandPath(dirPath)
	if err != nil {
		return err
	}
	info, err := os.Stat(expanded)
	switch {
	case err == nil && info.Mode().Perm() != ReadWriteExecutePermissions:
		return errors.Errorf("%s already exists without proper 0700 permissions", expanded)
	case err != nil && !os.IsNotExist(err):
		return err
	}
	return os.MkdirAll(expanded, ReadWriteExecutePermissions)
}

// WriteFile replaces the content of path with data. The data goes to a
// temporary file in the same directory that is then renamed over path, so
// readers never see a partial accumulator or proof file. A missing parent
// directory is created; an existing file must have 0600 permissions.
func WriteFile(path string, data []byte) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	if info, err := os.Stat(expanded); err == nil && info.Mode() != ReadWritePermissions {
		return errors.Errorf("%s already exists without proper 0600 permissions", expanded)
	}
	dir := filepath.Dir(expanded)
	exists, err := HasDir(dir)
	if err != nil {
		return err
	}
	if !exists {
		if err := MkdirAll(dir); err != nil {
			return err
		}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(expanded)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "could not create temporary file")
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			log.WithError(err).WithField("path", tmp.Name()).Debug("Could not remove temporary file")
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Wrapf(err, "could not write %s", expanded)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), expanded)
}

// FileExists reports whether filename exists and is not a directory.
func FileExists(filename string) bool {
	info, err := stat(filename)
	if err != nil {
		if !os.IsNotExist(err) {
			log.WithError(err).Info("Checking for file existence returned an error")
		}
		return false
	}
	return !info.IsDir()
}

// ReadFileAsBytes reads the whole file at the expanded path.
func ReadFileAsBytes(filename string) ([]byte, error) {
	filePath, err := ExpandPath(filename)
	if err != nil {
		return nil, errors.Wrap(err, "could not determine absolute path of file")
	}
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.Errorf("%s is a directory, please specify full path to file", filePath)
	}
	return os.ReadFile(filePath) // #nosec G304
}

func stat(p string) (os.FileInfo, error) {
	expanded, err := ExpandPath(p)
	if err != nil {
		return nil, err
	}
	return os.Stat(expanded)
}
