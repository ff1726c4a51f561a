//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mitchellh/go-ps"
)

// ErrAlreadyRunning indicates another monitor process is alive.
var ErrAlreadyRunning = errors.New("another instance is already running")

// ProcessLister returns the running processes.
type ProcessLister func() ([]ps.Process, error)

// CurrentExecutable returns the base name of the running binary.
func CurrentExecutable() string {
	path, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}

	return filepath.Base(path)
}

// FindRunningInstance returns ErrAlreadyRunning with the PID of another process named
// like executable. The current process and its parent are ignored.
func FindRunningInstance(executable string, list ProcessLister) error {
	if list == nil {
		list = ps.Processes
	}

	processList, err := list()
	if err != nil {
		return fmt.Errorf("list processes: %w", err)
	}

	var (
		thisProcessID = os.Getpid()
		parentID      = os.Getppid()
	)

	for _, process := range processList {
		if process.Pid() == thisProcessID || process.Pid() == parentID {
			continue
		}

		if !sameExecutable(process.Executable(), executable) {
			continue
		}

		return fmt.Errorf("%w: pid %d", ErrAlreadyRunning, process.Pid())
	}

	return nil
}

// sameExecutable compares names case-insensitively on Windows, where the
// process table may report a different case than the file system.
func sameExecutable(a, b string) bool {
	if strings.Contains(strings.ToLower(runtime.GOOS), "windows") {
		return strings.EqualFold(a, b)
	}

	return a == b
}
