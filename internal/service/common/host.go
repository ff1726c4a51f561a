//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"fmt"
	"os"
	"os/user"
)

// Host identifies the machine and user the monitor runs for.
type Host struct {
	// Hostname is the machine name.
	Hostname string
	// Username is the system user running the monitor.
	Username string
}

// String renders the host as user@hostname.
func (h Host) String() string {
	return h.Username + "@" + h.Hostname
}

// DetectHost gathers host and user information.
func DetectHost() (Host, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return Host{}, fmt.Errorf("hostname: %w", err)
	}

	currentUser, err := user.Current()
	if err != nil {
		return Host{}, fmt.Errorf("current user: %w", err)
	}

	return Host{
		Hostname: hostname,
		Username: currentUser.Username,
	}, nil
}
