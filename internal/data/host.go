package data

import (
	"fmt"
	"os"
)

const (
	APIVersion  = "1.0"
	AppName     = "load-balancer-app"
	DisplayName = "Load Balancer App"
)

// Host holds the facts a backend reports about itself so that callers behind
// a load balancer can tell instances apart.
type Host struct {
	Name string
}

// LookupHost reads the hostname once. The result is meant to live for the
// whole process.
func LookupHost() (Host, error) {
	name, err := os.Hostname()
	if err != nil {
		return Host{}, fmt.Errorf("lookup hostname: %w", err)
	}

	return Host{Name: name}, nil
}

// PID is queried on every call rather than cached.
func (h Host) PID() int {
	return os.Getpid()
}
