package osenv

import (
	"os"

	"discord-notify/internal/domain/ports"
)

// Process reads variables from the running process environment.
type Process struct{}

var _ ports.Environment = Process{}

// LookupEnv implements ports.Environment.
func (Process) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Map is a fixed environment, handy for tests and dry runs.
type Map map[string]string

var _ ports.Environment = Map(nil)

// LookupEnv implements ports.Environment.
func (m Map) LookupEnv(key string) (string, bool) {
	val, ok := m[key]
	return val, ok
}
