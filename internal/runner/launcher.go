package runner

import "errors"

var errEmptyCommand = errors.New("empty command")

// Launcher replaces the current process with argv. Exec does not return on
// success.
type Launcher interface {
	Exec(argv []string, env []string, dir string) error
}

type ProcessLauncher struct{}
