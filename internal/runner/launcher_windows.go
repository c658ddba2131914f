//go:build windows

package runner

import (
	"errors"
	"os"
	"os/exec"
)

// Exec runs the child with inherited stdio and exits with its status, since
// windows has no process image replacement.
func (ProcessLauncher) Exec(argv []string, env []string, dir string) error {
	if len(argv) == 0 {
		return errEmptyCommand
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return err
	}
	cmd := exec.Command(path, argv[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.ExitCode())
		}
		return err
	}
	os.Exit(0)
	return nil
}
