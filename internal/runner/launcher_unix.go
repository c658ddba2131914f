//go:build unix

package runner

import (
	"os"
	"os/exec"

	"golang.org/x/sys/unix"
)

func (ProcessLauncher) Exec(argv []string, env []string, dir string) error {
	if len(argv) == 0 {
		return errEmptyCommand
	}
	if err := os.Chdir(dir); err != nil {
		return err
	}
	path, err := exec.LookPath(argv[0])
	if err != nil {
		return err
	}
	return unix.Exec(path, argv, env)
}
