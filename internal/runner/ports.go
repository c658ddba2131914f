//go:build !windows

package runner

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"syscall"
)

// lsofPort returns the lsof lines of processes listening on port, without the header.
func lsofPort(port int) ([]string, error) {
	cmd := exec.Command("lsof", "-i", fmt.Sprintf("tcp:%d", port))
	out, err := cmd.Output()
	if err != nil {
		// lsof returns non-zero when no processes found
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && len(exitErr.Stderr) == 0 {
			return nil, nil
		}
		return nil, err
	}
	lines := []string{}
	scanner := bufio.NewScanner(bytes.NewReader(out))
	first := true
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func isAddrInUse(err error) bool {
	return errors.Is(err, syscall.EADDRINUSE)
}
