//go:build windows

package runner

import (
	"errors"

	"golang.org/x/sys/windows"
)

func lsofPort(port int) ([]string, error) {
	return nil, nil
}

func isAddrInUse(err error) bool {
	return errors.Is(err, windows.WSAEADDRINUSE)
}
