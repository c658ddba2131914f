package runner

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"shakapacker-go/internal/config"
)

var ErrPortInUse = errors.New("port already in use")

type PortConflict struct {
	Address    string
	ConfigPath string
	Processes  []string
}

func (c *PortConflict) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "another program is running on %s. Set a new port in %s for dev_server", c.Address, c.ConfigPath)
	for _, proc := range c.Processes {
		b.WriteString("\n    ")
		b.WriteString(proc)
	}
	return b.String()
}

func (c *PortConflict) Is(target error) bool {
	return target == ErrPortInUse
}

// CheckPort verifies the dev server address can be bound.
func CheckPort(dev config.DevServer, configPath string) error {
	addr := net.JoinHostPort(dev.Host, strconv.Itoa(dev.Port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		if isAddrInUse(err) {
			procs, _ := lsofPort(dev.Port)
			return &PortConflict{Address: addr, ConfigPath: configPath, Processes: procs}
		}
		return fmt.Errorf("could not check dev server address %s: %w", addr, err)
	}
	return ln.Close()
}
