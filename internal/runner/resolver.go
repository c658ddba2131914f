package runner

import (
	"shakapacker-go/internal/pkgmanager"
)

type Strategy int

const (
	StrategyLocalBinary Strategy = iota
	StrategyPackageManager
	StrategyYarnFallback
)

func (s Strategy) String() string {
	switch s {
	case StrategyLocalBinary:
		return "local-binary"
	case StrategyPackageManager:
		return "package-manager"
	case StrategyYarnFallback:
		return "yarn-fallback"
	default:
		return "unknown"
	}
}

type ResolveRequest struct {
	Tool              string
	Args              []string
	LocalBinary       string
	LocalBinaryExists bool
	// Manager is nil when the package manager abstraction is disabled.
	Manager pkgmanager.Manager
}

// ResolveCommand picks the executable and argument vector. A project-local
// binary always wins; without one the configured package manager is used, and
// without that the classic `yarn <tool>` form.
func ResolveCommand(req ResolveRequest) ([]string, Strategy) {
	if req.LocalBinaryExists {
		return prepend(req.LocalBinary, req.Args), StrategyLocalBinary
	}
	if req.Manager != nil {
		return req.Manager.NativeExecCommand(req.Tool, req.Args), StrategyPackageManager
	}
	return prepend("yarn", prepend(req.Tool, req.Args)), StrategyYarnFallback
}

func prepend(head string, tail []string) []string {
	out := make([]string, 0, len(tail)+1)
	out = append(out, head)
	return append(out, tail...)
}
