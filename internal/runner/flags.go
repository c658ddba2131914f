package runner

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"shakapacker-go/internal/config"
)

var ErrUnsupportedSwitch = errors.New("unsupported CLI switch")

var (
	unsupportedSwitches = []string{"--host", "--port"}
	debugSwitches       = []string{"--debug-shakapacker", "--debug-webpacker"}
)

// DetectUnsupportedSwitches rejects switches that must be set in the
// configuration file instead.
func DetectUnsupportedSwitches(argv []string) error {
	found := []string{}
	for _, arg := range argv {
		name, _, _ := strings.Cut(arg, "=")
		if slices.Contains(unsupportedSwitches, name) && !slices.Contains(found, name) {
			found = append(found, name)
		}
	}
	if len(found) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s; set them in the dev_server section of the configuration file instead",
		ErrUnsupportedSwitch, strings.Join(found, " "))
}

// StripDebugSwitches removes the launcher's own debug switches from argv and
// reports whether any was present.
func StripDebugSwitches(argv []string) ([]string, bool) {
	out := make([]string, 0, len(argv))
	debug := false
	for _, arg := range argv {
		if slices.Contains(debugSwitches, arg) {
			debug = true
			continue
		}
		out = append(out, arg)
	}
	return out, debug
}

// InferFlags returns the flags implied by the dev server configuration that
// the user did not pass. Nothing is inferred unless inject_cli_flags is set.
func InferFlags(dev config.DevServer, argv []string) []string {
	if !dev.InjectCLIFlags {
		return nil
	}
	out := []string{}
	add := func(flag string) {
		if !hasFlag(argv, flag) {
			out = append(out, flag)
		}
	}
	if dev.Protocol() == "https" {
		add("--https")
	}
	if dev.HMR {
		add("--hot")
	}
	if dev.Pretty {
		add("--progress")
		add("--color")
	}
	return out
}

func hasFlag(argv []string, flag string) bool {
	for _, arg := range argv {
		if arg == flag || strings.HasPrefix(arg, flag+"=") || arg == "--no-"+strings.TrimPrefix(flag, "--") {
			return true
		}
	}
	return false
}
