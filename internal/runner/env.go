package runner

import (
	"sort"
	"strings"

	"shakapacker-go/internal/config"
	"shakapacker-go/internal/settings"
)

const inspectBrk = "--inspect-brk"

// ComposeEnv returns the configuration-derived variables for the child. They
// take precedence over the inherited environment when merged with MergeEnv.
func ComposeEnv(s *settings.Settings, cfg *config.Config, subcommand string, debug bool) map[string]string {
	env := map[string]string{
		"NODE_ENV":           s.NodeEnv,
		"RAILS_ENV":          s.RailsEnv,
		"SHAKAPACKER_CONFIG": cfg.Path,
		"NODE_OPTIONS":       s.NodeOptions,
	}
	if s.AssetHost != "" {
		env["SHAKAPACKER_ASSET_HOST"] = s.AssetHost
	}
	if s.RelativeURLRoot != "" {
		env["SHAKAPACKER_RELATIVE_URL_ROOT"] = s.RelativeURLRoot
	}
	if debug {
		env["NODE_OPTIONS"] = strings.TrimSpace(s.NodeOptions + " " + inspectBrk)
	}
	if subcommand == "serve" {
		env["WEBPACK_SERVE"] = "true"
	}
	return env
}

// MergeEnv applies overrides on top of base. Base order is kept for untouched
// entries; overrides follow, sorted by name.
func MergeEnv(base []string, overrides map[string]string) []string {
	out := make([]string, 0, len(base)+len(overrides))
	for _, entry := range base {
		key, _, _ := strings.Cut(entry, "=")
		if _, ok := overrides[key]; ok {
			continue
		}
		out = append(out, entry)
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}
	return out
}
