// Package settings is the boundary between the process environment and the
// rest of the launcher. The environment is read once, legacy variable names
// are translated, and the result is threaded through the call chain.
package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const (
	canonicalPrefix = "SHAKAPACKER_"
	legacyPrefix    = "WEBPACKER_"
	devServerPrefix = "SHAKAPACKER_DEV_SERVER_"

	DefaultRailsEnv        = "development"
	DefaultNodeEnv         = "development"
	DefaultFallbackManager = "npm"
)

type Settings struct {
	AppPath            string
	RailsEnv           string
	NodeEnv            string
	ConfigPath         string
	NodeModulesBinPath string
	UsePackageJSON     bool
	FallbackManager    string
	AssetHost          string
	RelativeURLRoot    string
	NodeOptions        string
	LogLevel           string

	// DevServerEnv holds SHAKAPACKER_DEV_SERVER_<KEY> overrides keyed by
	// lower-case KEY (host, port, server, hmr, pretty, ...).
	DevServerEnv map[string]string

	// Environ is the inherited environment, unmodified.
	Environ []string

	// Deprecated lists the legacy variable names that were translated.
	Deprecated []string
}

// Load reads the real process environment and working directory.
func Load() (*Settings, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return FromEnviron(os.Environ(), cwd), nil
}

func FromEnviron(environ []string, cwd string) *Settings {
	vars := toMap(environ)
	deprecated := translateLegacy(vars)

	appPath, err := filepath.Abs(cwd)
	if err != nil {
		appPath = cwd
	}

	s := &Settings{
		AppPath:            appPath,
		RailsEnv:           firstNonEmpty(vars["RAILS_ENV"], vars["RACK_ENV"], DefaultRailsEnv),
		NodeEnv:            firstNonEmpty(vars["NODE_ENV"], DefaultNodeEnv),
		ConfigPath:         absFrom(appPath, vars["SHAKAPACKER_CONFIG"]),
		NodeModulesBinPath: absFrom(appPath, vars["SHAKAPACKER_NODE_MODULES_BIN_PATH"]),
		UsePackageJSON:     parseBool(vars["SHAKAPACKER_USE_PACKAGE_JSON_GEM"]),
		FallbackManager:    firstNonEmpty(vars["PACKAGE_JSON_FALLBACK_MANAGER"], DefaultFallbackManager),
		AssetHost:          vars["SHAKAPACKER_ASSET_HOST"],
		RelativeURLRoot:    vars["SHAKAPACKER_RELATIVE_URL_ROOT"],
		NodeOptions:        vars["NODE_OPTIONS"],
		LogLevel:           strings.ToLower(vars["SHAKAPACKER_LOG_LEVEL"]),
		DevServerEnv:       map[string]string{},
		Environ:            append([]string(nil), environ...),
		Deprecated:         deprecated,
	}
	if s.NodeModulesBinPath == "" {
		s.NodeModulesBinPath = filepath.Join(appPath, "node_modules", ".bin")
	}

	for key, value := range vars {
		if name, ok := strings.CutPrefix(key, devServerPrefix); ok && name != "" {
			s.DevServerEnv[strings.ToLower(name)] = value
		}
	}
	return s
}

// CanonicalName maps a legacy WEBPACKER_* name to its SHAKAPACKER_* successor.
// Other names are returned unchanged.
func CanonicalName(name string) string {
	if rest, ok := strings.CutPrefix(name, legacyPrefix); ok && rest != "" {
		return canonicalPrefix + rest
	}
	return name
}

// translateLegacy copies every WEBPACKER_<X> value to SHAKAPACKER_<X> unless the
// canonical name is already set, and returns the translated legacy names.
func translateLegacy(vars map[string]string) []string {
	translated := []string{}
	for key, value := range vars {
		canonical := CanonicalName(key)
		if canonical == key {
			continue
		}
		if _, ok := vars[canonical]; ok {
			continue
		}
		vars[canonical] = value
		translated = append(translated, key)
	}
	sort.Strings(translated)
	return translated
}

func toMap(environ []string) map[string]string {
	out := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, ok := strings.Cut(entry, "=")
		if !ok || key == "" {
			continue
		}
		out[key] = value
	}
	return out
}

func absFrom(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func parseBool(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}
