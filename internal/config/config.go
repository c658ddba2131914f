package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultHost = "localhost"
	DefaultPort = 3035

	BundlerWebpack = "webpack"
	BundlerRspack  = "rspack"

	fallbackEnv = "production"
)

var (
	ErrConfigNotFound = errors.New("configuration file not found")
	ErrEnvNotFound    = errors.New("configuration section not found")
)

type Config struct {
	AssetsBundler string    `yaml:"assets_bundler"`
	DevServer     DevServer `yaml:"dev_server"`

	// Path is the file the configuration was read from.
	Path string `yaml:"-"`
	// Env is the section that was actually used.
	Env string `yaml:"-"`
	// FellBack is set when the requested section was missing and the
	// production section was used instead.
	FellBack bool `yaml:"-"`
}

type DevServer struct {
	Host           string     `yaml:"host"`
	Port           int        `yaml:"port"`
	Server         ServerType `yaml:"server"`
	HTTPS          bool       `yaml:"https"`
	HMR            bool       `yaml:"hmr"`
	Pretty         bool       `yaml:"pretty"`
	InjectCLIFlags bool       `yaml:"inject_cli_flags"`
}

// ServerType accepts both `server: https` and `server: {type: https, options: ...}`.
type ServerType string

func (s *ServerType) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		*s = ServerType(strings.ToLower(node.Value))
		return nil
	case yaml.MappingNode:
		var obj struct {
			Type string `yaml:"type"`
		}
		if err := node.Decode(&obj); err != nil {
			return err
		}
		*s = ServerType(strings.ToLower(obj.Type))
		return nil
	default:
		return fmt.Errorf("dev_server.server: unsupported value at line %d", node.Line)
	}
}

func (d DevServer) Protocol() string {
	if d.Server == "https" || d.HTTPS {
		return "https"
	}
	return "http"
}

func (d DevServer) Address() string {
	return fmt.Sprintf("%s:%d", d.Host, d.Port)
}

// ApplyOverrides applies SHAKAPACKER_DEV_SERVER_<KEY> values, keyed by lower-case KEY.
func (d *DevServer) ApplyOverrides(overrides map[string]string) error {
	for key, value := range overrides {
		switch key {
		case "host":
			d.Host = value
		case "port":
			port, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("invalid dev server port %q: %w", value, err)
			}
			d.Port = port
		case "server":
			d.Server = ServerType(strings.ToLower(value))
		case "https":
			d.HTTPS = parseBool(value)
		case "hmr":
			d.HMR = parseBool(value)
		case "pretty":
			d.Pretty = parseBool(value)
		case "inject_cli_flags":
			d.InjectCLIFlags = parseBool(value)
		}
	}
	return nil
}

func LoadConfig(configPath string, env string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
	}

	var doc map[string]*Config
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML %s: %w", configPath, err)
	}

	cfg, used := doc[env], env
	fellBack := false
	if cfg == nil {
		cfg, used = doc[fallbackEnv], fallbackEnv
		fellBack = true
	}
	if cfg == nil {
		return nil, fmt.Errorf("%w: %q in %s", ErrEnvNotFound, env, configPath)
	}

	cfg.Path = configPath
	cfg.Env = used
	cfg.FellBack = fellBack
	if cfg.DevServer.Host == "" {
		cfg.DevServer.Host = DefaultHost
	}
	if cfg.DevServer.Port == 0 {
		cfg.DevServer.Port = DefaultPort
	}
	switch cfg.AssetsBundler {
	case "":
		cfg.AssetsBundler = BundlerWebpack
	case BundlerWebpack, BundlerRspack:
	default:
		return nil, fmt.Errorf("unsupported assets_bundler %q in %s", cfg.AssetsBundler, configPath)
	}
	return cfg, nil
}

// ResolveConfigPath returns explicit when set, otherwise the first existing
// default location under appPath.
func ResolveConfigPath(explicit string, appPath string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("%w: %s", ErrConfigNotFound, explicit)
		}
		return explicit, nil
	}

	candidates := []string{
		filepath.Join(appPath, "config", "shakapacker.yml"),
		filepath.Join(appPath, "config", "webpacker.yml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrConfigNotFound, candidates[0])
}

// IsLegacyPath reports whether path is a pre-rename webpacker.yml.
func IsLegacyPath(path string) bool {
	return filepath.Base(path) == "webpacker.yml"
}

// BundlerConfigPath returns config/<bundler>/<bundler>.config.js under appPath,
// or the .ts variant when only that exists.
func (c *Config) BundlerConfigPath(appPath string) string {
	dir := filepath.Join(appPath, "config", c.AssetsBundler)
	js := filepath.Join(dir, c.AssetsBundler+".config.js")
	if _, err := os.Stat(js); err == nil {
		return js
	}
	ts := filepath.Join(dir, c.AssetsBundler+".config.ts")
	if _, err := os.Stat(ts); err == nil {
		return ts
	}
	return js
}

func parseBool(v string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	return err == nil && b
}
