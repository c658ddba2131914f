// Package runner builds and launches the bundler's dev server command.
package runner

import (
	"os"
	"path/filepath"

	"shakapacker-go/internal/config"
	"shakapacker-go/internal/pkgmanager"
	"shakapacker-go/internal/settings"

	"github.com/charmbracelet/log"
)

const serveCommand = "serve"

type Runner struct {
	settings  *settings.Settings
	logger    *log.Logger
	launcher  Launcher
	portCheck func(dev config.DevServer, configPath string) error
	binExists func(path string) bool
}

type Option func(*Runner)

func WithLogger(logger *log.Logger) Option {
	return func(r *Runner) { r.logger = logger }
}

func WithLauncher(l Launcher) Option {
	return func(r *Runner) { r.launcher = l }
}

func WithPortCheck(fn func(dev config.DevServer, configPath string) error) Option {
	return func(r *Runner) { r.portCheck = fn }
}

// WithLocalBinaryCheck replaces the node_modules/.bin existence check.
func WithLocalBinaryCheck(fn func(path string) bool) Option {
	return func(r *Runner) { r.binExists = fn }
}

func New(s *settings.Settings, opts ...Option) *Runner {
	r := &Runner{
		settings:  s,
		launcher:  ProcessLauncher{},
		portCheck: CheckPort,
		binExists: fileExists,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "shakapacker"})
	}
	return r
}

// Invocation is everything needed to launch the dev server.
type Invocation struct {
	Command  []string
	Argv     []string
	Env      map[string]string
	Dir      string
	Strategy Strategy
	Manager  pkgmanager.Manager
	Config   *config.Config
}

// Plan resolves the command and environment for argv without checking the
// port or launching anything.
func (r *Runner) Plan(argv []string) (*Invocation, error) {
	s := r.settings
	for _, name := range s.Deprecated {
		r.logger.Warn("deprecated environment variable, use the SHAKAPACKER_ name instead",
			"name", name, "replacement", settings.CanonicalName(name))
	}

	cfg, err := r.loadConfig()
	if err != nil {
		return nil, err
	}
	if err := DetectUnsupportedSwitches(argv); err != nil {
		return nil, err
	}
	argv, debug := StripDebugSwitches(argv)

	tool := cfg.AssetsBundler
	args := []string{serveCommand, "--config", cfg.BundlerConfigPath(s.AppPath)}
	args = append(args, InferFlags(cfg.DevServer, argv)...)
	args = append(args, argv...)

	local := filepath.Join(s.NodeModulesBinPath, tool)
	req := ResolveRequest{
		Tool:              tool,
		Args:              args,
		LocalBinary:       local,
		LocalBinaryExists: r.binExists(local),
	}
	if !req.LocalBinaryExists && s.UsePackageJSON {
		mgr, err := pkgmanager.Detect(s.AppPath, s.FallbackManager)
		if err != nil {
			return nil, err
		}
		req.Manager = mgr
	}
	command, strategy := ResolveCommand(req)

	return &Invocation{
		Command:  command,
		Argv:     argv,
		Env:      ComposeEnv(s, cfg, serveCommand, debug),
		Dir:      s.AppPath,
		Strategy: strategy,
		Manager:  req.Manager,
		Config:   cfg,
	}, nil
}

// Run plans the invocation, checks the dev server port and replaces the
// current process with the dev server. It only returns on failure.
func (r *Runner) Run(argv []string) error {
	inv, err := r.Plan(argv)
	if err != nil {
		return err
	}
	if err := r.portCheck(inv.Config.DevServer, inv.Config.Path); err != nil {
		return err
	}
	r.logger.Debug("starting dev server",
		"strategy", inv.Strategy, "dir", inv.Dir, "command", shellJoin(inv.Command))
	return r.launcher.Exec(inv.Command, MergeEnv(r.settings.Environ, inv.Env), inv.Dir)
}

func (r *Runner) loadConfig() (*config.Config, error) {
	s := r.settings
	path, err := config.ResolveConfigPath(s.ConfigPath, s.AppPath)
	if err != nil {
		return nil, err
	}
	if config.IsLegacyPath(path) {
		r.logger.Warn("config/webpacker.yml is deprecated, rename it to config/shakapacker.yml", "path", path)
	}
	cfg, err := config.LoadConfig(path, s.RailsEnv)
	if err != nil {
		return nil, err
	}
	if cfg.FellBack {
		r.logger.Warn("configuration section not found, using production", "env", s.RailsEnv, "path", path)
	}
	if err := cfg.DevServer.ApplyOverrides(s.DevServerEnv); err != nil {
		return nil, err
	}
	return cfg, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
