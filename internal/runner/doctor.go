package runner

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"shakapacker-go/internal/settings"

	"github.com/charmbracelet/lipgloss"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle   = lipgloss.NewStyle().Faint(true)
)

// Doctor writes the resolved configuration and the command Run would launch.
func (r *Runner) Doctor(w io.Writer, argv []string) error {
	inv, err := r.Plan(argv)
	if err != nil {
		return err
	}
	s := r.settings
	cfg := inv.Config
	dev := cfg.DevServer

	manager := "(disabled)"
	if inv.Manager != nil {
		manager = inv.Manager.Name()
	} else if s.UsePackageJSON {
		manager = "(not needed)"
	}

	fmt.Fprintln(w, headingStyle.Render("Shakapacker dev server doctor"))
	fmt.Fprintln(w, strings.Repeat("-", 40))
	row(w, "App path", s.AppPath)
	row(w, "Config path", cfg.Path)
	row(w, "Rails env", valueOr(cfg.Env, s.RailsEnv))
	row(w, "Node env", s.NodeEnv)
	row(w, "Bundler", cfg.AssetsBundler)
	row(w, "node_modules bin", s.NodeModulesBinPath)
	row(w, "Package manager", manager)

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Dev server"))
	row(w, "Address", dev.Address())
	row(w, "Protocol", dev.Protocol())
	row(w, "HMR", fmt.Sprint(dev.HMR))
	row(w, "Pretty", fmt.Sprint(dev.Pretty))
	row(w, "Inject CLI flags", fmt.Sprint(dev.InjectCLIFlags))

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Command"))
	row(w, "Strategy", inv.Strategy.String())
	fmt.Fprintf(w, "  %s\n", shellJoin(inv.Command))

	fmt.Fprintln(w)
	fmt.Fprintln(w, headingStyle.Render("Environment"))
	keys := make([]string, 0, len(inv.Env))
	for k := range inv.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		row(w, k, valueOr(inv.Env[k], "(empty)"))
	}
	for _, name := range s.Deprecated {
		row(w, name, "deprecated, read as "+settings.CanonicalName(name))
	}
	return nil
}

func row(w io.Writer, label, value string) {
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-20s", label+":")), value)
}

func valueOr(v string, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}
