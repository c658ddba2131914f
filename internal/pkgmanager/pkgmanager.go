// Package pkgmanager unifies the exec syntax of the JavaScript package
// managers the dev server can be launched through.
package pkgmanager

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	NPM         = "npm"
	YarnClassic = "yarn_classic"
	YarnBerry   = "yarn_berry"
	PNPM        = "pnpm"
	Bun         = "bun"
)

var ErrUnknownManager = errors.New("unknown package manager")

type Manager interface {
	// Name is the family name, e.g. "yarn_berry".
	Name() string
	// Binary is the executable the family is invoked through.
	Binary() string
	// NativeExecCommand returns the command that runs a locally installed
	// package binary through this manager.
	NativeExecCommand(tool string, args []string) []string
}

type manager struct {
	name   string
	binary string
	prefix []string
}

func (m manager) Name() string   { return m.name }
func (m manager) Binary() string { return m.binary }

func (m manager) NativeExecCommand(tool string, args []string) []string {
	out := make([]string, 0, 1+len(m.prefix)+1+len(args))
	out = append(out, m.binary)
	out = append(out, m.prefix...)
	out = append(out, tool)
	return append(out, args...)
}

var families = map[string]manager{
	NPM:         {name: NPM, binary: "npm", prefix: []string{"exec", "--no", "--"}},
	YarnClassic: {name: YarnClassic, binary: "yarn", prefix: []string{"run"}},
	YarnBerry:   {name: YarnBerry, binary: "yarn", prefix: []string{"exec"}},
	PNPM:        {name: PNPM, binary: "pnpm", prefix: []string{"exec"}},
	Bun:         {name: Bun, binary: "bun", prefix: []string{"run"}},
}

// Families lists the supported family names.
func Families() []string {
	return []string{NPM, YarnClassic, YarnBerry, PNPM, Bun}
}

// ForName returns the manager for a family name.
func ForName(name string) (Manager, error) {
	m, ok := families[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (expected one of %s)", ErrUnknownManager, name, strings.Join(Families(), ", "))
	}
	return m, nil
}

type packageJSON struct {
	PackageManager string `json:"packageManager"`
}

// Detect reads appPath/package.json and picks the family named by its
// packageManager field, or fallback when the field is absent.
func Detect(appPath string, fallback string) (Manager, error) {
	path := filepath.Join(appPath, "package.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if strings.TrimSpace(pkg.PackageManager) == "" {
		return ForName(fallback)
	}
	return ForName(familyFromField(pkg.PackageManager))
}

// familyFromField maps a packageManager value ("yarn@3.6.1+sha224.abc") to a
// family name.
func familyFromField(field string) string {
	name, version, _ := strings.Cut(strings.TrimSpace(field), "@")
	if name != "yarn" {
		return name
	}
	major, _, _ := strings.Cut(version, ".")
	if n, err := strconv.Atoi(major); err == nil && n >= 2 {
		return YarnBerry
	}
	return YarnClassic
}
