package runner

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"shakapacker-go/internal/config"
)

func TestDoctor(t *testing.T) {
	app := newTestApp(t)
	r, fl := testRun{
		app: app,
		env: []string{"SHAKAPACKER_USE_PACKAGE_JSON_GEM=true", "PACKAGE_JSON_FALLBACK_MANAGER=bun", "WEBPACKER_ASSET_HOST=cdn.test"},
	}.runner()

	var buf bytes.Buffer
	if err := r.Doctor(&buf, []string{"--quiet"}); err != nil {
		t.Fatalf("Doctor: %v", err)
	}
	if fl.calls != 0 {
		t.Error("Doctor must not launch")
	}

	out := buf.String()
	for _, want := range []string{
		filepath.Join(app, "config", "shakapacker.yml"),
		"localhost:3035",
		"bun",
		"package-manager",
		"bun run webpack serve --config",
		"--quiet",
		"WEBPACK_SERVE",
		"SHAKAPACKER_ASSET_HOST",
		"WEBPACKER_ASSET_HOST",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("doctor output missing %q:\n%s", want, out)
		}
	}
}

func TestDoctor_PropagatesErrors(t *testing.T) {
	r, _ := testRun{app: t.TempDir()}.runner()
	var buf bytes.Buffer
	if err := r.Doctor(&buf, nil); !errors.Is(err, config.ErrConfigNotFound) {
		t.Errorf("want ErrConfigNotFound, got %v", err)
	}
}

func Test_valueOr(t *testing.T) {
	if got := valueOr("", "fallback"); got != "fallback" {
		t.Errorf("valueOr(empty) = %q", got)
	}
	if got := valueOr("x", "fallback"); got != "x" {
		t.Errorf("valueOr(x) = %q", got)
	}
}
