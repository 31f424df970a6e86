package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	json "github.com/goccy/go-json"
	cli "github.com/urfave/cli/v3"

	"csssel/config"
	"csssel/match"
	"csssel/recipe"
	"csssel/selector"
	"csssel/state"
)

const testRecipe = `version: 1
selectors:
  - name: item10
    parts:
      - element: li
      - pseudoClass: last-child
  - name: item2
    parts:
      - element: li
      - class: active
    properties:
      color: red
  - name: broken
    parts:
      - id: a
      - id: b
`

const testPage = `<html><body><ul><li>one</li><li class="active">two</li><li>three</li></ul></body></html>`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func newCommand(action cli.ActionFunc) *cli.Command {
	return &cli.Command{
		Name:   "test",
		Action: action,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "format"},
			&cli.BoolFlag{Name: "sort"},
			&cli.BoolFlag{Name: "nodes"},
			&cli.BoolFlag{Name: "default"},
		},
	}
}

func run(t *testing.T, cfg *config.Config, action cli.ActionFunc, args ...string) error {
	t.Helper()
	ctx := state.ContextWithEnv(context.Background())
	state.EnvFromContext(ctx).Cfg = cfg
	return newCommand(action).Run(ctx, append([]string{"test"}, args...))
}

func TestBuild_Text(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "recipe.yaml", testRecipe)
	dst := filepath.Join(dir, "out.txt")

	err := run(t, nil, Build, "--sort", src, dst)
	if err == nil || !errors.Is(err, selector.ErrDuplicatePart) {
		t.Fatalf("Build() error = %v, want duplicate part error", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("output was not written: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %q", lines)
	}
	if !strings.HasPrefix(lines[0], "item2") || !strings.HasSuffix(lines[0], "li.active") {
		t.Errorf("line 0 = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "item10") || !strings.HasSuffix(lines[1], "li:last-child") {
		t.Errorf("line 1 = %q", lines[1])
	}
}

func TestBuild_JSONAndCSS(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "recipe.yaml", strings.Split(testRecipe, "  - name: broken")[0])

	dst := filepath.Join(dir, "out.json")
	if err := run(t, nil, Build, "--format", "json", src, dst); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("output was not written: %v", err)
	}
	var results []recipe.Result
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("output is not valid json: %v\n%s", err, data)
	}
	if len(results) != 2 || results[0].Name != "item10" || results[1].Specificity != (selector.Specificity{0, 1, 1}) {
		t.Errorf("unexpected results: %+v", results)
	}

	// configured format is used when flag is absent
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Output.Format = config.OutputFmtCss
	dst = filepath.Join(dir, "out.css")
	if err := run(t, cfg, Build, src, dst); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	data, _ = os.ReadFile(dst)
	if want := "li.active {\n  color: red;\n}\n"; string(data) != want {
		t.Errorf("css output = %q, want %q", data, want)
	}
}

func TestBuild_CSSImports(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "recipe.yaml", strings.Replace(strings.Split(testRecipe, "  - name: broken")[0],
		"version: 1\n", "version: 1\nimports:\n  - base.css\n", 1))

	dst := filepath.Join(dir, "out.css")
	if err := run(t, nil, Build, "--format", "css", src, dst); err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("output was not written: %v", err)
	}
	if want := "@import url(\"base.css\");\n\nli.active {\n  color: red;\n}\n"; string(data) != want {
		t.Errorf("css output = %q, want %q", data, want)
	}
}

func TestBuild_Errors(t *testing.T) {
	dir := t.TempDir()

	if err := run(t, nil, Build); err == nil {
		t.Error("expected error without recipe")
	}
	if err := run(t, nil, Build, filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing recipe")
	}
	src := writeFile(t, dir, "recipe.yaml", testRecipe)
	if err := run(t, nil, Build, "--format", "xml", src); !errors.Is(err, config.ErrInvalidOutputFmt) {
		t.Errorf("Build() error = %v, want ErrInvalidOutputFmt", err)
	}
}

func TestMatch(t *testing.T) {
	dir := t.TempDir()
	src := writeFile(t, dir, "recipe.yaml", testRecipe)
	page := writeFile(t, dir, "page.html", testPage)
	dst := filepath.Join(dir, "out.json")

	err := run(t, nil, Match, "--format", "json", "--nodes", src, page, dst)
	if !errors.Is(err, selector.ErrDuplicatePart) {
		t.Fatalf("Match() error = %v, want duplicate part error", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("output was not written: %v", err)
	}
	var results []match.Result
	if err := json.Unmarshal(data, &results); err != nil {
		t.Fatalf("output is not valid json: %v\n%s", err, data)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %+v", results)
	}
	if results[0].Name != "item10" || results[0].Count != 1 || results[0].Nodes[0] != "<li>three</li>" {
		t.Errorf("result 0 = %+v", results[0])
	}
	if results[1].Name != "item2" || results[1].Count != 1 {
		t.Errorf("result 1 = %+v", results[1])
	}

	if err := run(t, nil, Match, "--format", "css", src, page); err == nil {
		t.Error("expected error for css match output")
	}
	if err := run(t, nil, Match, src); err == nil {
		t.Error("expected error without html document")
	}
}

func TestDumpConfig(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Builder.Ordering = selector.OrderingCanonical

	dst := filepath.Join(dir, "actual.yaml")
	if err := run(t, cfg, DumpConfig, dst); err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}
	data, _ := os.ReadFile(dst)
	if !strings.Contains(string(data), "ordering: canonical") {
		t.Errorf("actual configuration not dumped:\n%s", data)
	}

	dst = filepath.Join(dir, "default.yaml")
	if err := run(t, cfg, DumpConfig, "--default", dst); err != nil {
		t.Fatalf("DumpConfig() error = %v", err)
	}
	data, _ = os.ReadFile(dst)
	if !strings.Contains(string(data), "ordering: insertion") {
		t.Errorf("default configuration not dumped:\n%s", data)
	}
}
