package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gork-labs/bdd2doc/internal/cache"
	"github.com/gork-labs/bdd2doc/internal/generator"
)

const specsDir = "../../testdata/specs"

// run executes the root command with args and returns what it printed.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := NewRootCommand(&stdout, &stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestExecuteHelp(t *testing.T) {
	stdout, _, err := run(t, "--help")
	if err != nil {
		t.Fatalf("Expected no error but got: %v", err)
	}
	for _, sub := range []string{"find", "generate", "validate"} {
		if !strings.Contains(stdout, sub) {
			t.Errorf("help output does not list %q", sub)
		}
	}
}

func TestFind(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		wantKind generator.MemberKind
		wantName string
	}{
		{"method by params", "js-MyComponent.SetDataSource(dataSource)", generator.KindMethod, "SetDataSource"},
		{"static method", "js-MyComponent.Create.static(options)", generator.KindMethod, "Create"},
		{"event", "js-MyComponent.OptionChanged", generator.KindEvent, "OptionChanged"},
		{"field", "js-MyComponent.Count", generator.KindField, "Count"},
		{"class", "js-MyComponent", generator.KindClass, "MyComponent"},
	}

	cacheDir := t.TempDir()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := run(t, "find", "--dir", specsDir, "--name", tt.key, "--cache-dir", cacheDir)
			if err != nil {
				t.Fatalf("find failed: %v", err)
			}
			if strings.Count(stdout, "\n") != 1 {
				t.Errorf("expected one line of compact JSON, got %q", stdout)
			}
			var got map[string]interface{}
			if err := json.Unmarshal([]byte(stdout), &got); err != nil {
				t.Fatalf("output is not JSON: %v", err)
			}
			if got["name"] != tt.wantName {
				t.Errorf("name: got %v, want %s", got["name"], tt.wantName)
			}
			switch tt.wantKind {
			case generator.KindMethod:
				if _, ok := got["returnType"]; !ok {
					t.Error("method output has no returnType")
				}
			case generator.KindEvent:
				if got["handlerType"] != "SomeTypedEventHandler" {
					t.Errorf("handlerType: got %v", got["handlerType"])
				}
			case generator.KindField:
				if got["defaultValue"] != generator.DefaultFieldValue {
					t.Errorf("defaultValue: got %v", got["defaultValue"])
				}
			case generator.KindClass:
				if _, ok := got["methods"]; ok {
					t.Error("class summary must not carry members")
				}
			}
		})
	}
}

func TestFindMisses(t *testing.T) {
	cacheDir := t.TempDir()

	stdout, _, err := run(t, "find", "--dir", specsDir, "--name", "js-Button.Label", "--cache-dir", cacheDir)
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stdout != msgNotFound+"\n" {
		t.Errorf("non-global class: got %q, want %q", stdout, msgNotFound)
	}

	empty := t.TempDir()
	stdout, stderr, err := run(t, "find", "--dir", empty, "--name", "js-A", "--cache", "none")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.Contains(stderr, msgNoDefinitions) {
		t.Errorf("expected warning, got %q", stderr)
	}
}

func TestFindFlagErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"missing name", []string{"find", "--dir", specsDir}},
		{"missing dir", []string{"find", "--name", "js-A"}},
		{"cbor not allowed", []string{"find", "--dir", specsDir, "--name", "js-A", "--format", "cbor"}},
		{"bad cache kind", []string{"find", "--dir", specsDir, "--name", "js-A", "--cache", "redis"}},
		{"bad log level", []string{"find", "--dir", specsDir, "--name", "js-A", "--log-level", "loud"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, tt.args...); err == nil {
				t.Error("Expected error but got none")
			}
		})
	}
}

func TestFindYAML(t *testing.T) {
	stdout, _, err := run(t, "find", "--dir", specsDir, "--name", "js-MyComponent.Count", "--format", "yaml", "--cache", "none")
	if err != nil {
		t.Fatalf("find failed: %v", err)
	}
	if !strings.Contains(stdout, "name: Count") || !strings.Contains(stdout, "type: number") {
		t.Errorf("unexpected yaml output:\n%s", stdout)
	}
}

func TestFindWritesCache(t *testing.T) {
	tests := []struct {
		kind string
		file string
	}{
		{"json", cache.FileName},
		{"sqlite", cache.SQLiteFileName},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			cacheDir := filepath.Join(t.TempDir(), "nested")
			if _, _, err := run(t, "find", "--dir", specsDir, "--name", "js-MyComponent", "--cache", tt.kind, "--cache-dir", cacheDir); err != nil {
				t.Fatalf("find failed: %v", err)
			}
			if _, err := os.Stat(filepath.Join(cacheDir, tt.file)); err != nil {
				t.Errorf("cache file not written: %v", err)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	out := filepath.Join(t.TempDir(), "api.json")
	if _, _, err := run(t, "generate", "--dir", specsDir, "--output", out, "--cache", "none"); err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	var api generator.APIModel
	if err := json.Unmarshal(data, &api); err != nil {
		t.Fatalf("output is not a model: %v", err)
	}
	if len(api.Namespaces) != 2 {
		t.Fatalf("namespaces: got %d, want 2", len(api.Namespaces))
	}

	stdout, _, err := run(t, "validate", out)
	if err != nil {
		t.Fatalf("generated document does not validate: %v", err)
	}
	if !strings.Contains(stdout, "valid (2 namespaces, 2 classes") {
		t.Errorf("unexpected summary: %q", stdout)
	}
}

func TestGenerateStdout(t *testing.T) {
	tests := []struct {
		format string
		check  func(string) bool
	}{
		{"json", func(s string) bool { return strings.HasPrefix(s, "{\n  \"namespaces\"") }},
		{"yaml", func(s string) bool { return strings.HasPrefix(s, "namespaces:") }},
		{"cbor", func(s string) bool { return len(s) > 0 && !strings.Contains(s, "namespaces:") }},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			stdout, _, err := run(t, "generate", "--dir", specsDir, "--format", tt.format, "--cache", "none")
			if err != nil {
				t.Fatalf("generate failed: %v", err)
			}
			if !tt.check(stdout) {
				t.Errorf("unexpected %s output: %q", tt.format, stdout)
			}
		})
	}
}

func TestGenerateMissingOutputDir(t *testing.T) {
	out := filepath.Join(t.TempDir(), "missing", "api.json")
	_, _, err := run(t, "generate", "--dir", specsDir, "--output", out, "--cache", "none")
	if err == nil || !strings.Contains(err.Error(), "does not exist") {
		t.Errorf("expected missing directory error, got %v", err)
	}
}

func TestValidateInvalidDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"classes": []}`), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := run(t, "validate", path)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitError, got %v", err)
	}
	if exitErr.Code != 2 {
		t.Errorf("exit code: got %d, want 2", exitErr.Code)
	}
	if !strings.Contains(exitErr.Message, path) {
		t.Errorf("message %q does not name the file", exitErr.Message)
	}
}
