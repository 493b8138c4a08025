package verify

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/sirkon/deepequal"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "typeexpect.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %s", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `versions:
  - name: "1.18"
    go: go1.18
  - name: "1.21"
    go: go1.21
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}

	expected := &Config{
		Versions: []VersionSpec{
			{Name: "1.18", GoVersion: "go1.18"},
			{Name: "1.21", GoVersion: "go1.21"},
		},
	}
	if !reflect.DeepEqual(expected, cfg) {
		deepequal.SideBySide(t, "config", expected, cfg)
	}
}

func TestLoadConfigRejects(t *testing.T) {
	type test struct {
		name    string
		content string
		errPart string
	}
	testingFunc := func(tt test) func(t *testing.T) {
		return func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("an error was expected")
			}
			if !strings.Contains(err.Error(), tt.errPart) {
				t.Fatalf("error %q was expected to mention %q", err, tt.errPart)
			}
		}
	}

	tests := []test{
		{
			name:    "reserved-next-name",
			content: "versions:\n  - name: next\n    go: go1.21\n",
			errPart: "reserved",
		},
		{
			name:    "duplicate-name",
			content: "versions:\n  - name: \"1.21\"\n    go: go1.21\n  - name: \"1.21\"\n    go: go1.21\n",
			errPart: "twice",
		},
		{
			name:    "missing-go-version",
			content: "versions:\n  - name: \"1.21\"\n",
			errPart: "no go language version",
		},
		{
			name:    "unknown-field",
			content: "versions:\n  - name: \"1.21\"\n    go: go1.21\n    tsconfig: x\n",
			errPart: "field",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, testingFunc(tt))
	}
}
