package verify

import (
	"strings"
	"testing"

	"github.com/sirkon/typeexpect/internal/checkers"
	"github.com/sirkon/typeexpect/internal/exprules"
)

// countingProvider wraps a provider to observe construction calls.
type countingProvider struct {
	checkers.Provider
	constructed int
}

func (p *countingProvider) Instance(goVersion string) (*checkers.Instance, error) {
	p.constructed++
	return p.Provider.Instance(goVersion)
}

func TestSessionVerifyFilePasses(t *testing.T) {
	const name = "case.go"
	provider := checkers.Snippet(name, "package p\n\nvar x = 1 // $ExpectType int\n")

	session := NewSession(provider, []VersionSpec{
		{Name: "1.18", GoVersion: "go1.18"},
		{Name: "1.21", GoVersion: "go1.21"},
	})
	failures, err := session.VerifyFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 0 {
		t.Fatalf("no failures were expected, got %v", failures)
	}
}

func TestSessionReportsBoundaryFailures(t *testing.T) {
	const name = "case.go"
	provider := checkers.Snippet(name, "package p\n\nvar x = 1 // $ExpectType string\n")

	session := NewSession(provider, []VersionSpec{
		{Name: "1.18", GoVersion: "go1.18"},
		{Name: "1.21", GoVersion: "go1.21"},
	})
	failures, err := session.VerifyFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 1 {
		t.Fatalf("exactly one failure was expected, got %v", failures)
	}
	f := failures[0]
	if f.Rule != exprules.TypeMismatch() {
		t.Fatalf("%s was expected, got %s", exprules.TypeMismatch(), f.Rule)
	}
	if !strings.Contains(f.Message, "fails on 1.21") {
		t.Fatalf("the boundary must be the newest configured version, got %q", f.Message)
	}
	if !strings.Contains(f.Message, "not yet supported") {
		t.Fatalf("remediation must reference the implicit %q version, got %q", NextName, f.Message)
	}
}

func TestSessionMemoizesInstances(t *testing.T) {
	const name = "case.go"
	provider := &countingProvider{
		Provider: checkers.Snippet(name, "package p\n\nvar x = 1 // $ExpectType string\n"),
	}

	session := NewSession(provider, []VersionSpec{
		{Name: "1.18", GoVersion: "go1.18"},
		{Name: "1.21", GoVersion: "go1.21"},
	})
	if _, err := session.VerifyFile(name); err != nil {
		t.Fatal(err)
	}
	after := provider.constructed
	if after == 0 {
		t.Fatal("instances were expected to be constructed")
	}

	// A second file run over the same session must reuse every instance.
	if _, err := session.VerifyFile(name); err != nil {
		t.Fatal(err)
	}
	if provider.constructed != after {
		t.Fatalf("cached instances were expected, constructions went %d -> %d", after, provider.constructed)
	}
}
