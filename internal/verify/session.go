package verify

import (
	"fmt"
	"sync"

	"github.com/sirkon/typeexpect/internal/checkers"
	"github.com/sirkon/typeexpect/internal/expect"
)

// Session owns the checker instances of one verification run: a provider
// plus a version-name→instance memo. Construction is lazy; an instance,
// once built, lives as long as the session. The mutex makes the cache safe
// for hosts interleaving verification of multiple files.
//
// The session replaces cache keying by a live host object: its lifetime is
// scoped explicitly by the caller instead of relying on collection.
type Session struct {
	provider checkers.Provider
	versions []VersionSpec

	mu        sync.Mutex
	instances map[string]*checkers.Instance
}

// NewSession prepares a verification session over the given provider and
// configured versions (ordered oldest to newest, without the implicit
// "next").
func NewSession(provider checkers.Provider, versions []VersionSpec) *Session {
	return &Session{
		provider:  provider,
		versions:  append([]VersionSpec(nil), versions...),
		instances: make(map[string]*checkers.Instance),
	}
}

// instance returns the memoized checker instance for a version, building it
// on first request. Construction errors propagate to the host unchanged.
func (s *Session) instance(v VersionSpec) (*checkers.Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if inst, ok := s.instances[v.Name]; ok {
		return inst, nil
	}
	inst, err := s.provider.Instance(v.GoVersion)
	if err != nil {
		return nil, err
	}
	s.instances[v.Name] = inst
	return inst, nil
}

// VerifyFile runs the whole pipeline for one file across the session's
// versions and returns the failures of the resolved boundary version. An
// empty result means the file passed. Errors wrapping
// ErrInvariantViolation are fatal for the file.
func (s *Session) VerifyFile(name string) ([]expect.Failure, error) {
	src, err := s.provider.Source(name)
	if err != nil {
		return nil, fmt.Errorf("read source of %s: %w", name, err)
	}
	text := expect.NewSourceText(name, src)

	run := func(v VersionSpec) ([]expect.Failure, error) {
		inst, err := s.instance(v)
		if err != nil {
			return nil, err
		}
		root, tokFile, err := inst.File(name)
		if err != nil {
			return nil, err
		}
		// Queries go through the instance owning this tree, never another.
		return expect.CheckFile(text, tokFile, root, inst.TypeOf, inst.Diagnostics(name)), nil
	}

	return searchVersions(s.versions, run)
}
