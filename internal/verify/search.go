package verify

import (
	"errors"
	"fmt"

	"github.com/sirkon/typeexpect/internal/expect"
)

// ErrInvariantViolation marks a version-search state proven unreachable by
// its own precondition. It is fatal: the run for the file aborts instead of
// producing misleading partial results.
var ErrInvariantViolation = errors.New("version search invariant violation")

// searchVersions finds the failure boundary across checker versions with as
// few pipeline runs as possible. Full pairwise testing is expensive (each
// version needs a constructed analysis context), so only the extremes are
// checked first; the linear backward scan runs only once divergence between
// them is established. The shortcut assumes failures are monotonic in
// version age.
//
//  1. Run "next". Clean means the file passes: no output at all.
//  2. Run the oldest configured version. A clean oldest while "next" fails
//     contradicts monotonicity and surfaces as ErrInvariantViolation rather
//     than being silently trusted either way.
//  3. Scan from the newest configured version backward. The first failing
//     version is the reported boundary; its failures are annotated with the
//     next-higher version so the caller can phrase remediation.
func searchVersions(
	versions []VersionSpec,
	run func(VersionSpec) ([]expect.Failure, error),
) ([]expect.Failure, error) {
	next, err := run(Next)
	if err != nil {
		return nil, err
	}
	if len(next) == 0 {
		return nil, nil
	}

	// Single-version configuration: "next" is the only checker there is.
	if len(versions) == 0 {
		return next, nil
	}

	memo := make(map[string][]expect.Failure, len(versions))
	runMemo := func(v VersionSpec) ([]expect.Failure, error) {
		if cached, ok := memo[v.Name]; ok {
			return cached, nil
		}
		failures, err := run(v)
		if err != nil {
			return nil, err
		}
		memo[v.Name] = failures
		return failures, nil
	}

	oldest, err := runMemo(versions[0])
	if err != nil {
		return nil, err
	}
	if len(oldest) == 0 {
		return nil, fmt.Errorf(
			"%w: %q fails while the oldest configured version %q passes",
			ErrInvariantViolation, NextName, versions[0].Name,
		)
	}

	for i := len(versions) - 1; i >= 0; i-- {
		failures, err := runMemo(versions[i])
		if err != nil {
			return nil, err
		}
		if len(failures) == 0 {
			continue
		}

		higher := Next
		if i+1 < len(versions) {
			higher = versions[i+1]
		}
		return annotateBoundary(failures, versions[i], higher), nil
	}

	return nil, fmt.Errorf(
		"%w: oldest version %q fails but the backward scan found no failing version",
		ErrInvariantViolation, versions[0].Name,
	)
}

// annotateBoundary appends the remediation hint to every failure of the
// boundary version. When the next-higher version is "next" itself, no
// released checker accepts the code yet.
func annotateBoundary(failures []expect.Failure, boundary, higher VersionSpec) []expect.Failure {
	var hint string
	if higher.Name == NextName {
		hint = fmt.Sprintf(
			" (fails on %s, not yet supported by any released checker version)",
			boundary.Name,
		)
	} else {
		hint = fmt.Sprintf(
			" (fails on %s, fix by pinning the minimum supported version to %s)",
			boundary.Name, higher.Name,
		)
	}

	out := make([]expect.Failure, len(failures))
	for i, f := range failures {
		f.Message += hint
		out[i] = f
	}
	return out
}
