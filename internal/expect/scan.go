package expect

import (
	"go/scanner"
	"go/token"
	"regexp"
	"strings"
)

// Directive grammar. The whole comment must match: no prefix or suffix
// around the directive is recognized.
var (
	expectTypeRx  = regexp.MustCompile(`^// \$ExpectType (.*)$`)
	expectErrorRx = regexp.MustCompile(`^// \$ExpectError$`)
)

// Scan tokenizes the raw source text and extracts line-indexed assertions.
//
// A directive comment that is the first token on its own line applies to the
// next line; a directive trailing other tokens applies to the line of the
// preceding non-trivia token. The asymmetry follows the writing convention:
// annotations sit either directly above an expression or trail it.
//
// Scanning is read-only over the text; malformed source still scans, the
// checker reports its own diagnostics for it.
func Scan(text *SourceText) *Table {
	table := NewTable()

	fset := token.NewFileSet()
	file := fset.AddFile(text.Name(), fset.Base(), text.Len())

	var s scanner.Scanner
	s.Init(file, text.Bytes(), nil, scanner.ScanComments)

	// Line of the most recent non-trivia token. Automatically inserted
	// semicolons are positioned at the end of the line they terminate, so
	// they never move this marker onto a comment-only line.
	lastTokenLine := -1

	for {
		pos, tok, lit := s.Scan()
		if tok == token.EOF {
			break
		}

		line := text.LineFor(file.Offset(pos))

		if tok != token.COMMENT {
			lastTokenLine = line
			continue
		}
		if !strings.HasPrefix(lit, "//") {
			// Block comments are trivia with no directive grammar.
			continue
		}

		target := line + 1
		if line == lastTokenLine {
			target = lastTokenLine
		}

		if expectErrorRx.MatchString(lit) {
			table.addError(target)
			continue
		}
		if m := expectTypeRx.FindStringSubmatch(lit); m != nil {
			table.addType(target, m[1])
		}
	}

	return table
}
