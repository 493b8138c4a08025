package expect

import (
	"sort"
	"strings"
)

const (
	unionSep        = " | "
	intersectionSep = " & "
)

// NormalizeType canonicalizes a rendered type's textual form so that
// structurally equivalent union/intersection types compare equal regardless
// of member order: union members are sorted lexicographically, and within
// each member the intersection terms are sorted too. One level of
// surrounding parentheses is preserved, with normalization recursing inside.
//
// This is a textual canonicalization, not a structural one: `|` and `&` are
// treated as flat top-level splitters, which is deliberately cheap and
// sufficient for checker-rendered type strings.
func NormalizeType(text string) string {
	members := strings.Split(text, unionSep)
	for i, member := range members {
		members[i] = normalizeIntersection(member)
	}
	sort.Strings(members)
	return strings.Join(members, unionSep)
}

func normalizeIntersection(member string) string {
	if wrappedInParens(member) {
		return "(" + NormalizeType(member[1:len(member)-1]) + ")"
	}
	terms := strings.Split(member, intersectionSep)
	sort.Strings(terms)
	return strings.Join(terms, intersectionSep)
}

// wrappedInParens reports whether the whole segment is one parenthesized
// group, i.e. the leading "(" closes at the very last character. A segment
// like "(A) & (B)" merely starts and ends with parens and must still be
// split on the intersection separator.
func wrappedInParens(s string) bool {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return false
	}
	depth := 0
	for i := 0; i < len(s)-1; i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return false
			}
		}
	}
	return depth == 1
}
