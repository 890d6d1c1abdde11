package domain

import (
	"fmt"
	"strings"
)

// DanglingReference is a reference in a case that does not resolve inside the same case.
type DanglingReference struct {
	Table  string
	Column string
	RowID  int64
	Target string
}

// String renders the reference as table.column[row] -> target.
func (d DanglingReference) String() string {
	return fmt.Sprintf("%s.%s[%d] -> %s", d.Table, d.Column, d.RowID, d.Target)
}

// VerifyReport summarizes a referential-closure traversal of a case bundle.
type VerifyReport struct {
	CaseID       string
	CaseName     string
	Objects      int
	ContentFiles int
	// Dangling lists schema references that point outside the case.
	Dangling []DanglingReference
	// MissingContent lists content locations with no file in the content area.
	MissingContent []string
	// CorruptContent lists content files whose bytes no longer match their name.
	CorruptContent []string
	// Incomplete is true when the bundle still carries the staging marker.
	Incomplete bool
}

// OK reports whether the case is self-contained and complete.
func (r *VerifyReport) OK() bool {
	return len(r.Dangling) == 0 && len(r.MissingContent) == 0 && len(r.CorruptContent) == 0 && !r.Incomplete
}

// Summary returns a one-line description of the problems found.
func (r *VerifyReport) Summary() string {
	if r.OK() {
		return "ok"
	}
	var parts []string
	if n := len(r.Dangling); n > 0 {
		parts = append(parts, fmt.Sprintf("%d dangling references", n))
	}
	if n := len(r.MissingContent); n > 0 {
		parts = append(parts, fmt.Sprintf("%d missing content files", n))
	}
	if n := len(r.CorruptContent); n > 0 {
		parts = append(parts, fmt.Sprintf("%d corrupt content files", n))
	}
	if r.Incomplete {
		parts = append(parts, "marked incomplete")
	}
	return strings.Join(parts, ", ")
}
