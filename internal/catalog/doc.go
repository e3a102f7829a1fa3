// Package catalog turns the local branches of a checkout into a Catalog: one
// BranchRecord per branch, carrying the committer's wall-clock time of the
// branch head, ordered most recent first. Enumeration order breaks ties.
//
// A branch that cannot be named or dated fails the whole build; no branch is
// ever dropped from the catalog.
package catalog
