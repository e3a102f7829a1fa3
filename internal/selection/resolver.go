package selection

import (
	"fmt"
	"strings"

	"github.com/davidpdrsn/git-branch-picker/internal/catalog"
	"github.com/davidpdrsn/git-branch-picker/internal/presentation"
)

const (
	noMatchingBranchTemplateConstant = "no branch matches selected line %q"
	columnBoundaryConstant           = ' '
	trailingLineBreakCutsetConstant  = "\r\n"
)

// OutcomeKind distinguishes a resolved selection from a cancelled one.
type OutcomeKind int

// Supported outcome kinds.
const (
	OutcomeCancelled OutcomeKind = iota
	OutcomeSelected
)

// PickResult is what a picker reports: the chosen line verbatim, or Selected false when the operator backed out.
type PickResult struct {
	Line     string
	Selected bool
}

// Outcome is the terminal result of the selection step.
type Outcome struct {
	Kind   OutcomeKind
	Record catalog.BranchRecord
}

// NoMatchingBranchError reports a chosen line that does not correspond to any rendered branch.
type NoMatchingBranchError struct {
	Line string
}

// Error describes the unmatched line.
func (matchError *NoMatchingBranchError) Error() string {
	return fmt.Sprintf(noMatchingBranchTemplateConstant, matchError.Line)
}

// Resolve maps a pick back to the record it was rendered from.
func Resolve(renderedLines []presentation.RenderedLine, pick PickResult) (Outcome, error) {
	if !pick.Selected {
		return Outcome{Kind: OutcomeCancelled}, nil
	}

	chosenLine := strings.TrimRight(pick.Line, trailingLineBreakCutsetConstant)
	for _, renderedLine := range renderedLines {
		if renderedLine.Text == chosenLine {
			return Outcome{Kind: OutcomeSelected, Record: renderedLine.Record}, nil
		}
	}

	matchedIndex := -1
	for lineIndex, renderedLine := range renderedLines {
		branchName := renderedLine.Record.Name
		if !startsWithColumn(chosenLine, branchName) {
			continue
		}
		if matchedIndex < 0 || len(branchName) > len(renderedLines[matchedIndex].Record.Name) {
			matchedIndex = lineIndex
		}
	}
	if matchedIndex < 0 {
		return Outcome{}, &NoMatchingBranchError{Line: chosenLine}
	}

	return Outcome{Kind: OutcomeSelected, Record: renderedLines[matchedIndex].Record}, nil
}

// startsWithColumn reports whether line is branchName alone or branchName followed by column padding.
func startsWithColumn(line string, branchName string) bool {
	if len(branchName) == 0 || !strings.HasPrefix(line, branchName) {
		return false
	}
	return len(line) == len(branchName) || line[len(branchName)] == columnBoundaryConstant
}
