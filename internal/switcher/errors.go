package switcher

import (
	"errors"
	"fmt"
)

const (
	workingTreeNotCleanMessageConstant      = "working tree not clean"
	noSelectionMessageConstant              = "No selection made"
	noBranchesMessageConstant               = "no local branches to choose from"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
	pickerMissingMessageConstant            = "picker not configured"
	checkoutFailureTemplateConstant         = "unable to check out branch %s: %v"
	selectionFailureTemplateConstant        = "branch selection failed: %w"
)

var (
	// ErrWorkingTreeNotClean is returned before any branch is listed when the checkout has pending changes.
	ErrWorkingTreeNotClean = errors.New(workingTreeNotCleanMessageConstant)
	// ErrNoSelection is returned when the operator leaves the picker without choosing a branch.
	ErrNoSelection = errors.New(noSelectionMessageConstant)
	// ErrNoBranches is returned when the repository has no local branches.
	ErrNoBranches = errors.New(noBranchesMessageConstant)
	// ErrRepositoryManagerNotConfigured indicates the service was built without a repository manager.
	ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)
	// ErrPickerNotConfigured indicates the service was built without a picker.
	ErrPickerNotConfigured = errors.New(pickerMissingMessageConstant)
)

// CheckoutFailureError reports a failed checkout of the selected branch. The working tree is left as git left it.
type CheckoutFailureError struct {
	BranchName string
	Cause      error
}

// Error describes the failed checkout.
func (checkoutError *CheckoutFailureError) Error() string {
	return fmt.Sprintf(checkoutFailureTemplateConstant, checkoutError.BranchName, checkoutError.Cause)
}

// Unwrap exposes the underlying failure.
func (checkoutError *CheckoutFailureError) Unwrap() error {
	return checkoutError.Cause
}
