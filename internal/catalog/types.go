package catalog

import (
	"errors"
	"fmt"
	"time"
)

const (
	invalidBranchNameTemplateConstant       = "invalid branch name %q: not valid UTF-8 text"
	emptyBranchNameMessageConstant          = "invalid branch name: empty"
	unresolvableBranchTemplateConstant      = "branch %s (%s) cannot be resolved to a commit: %v"
	repositoryErrorTemplateConstant         = "repository error while %s: %v"
	duplicateBranchNamesTemplateConstant    = "duplicate branch names %v"
	operationListingBranchesConstant        = "listing local branches"
	operationValidatingCatalogConstant      = "validating branch catalog"
	repositoryManagerMissingMessageConstant = "repository manager not configured"
)

// ErrRepositoryManagerNotConfigured indicates the builder was constructed without a repository manager.
var ErrRepositoryManagerNotConfigured = errors.New(repositoryManagerMissingMessageConstant)

// BranchRecord describes one local branch.
type BranchRecord struct {
	Name         string
	HeadCommitID string
	// CommittedAt is the committer's wall clock at commit time, expressed in the display location.
	CommittedAt time.Time
}

// Catalog lists branch records most recent first.
type Catalog []BranchRecord

// Names returns branch names in catalog order.
func (catalog Catalog) Names() []string {
	names := make([]string, 0, len(catalog))
	for _, record := range catalog {
		names = append(names, record.Name)
	}
	return names
}

// InvalidBranchNameError reports a branch name that cannot be rendered or matched.
type InvalidBranchNameError struct {
	Name string
}

// Error describes the invalid name.
func (nameError *InvalidBranchNameError) Error() string {
	if len(nameError.Name) == 0 {
		return emptyBranchNameMessageConstant
	}
	return fmt.Sprintf(invalidBranchNameTemplateConstant, nameError.Name)
}

// UnresolvableBranchError reports a branch whose head commit or its timestamp could not be read.
type UnresolvableBranchError struct {
	Name     string
	CommitID string
	Cause    error
}

// Error describes the unresolvable branch.
func (branchError *UnresolvableBranchError) Error() string {
	return fmt.Sprintf(unresolvableBranchTemplateConstant, branchError.Name, branchError.CommitID, branchError.Cause)
}

// Unwrap exposes the underlying failure.
func (branchError *UnresolvableBranchError) Unwrap() error {
	return branchError.Cause
}

// RepositoryError reports a failure to enumerate branches or an enumeration that breaks catalog invariants.
type RepositoryError struct {
	Operation string
	Cause     error
}

// Error describes the repository failure.
func (repositoryError *RepositoryError) Error() string {
	return fmt.Sprintf(repositoryErrorTemplateConstant, repositoryError.Operation, repositoryError.Cause)
}

// Unwrap exposes the underlying failure.
func (repositoryError *RepositoryError) Unwrap() error {
	return repositoryError.Cause
}
