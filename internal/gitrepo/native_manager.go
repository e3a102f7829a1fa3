package gitrepo

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/davidpdrsn/git-branch-picker/internal/shared"
)

const (
	currentDirectoryPathConstant              = "."
	secondsPerMinuteConstant                  = 60
	repositoryOpenErrorTemplateConstant       = "unable to open repository at %s: %w"
	worktreeOpenErrorTemplateConstant         = "unable to open working tree: %w"
	invalidCommitIdentifierTemplateConstant   = "invalid commit identifier %q"
	nativeBranchListErrorTemplateConstant     = "unable to list local branches: %w"
	nativeCommitLookupErrorTemplateConstant   = "unable to read commit time of %s: %w"
	nativeCheckoutErrorTemplateConstant       = "unable to check out %s: %w"
	nativeWorktreeStatusErrorTemplateConstant = "unable to read working tree status: %w"
)

// NativeRepositoryManager performs repository operations in-process through go-git.
type NativeRepositoryManager struct {
	openOptions *git.PlainOpenOptions
}

// NewNativeRepositoryManager constructs a go-git backed repository manager.
func NewNativeRepositoryManager() *NativeRepositoryManager {
	return &NativeRepositoryManager{openOptions: &git.PlainOpenOptions{DetectDotGit: true}}
}

// CheckCleanWorktree reports whether the working tree has no staged, unstaged, or untracked changes.
func (manager *NativeRepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	repository, openError := manager.open(repositoryPath)
	if openError != nil {
		return false, openError
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return false, fmt.Errorf(worktreeOpenErrorTemplateConstant, worktreeError)
	}

	status, statusError := worktree.Status()
	if statusError != nil {
		return false, fmt.Errorf(nativeWorktreeStatusErrorTemplateConstant, statusError)
	}
	return status.IsClean(), nil
}

// ListLocalBranches enumerates refs/heads in reference-name order.
func (manager *NativeRepositoryManager) ListLocalBranches(executionContext context.Context, repositoryPath string) ([]shared.BranchHead, error) {
	repository, openError := manager.open(repositoryPath)
	if openError != nil {
		return nil, openError
	}

	branchIterator, iteratorError := repository.Branches()
	if iteratorError != nil {
		return nil, fmt.Errorf(nativeBranchListErrorTemplateConstant, iteratorError)
	}
	defer branchIterator.Close()

	branchHeads := make([]shared.BranchHead, 0)
	iterationError := branchIterator.ForEach(func(reference *plumbing.Reference) error {
		if contextError := executionContext.Err(); contextError != nil {
			return contextError
		}
		branchName, isLocalBranch := shared.LocalBranchName(reference.Name().String())
		if !isLocalBranch {
			return nil
		}
		branchHeads = append(branchHeads, shared.BranchHead{Name: branchName, CommitID: reference.Hash().String()})
		return nil
	})
	if iterationError != nil {
		return nil, fmt.Errorf(nativeBranchListErrorTemplateConstant, iterationError)
	}

	return branchHeads, nil
}

// ReadCommitTimestamp reads the committer signature time of commitID.
func (manager *NativeRepositoryManager) ReadCommitTimestamp(executionContext context.Context, repositoryPath string, commitID string) (shared.CommitTimestamp, error) {
	trimmedCommitID := strings.TrimSpace(commitID)
	if !plumbing.IsHash(trimmedCommitID) {
		return shared.CommitTimestamp{}, fmt.Errorf(nativeCommitLookupErrorTemplateConstant, commitID, fmt.Errorf(invalidCommitIdentifierTemplateConstant, commitID))
	}

	repository, openError := manager.open(repositoryPath)
	if openError != nil {
		return shared.CommitTimestamp{}, openError
	}

	commit, commitError := repository.CommitObject(plumbing.NewHash(trimmedCommitID))
	if commitError != nil {
		return shared.CommitTimestamp{}, fmt.Errorf(nativeCommitLookupErrorTemplateConstant, commitID, commitError)
	}

	_, offsetSeconds := commit.Committer.When.Zone()
	return shared.CommitTimestamp{
		EpochSeconds:  commit.Committer.When.Unix(),
		OffsetMinutes: offsetSeconds / secondsPerMinuteConstant,
	}, nil
}

// CheckoutBranch updates the working tree and HEAD to branchName in a single operation.
func (manager *NativeRepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	repository, openError := manager.open(repositoryPath)
	if openError != nil {
		return openError
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		return fmt.Errorf(worktreeOpenErrorTemplateConstant, worktreeError)
	}

	checkoutError := worktree.Checkout(&git.CheckoutOptions{Branch: plumbing.NewBranchReferenceName(branchName)})
	if checkoutError != nil {
		return fmt.Errorf(nativeCheckoutErrorTemplateConstant, branchName, checkoutError)
	}
	return nil
}

func (manager *NativeRepositoryManager) open(repositoryPath string) (*git.Repository, error) {
	resolvedPath := strings.TrimSpace(repositoryPath)
	if len(resolvedPath) == 0 {
		resolvedPath = currentDirectoryPathConstant
	}

	repository, openError := git.PlainOpenWithOptions(resolvedPath, manager.openOptions)
	if openError != nil {
		return nil, fmt.Errorf(repositoryOpenErrorTemplateConstant, resolvedPath, openError)
	}
	return repository, nil
}
