package shared

import (
	"context"
	"strings"
	"time"

	"github.com/davidpdrsn/git-branch-picker/internal/execshell"
)

// LocalBranchReferencePrefixConstant marks fully qualified local branch references.
const LocalBranchReferencePrefixConstant = "refs/heads/"

// Clock abstracts time acquisition for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the system time source.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// GitExecutor exposes the subset of shell execution used by the git-backed repository manager.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// BranchHead names a local branch and the commit its reference points to.
type BranchHead struct {
	Name     string
	CommitID string
}

// CommitTimestamp is a commit's committer time as recorded by git: seconds since the epoch plus the committer's UTC offset.
type CommitTimestamp struct {
	EpochSeconds  int64
	OffsetMinutes int
}

// GitRepositoryManager exposes the repository operations the branch switcher relies on.
type GitRepositoryManager interface {
	CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error)
	ListLocalBranches(executionContext context.Context, repositoryPath string) ([]BranchHead, error)
	ReadCommitTimestamp(executionContext context.Context, repositoryPath string, commitID string) (CommitTimestamp, error)
	CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error
}

// LocalBranchName returns the short branch name for a fully qualified local branch reference.
func LocalBranchName(referenceName string) (string, bool) {
	if !strings.HasPrefix(referenceName, LocalBranchReferencePrefixConstant) {
		return "", false
	}
	branchName := strings.TrimPrefix(referenceName, LocalBranchReferencePrefixConstant)
	if len(branchName) == 0 {
		return "", false
	}
	return branchName, true
}
