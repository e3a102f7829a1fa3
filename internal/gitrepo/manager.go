package gitrepo

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/davidpdrsn/git-branch-picker/internal/execshell"
	"github.com/davidpdrsn/git-branch-picker/internal/shared"
)

const (
	gitStatusSubcommandConstant          = "status"
	gitPorcelainFlagConstant             = "--porcelain"
	gitOptionalLocksVariableConstant     = "GIT_OPTIONAL_LOCKS"
	gitOptionalLocksDisabledConstant     = "0"
	gitForEachRefSubcommandConstant      = "for-each-ref"
	gitBranchListFormatFlagConstant      = "--format=%(refname)%00%(objectname)"
	gitLogSubcommandConstant             = "log"
	gitSingleCommitFlagConstant          = "-1"
	gitRawDateFlagConstant               = "--date=raw"
	gitCommitterDateFormatFlagConstant   = "--format=%cd"
	gitCheckoutSubcommandConstant        = "checkout"
	gitArgumentTerminatorConstant        = "--"
	branchListFieldSeparatorConstant     = "\x00"
	branchListLineSeparatorConstant      = "\n"
	rawDateFieldCountConstant            = 2
	rawOffsetLengthConstant              = 5
	minutesPerHourConstant               = 60
	gitExecutorMissingMessageConstant    = "git executor not configured"
	worktreeStatusErrorTemplateConstant  = "unable to read working tree status: %w"
	branchListErrorTemplateConstant      = "unable to list local branches: %w"
	branchListLineErrorTemplateConstant  = "unexpected branch listing line %q"
	commitTimestampErrorTemplateConstant = "unable to read commit time of %s: %w"
	checkoutErrorTemplateConstant        = "unable to check out %s: %w"
	timestampParseErrorTemplateConstant  = "unparseable commit date %q: %s"
	timestampFieldCountMessageConstant   = "expected epoch seconds and offset"
	timestampEpochMessageConstant        = "invalid epoch seconds"
	timestampOffsetMessageConstant       = "invalid utc offset"
)

// ErrGitExecutorNotConfigured indicates the repository manager was constructed without an executor.
var ErrGitExecutorNotConfigured = errors.New(gitExecutorMissingMessageConstant)

// CommitTimestampParseError reports committer date output that is not "<epoch> <+hhmm>".
type CommitTimestampParseError struct {
	Output string
	Reason string
}

// Error describes the parse failure.
func (parseError CommitTimestampParseError) Error() string {
	return fmt.Sprintf(timestampParseErrorTemplateConstant, parseError.Output, parseError.Reason)
}

// RepositoryManager runs git commands against a checkout.
type RepositoryManager struct {
	executor shared.GitExecutor
}

// NewRepositoryManager constructs a RepositoryManager around the provided executor.
func NewRepositoryManager(executor shared.GitExecutor) (*RepositoryManager, error) {
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	return &RepositoryManager{executor: executor}, nil
}

// CheckCleanWorktree reports whether git status lists no staged, unstaged, or untracked entries. Ignored files do not count.
// The status query runs with optional locks disabled so it never refreshes the index.
func (manager *RepositoryManager) CheckCleanWorktree(executionContext context.Context, repositoryPath string) (bool, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:            []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant},
		WorkingDirectory:     repositoryPath,
		EnvironmentVariables: map[string]string{gitOptionalLocksVariableConstant: gitOptionalLocksDisabledConstant},
	})
	if executionError != nil {
		return false, fmt.Errorf(worktreeStatusErrorTemplateConstant, executionError)
	}
	return len(strings.TrimSpace(executionResult.StandardOutput)) == 0, nil
}

// ListLocalBranches enumerates refs/heads in git's reference order.
func (manager *RepositoryManager) ListLocalBranches(executionContext context.Context, repositoryPath string) ([]shared.BranchHead, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitForEachRefSubcommandConstant, gitBranchListFormatFlagConstant, shared.LocalBranchReferencePrefixConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return nil, fmt.Errorf(branchListErrorTemplateConstant, executionError)
	}

	branchHeads := make([]shared.BranchHead, 0)
	for _, line := range strings.Split(executionResult.StandardOutput, branchListLineSeparatorConstant) {
		if len(line) == 0 {
			continue
		}
		fields := strings.SplitN(line, branchListFieldSeparatorConstant, 2)
		if len(fields) != 2 {
			return nil, fmt.Errorf(branchListErrorTemplateConstant, fmt.Errorf(branchListLineErrorTemplateConstant, line))
		}
		branchName, isLocalBranch := shared.LocalBranchName(fields[0])
		if !isLocalBranch {
			return nil, fmt.Errorf(branchListErrorTemplateConstant, fmt.Errorf(branchListLineErrorTemplateConstant, line))
		}
		branchHeads = append(branchHeads, shared.BranchHead{Name: branchName, CommitID: strings.TrimSpace(fields[1])})
	}

	return branchHeads, nil
}

// ReadCommitTimestamp reads the committer time of commitID in git's raw date format.
func (manager *RepositoryManager) ReadCommitTimestamp(executionContext context.Context, repositoryPath string, commitID string) (shared.CommitTimestamp, error) {
	executionResult, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments: []string{
			gitLogSubcommandConstant,
			gitSingleCommitFlagConstant,
			gitRawDateFlagConstant,
			gitCommitterDateFormatFlagConstant,
			commitID,
			gitArgumentTerminatorConstant,
		},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return shared.CommitTimestamp{}, fmt.Errorf(commitTimestampErrorTemplateConstant, commitID, executionError)
	}

	commitTimestamp, parseError := ParseRawCommitDate(executionResult.StandardOutput)
	if parseError != nil {
		return shared.CommitTimestamp{}, fmt.Errorf(commitTimestampErrorTemplateConstant, commitID, parseError)
	}
	return commitTimestamp, nil
}

// CheckoutBranch switches the checkout to branchName, updating the working tree and HEAD.
func (manager *RepositoryManager) CheckoutBranch(executionContext context.Context, repositoryPath string, branchName string) error {
	_, executionError := manager.executor.ExecuteGit(executionContext, execshell.CommandDetails{
		Arguments:        []string{gitCheckoutSubcommandConstant, branchName, gitArgumentTerminatorConstant},
		WorkingDirectory: repositoryPath,
	})
	if executionError != nil {
		return fmt.Errorf(checkoutErrorTemplateConstant, branchName, executionError)
	}
	return nil
}

// ParseRawCommitDate parses git's raw date format, for example "1700000000 +0200".
func ParseRawCommitDate(rawDate string) (shared.CommitTimestamp, error) {
	trimmedRawDate := strings.TrimSpace(rawDate)
	fields := strings.Fields(trimmedRawDate)
	if len(fields) != rawDateFieldCountConstant {
		return shared.CommitTimestamp{}, CommitTimestampParseError{Output: trimmedRawDate, Reason: timestampFieldCountMessageConstant}
	}

	epochSeconds, epochError := strconv.ParseInt(fields[0], 10, 64)
	if epochError != nil {
		return shared.CommitTimestamp{}, CommitTimestampParseError{Output: trimmedRawDate, Reason: timestampEpochMessageConstant}
	}

	offset := fields[1]
	if len(offset) != rawOffsetLengthConstant || (offset[0] != '+' && offset[0] != '-') {
		return shared.CommitTimestamp{}, CommitTimestampParseError{Output: trimmedRawDate, Reason: timestampOffsetMessageConstant}
	}
	offsetHours, hoursError := strconv.Atoi(offset[1:3])
	offsetMinutes, minutesError := strconv.Atoi(offset[3:5])
	if hoursError != nil || minutesError != nil || offsetHours < 0 || offsetMinutes < 0 {
		return shared.CommitTimestamp{}, CommitTimestampParseError{Output: trimmedRawDate, Reason: timestampOffsetMessageConstant}
	}

	totalOffsetMinutes := offsetHours*minutesPerHourConstant + offsetMinutes
	if offset[0] == '-' {
		totalOffsetMinutes = -totalOffsetMinutes
	}

	return shared.CommitTimestamp{EpochSeconds: epochSeconds, OffsetMinutes: totalOffsetMinutes}, nil
}
