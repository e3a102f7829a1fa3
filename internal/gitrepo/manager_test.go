package gitrepo_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidpdrsn/git-branch-picker/internal/execshell"
	"github.com/davidpdrsn/git-branch-picker/internal/gitrepo"
	"github.com/davidpdrsn/git-branch-picker/internal/shared"
)

const (
	testRepositoryPathConstant = "/tmp/checkout"
	testMainCommitConstant     = "1111111111111111111111111111111111111111"
	testFeatureCommitConstant  = "2222222222222222222222222222222222222222"
)

type stubGitExecutor struct {
	executedCommands []execshell.CommandDetails
	results          []execshell.ExecutionResult
	errors           []error
}

func (executor *stubGitExecutor) ExecuteGit(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.executedCommands = append(executor.executedCommands, details)
	callIndex := len(executor.executedCommands) - 1

	var executionError error
	if callIndex < len(executor.errors) {
		executionError = executor.errors[callIndex]
	}
	if executionError != nil {
		return execshell.ExecutionResult{}, executionError
	}
	if callIndex < len(executor.results) {
		return executor.results[callIndex], nil
	}
	return execshell.ExecutionResult{}, nil
}

func TestNewRepositoryManagerRequiresExecutor(testInstance *testing.T) {
	repositoryManager, creationError := gitrepo.NewRepositoryManager(nil)
	require.ErrorIs(testInstance, creationError, gitrepo.ErrGitExecutorNotConfigured)
	require.Nil(testInstance, repositoryManager)
}

func TestRepositoryManagerCheckCleanWorktree(testInstance *testing.T) {
	testCases := []struct {
		name          string
		output        string
		executorError error
		expectedClean bool
		expectError   bool
	}{
		{name: "clean", output: "", expectedClean: true},
		{name: "untracked_file", output: "?? notes.txt\n", expectedClean: false},
		{name: "modified_file", output: " M README.md\n", expectedClean: false},
		{name: "status_failure", executorError: errors.New("not a git repository"), expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{
				results: []execshell.ExecutionResult{{StandardOutput: testCase.output}},
				errors:  []error{testCase.executorError},
			}
			repositoryManager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			isClean, checkError := repositoryManager.CheckCleanWorktree(context.Background(), testRepositoryPathConstant)
			require.Len(testInstance, executor.executedCommands, 1)
			require.Equal(testInstance, []string{"status", "--porcelain"}, executor.executedCommands[0].Arguments)
			require.Equal(testInstance, testRepositoryPathConstant, executor.executedCommands[0].WorkingDirectory)
			require.Equal(testInstance, map[string]string{"GIT_OPTIONAL_LOCKS": "0"}, executor.executedCommands[0].EnvironmentVariables)

			if testCase.expectError {
				require.Error(testInstance, checkError)
				return
			}
			require.NoError(testInstance, checkError)
			require.Equal(testInstance, testCase.expectedClean, isClean)
		})
	}
}

func TestRepositoryManagerListLocalBranches(testInstance *testing.T) {
	testCases := []struct {
		name             string
		output           string
		expectedBranches []shared.BranchHead
		expectError      bool
	}{
		{
			name:   "parses_names_and_commits",
			output: "refs/heads/feature/search\x00" + testFeatureCommitConstant + "\nrefs/heads/main\x00" + testMainCommitConstant + "\n",
			expectedBranches: []shared.BranchHead{
				{Name: "feature/search", CommitID: testFeatureCommitConstant},
				{Name: "main", CommitID: testMainCommitConstant},
			},
		},
		{
			name:             "no_branches",
			output:           "",
			expectedBranches: []shared.BranchHead{},
		},
		{
			name:        "malformed_line",
			output:      "refs/heads/main " + testMainCommitConstant + "\n",
			expectError: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: testCase.output}}}
			repositoryManager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			branchHeads, listError := repositoryManager.ListLocalBranches(context.Background(), testRepositoryPathConstant)
			require.Equal(testInstance, []string{"for-each-ref", "--format=%(refname)%00%(objectname)", "refs/heads/"}, executor.executedCommands[0].Arguments)
			if testCase.expectError {
				require.Error(testInstance, listError)
				return
			}
			require.NoError(testInstance, listError)
			require.Equal(testInstance, testCase.expectedBranches, branchHeads)
		})
	}
}

func TestRepositoryManagerReadCommitTimestamp(testInstance *testing.T) {
	executor := &stubGitExecutor{results: []execshell.ExecutionResult{{StandardOutput: "1700000000 -0530\n"}}}
	repositoryManager, creationError := gitrepo.NewRepositoryManager(executor)
	require.NoError(testInstance, creationError)

	commitTimestamp, readError := repositoryManager.ReadCommitTimestamp(context.Background(), testRepositoryPathConstant, testMainCommitConstant)
	require.NoError(testInstance, readError)
	require.Equal(testInstance, shared.CommitTimestamp{EpochSeconds: 1700000000, OffsetMinutes: -330}, commitTimestamp)
	require.Equal(testInstance, []string{"log", "-1", "--date=raw", "--format=%cd", testMainCommitConstant, "--"}, executor.executedCommands[0].Arguments)
}

func TestRepositoryManagerCheckoutBranch(testInstance *testing.T) {
	checkoutFailure := execshell.CommandFailedError{Result: execshell.ExecutionResult{ExitCode: 1, StandardError: "error: pathspec"}}

	testCases := []struct {
		name          string
		executorError error
	}{
		{name: "checkout_succeeds"},
		{name: "checkout_fails", executorError: checkoutFailure},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &stubGitExecutor{errors: []error{testCase.executorError}}
			repositoryManager, creationError := gitrepo.NewRepositoryManager(executor)
			require.NoError(testInstance, creationError)

			checkoutError := repositoryManager.CheckoutBranch(context.Background(), testRepositoryPathConstant, "feature/search")
			require.Equal(testInstance, []string{"checkout", "feature/search", "--"}, executor.executedCommands[0].Arguments)
			if testCase.executorError == nil {
				require.NoError(testInstance, checkoutError)
				return
			}
			require.ErrorAs(testInstance, checkoutError, &execshell.CommandFailedError{})
		})
	}
}

func TestParseRawCommitDate(testInstance *testing.T) {
	testCases := []struct {
		name              string
		rawDate           string
		expectedTimestamp shared.CommitTimestamp
		expectError       bool
	}{
		{name: "positive_offset", rawDate: "1700000000 +0200", expectedTimestamp: shared.CommitTimestamp{EpochSeconds: 1700000000, OffsetMinutes: 120}},
		{name: "utc", rawDate: "0 +0000", expectedTimestamp: shared.CommitTimestamp{EpochSeconds: 0, OffsetMinutes: 0}},
		{name: "negative_offset_with_minutes", rawDate: "1700000000 -0945", expectedTimestamp: shared.CommitTimestamp{EpochSeconds: 1700000000, OffsetMinutes: -585}},
		{name: "missing_offset", rawDate: "1700000000", expectError: true},
		{name: "non_numeric_epoch", rawDate: "soon +0200", expectError: true},
		{name: "unsigned_offset", rawDate: "1700000000 02000", expectError: true},
		{name: "empty", rawDate: "", expectError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			commitTimestamp, parseError := gitrepo.ParseRawCommitDate(testCase.rawDate)
			if testCase.expectError {
				require.IsType(testInstance, gitrepo.CommitTimestampParseError{}, parseError)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedTimestamp, commitTimestamp)
		})
	}
}
