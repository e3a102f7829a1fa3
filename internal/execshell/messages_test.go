package execshell_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidpdrsn/git-branch-picker/internal/execshell"
)

const (
	testFormatterDirectoryConstant = "/work/project"
	testFormatterBranchConstant    = "feature/search"
	testFormatterCommitConstant    = "0f3c9a1"
)

func TestCommandMessageFormatterDescribesGitSubcommands(testInstance *testing.T) {
	formatter := execshell.CommandMessageFormatter{}

	statusCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"status", "--porcelain"}, WorkingDirectory: testFormatterDirectoryConstant},
	}
	branchListCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"for-each-ref", "--format=%(refname)", "refs/heads/"}},
	}
	logCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"log", "-1", "--date=raw", "--format=%cd", testFormatterCommitConstant}, WorkingDirectory: testFormatterDirectoryConstant},
	}
	checkoutCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"checkout", testFormatterBranchConstant, "--"}, WorkingDirectory: testFormatterDirectoryConstant},
	}
	unknownCommand := execshell.ShellCommand{
		Name:    execshell.CommandGit,
		Details: execshell.CommandDetails{Arguments: []string{"rev-parse", "HEAD"}},
	}

	testCases := []struct {
		name            string
		buildMessage    func() string
		expectedMessage string
	}{
		{
			name:            "status_started",
			buildMessage:    func() string { return formatter.BuildStartedMessage(statusCommand) },
			expectedMessage: "Reviewing working tree status in /work/project",
		},
		{
			name: "status_failure",
			buildMessage: func() string {
				return formatter.BuildFailureMessage(statusCommand, execshell.ExecutionResult{ExitCode: 128, StandardError: "fatal: not a git repository\n"})
			},
			expectedMessage: "Failed to review working tree status in /work/project (exit code 128: fatal: not a git repository)",
		},
		{
			name: "branch_list_success_counts_lines",
			buildMessage: func() string {
				return formatter.BuildSuccessMessage(branchListCommand, execshell.ExecutionResult{StandardOutput: "refs/heads/main\nrefs/heads/dev\n\n"})
			},
			expectedMessage: "Listed 2 local branches in current directory",
		},
		{
			name:            "commit_time_started",
			buildMessage:    func() string { return formatter.BuildStartedMessage(logCommand) },
			expectedMessage: "Reading commit time of 0f3c9a1 in /work/project",
		},
		{
			name:            "checkout_success_skips_terminator",
			buildMessage:    func() string { return formatter.BuildSuccessMessage(checkoutCommand, execshell.ExecutionResult{}) },
			expectedMessage: "/work/project now on branch feature/search",
		},
		{
			name: "checkout_execution_failure",
			buildMessage: func() string {
				return formatter.BuildExecutionFailureMessage(checkoutCommand, errors.New("signal: killed"))
			},
			expectedMessage: "Unable to switch /work/project to branch feature/search: signal: killed",
		},
		{
			name:            "generic_fallback",
			buildMessage:    func() string { return formatter.BuildStartedMessage(unknownCommand) },
			expectedMessage: "Running git rev-parse HEAD",
		},
		{
			name:            "generic_execution_failure_without_cause",
			buildMessage:    func() string { return formatter.BuildExecutionFailureMessage(unknownCommand, nil) },
			expectedMessage: "git rev-parse HEAD failed: unknown error",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			require.Equal(testInstance, testCase.expectedMessage, testCase.buildMessage())
		})
	}
}
