package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	argumentTerminatorConstant              = "--"
	flagPrefixConstant                      = "-"
)

const (
	gitStatusSubcommandNameConstant     = "status"
	gitForEachRefSubcommandNameConstant = "for-each-ref"
	gitLogSubcommandNameConstant        = "log"
	gitCheckoutSubcommandNameConstant   = "checkout"
)

const (
	gitStatusStartTemplateConstant                = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant              = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant              = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant     = "Unable to review working tree status in %s: %s"
	gitBranchListStartTemplateConstant            = "Listing local branches in %s"
	gitBranchListSuccessTemplateConstant          = "Listed %d local branches in %s"
	gitBranchListFailureTemplateConstant          = "Failed to list local branches in %s (exit code %d%s)"
	gitBranchListExecutionFailureTemplateConstant = "Unable to list local branches in %s: %s"
	gitCommitTimeStartTemplateConstant            = "Reading commit time of %s in %s"
	gitCommitTimeSuccessTemplateConstant          = "Read commit time of %s in %s"
	gitCommitTimeFailureTemplateConstant          = "Failed to read commit time of %s in %s (exit code %d%s)"
	gitCommitTimeExecutionFailureTemplateConstant = "Unable to read commit time of %s in %s: %s"
	gitCheckoutStartTemplateConstant              = "Switching %s to branch %s"
	gitCheckoutSuccessTemplateConstant            = "%s now on branch %s"
	gitCheckoutFailureTemplateConstant            = "Failed to switch %s to branch %s (exit code %d%s)"
	gitCheckoutExecutionFailureTemplateConstant   = "Unable to switch %s to branch %s: %s"
)

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	if command.Name != CommandGit || len(command.Details.Arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	standardErrorSuffix := formatter.formatStandardErrorSuffix(result.StandardError)
	failureDescription := formatter.describeFailure(failure)

	switch strings.TrimSpace(command.Details.Arguments[0]) {
	case gitStatusSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitStatusStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitStatusSuccessTemplateConstant, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitStatusFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix)
		default:
			return fmt.Sprintf(gitStatusExecutionFailureTemplateConstant, workingDirectory, failureDescription)
		}
	case gitForEachRefSubcommandNameConstant:
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitBranchListStartTemplateConstant, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitBranchListSuccessTemplateConstant, countNonEmptyLines(result.StandardOutput), workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitBranchListFailureTemplateConstant, workingDirectory, result.ExitCode, standardErrorSuffix)
		default:
			return fmt.Sprintf(gitBranchListExecutionFailureTemplateConstant, workingDirectory, failureDescription)
		}
	case gitLogSubcommandNameConstant:
		revision := formatter.ensureValue(formatter.lastPositionalArgument(command.Details.Arguments[1:]))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCommitTimeStartTemplateConstant, revision, workingDirectory)
		case messageStageSuccess:
			return fmt.Sprintf(gitCommitTimeSuccessTemplateConstant, revision, workingDirectory)
		case messageStageFailure:
			return fmt.Sprintf(gitCommitTimeFailureTemplateConstant, revision, workingDirectory, result.ExitCode, standardErrorSuffix)
		default:
			return fmt.Sprintf(gitCommitTimeExecutionFailureTemplateConstant, revision, workingDirectory, failureDescription)
		}
	case gitCheckoutSubcommandNameConstant:
		branchName := formatter.ensureValue(formatter.lastPositionalArgument(command.Details.Arguments[1:]))
		switch stage {
		case messageStageStart:
			return fmt.Sprintf(gitCheckoutStartTemplateConstant, workingDirectory, branchName)
		case messageStageSuccess:
			return fmt.Sprintf(gitCheckoutSuccessTemplateConstant, workingDirectory, branchName)
		case messageStageFailure:
			return fmt.Sprintf(gitCheckoutFailureTemplateConstant, workingDirectory, branchName, result.ExitCode, standardErrorSuffix)
		default:
			return fmt.Sprintf(gitCheckoutExecutionFailureTemplateConstant, workingDirectory, branchName, failureDescription)
		}
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = commandLabel + commandArgumentsJoinSeparatorConstant + strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant)
	}
	workingDirectorySuffix := emptyStringConstant
	if trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory); len(trimmedWorkingDirectory) > 0 {
		workingDirectorySuffix = fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, workingDirectorySuffix)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

// lastPositionalArgument returns the last argument that is neither a flag nor the "--" terminator.
func (formatter CommandMessageFormatter) lastPositionalArgument(arguments []string) string {
	for index := len(arguments) - 1; index >= 0; index-- {
		argument := strings.TrimSpace(arguments[index])
		if len(argument) == 0 || argument == argumentTerminatorConstant || strings.HasPrefix(argument, flagPrefixConstant) {
			continue
		}
		return argument
	}
	return emptyStringConstant
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return trimmed
}

func countNonEmptyLines(output string) int {
	count := 0
	for _, line := range strings.Split(output, "\n") {
		if len(strings.TrimSpace(line)) > 0 {
			count++
		}
	}
	return count
}
