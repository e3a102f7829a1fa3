package switcher

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/davidpdrsn/git-branch-picker/internal/dependencies"
	"github.com/davidpdrsn/git-branch-picker/internal/execshell"
	"github.com/davidpdrsn/git-branch-picker/internal/gitrepo"
	"github.com/davidpdrsn/git-branch-picker/internal/selection"
	"github.com/davidpdrsn/git-branch-picker/internal/shared"
	"github.com/davidpdrsn/git-branch-picker/internal/ui"
	"github.com/davidpdrsn/git-branch-picker/internal/utils"
)

const (
	commandUseConstant              = "switch"
	commandShortDescriptionConstant = "Pick a local branch by recency and check it out"
	commandLongDescriptionConstant  = "switch lists the local branches of the current repository most recently committed first, lets you fuzzy-search them, and checks out the one you pick. It refuses to run while the working tree has uncommitted or untracked changes."
	commandExampleConstant          = "git-branch-picker switch --log-level debug"
	switchedMessageTemplateConstant = "Switched to branch %s"
	switchConfiguredMessageConstant = "switch configured"
	backendLogFieldConstant         = "backend"
	pickerLogFieldConstant          = "picker"
	configurationFileFieldConstant  = "configuration_file"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the switch command. Unset collaborators are built from configuration.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	ConsoleLoggerProvider        LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	GitExecutor                  shared.GitExecutor
	RepositoryManager            shared.GitRepositoryManager
	Picker                       selection.Picker
	Clock                        shared.Clock
}

// Build constructs the switch command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:           commandUseConstant,
		Short:         commandShortDescriptionConstant,
		Long:          commandLongDescriptionConstant,
		Example:       commandExampleConstant,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          builder.Run,
	}
	return command, nil
}

// Run executes a switch against the repository recorded in the command context.
func (builder *CommandBuilder) Run(command *cobra.Command, arguments []string) error {
	configuration := builder.resolveConfiguration()
	logger := resolveLogger(builder.LoggerProvider)

	backend, backendError := gitrepo.ParseBackend(configuration.Backend)
	if backendError != nil {
		return backendError
	}

	gitExecutor, executorError := dependencies.ResolveGitExecutor(builder.GitExecutor, logger, builder.resolveObservers()...)
	if executorError != nil {
		return executorError
	}

	repositoryManager, managerError := dependencies.ResolveGitRepositoryManager(builder.RepositoryManager, backend, gitExecutor)
	if managerError != nil {
		return managerError
	}

	picker, pickerError := builder.resolvePicker(configuration)
	if pickerError != nil {
		return pickerError
	}

	contextAccessor := utils.NewCommandContextAccessor()
	configurationFilePath, _ := contextAccessor.ConfigurationFilePath(command.Context())
	logger.Debug(
		switchConfiguredMessageConstant,
		zap.String(backendLogFieldConstant, string(backend)),
		zap.String(pickerLogFieldConstant, configuration.Picker),
		zap.String(configurationFileFieldConstant, configurationFilePath),
	)

	service, serviceError := NewService(Dependencies{
		RepositoryManager: repositoryManager,
		Picker:            picker,
		Clock:             builder.Clock,
		Logger:            logger,
	})
	if serviceError != nil {
		return serviceError
	}

	repositoryPath, _ := contextAccessor.RepositoryPath(command.Context())
	result, switchError := service.Switch(command.Context(), Options{RepositoryPath: repositoryPath})
	if switchError != nil {
		return switchError
	}

	fmt.Fprintln(command.OutOrStdout(), color.New(color.FgGreen).Sprintf(switchedMessageTemplateConstant, result.Branch.Name))
	return nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration()
	}
	return builder.ConfigurationProvider().Sanitize()
}

func (builder *CommandBuilder) resolveObservers() []execshell.CommandEventObserver {
	if builder.HumanReadableLoggingProvider == nil || !builder.HumanReadableLoggingProvider() {
		return nil
	}
	return []execshell.CommandEventObserver{ui.NewConsoleCommandEventLogger(resolveLogger(builder.ConsoleLoggerProvider))}
}

func (builder *CommandBuilder) resolvePicker(configuration CommandConfiguration) (selection.Picker, error) {
	if builder.Picker != nil {
		return builder.Picker, nil
	}

	pickerKind, parseError := selection.ParsePickerKind(configuration.Picker)
	if parseError != nil {
		return nil, parseError
	}
	return selection.NewPicker(pickerKind, selection.PickerOptions{Prompt: configuration.Prompt, Height: configuration.PickerHeight})
}

func resolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
