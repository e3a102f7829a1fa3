package switcher

import (
	"strings"

	"github.com/davidpdrsn/git-branch-picker/internal/gitrepo"
	"github.com/davidpdrsn/git-branch-picker/internal/selection"
)

const (
	backendConfigurationKeyConstant      = "backend"
	pickerConfigurationKeyConstant       = "picker"
	promptConfigurationKeyConstant       = "prompt"
	pickerHeightConfigurationKeyConstant = "picker_height"
	configurationKeySeparatorConstant    = "."
	defaultPromptConstant                = "branch> "
	defaultPickerHeightConstant          = "40%"
)

// CommandConfiguration captures persistent settings for the switch command.
type CommandConfiguration struct {
	Backend      string `mapstructure:"backend"`
	Picker       string `mapstructure:"picker"`
	Prompt       string `mapstructure:"prompt"`
	PickerHeight string `mapstructure:"picker_height"`
}

// DefaultCommandConfiguration returns baseline configuration values for the switch command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		Backend:      string(gitrepo.BackendGit),
		Picker:       string(selection.PickerFzf),
		Prompt:       defaultPromptConstant,
		PickerHeight: defaultPickerHeightConstant,
	}
}

// DefaultConfigurationValues returns viper defaults keyed under prefix.
func DefaultConfigurationValues(prefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		prefix + configurationKeySeparatorConstant + backendConfigurationKeyConstant:      defaults.Backend,
		prefix + configurationKeySeparatorConstant + pickerConfigurationKeyConstant:       defaults.Picker,
		prefix + configurationKeySeparatorConstant + promptConfigurationKeyConstant:       defaults.Prompt,
		prefix + configurationKeySeparatorConstant + pickerHeightConfigurationKeyConstant: defaults.PickerHeight,
	}
}

// Sanitize normalizes names and fills blank values with defaults. The prompt keeps its spacing.
func (configuration CommandConfiguration) Sanitize() CommandConfiguration {
	defaults := DefaultCommandConfiguration()
	sanitized := configuration

	sanitized.Backend = strings.ToLower(strings.TrimSpace(configuration.Backend))
	if len(sanitized.Backend) == 0 {
		sanitized.Backend = defaults.Backend
	}

	sanitized.Picker = strings.ToLower(strings.TrimSpace(configuration.Picker))
	if len(sanitized.Picker) == 0 {
		sanitized.Picker = defaults.Picker
	}

	if len(strings.TrimSpace(configuration.Prompt)) == 0 {
		sanitized.Prompt = defaults.Prompt
	}

	sanitized.PickerHeight = strings.TrimSpace(configuration.PickerHeight)
	if len(sanitized.PickerHeight) == 0 {
		sanitized.PickerHeight = defaults.PickerHeight
	}

	return sanitized
}
