package selection

import (
	"context"
	"fmt"
	"strings"

	"github.com/davidpdrsn/git-branch-picker/internal/presentation"
	"github.com/davidpdrsn/git-branch-picker/internal/utils"
)

const (
	unsupportedPickerTemplateConstant = "unsupported picker: %s, expected %s"
	defaultPromptConstant             = "branch> "
	defaultHeightConstant             = "40%"
)

// Picker presents a rendered block and reports the operator's choice.
type Picker interface {
	Pick(executionContext context.Context, block presentation.RenderedBlock) (PickResult, error)
}

// PickerKind names a picker implementation.
type PickerKind string

// Supported pickers.
const (
	PickerFzf         PickerKind = PickerKind("fzf")
	PickerFuzzyFinder PickerKind = PickerKind("fuzzyfinder")
	PickerInline      PickerKind = PickerKind("inline")
)

// SupportedPickers lists the accepted picker names.
func SupportedPickers() []string {
	return []string{string(PickerFzf), string(PickerFuzzyFinder), string(PickerInline)}
}

// ParsePickerKind normalizes a configured picker name.
func ParsePickerKind(rawPicker string) (PickerKind, error) {
	normalizedPicker := PickerKind(strings.ToLower(strings.TrimSpace(rawPicker)))
	switch normalizedPicker {
	case PickerFzf, PickerFuzzyFinder, PickerInline:
		return normalizedPicker, nil
	default:
		return "", fmt.Errorf(unsupportedPickerTemplateConstant, rawPicker, pickerChoices())
	}
}

// PickerOptions tunes picker presentation.
type PickerOptions struct {
	Prompt string
	// Height is passed to fzf as --height, for example "40%" or "15".
	Height string
}

func (options PickerOptions) sanitize() PickerOptions {
	if len(options.Prompt) == 0 {
		options.Prompt = defaultPromptConstant
	}
	options.Height = strings.TrimSpace(options.Height)
	if len(options.Height) == 0 {
		options.Height = defaultHeightConstant
	}
	return options
}

// NewPicker builds the picker named by kind.
func NewPicker(kind PickerKind, options PickerOptions) (Picker, error) {
	sanitizedOptions := options.sanitize()
	switch kind {
	case PickerFzf:
		return NewFzfPicker(sanitizedOptions), nil
	case PickerFuzzyFinder:
		return NewFuzzyFinderPicker(sanitizedOptions), nil
	case PickerInline:
		return NewInlinePicker(sanitizedOptions), nil
	default:
		return nil, fmt.Errorf(unsupportedPickerTemplateConstant, kind, pickerChoices())
	}
}

func pickerChoices() string {
	return utils.FormatChoiceUsage(string(PickerFzf), SupportedPickers(), "")
}
