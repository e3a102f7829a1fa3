package selection

import (
	"context"
	"errors"
	"fmt"
	"os"

	fzf "github.com/junegunn/fzf/src"
	fzfutil "github.com/junegunn/fzf/src/util"

	"github.com/davidpdrsn/git-branch-picker/internal/presentation"
)

const (
	fzfHeightFlagPrefixConstant        = "--height="
	fzfPromptFlagConstant              = "--prompt"
	fzfNoMultiFlagConstant             = "--no-multi"
	fzfInlineInfoFlagConstant          = "--info=inline"
	fzfTiebreakFlagConstant            = "--tiebreak=index"
	fzfTerminalMissingMessageConstant  = "fzf picker requires an interactive terminal on stdin and stdout"
	fzfInitializeErrorTemplateConstant = "initialize fzf: %w"
	fzfRunErrorTemplateConstant        = "run fzf: %w"
	fzfUnexpectedExitTemplateConstant  = "fzf exited with code %d"
)

// ErrTerminalUnavailable indicates the fzf picker was started without an interactive terminal.
var ErrTerminalUnavailable = errors.New(fzfTerminalMissingMessageConstant)

// FzfPicker runs fzf in-process against the rendered lines.
//
// Options come only from the picker configuration; FZF_DEFAULT_OPTS is not read, so flags such as
// --print-query or --expect cannot add lines to the output.
type FzfPicker struct {
	options           PickerOptions
	runFinder         func(options *fzf.Options) (int, error)
	terminalAvailable func() bool
}

// NewFzfPicker constructs an fzf-backed picker.
func NewFzfPicker(options PickerOptions) *FzfPicker {
	return &FzfPicker{options: options.sanitize(), runFinder: fzf.Run, terminalAvailable: standardStreamsAreTerminals}
}

// Pick shows the block in fzf. Escape, interrupt, or accepting with no match counts as no selection.
func (picker *FzfPicker) Pick(executionContext context.Context, block presentation.RenderedBlock) (PickResult, error) {
	if contextError := executionContext.Err(); contextError != nil {
		return PickResult{}, contextError
	}
	if !picker.terminalAvailable() {
		return PickResult{}, ErrTerminalUnavailable
	}

	finderOptions, parseError := fzf.ParseOptions(false, []string{
		fzfHeightFlagPrefixConstant + picker.options.Height,
		fzfPromptFlagConstant, picker.options.Prompt,
		fzfNoMultiFlagConstant,
		fzfInlineInfoFlagConstant,
		fzfTiebreakFlagConstant,
	})
	if parseError != nil {
		return PickResult{}, fmt.Errorf(fzfInitializeErrorTemplateConstant, parseError)
	}

	candidateTexts := block.Texts()
	knownCandidates := make(map[string]struct{}, len(candidateTexts))
	input := make(chan string, len(candidateTexts))
	for _, candidateText := range candidateTexts {
		knownCandidates[candidateText] = struct{}{}
		input <- candidateText
	}
	close(input)
	finderOptions.Input = input

	// Only candidate lines count; a query or key line is never taken for a selection.
	var selections []string
	finderOptions.Printer = func(selection string) {
		if _, known := knownCandidates[selection]; known {
			selections = append(selections, selection)
		}
	}

	exitCode, runError := picker.runFinder(finderOptions)
	if runError != nil {
		return PickResult{}, fmt.Errorf(fzfRunErrorTemplateConstant, runError)
	}

	switch exitCode {
	case fzf.ExitOk:
		if len(selections) == 0 {
			return PickResult{}, nil
		}
		return PickResult{Line: selections[len(selections)-1], Selected: true}, nil
	case fzf.ExitNoMatch, fzf.ExitInterrupt:
		return PickResult{}, nil
	default:
		return PickResult{}, fmt.Errorf(fzfUnexpectedExitTemplateConstant, exitCode)
	}
}

func standardStreamsAreTerminals() bool {
	return fzfutil.IsTty(os.Stdin) && fzfutil.IsTty(os.Stdout)
}
