package selection

import (
	"context"
	"errors"
	"fmt"

	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/davidpdrsn/git-branch-picker/internal/presentation"
)

const fuzzyFinderErrorTemplateConstant = "run fuzzy finder: %w"

// FuzzyFinderPicker runs go-fuzzyfinder against the rendered lines.
type FuzzyFinderPicker struct {
	options  PickerOptions
	findItem func(candidates []string, itemText func(index int) string, finderOptions ...fuzzyfinder.Option) (int, error)
}

// NewFuzzyFinderPicker constructs a go-fuzzyfinder backed picker.
func NewFuzzyFinderPicker(options PickerOptions) *FuzzyFinderPicker {
	return &FuzzyFinderPicker{
		options: options.sanitize(),
		findItem: func(candidates []string, itemText func(index int) string, finderOptions ...fuzzyfinder.Option) (int, error) {
			return fuzzyfinder.Find(candidates, itemText, finderOptions...)
		},
	}
}

// Pick shows the block in the finder. Aborting the finder counts as no selection.
func (picker *FuzzyFinderPicker) Pick(executionContext context.Context, block presentation.RenderedBlock) (PickResult, error) {
	candidateTexts := block.Texts()
	if len(candidateTexts) == 0 {
		return PickResult{}, nil
	}

	chosenIndex, findError := picker.findItem(
		candidateTexts,
		func(index int) string { return candidateTexts[index] },
		fuzzyfinder.WithPromptString(picker.options.Prompt),
		fuzzyfinder.WithContext(executionContext),
	)
	if findError != nil {
		if errors.Is(findError, fuzzyfinder.ErrAbort) {
			return PickResult{}, nil
		}
		return PickResult{}, fmt.Errorf(fuzzyFinderErrorTemplateConstant, findError)
	}
	if chosenIndex < 0 || chosenIndex >= len(candidateTexts) {
		return PickResult{}, nil
	}

	return PickResult{Line: candidateTexts[chosenIndex], Selected: true}, nil
}
