package selection

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/davidpdrsn/git-branch-picker/internal/presentation"
)

const (
	inlineMaxVisibleConstant              = 10
	inlineCursorMarkerConstant            = "> "
	inlineBlankMarkerConstant             = "  "
	inlineHelpTextConstant                = "↑/↓ move • enter select • esc cancel"
	inlineNoMatchesTextConstant           = "no matching branches"
	inlineCountTemplateConstant           = "%d/%d"
	inlineProgramErrorTemplateConstant    = "run inline picker: %w"
	inlineUnexpectedModelTemplateConstant = "inline picker returned unexpected model %T"
	inlineLineSeparatorConstant           = "\n"
)

var (
	inlinePromptStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	inlineSelectedStyle = lipgloss.NewStyle().Background(lipgloss.Color("238")).Bold(true)
	inlineMutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// InlinePicker is a small bubbletea picker drawn on the terminal, filtering with fuzzy matching.
type InlinePicker struct {
	options    PickerOptions
	runProgram func(executionContext context.Context, model tea.Model) (tea.Model, error)
}

// NewInlinePicker constructs the built-in picker.
func NewInlinePicker(options PickerOptions) *InlinePicker {
	return &InlinePicker{options: options.sanitize(), runProgram: runTerminalProgram}
}

// Pick runs the picker until the operator selects a line or cancels.
func (picker *InlinePicker) Pick(executionContext context.Context, block presentation.RenderedBlock) (PickResult, error) {
	finalModel, runError := picker.runProgram(executionContext, newInlineModel(block.Texts(), picker.options.Prompt))
	if runError != nil {
		if errors.Is(runError, tea.ErrProgramKilled) && executionContext.Err() != nil {
			return PickResult{}, executionContext.Err()
		}
		return PickResult{}, fmt.Errorf(inlineProgramErrorTemplateConstant, runError)
	}

	completedModel, isInlineModel := finalModel.(inlineModel)
	if !isInlineModel {
		return PickResult{}, fmt.Errorf(inlineUnexpectedModelTemplateConstant, finalModel)
	}
	return completedModel.result(), nil
}

func runTerminalProgram(executionContext context.Context, model tea.Model) (tea.Model, error) {
	program := tea.NewProgram(model, tea.WithContext(executionContext), tea.WithInputTTY(), tea.WithOutput(os.Stderr))
	return program.Run()
}

type candidateSource []string

func (source candidateSource) String(index int) string {
	return source[index]
}

func (source candidateSource) Len() int {
	return len(source)
}

type inlineModel struct {
	candidates   candidateSource
	filterInput  textinput.Model
	filtered     []int
	cursor       int
	scrollOffset int
	maxVisible   int
	chosen       string
	hasChoice    bool
}

func newInlineModel(candidates []string, prompt string) inlineModel {
	filterInput := textinput.New()
	filterInput.Prompt = prompt
	filterInput.PromptStyle = inlinePromptStyle
	filterInput.Focus()

	model := inlineModel{
		candidates:  candidateSource(candidates),
		filterInput: filterInput,
		maxVisible:  inlineMaxVisibleConstant,
	}
	return model.applyFilter()
}

func (model inlineModel) Init() tea.Cmd {
	return textinput.Blink
}

func (model inlineModel) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	keyMessage, isKeyMessage := message.(tea.KeyMsg)
	if isKeyMessage {
		switch keyMessage.String() {
		case "ctrl+c", "esc":
			model.hasChoice = false
			return model, tea.Quit
		case "enter":
			if len(model.filtered) == 0 {
				return model, nil
			}
			model.chosen = model.candidates[model.filtered[model.cursor]]
			model.hasChoice = true
			return model, tea.Quit
		case "up", "ctrl+p":
			return model.moveCursor(-1), nil
		case "down", "ctrl+n":
			return model.moveCursor(1), nil
		}
	}

	previousQuery := model.filterInput.Value()
	var inputCommand tea.Cmd
	model.filterInput, inputCommand = model.filterInput.Update(message)
	if model.filterInput.Value() != previousQuery {
		model = model.applyFilter()
	}
	return model, inputCommand
}

func (model inlineModel) View() string {
	var view strings.Builder
	view.WriteString(model.filterInput.View())
	view.WriteString(inlineLineSeparatorConstant)

	if len(model.filtered) == 0 {
		view.WriteString(inlineMutedStyle.Render(inlineNoMatchesTextConstant))
		view.WriteString(inlineLineSeparatorConstant)
	}

	visibleEnd := min(model.scrollOffset+model.maxVisible, len(model.filtered))
	for position := model.scrollOffset; position < visibleEnd; position++ {
		candidateText := model.candidates[model.filtered[position]]
		if position == model.cursor {
			view.WriteString(inlineSelectedStyle.Render(inlineCursorMarkerConstant + candidateText))
		} else {
			view.WriteString(inlineBlankMarkerConstant + candidateText)
		}
		view.WriteString(inlineLineSeparatorConstant)
	}

	view.WriteString(inlineMutedStyle.Render(fmt.Sprintf(inlineCountTemplateConstant, len(model.filtered), len(model.candidates)) + "  " + inlineHelpTextConstant))
	view.WriteString(inlineLineSeparatorConstant)
	return view.String()
}

// applyFilter keeps catalog order for an empty query and fuzzy score order otherwise.
func (model inlineModel) applyFilter() inlineModel {
	query := model.filterInput.Value()
	filtered := make([]int, 0, len(model.candidates))
	if len(query) == 0 {
		for candidateIndex := range model.candidates {
			filtered = append(filtered, candidateIndex)
		}
	} else {
		for _, match := range fuzzy.FindFrom(query, model.candidates) {
			filtered = append(filtered, match.Index)
		}
	}
	model.filtered = filtered

	model.cursor = 0
	model.scrollOffset = 0
	return model
}

func (model inlineModel) moveCursor(step int) inlineModel {
	if len(model.filtered) == 0 {
		return model
	}
	model.cursor = (model.cursor + step + len(model.filtered)) % len(model.filtered)
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	} else if model.cursor >= model.scrollOffset+model.maxVisible {
		model.scrollOffset = model.cursor - model.maxVisible + 1
	}
	return model
}

func (model inlineModel) result() PickResult {
	if !model.hasChoice {
		return PickResult{}
	}
	return PickResult{Line: model.chosen, Selected: true}
}
