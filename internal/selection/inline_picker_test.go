package selection

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
)

var inlineCandidates = []string{
	"feature     | 10 minutes (2024-06-15 11:50:00)",
	"feature-old | 2 days     (2024-06-13 12:00:00)",
	"main        | 3 weeks    (2024-05-25 12:00:00)",
}

func sendKeys(model inlineModel, messages ...tea.Msg) inlineModel {
	for _, message := range messages {
		updatedModel, _ := model.Update(message)
		model = updatedModel.(inlineModel)
	}
	return model
}

func typeQuery(query string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(query)}
}

func TestInlineModelSelection(testInstance *testing.T) {
	testCases := []struct {
		name           string
		messages       []tea.Msg
		expectedResult PickResult
	}{
		{
			name:           "enter picks first line",
			messages:       []tea.Msg{tea.KeyMsg{Type: tea.KeyEnter}},
			expectedResult: PickResult{Line: inlineCandidates[0], Selected: true},
		},
		{
			name:           "down moves cursor",
			messages:       []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter}},
			expectedResult: PickResult{Line: inlineCandidates[2], Selected: true},
		},
		{
			name:           "up wraps to last line",
			messages:       []tea.Msg{tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyEnter}},
			expectedResult: PickResult{Line: inlineCandidates[2], Selected: true},
		},
		{
			name:           "ctrl+n and ctrl+p move cursor",
			messages:       []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlN}, tea.KeyMsg{Type: tea.KeyCtrlN}, tea.KeyMsg{Type: tea.KeyCtrlP}, tea.KeyMsg{Type: tea.KeyEnter}},
			expectedResult: PickResult{Line: inlineCandidates[1], Selected: true},
		},
		{
			name:           "query filters candidates",
			messages:       []tea.Msg{typeQuery("old"), tea.KeyMsg{Type: tea.KeyEnter}},
			expectedResult: PickResult{Line: inlineCandidates[1], Selected: true},
		},
		{
			name:           "escape cancels",
			messages:       []tea.Msg{tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEsc}},
			expectedResult: PickResult{},
		},
		{
			name:           "ctrl+c cancels",
			messages:       []tea.Msg{tea.KeyMsg{Type: tea.KeyCtrlC}},
			expectedResult: PickResult{},
		},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(subtest *testing.T) {
			model := sendKeys(newInlineModel(inlineCandidates, defaultPromptConstant), testCase.messages...)
			require.Equal(subtest, testCase.expectedResult, model.result())
		})
	}
}

func TestInlineModelEnterWithoutMatchesKeepsRunning(testInstance *testing.T) {
	model := sendKeys(newInlineModel(inlineCandidates, defaultPromptConstant), typeQuery("zzz"))
	require.Empty(testInstance, model.filtered)
	require.Contains(testInstance, model.View(), inlineNoMatchesTextConstant)

	updatedModel, command := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.Nil(testInstance, command)
	require.False(testInstance, updatedModel.(inlineModel).result().Selected)
}

func TestInlineModelScrollsWithCursor(testInstance *testing.T) {
	manyCandidates := make([]string, 0, 25)
	for candidateIndex := 0; candidateIndex < 25; candidateIndex++ {
		manyCandidates = append(manyCandidates, fmt.Sprintf("branch-%02d | 1 days (2024-06-14 12:00:00)", candidateIndex))
	}

	model := newInlineModel(manyCandidates, defaultPromptConstant)
	for step := 0; step < 12; step++ {
		model = sendKeys(model, tea.KeyMsg{Type: tea.KeyDown})
	}
	require.Equal(testInstance, 12, model.cursor)
	require.Equal(testInstance, 3, model.scrollOffset)
	require.Contains(testInstance, model.View(), "branch-12")
	require.NotContains(testInstance, model.View(), "branch-02 ")

	model = sendKeys(model, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp}, tea.KeyMsg{Type: tea.KeyUp})
	require.Equal(testInstance, 8, model.cursor)
	require.Equal(testInstance, 3, model.scrollOffset)
}

func TestInlinePickerPick(testInstance *testing.T) {
	renderedBlock := samplePickerBlock()

	picker := NewInlinePicker(PickerOptions{Prompt: "go> "})
	picker.runProgram = func(_ context.Context, model tea.Model) (tea.Model, error) {
		startingModel := model.(inlineModel)
		require.Equal(testInstance, "go> ", startingModel.filterInput.Prompt)
		return sendKeys(startingModel, tea.KeyMsg{Type: tea.KeyDown}, tea.KeyMsg{Type: tea.KeyEnter}), nil
	}

	pickResult, pickError := picker.Pick(context.Background(), renderedBlock)
	require.NoError(testInstance, pickError)
	require.Equal(testInstance, PickResult{Line: renderedBlock.Lines[1].Text, Selected: true}, pickResult)
}

func TestInlinePickerPropagatesProgramFailure(testInstance *testing.T) {
	programFailure := errors.New("open tty")
	picker := NewInlinePicker(PickerOptions{})
	picker.runProgram = func(context.Context, tea.Model) (tea.Model, error) {
		return nil, programFailure
	}

	_, pickError := picker.Pick(context.Background(), samplePickerBlock())
	require.ErrorIs(testInstance, pickError, programFailure)
}
