package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestParseToggles(t *testing.T) {
	got, err := ParseToggles("1 5 3-4 4", 5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2, 3, 4}, got)

	got, err = ParseToggles("  ", 5)
	require.NoError(t, err)
	assert.Empty(t, got)

	for _, bad := range []string{"0", "6", "x", "4-2", "1-9", "a-b", "-3"} {
		_, err := ParseToggles(bad, 5)
		assert.Error(t, err, bad)
	}
}

func TestChecklistApplyCommands(t *testing.T) {
	m := NewChecklist("Review", []string{"a", "b", "c", "d"}, true)

	quit, err := m.Apply("2-3")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, []string{"a", "d"}, m.Selected())

	_, err = m.Apply("none")
	require.NoError(t, err)
	assert.Empty(t, m.Selected())

	_, err = m.Apply("ALL")
	require.NoError(t, err)
	assert.Len(t, m.Selected(), 4)

	_, err = m.Apply("9")
	assert.ErrorContains(t, err, "Must be 1-4")
	assert.Len(t, m.Selected(), 4)

	quit, err = m.Apply("done")
	require.NoError(t, err)
	assert.True(t, quit)
	assert.True(t, m.Done())
}

func TestChecklistKeyboard(t *testing.T) {
	m := NewChecklist("Mutations", []string{"one", "two", "three"}, false)

	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Equal(t, []string{"one", "three"}, m.Selected())

	m.Update(runes("n"))
	assert.Empty(t, m.Selected())
	m.Update(runes("a"))
	assert.Len(t, m.Selected(), 3)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.Done())
	assert.False(t, m.Cancelled())
}

func TestChecklistRangeInput(t *testing.T) {
	m := NewChecklist("Review", []string{"a", "b", "c"}, true)
	m.Update(runes(":"))
	require.True(t, m.inputMode)

	m.input.SetValue("1-2")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.inputMode)
	assert.Equal(t, []string{"c"}, m.Selected())

	m.Update(runes(":"))
	m.input.SetValue("7")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, m.inputMode)
	assert.Contains(t, m.View(), "invalid number")

	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.inputMode)
	assert.False(t, m.Cancelled())
}

func TestChecklistCancel(t *testing.T) {
	m := NewChecklist("Review", []string{"a"}, true)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.True(t, m.Cancelled())
	assert.False(t, m.Done())
}

func TestChecklistViewScrollsAndTruncates(t *testing.T) {
	labels := make([]string, 30)
	for i := range labels {
		labels[i] = strings.Repeat("w", 40)
	}
	m := NewChecklist("Review", labels, true)
	m.Update(tea.WindowSizeMsg{Width: 24, Height: 10})
	for i := 0; i < 29; i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	view := m.View()
	assert.Contains(t, view, "30. [X]")
	assert.NotContains(t, view, " 1. [X]")
	assert.Contains(t, view, "…")
	assert.Contains(t, view, "Keeping 30 of 30.")
}
