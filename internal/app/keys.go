package app

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) reduceLoginKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "esc":
		return tea.Quit
	case "enter":
		return m.submitLogin(m.login.Value())
	}
	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return cmd
}

func (m *Model) reduceSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		m.search.SetValue("")
		m.state.SetSearchText("")
		m.exitSearch()
		return nil
	case "enter", "down":
		m.exitSearch()
		return nil
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Query() {
		m.state.SetSearchText(m.search.Value())
		m.cursor = 0
		m.viewport.GotoTop()
	}
	return cmd
}

func (m *Model) exitSearch() {
	m.search.Blur()
	m.mode = uiModeBrowse
	m.clampCursor()
}

func (m *Model) reduceBrowseKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "/":
		m.mode = uiModeSearch
		return m.search.Focus()
	case "esc":
		if m.state.Query() != "" {
			m.search.SetValue("")
			m.state.SetSearchText("")
			m.clampCursor()
		}
	case "tab", "right", "l":
		m.cycleFilter(1)
	case "shift+tab", "left", "h":
		m.cycleFilter(-1)
	case "down", "j":
		m.moveCursor(1)
	case "up", "k":
		m.moveCursor(-1)
	case "home", "g":
		m.cursor = 0
		m.viewport.GotoTop()
	case "end", "G":
		m.cursor = len(m.state.Visible()) - 1
		m.clampCursor()
	case "pgdown", "ctrl+d":
		m.moveCursor(pageStep)
	case "pgup", "ctrl+u":
		m.moveCursor(-pageStep)
	case "enter", " ":
		m.toggleCursor()
	case "y":
		m.copyCursor()
	case "r":
		return m.refresh()
	case "L":
		return m.logout()
	}
	return nil
}
