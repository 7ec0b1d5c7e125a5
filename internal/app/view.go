package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"brain/internal/notes"
	"brain/internal/types"
)

const appTitle = "Second Brain"

func (m *Model) View() string {
	if m.mode == uiModeLogin {
		return m.renderLogin()
	}
	snap := m.state.Snapshot()
	lines := []string{
		m.renderHeader(snap),
		m.renderSearch(snap),
		m.renderCategoryBar(snap),
		dividerStyle.Render(strings.Repeat("─", max(1, m.width))),
		m.viewport.View(),
		m.renderStatus(snap),
		helpStyle.Render(m.helpLine()),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderLogin() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(appTitle),
		subtitleStyle.Render("Enter your Workspace ID to access your notes"),
		"",
		m.login.View(),
		"",
		helpStyle.Render("enter submit • esc quit"),
	)
	box := loginBoxStyle.Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Model) renderHeader(snap notes.Snapshot) string {
	left := titleStyle.Render(appTitle) + " " + subtitleStyle.Render("Workspace: ") + headerValueStyle.Render(snap.Identity)
	right := headerLabelStyle.Render("Total Notes ") + headerValueStyle.Render(fmt.Sprint(snap.Stats.Total)) +
		"  " + headerLabelStyle.Render("Open Tasks ") + headerAccentStyle.Render(fmt.Sprint(snap.Stats.Tasks))
	return padBetween(left, right, m.width)
}

func (m *Model) renderSearch(snap notes.Snapshot) string {
	if m.mode == uiModeSearch || snap.Query != "" {
		return m.search.View()
	}
	return helpStyle.Render("/ search")
}

func (m *Model) renderCategoryBar(snap notes.Snapshot) string {
	parts := make([]string, 0, len(snap.Categories))
	for _, category := range snap.Categories {
		label := notes.CategoryLabel(category)
		if category == snap.Filter {
			parts = append(parts, filterSelectedStyle.Render(label))
			continue
		}
		parts = append(parts, filterStyle.Render(label))
	}
	return xansi.Truncate(strings.Join(parts, " "), m.width, "…")
}

func (m *Model) renderStatus(snap notes.Snapshot) string {
	status := m.status
	if snap.Loading {
		status = m.loader.View() + " " + status
	}
	if status == "" {
		return ""
	}
	style := statusStyle
	if m.statusErr {
		style = statusErrorStyle
	}
	return style.Render(xansi.Truncate(status, m.width, "…"))
}

func (m *Model) helpLine() string {
	if m.mode == uiModeSearch {
		return "type to filter • enter done • esc clear"
	}
	return "/ search • tab category • j/k move • enter expand • y copy • r refresh • L logout • q quit"
}

// syncBody re-renders the card list and scrolls so the cursor card stays
// in view.
func (m *Model) syncBody() {
	if m.mode == uiModeLogin {
		return
	}
	content, top, bottom := m.renderCards(m.state.Snapshot())
	m.viewport.SetContent(content)
	if top < m.viewport.YOffset {
		m.viewport.SetYOffset(top)
	} else if bottom >= m.viewport.YOffset+m.viewport.Height {
		m.viewport.SetYOffset(bottom - m.viewport.Height + 1)
	}
}

// renderCards returns the list content and the first and last line of the
// cursor card.
func (m *Model) renderCards(snap notes.Snapshot) (string, int, int) {
	if len(snap.Visible) == 0 {
		switch {
		case snap.Loading:
			return m.loader.View() + " Loading notes...", 0, 0
		case len(snap.Notes) == 0 && snap.LastError != nil:
			return statusErrorStyle.Render("Could not load notes. Press r to retry."), 0, 0
		case len(snap.Notes) == 0:
			return subtitleStyle.Render("No notes yet."), 0, 0
		default:
			return subtitleStyle.Render("No notes match the current search and category."), 0, 0
		}
	}
	var (
		lines  []string
		top    int
		bottom int
	)
	for i, note := range snap.Visible {
		card := m.renderCard(note, snap.Expanded.IsExpanded(note.ID), i == m.cursor)
		if i == m.cursor {
			top = len(lines)
		}
		lines = append(lines, strings.Split(card, "\n")...)
		if i == m.cursor {
			bottom = len(lines) - 1
		}
	}
	return strings.Join(lines, "\n"), top, bottom
}

func (m *Model) renderCard(note types.Note, expanded, selected bool) string {
	style := cardStyle
	if selected {
		style = cardSelectedStyle
	}
	inner := max(10, m.width-style.GetHorizontalFrameSize())

	badges := []string{noteIDStyle.Render(fmt.Sprintf("#%d", note.ID))}
	if note.Task() {
		badges = append(badges, taskBadgeStyle.Render("TASK"))
	}
	if category, ok := note.CategoryValue(); ok {
		badges = append(badges, categoryBadge.Render(notes.CategoryLabel(category)))
	}
	head := padBetween(strings.Join(badges, " "), timestampStyle.Render(notes.FormatCreatedAt(note.CreatedAt)), inner)

	rows := []string{head, contentStyle.Width(inner).Render(note.Content)}
	if path := note.FilePathValue(); path != "" {
		rows = append(rows, filePathStyle.Render(xansi.Truncate("file: "+notes.FileBase(path), inner, "…")))
	}
	if note.HasExtraContent() {
		if expanded {
			rows = append(rows, renderPayload(note, inner)...)
			rows = append(rows, expandHintStyle.Render("enter to collapse"))
		} else {
			rows = append(rows, expandHintStyle.Render("enter to expand"))
		}
	}
	return style.Width(inner + style.GetHorizontalPadding()).Render(strings.Join(rows, "\n"))
}

func renderPayload(note types.Note, width int) []string {
	var rows []string
	if snippet := note.CodeSnippetValue(); snippet != "" {
		rows = append(rows, sectionCodeStyle.Render("Code"), renderCodeSnippet(snippet, width))
	}
	if web := note.WebContextValue(); web != "" {
		rows = append(rows, sectionWebStyle.Render("Web context"), webContextStyle.Width(width).Render(notes.TruncateWebContext(web)))
	}
	return rows
}

// padBetween places right at the far edge of width, dropping it when the
// two sides do not fit.
func padBetween(left, right string, width int) string {
	used := runewidth.StringWidth(xansi.Strip(left)) + runewidth.StringWidth(xansi.Strip(right))
	if used+1 > width {
		return xansi.Truncate(left, width, "…")
	}
	return left + strings.Repeat(" ", width-used) + right
}
