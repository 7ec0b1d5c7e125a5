package app

import "github.com/charmbracelet/lipgloss"

const (
	cardPaddingVertical   = 0
	cardPaddingHorizontal = 1
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("141"))
	subtitleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerLabelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerValueStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	headerAccentStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	helpStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	statusStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	statusErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	dividerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))

	filterStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(0, 1)
	filterSelectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("62")).Bold(true).Padding(0, 1)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(cardPaddingVertical, cardPaddingHorizontal)
	cardSelectedStyle = cardStyle.BorderForeground(lipgloss.Color("99"))

	noteIDStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	taskBadgeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("219")).Bold(true)
	categoryBadge    = lipgloss.NewStyle().Foreground(lipgloss.Color("147")).Bold(true)
	contentStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	sectionCodeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("105")).Bold(true)
	sectionWebStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("213")).Bold(true)
	webContextStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Italic(true)
	expandHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("61"))
	filePathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("105"))
	timestampStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	loginBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(1, 3)
)
