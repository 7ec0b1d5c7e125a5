package app

import (
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
)

var (
	rendererMu       sync.Mutex
	renderersByWidth = map[int]*glamour.TermRenderer{}
)

// renderCodeSnippet shows a snippet as a fenced code block. The snippet is
// never shortened; long lines are hard-wrapped to width.
func renderCodeSnippet(snippet string, width int) string {
	snippet = strings.TrimRight(snippet, "\n")
	if snippet == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	fence := "```"
	for strings.Contains(snippet, fence) {
		fence += "`"
	}
	r := getRenderer(width)
	if r == nil {
		return xansi.Hardwrap(snippet, width, true)
	}
	out, err := r.Render(fence + "\n" + snippet + "\n" + fence)
	if err != nil {
		return xansi.Hardwrap(snippet, width, true)
	}
	out = strings.Trim(out, "\n")
	out = xansi.Hardwrap(out, width, true)
	return strings.TrimRight(out, "\n")
}

func getRenderer(width int) *glamour.TermRenderer {
	rendererMu.Lock()
	defer rendererMu.Unlock()
	if renderer, ok := renderersByWidth[width]; ok && renderer != nil {
		return renderer
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(snippetStyleConfig()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	renderersByWidth[width] = r
	return r
}

func snippetStyleConfig() glamouransi.StyleConfig {
	base := styles.DarkStyleConfig
	// Card padding comes from lipgloss; drop glamour's document margins.
	base.Document.StylePrimitive.BlockPrefix = ""
	base.Document.StylePrimitive.BlockSuffix = ""
	zero := uint(0)
	base.Document.Margin = &zero
	base.CodeBlock.Margin = &zero
	return base
}
