package tui

import (
	"fmt"
	"strings"

	"github.com/amirasaad/exrate/pkg/i18n"
	"github.com/amirasaad/exrate/pkg/service/calculator"
	"github.com/amirasaad/exrate/pkg/service/rates"
	"github.com/charmbracelet/lipgloss"
)

// RenderBoard draws the rate board, one watched currency per line. Selected
// rows are highlighted; rows without a rate show the "unavailable" label.
func RenderBoard(b *rates.Board, lang string) string {
	title := headerStyle.Render(fmt.Sprintf("%s: %s", i18n.T(lang, "counter currency"), b.Counter.Code))

	lines := make([]string, 0, len(b.Rows))
	for i, row := range b.Rows {
		marker := " "
		text := rateStyle.Render(row.Text)
		if row.IsSelected {
			marker = "•"
			text = selectedStyle.Render(row.Text)
		}
		if !row.Available {
			text = mutedStyle.Render(row.Text + "  (" + i18n.T(lang, "unavailable") + ")")
		}
		lines = append(lines, fmt.Sprintf("%2d %s %s %s", i, marker, codeStyle.Render(row.Code), text))
	}
	if len(lines) == 0 {
		lines = append(lines, mutedStyle.Render("-"))
	}
	return lipgloss.JoinVertical(lipgloss.Left, title, boardStyle.Render(strings.Join(lines, "\n")))
}

// RenderCalculator draws the two calculator lines: the source amount and
// the converted target amount.
func RenderCalculator(v *calculator.View) string {
	src := v.Display
	if src == "" {
		src = "0"
	}
	dst := v.Converted
	if dst == "" {
		dst = "-"
	}
	top := lipgloss.JoinHorizontal(lipgloss.Top, codeStyle.Render(v.Source.Code), displayStyle.Render(src))
	bottom := lipgloss.JoinHorizontal(lipgloss.Top, codeStyle.Render(v.Target.Code),
		displayStyle.Foreground(primary).Render(dst+" "+v.Target.Code))
	return boardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, top, bottom))
}

// RenderError formats err for the terminal.
func RenderError(err error) string {
	return errorStyle.Render("error: " + err.Error())
}
