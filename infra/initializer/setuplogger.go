package initializer

import (
	"io"
	"log/slog"

	"github.com/amirasaad/exrate/pkg/config"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

// SetupLogger builds the process logger on charmbracelet/log, installs it as
// the slog default and returns it.
func SetupLogger(cfg *config.Log, w io.Writer) *slog.Logger {
	styles := log.DefaultStyles()
	infoTxtColor := lipgloss.AdaptiveColor{Light: "#4894FE", Dark: "#8FB8FF"}
	warnTxtColor := lipgloss.AdaptiveColor{Light: "#E8A33D", Dark: "#F2C26B"}
	errorTxtColor := lipgloss.AdaptiveColor{Light: "#D64545", Dark: "#D67A7A"}
	debugTxtColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}

	levels := map[log.Level]struct {
		label string
		color lipgloss.AdaptiveColor
	}{
		log.ErrorLevel: {"ERROR", errorTxtColor},
		log.WarnLevel:  {"WARN", warnTxtColor},
		log.InfoLevel:  {"INFO", infoTxtColor},
		log.DebugLevel: {"DEBUG", debugTxtColor},
	}
	for lvl, s := range levels {
		styles.Levels[lvl] = lipgloss.NewStyle().
			SetString(s.label).
			Bold(true).
			MaxWidth(5).
			Foreground(s.color)
	}

	styles.Keys["error"] = lipgloss.NewStyle().Foreground(errorTxtColor)
	styles.Values["error"] = lipgloss.NewStyle().Bold(true)
	// rate lookups log these on every request
	for _, k := range []string{"key", "op", "component"} {
		styles.Keys[k] = lipgloss.NewStyle().Foreground(infoTxtColor)
	}
	styles.Keys["prefix"] = lipgloss.NewStyle().Foreground(debugTxtColor)
	styles.Values["prefix"] = lipgloss.NewStyle().Bold(true)

	formatter := log.TextFormatter
	switch cfg.Format {
	case "json":
		formatter = log.JSONFormatter
	case "logfmt":
		formatter = log.LogfmtFormatter
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportCaller:    cfg.Level <= int(log.DebugLevel),
		ReportTimestamp: true,
		TimeFormat:      cfg.TimeFormat,
		Level:           log.Level(cfg.Level),
		Prefix:          cfg.Prefix,
		Formatter:       formatter,
	})
	logger.SetStyles(styles)

	slogger := slog.New(logger)
	slog.SetDefault(slogger)
	return slogger
}
