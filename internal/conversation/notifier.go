package conversation

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipebox/internal/domain"
	"github.com/hammamikhairi/recipebox/internal/logger"
)

// Compile-time interface check.
var _ domain.Notifier = (*CLINotifier)(nil)

var (
	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#bae6fd")).
			Bold(true)

	urgentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fca5a5")).
			Bold(true)
)

// CLINotifier writes notifications to a terminal stream.
type CLINotifier struct {
	log *logger.Logger
	out io.Writer
}

// NewCLINotifier creates a notifier writing to out.
func NewCLINotifier(log *logger.Logger, out io.Writer) *CLINotifier {
	return &CLINotifier{log: log, out: out}
}

// Notify prints a normal notification.
func (n *CLINotifier) Notify(ctx context.Context, message string) error {
	n.log.Debug("notify: %s", message)
	_, err := fmt.Fprintln(n.out, noticeStyle.Render(message))
	return err
}

// NotifyUrgent prints an urgent notification in bold red.
func (n *CLINotifier) NotifyUrgent(ctx context.Context, message string) error {
	n.log.Debug("notify-urgent: %s", message)
	_, err := fmt.Fprintln(n.out, urgentStyle.Render(message))
	return err
}
