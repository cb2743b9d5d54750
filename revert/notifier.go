package revert

import (
	"fmt"
	"io"
	"strings"

	"github.com/ejoffe/revert/config"
	"github.com/ejoffe/revert/terminal"
	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
)

const maxRuleWidth = 72

var actionHints = map[string]string{
	ActionResolveConflicts: "resolve the conflicts, 'git add' the files and run 'git commit'",
}

// NewTerminalNotifier writes notifications to out.
func NewTerminalNotifier(out io.Writer, cfg *config.Config) *terminalNotifier {
	n := &terminalNotifier{
		out:    out,
		prefix: map[NotificationKind]string{},
	}
	symbols := map[NotificationKind]*color.Color{
		NotifySuccess: color.New(color.FgHiGreen),
		NotifyWarning: color.New(color.FgHiYellow),
		NotifyError:   color.New(color.FgHiRed),
	}
	marks := map[NotificationKind]string{
		NotifySuccess: "✓",
		NotifyWarning: "⚠",
		NotifyError:   "✗",
	}
	for kind, c := range symbols {
		if cfg.User.ColorOutput {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		n.prefix[kind] = c.Sprint(marks[kind])
	}
	return n
}

type terminalNotifier struct {
	out    io.Writer
	prefix map[NotificationKind]string
}

func (n *terminalNotifier) Notify(notification Notification) {
	log.Debug().
		Str("kind", notification.Kind.String()).
		Str("title", notification.Title).
		Msg("notify")

	fmt.Fprintln(n.out, strings.Repeat("-", ruleWidth()))
	fmt.Fprintf(n.out, "%s %s\n", n.prefix[notification.Kind], notification.Title)
	if notification.Body != "" {
		for _, line := range strings.Split(notification.Body, "\n") {
			fmt.Fprintf(n.out, "  %s\n", line)
		}
	}
	for _, action := range notification.Actions {
		hint, ok := actionHints[action]
		if !ok {
			hint = action
		}
		fmt.Fprintf(n.out, "  -> %s\n", hint)
	}
}

func ruleWidth() int {
	width, err := terminal.Width()
	if err != nil || width <= 0 || width > maxRuleWidth {
		return maxRuleWidth
	}
	return width
}
