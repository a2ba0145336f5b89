package notify

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mfigueredo/smarket/internal/model"
)

// Notifier delivers a due intent to the user. Delivery is best-effort:
// a failed delivery is logged and dropped, and the next planning cycle
// recomputes the schedule anyway.
type Notifier interface {
	Notify(ctx context.Context, in model.NotificationIntent) error
}

// CommandNotifier shells out to a user-configured command, e.g.
// ["notify-send", "{title}", "{body}"]. The placeholders {id}, {title}
// and {body} are substituted into each argument.
type CommandNotifier struct {
	Argv []string
}

// Notify runs the configured command for one intent.
func (n CommandNotifier) Notify(ctx context.Context, in model.NotificationIntent) error {
	if len(n.Argv) == 0 {
		return fmt.Errorf("notify command not configured")
	}

	args := make([]string, len(n.Argv))
	for i, a := range n.Argv {
		a = strings.ReplaceAll(a, "{id}", in.ID)
		a = strings.ReplaceAll(a, "{title}", in.Title)
		a = strings.ReplaceAll(a, "{body}", in.Body)
		args[i] = a
	}

	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // argv is configured by the local user
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("notify command: %w (%s)", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// LogNotifier writes intents to the daemon log. It is the fallback when no
// notify command is configured.
type LogNotifier struct {
	Log zerolog.Logger
}

// Notify logs one intent.
func (n LogNotifier) Notify(_ context.Context, in model.NotificationIntent) error {
	n.Log.Info().
		Str("id", in.ID).
		Str("title", in.Title).
		Str("body", in.Body).
		Msg("notification")
	return nil
}
