// Package notify shows desktop notifications for finished runs.
package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"time"
)

// Notifier sends desktop notifications when long runs finish.
type Notifier struct {
	Enabled bool

	// run executes the notification command; tests replace it.
	run func(ctx context.Context, name string, args ...string) error
}

// New returns a Notifier that is a no-op unless enabled.
func New(enabled bool) *Notifier {
	return &Notifier{Enabled: enabled}
}

// Send shows a notification. macOS uses osascript and Linux notify-send;
// other platforms are a no-op.
func (n *Notifier) Send(title, message string) error {
	if n == nil || !n.Enabled {
		return nil
	}
	name, args, ok := command(runtime.GOOS, title, message)
	if !ok {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	run := n.run
	if run == nil {
		run = execRun
	}
	if err := run(ctx, name, args...); err != nil {
		return fmt.Errorf("send notification: %w", err)
	}
	return nil
}

func command(goos, title, message string) (string, []string, bool) {
	switch goos {
	case "darwin":
		title = strings.ReplaceAll(title, `"`, `\"`)
		message = strings.ReplaceAll(message, `"`, `\"`)
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, message, title)
		return "osascript", []string{"-e", script}, true
	case "linux":
		return "notify-send", []string{"--app-name=nacagen", title, message}, true
	}
	return "", nil, false
}

func execRun(ctx context.Context, name string, args ...string) error {
	return exec.CommandContext(ctx, name, args...).Run()
}

// FormatGeneration formats the notification for a single generation.
func FormatGeneration(name string, points int, err error) (title, message string) {
	if err != nil {
		return "nacagen: generation failed", fmt.Sprintf("%s: %v", name, err)
	}
	return "nacagen: airfoil ready", fmt.Sprintf("%s: %d points exported", name, points)
}

// FormatBatch formats the notification for a finished batch.
func FormatBatch(batchID string, total, done int, err error) (title, message string) {
	if err != nil {
		title = "nacagen: batch failed"
		message = fmt.Sprintf("%s: stopped after %d/%d requests", batchID, done, total)
	} else {
		title = "nacagen: batch complete"
		message = fmt.Sprintf("%s: %d/%d requests generated", batchID, done, total)
	}
	return title, message
}
