package main

import (
	"context"

	"github.com/desertthunder/gigx/internal/formatter"
	"github.com/desertthunder/gigx/internal/views"
	"github.com/urfave/cli/v3"
)

// MessagesList prints the inbox. Unread incoming messages are starred.
func (r *Runner) MessagesList(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.signedIn(ctx); err != nil {
		return err
	}

	m, err := views.NewMessages(r.api, r.session, r.logger).Open(ctx)
	if err != nil {
		return err
	}
	return r.writeResult(cmd, m.Messages, func() string { return formatter.RenderMessages(m) })
}

// MessagesSend posts a message to --to.
func (r *Runner) MessagesSend(ctx context.Context, cmd *cli.Command) error {
	if _, err := r.signedIn(ctx); err != nil {
		return err
	}

	to := int(cmd.Int("to"))
	if _, err := views.NewMessages(r.api, r.session, r.logger).Send(ctx, to, cmd.String("content")); err != nil {
		return err
	}
	return r.writePlain("✓ Message sent to user #%d\n", to)
}
