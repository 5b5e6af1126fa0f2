package cli

import (
	"fmt"
	"net/url"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/signcanvas/pkg/canvas"
	"github.com/matzehuels/signcanvas/pkg/config"
	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/recovery"
)

// recoverCommand creates the recovery draft management command.
func (c *CLI) recoverCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recover",
		Short: "Inspect and clear recovery drafts",
	}

	cmd.AddCommand(c.recoverShowCommand())
	cmd.AddCommand(c.recoverClearCommand())
	cmd.AddCommand(c.recoverPathCommand())

	return cmd
}

// recoverShowCommand creates the "recover show" subcommand.
func (c *CLI) recoverShowCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show <session>",
		Short: "Print the recovery draft of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]
			if err := errors.ValidateSessionID(id); err != nil {
				return err
			}

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			snap, ok, err := recovery.Load(ctx, store, id)
			if err != nil {
				return err
			}
			if !ok {
				return errors.New(errors.ErrCodeSessionNotFound, "no recovery draft for session %s", id)
			}
			doc, err := canvas.Deserialize(snap)
			if err != nil {
				return errors.Wrap(errors.ErrCodeCorruptSnapshot, err, "session %s", id)
			}

			printKeyValue("Session", id)
			printKeyValue("Objects", fmt.Sprint(doc.Len()))
			printKeyValue("Canvas", fmt.Sprintf("%gx%g", doc.Width, doc.Height))
			printKeyValue("Size", fmt.Sprintf("%d bytes", len(snap)))
			return writeDocument(output, doc)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the draft here (default: stdout)")
	return cmd
}

// recoverClearCommand creates the "recover clear" subcommand.
func (c *CLI) recoverClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <session>",
		Short: "Delete the recovery draft of a session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := args[0]
			if err := errors.ValidateSessionID(id); err != nil {
				return err
			}

			store, err := c.openStore(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := recovery.Discard(ctx, store, id); err != nil {
				return err
			}
			printSuccess("Cleared recovery draft for %s", id)
			return nil
		},
	}
}

// recoverPathCommand creates the "recover path" subcommand.
func (c *CLI) recoverPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print where recovery drafts are kept",
		RunE: func(cmd *cobra.Command, args []string) error {
			rc := c.Config.Recovery
			out := cmd.OutOrStdout()
			switch rc.Backend {
			case config.BackendFile:
				fmt.Fprintln(out, rc.Dir)
			case config.BackendRedis:
				fmt.Fprintf(out, "redis://%s/%d\n", rc.Redis.Addr, rc.Redis.DB)
			case config.BackendMongo:
				fmt.Fprintln(out, redactURI(rc.Mongo.URI))
			default:
				fmt.Fprintln(out, rc.Backend)
			}
			printDetail("Drafts expire after %s", ttlOrDefault(rc.TTL))
			return nil
		},
	}
}

// redactURI hides the password of a connection string.
func redactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "(unparsable uri)"
	}
	return u.Redacted()
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl == 0 {
		return recovery.DefaultTTL
	}
	return ttl
}
