package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/signcanvas/pkg/canvas"
	"github.com/matzehuels/signcanvas/pkg/config"
	"github.com/matzehuels/signcanvas/pkg/editor"
	"github.com/matzehuels/signcanvas/pkg/errors"
	"github.com/matzehuels/signcanvas/pkg/script"
)

// editOpts holds the edit command flags.
type editOpts struct {
	session     string
	document    string
	output      string
	interactive bool
	discard     bool
}

// editCommand creates the edit command.
func (c *CLI) editCommand() *cobra.Command {
	var opts editOpts

	cmd := &cobra.Command{
		Use:   "edit [script.toml]",
		Short: "Run an edit script or browse history interactively",
		Long: `Edit opens a session, resuming its recovery draft when one exists, then
applies the steps of a TOML script and/or opens an interactive history
browser. Every change is recorded for undo and saved as a recovery draft.`,
		Example: `  signcanvas edit layout.toml -o sign.json
  signcanvas edit --session shopfront --interactive
  signcanvas edit --doc sign.json --interactive --discard`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !opts.interactive {
				return errors.New(errors.ErrCodeInvalidInput, "nothing to do: pass a script or --interactive")
			}
			return c.runEdit(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.session, "session", "s", "", "session id to resume or create (default: new id)")
	cmd.Flags().StringVarP(&opts.document, "doc", "d", "", "starting document for a new session")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "write the final document here (default: stdout)")
	cmd.Flags().BoolVarP(&opts.interactive, "interactive", "i", false, "open the interactive history browser")
	cmd.Flags().BoolVar(&opts.discard, "discard", false, "delete the recovery draft when done")

	return cmd
}

func (c *CLI) runEdit(cmd *cobra.Command, args []string, opts editOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	var sc *script.Script
	if len(args) == 1 {
		var err error
		if sc, err = script.Load(args[0]); err != nil {
			return err
		}
	}

	fallback := canvas.New()
	switch {
	case opts.document != "":
		doc, err := readDocument(opts.document)
		if err != nil {
			return err
		}
		fallback = doc
	case sc != nil:
		fallback = sc.Document()
	}

	id := opts.session
	if id == "" {
		id = editor.NewSessionID()
	}

	store, err := c.openStore(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	sessOpts := c.sessionOptions(store)
	sess, restored, err := editor.Open(ctx, id, fallback, sessOpts)
	if errors.Is(err, errors.ErrCodeCorruptSnapshot) {
		printWarning("%s; starting fresh", errors.UserMessage(err))
		logger.Debug("discarding corrupt draft", "session", id, "err", err)
		sess, err = editor.New(id, fallback, sessOpts)
	}
	if err != nil {
		return err
	}
	defer sess.Close()

	if restored {
		printInfo("Resumed session %s", StyleHighlight.Render(id))
	} else {
		logger.Debug("new session", "session", id)
	}

	if sc != nil {
		prog := newProgress(logger)
		res, err := script.Run(ctx, sess, sc)
		if err != nil {
			return err
		}
		prog.done(fmt.Sprintf("Applied %d steps, recorded %d", res.Steps, res.Recorded))
		if res.Skipped > 0 {
			printDetail("%d steps changed nothing", res.Skipped)
		}
	}

	if opts.interactive {
		final, err := tea.NewProgram(newHistoryModel(sess), tea.WithAltScreen()).Run()
		if err != nil {
			return err
		}
		if m, ok := final.(historyModel); ok && m.err != nil {
			return m.err
		}
	}

	sess.Flush()
	if !opts.interactive || opts.output != "" {
		if err := writeDocument(opts.output, sess.Document()); err != nil {
			return err
		}
	}

	h := sess.History()
	printStats(sess.Document().Len(), h.Len(), h.Cursor(), restored)

	if opts.discard {
		if err := sess.Discard(ctx); err != nil {
			return err
		}
		printSuccess("Discarded recovery draft")
		return nil
	}
	if c.Config.Recovery.Backend != config.BackendNone && c.Config.Recovery.Backend != config.BackendMemory {
		printNextStep("Resume later", "signcanvas edit --session "+id+" --interactive")
	}
	return nil
}
