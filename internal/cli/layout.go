package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/signcanvas/pkg/canvas"
	"github.com/matzehuels/signcanvas/pkg/editor"
	"github.com/matzehuels/signcanvas/pkg/layout"
)

// layoutOpts holds the flags shared by distribute and align.
type layoutOpts struct {
	ids    []string
	axis   string
	edge   string
	output string
}

func (o *layoutOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.ids, "ids", nil, "object ids to arrange (default: all objects)")
	cmd.Flags().StringVarP(&o.axis, "axis", "a", "horizontal", "axis: horizontal or vertical")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default: stdout)")
}

// selection returns the ids to arrange, defaulting to every object.
func (o *layoutOpts) selection(d *canvas.Document) []string {
	if len(o.ids) > 0 {
		return o.ids
	}
	ids := make([]string, d.Len())
	for i, obj := range d.Objects {
		ids[i] = obj.ID
	}
	return ids
}

// distributeCommand creates the distribute command.
func (c *CLI) distributeCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "distribute [document.json]",
		Short: "Space objects evenly along an axis",
		Long: `Distribute places the selected objects so the gaps between neighbours are
equal. The two outermost objects stay where they are. Fewer than three
objects leave the document unchanged.`,
		Example: `  signcanvas distribute sign.json --axis vertical --ids title,logo,phone
  cat sign.json | signcanvas distribute - -o spaced.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := layout.ParseAxis(opts.axis)
			if err != nil {
				return err
			}
			return c.arrange(cmd, args, &opts, "distribute", func(s *editor.Session, ids []string) (bool, error) {
				return s.Distribute(axis, ids...)
			})
		},
	}

	opts.bind(cmd)
	return cmd
}

// alignCommand creates the align command.
func (c *CLI) alignCommand() *cobra.Command {
	var opts layoutOpts

	cmd := &cobra.Command{
		Use:   "align [document.json]",
		Short: "Align objects to a common edge",
		Example: `  signcanvas align sign.json --axis horizontal --edge center
  signcanvas align sign.json -a vertical -e top --ids badge,price`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			axis, err := layout.ParseAxis(opts.axis)
			if err != nil {
				return err
			}
			edge, err := layout.ParseEdge(opts.edge)
			if err != nil {
				return err
			}
			return c.arrange(cmd, args, &opts, "align", func(s *editor.Session, ids []string) (bool, error) {
				return s.Align(axis, edge, ids...)
			})
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVarP(&opts.edge, "edge", "e", "center", "edge: start, center or end")
	return cmd
}

// arrange loads a document, applies op to the selection and writes the result.
func (c *CLI) arrange(cmd *cobra.Command, args []string, opts *layoutOpts, name string,
	op func(*editor.Session, []string) (bool, error)) error {
	logger := loggerFromContext(cmd.Context())

	path := stdio
	if len(args) == 1 {
		path = args[0]
	}
	doc, err := readDocument(path)
	if err != nil {
		return err
	}

	sess, err := editor.New(editor.NewSessionID(), doc, c.sessionOptions(nil))
	if err != nil {
		return err
	}
	defer sess.Close()

	ids := opts.selection(sess.Document())
	changed, err := op(sess, ids)
	if err != nil {
		return err
	}
	logger.Debug(name, "objects", len(ids), "changed", changed)
	if !changed {
		printWarning("%s left the document unchanged (%s)", name, unchangedReason(name, len(ids)))
	}

	return writeDocument(opts.output, sess.Document())
}

func unchangedReason(name string, n int) string {
	need := 2
	if name == "distribute" {
		need = 3
	}
	if n < need {
		return fmt.Sprintf("needs at least %d objects, got %d", need, n)
	}
	return "objects already " + strings.TrimSuffix(name, "e") + "ed"
}
