package script

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/signcanvas/pkg/editor"
	"github.com/matzehuels/signcanvas/pkg/errors"
)

const signScript = `
[canvas]
width = 1000
height = 600
background = "#ffffff"

[[steps]]
op = "add"
id = "title"
type = "text"
text = "OPEN"
left = 500
top = 50
width = 300
height = 40

[[steps]]
op = "add"
id = "logo"
type = "image"
left = 500
top = 120
width = 100
height = 100

[[steps]]
op = "add"
id = "phone"
left = 500
top = 500
width = 300
height = 40

[[steps]]
op = "distribute"
ids = ["phone", "title", "logo"]
axis = "vertical"

[[steps]]
op = "undo"

[[steps]]
op = "redo"
`

func run(t *testing.T, src string) (*editor.Session, Result, error) {
	t.Helper()
	sc, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	sess, err := editor.New("script-test", sc.Document(), editor.Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(sess.Close)
	res, err := Run(context.Background(), sess, sc)
	return sess, res, err
}

func TestRun(t *testing.T) {
	sess, res, err := run(t, signScript)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := Result{Steps: 6, Recorded: 4, Undone: 1, Redone: 1}
	if res != want {
		t.Errorf("Result = %+v, want %+v", res, want)
	}

	doc := sess.Document()
	if doc.Width != 1000 || doc.Background != "#ffffff" {
		t.Errorf("canvas = %vx%v %q", doc.Width, doc.Height, doc.Background)
	}
	if got := doc.Find("logo").Top; got != 275 {
		t.Errorf("logo.Top = %v, want 275", got)
	}
	if got := doc.Find("title").Text; got != "OPEN" {
		t.Errorf("title.Text = %q", got)
	}
	if got := doc.Find("phone").Type; got != "rect" {
		t.Errorf("default type = %q, want rect", got)
	}
	if sess.History().Len() != 5 {
		t.Errorf("history len = %d, want 5", sess.History().Len())
	}
}

func TestRunEdits(t *testing.T) {
	src := `
[[steps]]
op = "add"
id = "a"
width = 10
height = 10

[[steps]]
op = "move"
id = "a"
left = 40

[[steps]]
op = "resize"
id = "a"
height = 30

[[steps]]
op = "set"
id = "a"
fill = "red"
angle = 90

[[steps]]
op = "move"
id = "a"
left = 40

[[steps]]
op = "undo"
count = 10
`
	sess, res, err := run(t, src)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1 (repeated move)", res.Skipped)
	}
	if res.Undone != 4 {
		t.Errorf("Undone = %d, want 4", res.Undone)
	}
	if sess.Document().Len() != 0 {
		t.Errorf("objects = %d after undoing everything", sess.Document().Len())
	}
	if sess.CanUndo() {
		t.Error("CanUndo at start of history")
	}
}

func TestRunStopsOnError(t *testing.T) {
	src := `
[[steps]]
op = "add"
id = "a"
width = 10
height = 10

[[steps]]
op = "delete"
id = "ghost"

[[steps]]
op = "delete"
id = "a"
`
	sess, res, err := run(t, src)
	if !errors.Is(err, errors.ErrCodeObjectNotFound) {
		t.Fatalf("err = %v, want OBJECT_NOT_FOUND", err)
	}
	if !strings.Contains(err.Error(), "step 2") {
		t.Errorf("error %q does not name the step", err)
	}
	if res.Steps != 1 || sess.Document().Len() != 1 {
		t.Errorf("steps = %d, objects = %d", res.Steps, sess.Document().Len())
	}
}

func TestRunCancelled(t *testing.T) {
	sc, err := Parse(strings.NewReader(signScript))
	if err != nil {
		t.Fatal(err)
	}
	sess, err := editor.New("cancelled", sc.Document(), editor.Options{Logger: log.New(io.Discard)})
	if err != nil {
		t.Fatal(err)
	}
	defer sess.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, sess, sc); err != context.Canceled {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax", `[[steps]`},
		{"unknown key", "[[steps]]\nop = \"undo\"\ncolour = \"red\""},
		{"missing op", "[[steps]]\nid = \"a\""},
		{"unknown op", "[[steps]]\nop = \"rotate\"\nid = \"a\""},
		{"add without size", "[[steps]]\nop = \"add\"\nid = \"a\""},
		{"move without position", "[[steps]]\nop = \"move\"\nid = \"a\""},
		{"delete without id", "[[steps]]\nop = \"delete\""},
		{"bad axis", "[[steps]]\nop = \"distribute\"\nids = [\"a\"]\naxis = \"diagonal\""},
		{"align without edge", "[[steps]]\nop = \"align\"\nids = [\"a\"]\naxis = \"x\""},
		{"negative count", "[[steps]]\nop = \"undo\"\ncount = -1"},
		{"negative canvas", "[canvas]\nwidth = -5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Parse() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sign.toml")
	if err := os.WriteFile(path, []byte(signScript), 0o600); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(sc.Steps) != 6 {
		t.Errorf("steps = %d, want 6", len(sc.Steps))
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load of missing file succeeded")
	}
}

func TestRunValidatesScript(t *testing.T) {
	tests := []struct {
		name string
		step Step
	}{
		{"add without size", Step{Op: OpAdd, ID: "a"}},
		{"distribute with bad axis", Step{Op: OpDistribute, IDs: []string{"a", "b", "c"}, Axis: "diagonal"}},
		{"align with bad edge", Step{Op: OpAlign, IDs: []string{"a", "b"}, Axis: "x", Edge: "diagonal"}},
		{"unknown op", Step{Op: "rotate", ID: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess, err := editor.New("unvalidated", nil, editor.Options{Logger: log.New(io.Discard)})
			if err != nil {
				t.Fatal(err)
			}
			defer sess.Close()

			res, err := Run(context.Background(), sess, &Script{Steps: []Step{tt.step}})
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Run() error = %v, want INVALID_INPUT", err)
			}
			if res.Steps != 0 || sess.History().Len() != 1 {
				t.Errorf("steps = %d, history len = %d; want nothing applied", res.Steps, sess.History().Len())
			}
		})
	}
}
