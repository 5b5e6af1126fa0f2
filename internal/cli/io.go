package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/signcanvas/pkg/canvas"
	"github.com/matzehuels/signcanvas/pkg/errors"
)

// stdio is the path that means stdin or stdout.
const stdio = "-"

// readDocument loads a JSON snapshot from path, or stdin for "-".
func readDocument(path string) (*canvas.Document, error) {
	var (
		data []byte
		err  error
	)
	if path == stdio {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}
	return canvas.Deserialize(string(data))
}

// writeDocument writes d as a JSON snapshot to path, or stdout for "" and "-".
func writeDocument(path string, d *canvas.Document) error {
	snap, err := canvas.Serialize(d)
	if err != nil {
		return err
	}
	if path == "" || path == stdio {
		_, err := io.WriteString(os.Stdout, snap+"\n")
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(snap+"\n"), 0o644); err != nil {
		return err
	}
	printFile(path)
	return nil
}
