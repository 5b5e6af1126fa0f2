package history_test

import (
	"fmt"

	"github.com/matzehuels/signcanvas/pkg/history"
)

func ExampleManager() {
	m := history.NewManager(history.DefaultCapacity)
	m.Seed(`{"objects":[]}`)
	m.Record(`{"objects":["a"]}`)
	m.Record(`{"objects":["a","b"]}`)

	live := ""
	apply := func(s string) error { live = s; return nil }

	m.Undo(apply)
	fmt.Println(live, m.CanUndo(), m.CanRedo())

	m.Record(`{"objects":["c"]}`)
	fmt.Println(m.Len(), m.CanRedo())
	// Output:
	// {"objects":["a"]} true true
	// 3 false
}
