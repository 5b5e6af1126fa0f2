// Package pkg provides the libraries behind the signcanvas editing engine.
//
// # Overview
//
// Signcanvas keeps a signage design as a flat list of positioned objects and
// lets a client change it with full undo and crash recovery. The pkg
// directory is organized into three areas:
//
//  1. Domain: [canvas] (documents and snapshots) and [layout] (distribute,
//     align)
//  2. Editing: [history] (bounded undo log), [editor] (sessions) and
//     [script] (TOML edit scripts)
//  3. Infrastructure: [recovery] (draft stores), [config], [observability],
//     [errors] and [buildinfo]
//
// # Data Flow
//
//	client edit
//	     ↓
//	[editor] Session.Edit / Distribute / Align
//	     ↓
//	[canvas] Serialize → snapshot string
//	     ↓
//	[history] Manager.Record ──→ [recovery] Writer (background save)
//
// Undo and redo run the other way: the history manager hands a snapshot
// back to the session, which deserializes it into the live document while
// recording is suspended.
//
// # Quick Start
//
//	sess, _ := editor.New(editor.NewSessionID(), canvas.New(), editor.Options{
//	    Store: recovery.NewMemoryStore(),
//	})
//	defer sess.Close()
//
//	sess.Edit(func(d *canvas.Document) error {
//	    return d.Add(canvas.NewObject("title", canvas.TypeText, 400, 60, 320, 48))
//	})
//	sess.Distribute(layout.Vertical, "title", "logo", "phone")
//	sess.Undo()
//
// [canvas]: github.com/matzehuels/signcanvas/pkg/canvas
// [layout]: github.com/matzehuels/signcanvas/pkg/layout
// [history]: github.com/matzehuels/signcanvas/pkg/history
// [editor]: github.com/matzehuels/signcanvas/pkg/editor
// [script]: github.com/matzehuels/signcanvas/pkg/script
// [recovery]: github.com/matzehuels/signcanvas/pkg/recovery
// [config]: github.com/matzehuels/signcanvas/pkg/config
// [observability]: github.com/matzehuels/signcanvas/pkg/observability
// [errors]: github.com/matzehuels/signcanvas/pkg/errors
// [buildinfo]: github.com/matzehuels/signcanvas/pkg/buildinfo
package pkg
