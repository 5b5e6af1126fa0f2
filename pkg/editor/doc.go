// Package editor ties a canvas document to its undo/redo history for one
// editing session.
//
// A [Session] owns the live [canvas.Document] and a [history.Manager]; no
// package-level state is involved. Every mutation goes through the session
// so the snapshot is recorded strictly after the geometry change it
// captures:
//
//	sess, _ := editor.New(editor.NewSessionID(), canvas.New(), editor.Options{})
//	sess.Edit(func(d *canvas.Document) error {
//	    return d.Add(canvas.NewObject("title", canvas.TypeText, 400, 80, 300, 60))
//	})
//	sess.Distribute(layout.Vertical, "title", "logo", "phone")
//	sess.Undo()
//
// When a recovery store is configured the live snapshot is persisted in the
// background after every change, and [Open] resumes from it.
package editor
