// Package renderer provides the display layer for the Gale editor.
//
// The renderer draws one frame at a time from read-only engine state:
//   - the text area with the line number gutter on its left
//   - "~" markers on rows past the end of the buffer
//   - find highlights
//   - the cursor cell
//   - the status bar and the message line under it
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│           Renderer (Facade)             │
//	├─────────────────────────────────────────┤
//	│  Viewport │ Gutter │ StatusLine         │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│  Terminal (tcell) │ NullBackend (tests) │
//	└─────────────────────────────────────────┘
//
// The viewport is recomputed at the start of every frame, so scroll offsets
// and the gutter width always reflect the current cursor and line count.
//
// Usage:
//
//	term, _ := backend.NewTerminal()
//	r, _ := renderer.New(term, renderer.DefaultOptions())
//	r.Render(eng, renderer.Frame{})
package renderer
