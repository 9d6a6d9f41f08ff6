// Package ui is apodbar's event loop.
//
// Model is a Bubble Tea model that owns the current state.Info. Tray clicks
// arrive as ActionMsg (injected with Program.Send), optional terminal keys
// map onto the same actions, and every state change that needs a new picture
// dispatches a fetch as a tea.Cmd on its own goroutine.
//
// Each dispatch carries a sequence number and a request id. Only the result
// of the most recent dispatch is applied; earlier results are logged and
// dropped. A failed fetch keeps the current title.
//
// Without a terminal (the default) the program runs headless and View renders
// nothing. With Interactive set, View shows a small status panel with recent
// cache entries and the tail of the log file.
package ui
