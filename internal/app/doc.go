// Package app is apodbar's composition root.
//
// Run loads config.toml and prefs.toml, points the standard logger at the
// log file, and builds the APOD client, the optional bbolt response cache,
// the picture fetcher, the tray icon and the Bubble Tea event loop.
//
// The tray must own the main goroutine on every platform systray supports,
// so Run blocks in tray.Run while an errgroup runs the program and a bridge
// that forwards menu clicks with Program.Send:
//
//	main goroutine:  tray.Run ────────────────┐ quits when the program exits
//	errgroup:        program.Run ─ Quit tray ─┘
//	errgroup:        tray.Events ─> program.Send(ui.ActionMsg)
//
// Fatal errors (returned from Run): invalid config, log file creation, client
// or fetcher construction. A cache that cannot be opened is logged and the
// app runs uncached.
package app
