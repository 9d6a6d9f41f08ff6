// Package tray builds the apodbar menu and drives the native tray icon.
//
// Build is a pure function from state.Info to a declarative Menu with a fixed
// item order: title (click to copy), previous, next, today, random, HD toggle,
// exit. Tray applies Menus to github.com/getlantern/systray and turns clicks
// into Actions on the Events channel; the event loop never touches native
// items directly.
package tray
