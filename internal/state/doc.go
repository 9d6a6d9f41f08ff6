// Package state holds the date cursor the tray menu drives.
//
// # Overview
//
// Info is a plain value: the selected UTC day, the title shown in the menu and
// the high-definition flag. Every transition (Advance, Set, Today, ToggleHD,
// WithEntry) takes a copy and returns a new value, so the event loop can hand
// the current Info to a background fetch without sharing anything mutable.
//
// # Rules
//
//   - Date is always a UTC midnight and never after the current UTC day.
//   - Advance with a positive delta that would pass today is a no-op.
//   - RandomDay picks uniformly from [today-window, today); window defaults
//     to 180 days.
//
// There are no error conditions; all operations are total.
package state
