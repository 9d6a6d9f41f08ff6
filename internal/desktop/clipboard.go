package desktop

import "github.com/atotto/clipboard"

// Clipboard writes plain text to the system clipboard.
type Clipboard struct{}

// SetText replaces the clipboard contents. On Linux this needs xclip, xsel
// or wl-clipboard on PATH.
func (Clipboard) SetText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
