package maskinput

import "github.com/atotto/clipboard"

// Clipboard reads text for the paste binding.
type Clipboard interface {
	ReadText() (string, error)
}

// SystemClipboard reads the operating system clipboard.
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) {
	if clipboard.Unsupported {
		return "", nil
	}
	return clipboard.ReadAll()
}
