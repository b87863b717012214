package browser

import (
	"io"

	"github.com/pkg/browser"
)

// Opener hands URLs to the platform's default browser.
type Opener struct{}

func NewOpener(out io.Writer) *Opener {
	// pkg/browser echoes the launcher's output; keep it off the console.
	browser.Stdout = out
	browser.Stderr = out
	return &Opener{}
}

func (o *Opener) Open(url string) error {
	return browser.OpenURL(url)
}
