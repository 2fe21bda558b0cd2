package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/pkg/browser"
)

// Opener hands a link to the operating system.
type Opener interface {
	Open(target string) error
}

// SystemOpener opens links with the platform's default handler. Relative
// links are resolved against BaseURL.
type SystemOpener struct {
	BaseURL string
}

var openURL = browser.OpenURL

func (o SystemOpener) Open(target string) error {
	resolved, err := ResolveLink(o.BaseURL, target)
	if err != nil {
		return err
	}
	if err := openURL(resolved); err != nil {
		return fmt.Errorf("open %s: %w", resolved, err)
	}
	return nil
}

// ResolveLink turns target into an absolute URL. Absolute URLs (including
// mailto:) pass through; paths need a base.
func ResolveLink(base, target string) (string, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return "", fmt.Errorf("empty link")
	}
	u, err := url.Parse(target)
	if err != nil {
		return "", fmt.Errorf("parse link %q: %w", target, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if strings.TrimSpace(base) == "" {
		return "", fmt.Errorf("no base url configured for %s", target)
	}
	b, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse base url %q: %w", base, err)
	}
	return b.ResolveReference(u).String(), nil
}
