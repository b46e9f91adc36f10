// Package browser opens profile URLs in the system browser.
package browser

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
)

// ErrUnsupportedURL is returned for anything that is not an absolute http(s) URL.
var ErrUnsupportedURL = errors.New("only http and https URLs can be opened")

// start launches the opener without waiting for it. Replaced in tests.
var start = func(name string, args ...string) error {
	return exec.Command(name, args...).Start()
}

// Open opens rawURL in the user's default browser.
func Open(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("browser.Open: %w: %q", ErrUnsupportedURL, rawURL)
	}
	name, args, err := command(runtime.GOOS, u.String())
	if err != nil {
		return fmt.Errorf("browser.Open: %w", err)
	}
	return start(name, args...)
}

func command(goos, target string) (string, []string, error) {
	switch goos {
	case "darwin":
		return "open", []string{target}, nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return "xdg-open", []string{target}, nil
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", target}, nil
	default:
		return "", nil, fmt.Errorf("unsupported OS: %s", goos)
	}
}
