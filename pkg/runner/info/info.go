// Package info prints where the store lives and explains the 36-day
// pattern.
package info

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"

	"tableflip.dev/cosmic36/pkg/content"
	"tableflip.dev/cosmic36/pkg/store"
)

type Info struct {
	Config store.Config

	// Pattern renders the pattern help instead of the config summary.
	Pattern bool
	// Width wraps the rendered help; zero uses a sane default.
	Width int
}

func (n *Info) Do(ctx context.Context) error {
	if n.Pattern {
		return n.printPattern()
	}

	if override := os.Getenv("COSMIC36_CONFIG_PATH"); override != "" {
		fmt.Println("COSMIC36_CONFIG_PATH found on env, using ", override)
	} else {
		fmt.Println("COSMIC36_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	fmt.Println("Config.path: ", n.Config.BasePath())
	return nil
}

func (n *Info) printPattern() error {
	width := n.Width
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		// Fall back to the raw markdown rather than hiding the help.
		fmt.Println(content.PatternInfo())
		return nil
	}
	out, err := renderer.Render(strings.TrimSpace(content.PatternInfo()))
	if err != nil {
		fmt.Println(content.PatternInfo())
		return nil
	}
	fmt.Print(out)
	return nil
}
