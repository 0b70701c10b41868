// Package clear discards every entry in the current cycle.
package clear

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/cosmic36/pkg/app"
	"tableflip.dev/cosmic36/pkg/printers"
)

type Clear struct {
	Service *app.Service

	// Force skips the confirmation prompt.
	Force bool
	// In is the confirmation source; defaults to stdin.
	In io.Reader
}

func (c *Clear) Do(ctx context.Context) error {
	if c.Service == nil {
		return errors.New("clear requires the application service")
	}

	if !c.Force {
		in := c.In
		if in == nil {
			in = os.Stdin
		}
		fmt.Print("Discard every entry in the current cycle? This cannot be undone. [y/N] ")
		line, _ := bufio.NewReader(in).ReadString('\n')
		if answer := strings.ToLower(strings.TrimSpace(line)); answer != "y" && answer != "yes" {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	err := c.Service.ClearCycle()
	if errors.Is(err, app.ErrNoDate) {
		pp := printers.PrettyPrint{}
		pp.NoDate()
		return nil
	}
	if err != nil {
		return err
	}

	_, _ = color.New(color.FgGreen).Println("Cycle cleared. A fresh record starts now.")
	return nil
}
