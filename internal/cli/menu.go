package cli

import (
	"errors"
	"os"

	"github.com/dxbtools/admintools/internal/app"
	"github.com/dxbtools/admintools/internal/menu"
	"github.com/dxbtools/admintools/internal/ui"
	"github.com/spf13/cobra"
)

// exitInterrupted mirrors the shell status of a process killed by SIGINT.
const exitInterrupted = 130

func newMenuCmd(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show a menu and run the chosen command",
		Long: `Shows a bordered menu on the terminal. Arrow keys or j/k move the
highlight, Enter chooses, q leaves. The chosen command runs after the
menu has given the terminal back.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := menu.Demo()
			if path := e.cfg.Menu.File; path != "" {
				m, err := menu.Load(path)
				if err != nil {
					return err
				}
				root = m
			}

			out, ok := e.opts.Stdout.(*os.File)
			if !ok {
				return ui.ErrNoTerminal
			}
			session, err := ui.NewSession(e.opts.Stdin, out)
			if err != nil {
				return err
			}
			defer session.Close()

			err = app.Run(cmd.Context(), app.Config{
				Stdin:  e.opts.Stdin,
				Stdout: e.opts.Stdout,
				Stderr: e.opts.Stderr,
			}, session, root)
			if errors.Is(err, ui.ErrInterrupted) {
				return &ExitError{Code: exitInterrupted}
			}
			return err
		},
	}
	cmd.Flags().String("menu", "", "YAML menu definition (default is the built-in demo menu)")
	return cmd
}
