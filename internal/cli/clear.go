package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pfrederiksen/venue-slots/internal/controller"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var flagYes bool

// stdinIsTerminal reports whether confirmation can be asked interactively
var stdinIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newClearCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all slots stored by the backend",
		Long: `Delete every slot the backend has stored.

Asks for confirmation when stdin is a terminal. Non-interactive use needs --yes.`,
		Args: cobra.NoArgs,
		RunE: runClear,
	}
	cmd.Flags().BoolVarP(&flagYes, "yes", "y", false, "Clear without asking for confirmation")
	return cmd
}

func runClear(cmd *cobra.Command, args []string) error {
	var confirm func() bool
	if !flagYes {
		if !stdinIsTerminal() {
			return fmt.Errorf("refusing to clear data without --yes when stdin is not a terminal")
		}
		confirm = func() bool {
			return askConfirmation(cmd.InOrStdin(), cmd.ErrOrStderr(), controller.ClearConfirmation)
		}
	}

	ctrl := newController(newClient(), cmd.ErrOrStderr())
	if err := ctrl.Clear(commandContext(cmd), confirm); err != nil {
		return fmt.Errorf("clearing data: %w", err)
	}

	// A declined confirmation leaves the queue empty
	if ctrl.Toasts().Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Clear cancelled.")
	}
	return nil
}

// askConfirmation prints question and reads a yes/no answer; anything but yes is no
func askConfirmation(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
