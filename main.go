package main

import (
	"fmt"
	"os"

	"charm.land/lipgloss/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/colfmt/cmd"
	"github.com/oakwood-commons/colfmt/pkg/logger"
)

func main() {
	exitCode := 0
	if err := cmd.Execute(); err != nil {
		prefix := "Error:"
		if term.IsTerminal(int(os.Stderr.Fd())) {
			prefix = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")).Render(prefix)
		}
		fmt.Fprintln(os.Stderr, prefix, err)
		exitCode = 1
	}

	logger.Sync()
	if exitCode != 0 {
		os.Exit(exitCode)
	}
}
