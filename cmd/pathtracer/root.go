package main

import (
	"os"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

var output = termenv.NewOutput(os.Stdout)

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pathtracer",
		Short:         "A progressive Monte-Carlo GPU path tracer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(renderCmd())
	return root
}

func printBanner(title string) {
	output.WriteString(output.String(title).Bold().String() + "\n")
}

func printWarn(message string) {
	styled := output.String(message).Foreground(output.Color("3"))
	output.WriteString(styled.String() + "\n")
}

func printFatal(stage string, err error) {
	styled := output.String(stage + ": " + err.Error()).Foreground(output.Color("1")).Bold()
	output.WriteString(styled.String() + "\n")
}
