package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var logger = log.Default()

var rootCmd = &cobra.Command{
	Use:   "qart",
	Short: "Build QR codes that resemble a target picture",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(previewCmd)
}

func main() {
	Execute()
}
