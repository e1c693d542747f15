package main

import (
	"fmt"
	"image/png"
	"os"
	"strconv"

	"github.com/andrewyur/qart/qart"
	"github.com/andrewyur/qart/qrversion"
	"github.com/spf13/cobra"
)

var (
	debugSavePath   string
	debugModuleSize int
)

var debugCmd = &cobra.Command{
	Use:   "debug <version>",
	Short: "Render the cursor's placement order for a version, for diagnosing stuck-cursor failures",
	Args:  cobra.ExactArgs(1),
	RunE:  runDebug,
}

func init() {
	debugCmd.Flags().StringVar(&debugSavePath, "save-path", "debug.png", "output PNG path")
	debugCmd.Flags().IntVar(&debugModuleSize, "module-size", 5, "pixels per module")
	rootCmd.AddCommand(debugCmd)
}

func runDebug(cmd *cobra.Command, args []string) error {
	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	v, err := qrversion.New(version)
	if err != nil {
		return err
	}

	img, err := qart.RenderCursorPath(v, debugModuleSize)
	if err != nil {
		return err
	}

	out, err := os.Create(debugSavePath)
	if err != nil {
		return fmt.Errorf("qart: could not create output file: %w", err)
	}
	defer out.Close()

	return png.Encode(out, img)
}
