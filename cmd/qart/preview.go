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
	previewSavePath string
	previewRandom   bool
)

var previewCmd = &cobra.Command{
	Use:   "preview <version> <image_path>",
	Short: "Quickly visualise how a build run would bias a symbol",
	Args:  cobra.ExactArgs(2),
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().StringVar(&previewSavePath, "save-path", "preview.png", "output PNG path")
	previewCmd.Flags().Uint16("threshold", 128, "brightness threshold, 0-255")
	previewCmd.Flags().BoolVar(&previewRandom, "random", false, "accepted but has no effect: preview always ranks modules by contrast")
}

func runPreview(cmd *cobra.Command, args []string) error {
	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	v, err := qrversion.New(version)
	if err != nil {
		return err
	}
	imagePath := args[1]

	threshold, err := cmd.Flags().GetUint16("threshold")
	if err != nil {
		return err
	}
	if threshold > 255 {
		return fmt.Errorf("--threshold must be 0-255, got %d", threshold)
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("qart: could not open target image: %w", err)
	}
	defer f.Close()

	img, err := qart.Preview(qart.Options{
		Version:    v,
		ModuleSize: 5,
		Threshold:  uint8(threshold),
		Random:     previewRandom,
		Logger:     logger,
	}, f)
	if err != nil {
		return err
	}

	out, err := os.Create(previewSavePath)
	if err != nil {
		return fmt.Errorf("qart: could not create output file: %w", err)
	}
	defer out.Close()

	return png.Encode(out, img)
}
