package main

import (
	"fmt"
	"image/png"
	"os"
	"strconv"
	"time"

	"github.com/andrewyur/qart/qart"
	"github.com/andrewyur/qart/qrversion"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	buildSavePath   string
	buildModuleSize int
	buildThreshold  uint16
	buildBenchmark  bool
	buildRandom     bool
)

var buildCmd = &cobra.Command{
	Use:   "build <version> <url> <image_path>",
	Short: "Produce a PNG QR symbol resembling a target image",
	Args:  cobra.ExactArgs(3),
	RunE:  runBuild,
}

func init() {
	var flags *pflag.FlagSet = buildCmd.Flags()
	flags.StringVar(&buildSavePath, "save-path", "code.png", "output PNG path")
	flags.IntVar(&buildModuleSize, "module-size", 5, "pixels per module")
	flags.Uint16VarP(&buildThreshold, "threshold", "t", 128, "brightness threshold, 0-255")
	flags.BoolVar(&buildBenchmark, "benchmark", false, "report wall-clock time")
	flags.BoolVar(&buildRandom, "random", false, "shuffle module ordering instead of sorting by contrast")
}

func runBuild(cmd *cobra.Command, args []string) error {
	start := time.Now()

	version, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid version %q: %w", args[0], err)
	}
	v, err := qrversion.New(version)
	if err != nil {
		return err
	}
	url := args[1]
	imagePath := args[2]

	if buildThreshold > 255 {
		return fmt.Errorf("--threshold must be 0-255, got %d", buildThreshold)
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return fmt.Errorf("qart: could not open target image: %w", err)
	}
	defer f.Close()

	img, err := qart.Build(qart.Options{
		Version:    v,
		URL:        url,
		ModuleSize: buildModuleSize,
		Threshold:  uint8(buildThreshold),
		Random:     buildRandom,
		Logger:     logger,
	}, f)
	if err != nil {
		return err
	}

	out, err := os.Create(buildSavePath)
	if err != nil {
		return fmt.Errorf("qart: could not create output file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("qart: could not encode PNG: %w", err)
	}

	if buildBenchmark {
		logger.Info("build finished", "elapsed", time.Since(start))
	}
	return nil
}
