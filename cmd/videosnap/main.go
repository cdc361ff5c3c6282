// Command videosnap extracts a still JPEG image from the first H.264
// keyframe of an input file.
package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	pionlogging "github.com/pion/logging"
	"github.com/urfave/cli/v2"

	"github.com/pion/videosnap"
	"github.com/pion/videosnap/internal/logging"
	"github.com/pion/videosnap/pkg/annotate"
	"github.com/pion/videosnap/pkg/codec"
	"github.com/pion/videosnap/pkg/config"
	"github.com/pion/videosnap/pkg/extract"
)

func main() {
	app := &cli.App{
		Name:      "videosnap",
		Usage:     "extract a still JPEG from an H.264 keyframe",
		ArgsUsage: "<input.h264|input.mp4>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output JPEG `PATH`",
			},
			&cli.StringFlag{
				Name:    "label",
				Aliases: []string{"l"},
				Usage:   "caption `TEXT` stamped onto the snapshot",
			},
			&cli.IntFlag{
				Name:    "quality",
				Aliases: []string{"q"},
				Usage:   "MJPEG quantizer (2-31, lower is better)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML `FILE` with flag defaults",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (disabled, error, warn, info, debug, trace)",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "videosnap: %v\n", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("expected exactly one input file")
	}

	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if c.IsSet("output") {
		cfg.Output = c.String("output")
	}
	if c.IsSet("label") {
		cfg.Label = c.String("label")
	}
	if c.IsSet("quality") {
		cfg.Quality = c.Int("quality")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}

	level, err := parseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logging.SetLevel(level)

	accessUnit, err := extract.ReadAccessUnit(c.Args().First())
	if err != nil {
		return err
	}

	img, err := videosnap.Snapshot(accessUnit)
	if err != nil {
		return err
	}

	if cfg.Label != "" {
		img = annotate.Label(img, cfg.Label)
	}

	writer, err := codec.BuildStillWriter(codec.MJPEG, codec.StillSetting{Quality: cfg.Quality})
	if err != nil {
		return err
	}
	defer writer.Close()

	if err := writer.Save(img, cfg.Output); err != nil {
		return err
	}

	if isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Printf("\x1b[32mwrote %s\x1b[0m\n", cfg.Output)
	} else {
		fmt.Printf("wrote %s\n", cfg.Output)
	}
	return nil
}

func parseLogLevel(s string) (pionlogging.LogLevel, error) {
	switch s {
	case "disabled":
		return pionlogging.LogLevelDisabled, nil
	case "", "error":
		return pionlogging.LogLevelError, nil
	case "warn":
		return pionlogging.LogLevelWarn, nil
	case "info":
		return pionlogging.LogLevelInfo, nil
	case "debug":
		return pionlogging.LogLevelDebug, nil
	case "trace":
		return pionlogging.LogLevelTrace, nil
	default:
		return pionlogging.LogLevelError, fmt.Errorf("unknown log level %q", s)
	}
}
