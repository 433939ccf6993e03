package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/viscos/viscos"
)

func main() {
	configPath := flag.String("config", "", "TOML scene config (defaults are used when empty)")
	frames := flag.Uint64("frames", 0, "stop after this many frames (0 runs until interrupted)")
	debug := flag.Bool("debug", false, "enable debug logging")
	watch := flag.Bool("watch", false, "reload the config file when it changes")
	dumpConfig := flag.Bool("dump-config", false, "print the effective config and exit")
	flag.Parse()

	if err := run(*configPath, *frames, *debug, *watch, *dumpConfig); err != nil {
		fmt.Fprintln(os.Stderr, "viscos-demo:", err)
		os.Exit(1)
	}
}

func run(configPath string, frames uint64, debug, watch, dumpConfig bool) error {
	cfg := viscos.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = viscos.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if frames > 0 {
		cfg.App.Frames = frames
	}
	if debug {
		cfg.App.Debug = true
	}

	if dumpConfig {
		data, err := cfg.Marshal()
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	}

	app := viscos.NewAppBuilder().
		UseFrameRate(cfg.App.FPS).
		UseFrameLimit(cfg.App.Frames).
		UseModule(
			viscos.LoggingModule{Prefix: cfg.App.LogPrefix, Debug: cfg.App.Debug},
			viscos.TimeModule{FixedStep: time.Duration(cfg.App.FixedStep * float64(time.Second))},
			viscos.GizmoModule{},
			viscos.AnimationModule{},
			viscos.SceneModule{Config: cfg},
			viscos.ControlModule{Path: configPath, Pose: cfg.Pose, Watch: watch},
			viscos.PreviewModule{Camera: cfg.Camera, Output: cfg.Output},
			viscos.ExportModule{Path: cfg.Output.GLTF},
		).
		Build()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return app.Run(ctx)
}
