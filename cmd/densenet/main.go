// Package main provides the densenet CLI.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/born-ml/densenet/internal/config"
	"github.com/born-ml/densenet/internal/nn"
	"github.com/born-ml/densenet/internal/serialization"
	"github.com/born-ml/densenet/internal/server"
	"github.com/gin-gonic/gin"
)

const version = "v0.1.0"

const usage = `densenet - dense feed-forward networks

Commands:
  version                                  Show version
  train   -config file.yaml -out model.dnet Train a network and save it
  predict -model model.dnet -input 1,0      Evaluate a saved network
  serve   -model model.dnet [-addr :8080]   Serve a saved network over HTTP
`

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "densenet:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return errUsage
	}
	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "densenet %s\n", version)
		return nil
	case "train":
		return runTrain(ctx, args[1:], stdout, stderr)
	case "predict":
		return runPredict(args[1:], stdout, stderr)
	case "serve":
		return runServe(ctx, args[1:], stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return errUsage
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runTrain(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("train", flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfgPath := fs.String("config", "", "YAML training config (required)")
	out := fs.String("out", "model.dnet", "checkpoint to write")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *cfgPath == "" {
		fmt.Fprintln(stderr, "train: -config is required")
		return errUsage
	}
	logger := newLogger(stderr, *verbose)

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return err
	}
	netCfg, err := cfg.NetworkConfig()
	if err != nil {
		return err
	}
	net, err := nn.NewNetwork(netCfg)
	if err != nil {
		return err
	}
	ds, err := cfg.Dataset()
	if err != nil {
		return err
	}
	logger.Debug("training", "samples", ds.Len(), "layers", net.NumLayers(), "activation", cfg.Network.Activation)

	res, err := net.Train(ctx, ds, cfg.TrainConfig(logger))
	if err != nil {
		return fmt.Errorf("train: %w", err)
	}

	header, err := serialization.SaveFile(*out, net, serialization.SaveOptions{
		Metadata: map[string]string{"config": *cfgPath},
		Training: &serialization.TrainingMeta{
			Epochs:       res.Epochs,
			LearningRate: cfg.Training.LearningRate,
			Loss:         res.Loss,
		},
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "model %s: %d epochs, loss %g, saved to %s\n", header.ModelID, res.Epochs, res.Loss, *out)
	return nil
}

func runPredict(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("predict", flag.ContinueOnError)
	fs.SetOutput(stderr)
	model := fs.String("model", "model.dnet", "checkpoint to load")
	input := fs.String("input", "", "comma-separated input values (required)")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if *input == "" {
		fmt.Fprintln(stderr, "predict: -input is required")
		return errUsage
	}

	values, err := parseValues(*input)
	if err != nil {
		return err
	}
	ckpt, err := serialization.LoadFile(*model)
	if err != nil {
		return err
	}
	net, err := ckpt.Network()
	if err != nil {
		return err
	}
	outputs, err := net.FeedForward(values)
	if err != nil {
		return err
	}

	fields := make([]string, len(outputs))
	for i, v := range outputs {
		fields[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	fmt.Fprintln(stdout, strings.Join(fields, ","))
	return nil
}

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(stderr)
	model := fs.String("model", "model.dnet", "checkpoint to load")
	addr := fs.String("addr", ":8080", "listen address")
	cfgPath := fs.String("config", "", "YAML config for server settings (optional)")
	verbose := fs.Bool("v", false, "debug logging")
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	logger := newLogger(stderr, *verbose)

	srvCfg := server.Config{Logger: logger}
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		srvCfg.MaxBatch = cfg.Server.MaxBatch
		srvCfg.ShutdownTimeout = cfg.Server.ShutdownTimeout
		if !flagSet(fs, "addr") {
			*addr = cfg.Server.Addr
		}
	}

	ckpt, err := serialization.LoadFile(*model)
	if err != nil {
		return err
	}
	net, err := ckpt.Network()
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	return server.New(net, ckpt.Header.ModelID, srvCfg).Run(ctx, *addr)
}

func flagSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func parseValues(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	values := make([]float64, len(parts))
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, fmt.Errorf("input value %d: %w", i+1, err)
		}
		values[i] = v
	}
	return values, nil
}
