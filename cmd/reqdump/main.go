package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/shravanasati/reqdump/internal/config"
	"github.com/shravanasati/reqdump/internal/inspect"
	"github.com/shravanasati/reqdump/internal/logging"
	"github.com/shravanasati/reqdump/internal/server"
)

type flags struct {
	configPath string
	addr       string
	strict     bool
	reply      bool
	noColor    bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("reqdump", flag.ContinueOnError)
	fs.StringVar(&f.configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&f.addr, "addr", "", "address to listen on, overrides the config file")
	fs.BoolVar(&f.strict, "strict", false, "reject requests with any framing problem")
	fs.BoolVar(&f.reply, "reply", false, "answer every request with a minimal response")
	fs.BoolVar(&f.noColor, "no-color", false, "disable styled output")
	err := fs.Parse(args)
	return f, err
}

// loadConfig merges command line flags over the config file.
func loadConfig(f flags) (config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if f.addr != "" {
		cfg.Address = f.addr
	}
	if f.strict {
		cfg.Strict = true
	}
	if f.reply {
		cfg.Reply = true
	}
	if f.noColor {
		cfg.Color = false
	}
	return cfg, config.Validate(cfg)
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	cfg, err := loadConfig(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reqdump: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.Init("reqdump", cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "reqdump: %v\n", err)
		os.Exit(1)
	}
	log.Info().Str("config", f.configPath).Msg("loaded config")

	sink := inspect.NewSink(os.Stdout, inspect.RenderOptions{
		Color:   cfg.Color,
		MaxBody: cfg.MaxBodyRender,
	})

	srv, err := server.Serve(server.ServerOpts{
		Address:         cfg.Address,
		ReadBufferSize:  cfg.ReadBufferSize,
		MaxRequestBytes: cfg.MaxRequestBytes,
		ReadTimeout:     cfg.ReadTimeout,
		WriteTimeout:    cfg.WriteTimeout,
		Strict:          cfg.Strict,
		SingleRead:      cfg.SingleRead,
		Reply:           cfg.Reply,
		Logger:          &logger,
	}, sink)
	if err != nil {
		log.Fatal().Err(err).Msg("error starting server")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	if err := srv.Close(); err != nil {
		log.Warn().Err(err).Msg("error closing listener")
	}
	log.Info().Msg("server gracefully stopped")
}
