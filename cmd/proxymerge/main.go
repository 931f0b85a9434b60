package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"proxymerge/internal/config"
	"proxymerge/internal/logger"
	"proxymerge/pkg/manager"
)

const Version = "1.0.0"

func main() {
	if err := run(os.Args[1:]); err != nil {
		logger.New("main").ErrorBg("%v", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	flags := config.Flags()
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	if v, _ := flags.GetBool("version"); v {
		fmt.Printf("proxymerge v%s\n", Version)
		return nil
	}

	if gen, _ := flags.GetBool("gen-config"); gen {
		if err := config.SaveConfigTemplate("config.yaml"); err != nil {
			return err
		}
		fmt.Fprintln(os.Stderr, "Default config generated: config.yaml")
		return nil
	}

	configPath, _ := flags.GetString("config")
	cfg, err := config.LoadConfig(configPath, flags)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.SetLevel(cfg.Log.Level); err != nil {
		return err
	}

	log := logger.New("main")
	id := logger.GenerateID()
	log.Info(id, "Starting proxymerge v%s", Version)
	config.PrintConfig(cfg, log, id)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr, err := manager.NewManager(afero.NewOsFs(), cfg)
	if err != nil {
		return err
	}

	res, _, err := mgr.Run(ctx, id)
	if err != nil {
		return err
	}

	fmt.Println(res)
	return nil
}
