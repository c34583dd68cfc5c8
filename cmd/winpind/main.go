package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"winpin/internal/config"
	"winpin/internal/daemon"
	"winpin/internal/daemonrun"
)

func main() {
	configFlag := flag.String("config", "", "configuration file path")
	logLevelFlag := flag.String("log-level", "", "override configured log level")
	flag.Parse()

	cfg, _, _, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := daemonrun.Run(context.Background(), cfg, daemonrun.Options{LogLevel: *logLevelFlag}); err != nil {
		if errors.Is(err, daemon.ErrAlreadyRunning) {
			fmt.Fprintln(os.Stderr, "winpind is already running")
			os.Exit(1)
		}
		log.Fatalf("winpind: %v", err)
	}
}
