// Command starsplitd runs the autosplit daemon in the foreground.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"starsplit/internal/config"
	"starsplit/internal/daemonrun"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, resolvedPath, exists, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !exists && *configPath != "" {
		log.Fatalf("config file not found: %s", resolvedPath)
	}

	if err := daemonrun.Run(context.Background(), cfg); err != nil {
		fmt.Fprintf(os.Stderr, "starsplitd: %v\n", err)
		os.Exit(1)
	}
}
