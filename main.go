package main

import (
	"fmt"
	"os"

	"seo-content-go/internal/cli"
	"seo-content-go/pkg/logger"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", fmt.Sprint(r)).Error("panic recovered")
			fmt.Fprintf(os.Stderr, "CRITICAL ERROR: panic recovered: %v\n", r)
			os.Exit(1)
		}
	}()

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
