package main

import (
	"os"

	_ "graphstack-keeper/cmd"
	"graphstack-keeper/cmd/root"
	"graphstack-keeper/internal/config"
	"graphstack-keeper/internal/logger"
)

func main() {
	// Server mode mirrors log output to stdout, CLI verbs log to file only
	isServerMode := len(os.Args) > 1 && os.Args[1] == "server"
	logger.InitLogger(&config.Config.Log, isServerMode)

	if err := root.RootCmd.Execute(); err != nil {
		logger.Fatal(err)
	}
	os.Exit(0)
}
