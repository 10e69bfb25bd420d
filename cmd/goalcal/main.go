package main

import (
	"os"

	"goalcal/internal/cli"
	appLog "goalcal/internal/log"
)

func main() {
	if err := cli.NewRootCmd().Execute(); err != nil {
		appLog.Error("goalcal failed", err)
		os.Exit(1)
	}
}
