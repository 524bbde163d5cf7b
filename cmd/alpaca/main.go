package main

import (
	"os"

	"github.com/aleya-dev/alpaca/internal/cli"
	"github.com/sirupsen/logrus"
)

var version = "dev"

func main() {
	// Setup logging format
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	rootCmd := cli.NewRootCmd(version)
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
