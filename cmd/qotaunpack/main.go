package main

import (
	"io"
	"os"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	logger := &log.Logger{Handler: cli.New(stderr), Level: log.InfoLevel}

	cmd := newRootCmd(logger, stdin, stdout, stderr)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		logger.WithError(err).Error("qotaunpack failed")
		return 1
	}
	return 0
}
