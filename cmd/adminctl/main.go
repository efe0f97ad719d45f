package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/urfave/cli/v3"

	"marketadmin/internal/api"
	"marketadmin/internal/config"
	"marketadmin/internal/obs"
	"marketadmin/internal/session"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "adminctl: %v\n", err)
		return 1
	}
	logger := obs.NewLogger(cfg.Env)

	store, err := session.Open(cfg.SessionFile, logger)
	if err != nil {
		fmt.Fprintf(stderr, "adminctl: %v\n", err)
		return 1
	}

	a := &app{
		cfg:    cfg,
		logger: logger,
		store:  store,
		client: &api.Client{
			BaseURL: cfg.APIBaseURL,
			HTTP:    &http.Client{},
			Tokens:  store,
			Logger:  logger,
			Timeout: cfg.HTTPTimeout,
		},
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}

	root := a.rootCommand()
	if err := root.Run(context.Background(), args); err != nil {
		if exitErr, ok := err.(cli.ExitCoder); ok {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(stderr, "adminctl: %v\n", err)
		return 1
	}
	return 0
}
