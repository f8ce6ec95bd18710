package main

import (
	"log/slog"
	"os"

	"github.com/pkgerio/pkger/internal/cli"
	"github.com/pkgerio/pkger/internal/logging"
	"github.com/pkgerio/pkger/internal/pkgcfg"
)

// main parses CLI flags and runs the selected subcommand, exiting 1 on
// any job failure or command error and 0 otherwise.
func main() {
	slog.SetDefault(logger())

	slog.Debug("build", "version", pkgcfg.VersionString())
	slog.Debug("pkger starting",
		"pid", os.Getpid(),
		"cwd", cwd(),
		"args", os.Args,
	)

	if err := cli.Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}
}

// logger builds a handler at the build-time default level; cli.Execute
// reconfigures it once flags are parsed.
func logger() *slog.Logger {
	handler := logging.New()
	handler.SetLevel(logLevel())
	return slog.New(handler.WithGroup(pkgcfg.Name))
}

func logLevel() slog.Level {
	if pkgcfg.IsDebug() {
		return slog.LevelDebug
	}
	if pkgcfg.IsQuiet() {
		return slog.LevelWarn
	}
	return slog.LevelInfo
}

func cwd() string {
	dir, err := os.Getwd()
	if err != nil {
		return "(unknown)"
	}
	return dir
}
