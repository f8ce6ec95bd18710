package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/pkgerio/pkger/internal/logging"
	"github.com/pkgerio/pkger/internal/pkgbuild"
	"github.com/pkgerio/pkger/internal/pkgcfg"
)

// RootCmd is the root command for the pkger CLI.
var RootCmd struct {
	Quiet   bool   `short:"q" help:"Suppress informational output."`
	Verbose bool   `short:"v" help:"Enable verbose output."`
	Debug   bool   `short:"d" help:"Enable debug output."`
	Runtime string `short:"r" help:"Override the container runtime socket URI." placeholder:"URI"`

	Build      BuildCmd      `cmd:"" help:"Build one or more packages."`
	List       ListCmd       `cmd:"" help:"List images, recipes, or built packages."`
	CleanCache CleanCacheCmd `cmd:"clean-cache" help:"Discard the persisted image-state cache."`
	New        NewCmd        `cmd:"" help:"Scaffold a new recipe or image."`
	Edit       EditCmd       `cmd:"" help:"Open a recipe, image, or config file in $EDITOR."`
	Version    VersionCmd    `cmd:"" help:"Show version information."`
}

// Execute parses arguments, configures logging, and runs the selected
// subcommand. It installs a SIGINT/SIGTERM handler that clears a shared
// [pkgbuild.Cancel] handle so in-flight builds unwind at their next
// stage boundary, per §5's cancellation model.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cancel := pkgbuild.NewCancel()
	go func() {
		<-ctx.Done()
		slog.Warn("interrupted, cancelling in-flight builds")
		cancel.Clear()
	}()

	kongCtx := kong.Parse(&RootCmd,
		kong.Name(pkgcfg.Name),
		kong.Description("A native package builder: builds RPM, DEB, Arch, Alpine, and gzip packages from declarative recipes in ephemeral containers."),
		kong.UsageOnError(),
		kong.Vars{
			"version": pkgcfg.VersionString(),
		},
		kong.BindTo(ctx, (*context.Context)(nil)),
		kong.Bind(cancel),
	)

	configureLogger()

	return kongCtx.Run()
}

// configureLogger reconfigures the global logger's level and formatter
// based on the parsed root flags.
func configureLogger() {
	handler, ok := slog.Default().Handler().(*logging.Handler)
	if !ok {
		return
	}

	debug := RootCmd.Debug || pkgcfg.IsDebug()
	quiet := RootCmd.Quiet || pkgcfg.IsQuiet()
	verbose := RootCmd.Verbose || pkgcfg.IsVerbose()

	formatter := logging.NewTextFormatter(isatty(os.Stderr))
	formatter.SetVerbose(verbose)

	switch {
	case debug:
		handler.SetLevel(slog.LevelDebug)
	case quiet:
		handler.SetLevel(slog.LevelWarn)
	default:
		handler.SetLevel(slog.LevelInfo)
	}

	handler.SetFormatter(formatter)
	handler.SetStream(os.Stderr)
	handler.Flush()
}

// isatty reports whether f is an interactive terminal.
func isatty(f *os.File) bool {
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
