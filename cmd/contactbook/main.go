package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"syscall"

	"github.com/tartampluch/contactbook/internal/assistant"
	"github.com/tartampluch/contactbook/internal/book"
	"github.com/tartampluch/contactbook/internal/config"
	"github.com/tartampluch/contactbook/internal/storage"
)

// options collects the command line flags.
type options struct {
	debug      bool
	configPath string
	configSet  bool // -config was given explicitly, so the file must exist.
	dataPath   string
	demo       bool
}

// main is the application entry point.
// It delegates execution to runMain so that deferred calls (closing the log file)
// run before the process exits.
func main() {
	os.Exit(runMain())
}

// runMain manages the application lifecycle, argument parsing, and exit codes.
func runMain() int {
	// -------------------------------------------------------------------------
	// 1. CLI Argument Parsing
	// -------------------------------------------------------------------------
	var opts options
	showVersion := flag.Bool(config.FlagVersion, false, config.FlagDescVersion)
	flag.BoolVar(&opts.debug, config.FlagDebug, false, config.FlagDescDebug)
	flag.StringVar(&opts.configPath, config.FlagConfig, config.DefaultConfigFile, config.FlagDescConfig)
	flag.StringVar(&opts.dataPath, config.FlagData, "", config.FlagDescData)
	flag.BoolVar(&opts.demo, config.FlagDemo, false, config.FlagDescDemo)
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == config.FlagConfig {
			opts.configSet = true
		}
	})

	if *showVersion {
		printVersion()
		return config.ExitCodeSuccess
	}

	// -------------------------------------------------------------------------
	// 2. Logging Initialization
	// -------------------------------------------------------------------------
	// The console belongs to the command loop, so logs go to a file
	// and only reach stderr in debug mode.
	logCloser := setupLogging(opts.debug)
	if logCloser != nil {
		defer func() {
			_ = logCloser.Close()
		}()
	}

	// -------------------------------------------------------------------------
	// 3. Context & Signal Handling
	// -------------------------------------------------------------------------
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logStartupInfo()

	// -------------------------------------------------------------------------
	// 4. Application Logic
	// -------------------------------------------------------------------------
	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil {
		slog.Error(config.ErrAppFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
		fmt.Fprintln(os.Stderr, err)
		return config.ExitCodeError
	}

	slog.Info(config.MsgAppStop, config.LogKeyComponent, config.CompMain)
	return config.ExitCodeSuccess
}

// run loads the settings, builds the session and drives the command loop until it ends.
func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	settings, err := config.LoadSettings(opts.configPath, opts.configSet)
	if err != nil {
		return err
	}
	if opts.dataPath != "" {
		settings.DataFile = opts.dataPath
	}
	if err := settings.Validate(); err != nil {
		return err
	}
	slog.Info(config.MsgSettingsLoaded,
		config.LogKeyComponent, config.CompSettings,
		config.LogKeyPath, settings.DataFile,
		config.LogKeyLang, settings.Language,
	)

	msgs, err := assistant.NewMessages(settings.Language)
	if err != nil {
		return err
	}

	store := storage.NewFileStore(settings.DataFile)
	b, err := initialBook(ctx, opts.demo, settings.Autoload, store)
	if err != nil {
		return err
	}

	session := assistant.NewSession(b, store, msgs, settings.Reminder)
	return session.Run(ctx, in, out)
}

// initialBook returns the book the session starts with: the sample contacts,
// the saved snapshot when autoload is on, or an empty book.
// A snapshot that cannot be loaded is logged and replaced by an empty book.
func initialBook(ctx context.Context, demo, autoload bool, store storage.ByteStore) (*book.AddressBook, error) {
	if demo {
		b, err := book.Demo()
		if err != nil {
			return nil, err
		}
		slog.Info(config.MsgDemoSeeded,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyCount, b.Len(),
		)
		return b, nil
	}

	if autoload {
		b, err := storage.LoadBook(ctx, store)
		if err == nil {
			return b, nil
		}
		slog.Warn(config.MsgAutoloadFailed,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyPath, store.Location(),
			config.LogKeyError, err,
		)
	}

	return book.New(), nil
}

// printVersion outputs the build information to stdout.
func printVersion() {
	fmt.Printf(config.MsgVersionOutput,
		config.AppName,
		config.Version,
		config.Commit,
		config.Date,
		runtime.GOOS,
		runtime.GOARCH,
	)
}

// logStartupInfo logs environment details useful for debugging.
func logStartupInfo() {
	slog.Info(config.MsgAppStarting,
		config.LogKeyComponent, config.CompMain,
		slog.Group(config.LogKeyBuild,
			slog.String(config.LogKeyApp, config.AppName),
			slog.String(config.LogKeyVersion, config.Version),
			slog.String(config.LogKeyCommit, config.Commit),
			slog.String(config.LogKeyGoVer, runtime.Version()),
		),
		slog.Group(config.LogKeyEnv,
			slog.String(config.LogKeyOS, runtime.GOOS),
			slog.String(config.LogKeyArch, runtime.GOARCH),
			slog.Int(config.LogKeyPID, os.Getpid()),
		),
	)
}

// setupLogging configures the default slog logger.
// It returns the log file to close on exit, or nil when none could be opened.
func setupLogging(debugMode bool) io.Closer {
	var writers []io.Writer
	var logFile *os.File

	if debugMode {
		writers = append(writers, os.Stderr)
	}

	if logPath, err := getLogFilePath(); err == nil {
		// O_TRUNC resets logs on restart to prevent indefinite growth.
		f, err := os.OpenFile(logPath, os.O_TRUNC|os.O_CREATE|os.O_WRONLY, config.FilePermUserRW)
		if err == nil {
			writers = append(writers, f)
			logFile = f
		} else {
			fmt.Fprintf(os.Stderr, config.MsgLogWarning, config.ErrLogFile, logPath, err)
		}
	}

	level := slog.LevelInfo
	if debugMode {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debugMode,
	}

	logger := slog.New(slog.NewJSONHandler(io.MultiWriter(writers...), opts))
	slog.SetDefault(logger)

	if logFile == nil {
		return nil
	}
	return logFile
}

// getLogFilePath determines the platform-specific cache directory for logs.
func getLogFilePath() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCacheDir, err)
	}

	appDir := filepath.Join(cacheDir, config.AppDirName)
	if err := os.MkdirAll(appDir, config.DirPermUserRWX); err != nil {
		return "", fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	return filepath.Join(appDir, config.LogFileName), nil
}
