package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/KonishchevDmitry/feedloader/pkg/transport"
	"github.com/KonishchevDmitry/feedloader/pkg/transport/browser"
	"github.com/KonishchevDmitry/feedloader/pkg/url"
	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/MakeNowJust/heredoc"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type flags struct {
	timeout       time.Duration
	userAgent     string
	browser       bool
	remoteBrowser string
	headful       bool
	debug         bool
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newCommand().ExecuteContext(ctx); err != nil {
		cancel()
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var flags flags

	command := &cobra.Command{
		Use:   "feedloader [flags] URL",
		Short: "Load feed items from a remote server",
		Long: heredoc.Doc(`
			Loads a JSON feed from the specified URL and prints its items: one item per line with its ID,
			image URL, description and location.
		`),
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			feedURL, err := url.ParseAbsolute(args[0])
			if err != nil {
				return err
			}

			logger, err := newLogger(flags.debug)
			if err != nil {
				return err
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx := logging.WithLogger(cmd.Context(), logger)

			client, stop, err := newClient(ctx, flags)
			if err != nil {
				return err
			}
			defer stop()

			return load(ctx, cmd.OutOrStdout(), feedURL, client)
		},
	}

	command.Flags().DurationVar(&flags.timeout, "timeout", time.Minute, "request timeout")
	command.Flags().StringVar(&flags.userAgent, "user-agent", "", "User-Agent to send with the request")
	command.Flags().BoolVar(&flags.browser, "browser", false, "fetch the feed using a local headless Chrome")
	command.Flags().StringVar(&flags.remoteBrowser, "remote-browser", "",
		"fetch the feed using a remote Chrome listening on the specified host:port")
	command.Flags().BoolVar(&flags.headful, "headful", false, "show the window of the browser started by --browser")
	command.Flags().BoolVar(&flags.debug, "debug", false, "enable debug logging")
	command.MarkFlagsMutuallyExclusive("browser", "remote-browser")
	command.MarkFlagsMutuallyExclusive("headful", "remote-browser")

	return command
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	level := zapcore.WarnLevel
	if debug {
		level = zapcore.DebugLevel
	}

	config := zap.NewDevelopmentConfig()
	config.Level = zap.NewAtomicLevelAt(level)
	config.DisableCaller = true
	config.DisableStacktrace = true

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize the logger: %w", err)
	}

	return logger.Sugar(), nil
}

func newClient(ctx context.Context, flags flags) (transport.Client, func(), error) {
	if flags.headful && !flags.browser {
		return nil, nil, errors.New("--headful requires --browser")
	}

	if !flags.browser && flags.remoteBrowser == "" {
		options := []transport.Option{transport.WithTimeout(flags.timeout)}
		if flags.userAgent != "" {
			options = append(options, transport.WithUserAgent(flags.userAgent))
		}
		return transport.NewHTTPClient(ctx, options...), func() {}, nil
	}

	if flags.userAgent != "" {
		return nil, nil, errors.New("custom User-Agent is not supported by the browser")
	}

	browserCtx, stop, err := browser.Configure(ctx, browserOptions(flags)...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure the browser: %w", err)
	}

	client, err := browser.NewClient(browserCtx, flags.timeout)
	if err != nil {
		stop()
		return nil, nil, err
	}

	return client, stop, nil
}

func browserOptions(flags flags) []browser.Option {
	var options []browser.Option
	if flags.remoteBrowser != "" {
		options = append(options, browser.Remote(flags.remoteBrowser))
	}
	if flags.headful {
		options = append(options, browser.Headful())
	}
	return options
}
