package main

import (
	"io"
	"strings"

	"github.com/go-kit/kit/log"
	"github.com/spf13/cobra"

	"github.com/five82/scout/internal/app"
	"github.com/five82/scout/internal/config"
)

type rootOpts struct {
	configPath string
	prefsPath  string
	logLevel   string
	logFile    string
}

func newRoot() *rootOpts {
	return &rootOpts{}
}

var rootLongHelp = strings.TrimSpace(`
scout finds the running League client, talks to its local API, and keeps a
local cache of game images.

Workflow:
  scout connection                                        # Is the client running, and on which port?
  scout request GET /lol-summoner/v1/current-summoner     # Authenticated call to the client API
  scout prefetch champion/Ahri.png item/3078.png          # Warm the image cache
  scout serve                                             # Serve cached images on 127.0.0.1:7489
  scout watch                                             # Live dashboard
  scout logs -n 20                                        # Recent log records
`)

func (opts *rootOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "scout",
		Long:          rootLongHelp,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file (default "+config.DefaultPath()+")")
	flags.StringVar(&opts.prefsPath, "prefs", "", "preferences file (default ~/.config/scout/prefs.toml)")
	flags.StringVar(&opts.logLevel, "log-level", app.DefaultLogLevel, "log level: debug, info, warn or error")
	flags.StringVar(&opts.logFile, "log-file", "", "also write logs to this file")

	cmd.AddCommand(
		newConnection(opts).Command(),
		newDebug(opts).Command(),
		newRequest(opts).Command(),
		newPrefetch(opts).Command(),
		newSetImageBase(opts).Command(),
		newClearCache(opts).Command(),
		newServe(opts).Command(),
		newWatch(opts).Command(),
		newLogs(opts).Command(),
	)
	return cmd
}

// logSink says where a command's logs go.
type logSink int

const (
	sinkStderr logSink = iota // stderr, plus --log-file when set
	sinkTee                   // stderr and the log file
	sinkFile                  // the log file only; the TUI owns the terminal
)

// bootstrap wires a runtime for one command. The returned closer releases
// the log file, if one was opened.
func (opts *rootOpts) bootstrap(cmd *cobra.Command, sink logSink) (*app.Runtime, func(), error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	path := opts.logFile
	if path == "" && sink != sinkStderr {
		path = cfg.LogPath()
	}

	closer := func() {}
	var writers []io.Writer
	if sink != sinkFile {
		writers = append(writers, cmd.ErrOrStderr())
	}
	if path != "" {
		f, err := app.OpenLogFile(path)
		if err != nil {
			return nil, nil, err
		}
		closer = func() { _ = f.Close() }
		writers = append(writers, f)
	}

	logger := log.NewNopLogger()
	if len(writers) > 0 {
		logger, err = app.NewLogger(io.MultiWriter(writers...), opts.logLevel)
		if err != nil {
			closer()
			return nil, nil, newUsageError(err.Error())
		}
	}

	rt, err := app.Bootstrap(app.Options{
		Config:    &cfg,
		PrefsPath: opts.prefsPath,
		Logger:    logger,
	})
	if err != nil {
		closer()
		return nil, nil, err
	}
	return rt, closer, nil
}
