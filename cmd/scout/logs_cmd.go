package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/scout/internal/config"
	"github.com/five82/scout/internal/logtail"
)

type logsOpts struct {
	*rootOpts
	lines int
	raw   bool
}

func newLogs(parent *rootOpts) *logsOpts {
	return &logsOpts{rootOpts: parent}
}

func (opts *logsOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the most recent records from the scout log file",
		Args:  noArgs,
		RunE:  opts.RunE,
	}
	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "number of lines to show")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "print lines exactly as written")
	return cmd
}

func (opts *logsOpts) RunE(cmd *cobra.Command, _ []string) error {
	if opts.lines <= 0 {
		return newUsageError("--lines must be positive")
	}
	path := opts.logFile
	if path == "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return err
		}
		path = cfg.LogPath()
	}

	lines, err := logtail.ReadRecords(path, opts.lines)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	for _, line := range lines {
		if opts.raw {
			fmt.Fprintln(out, line.Raw)
			continue
		}
		fmt.Fprintln(out, line.String())
	}
	return nil
}
