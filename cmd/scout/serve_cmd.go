package main

import (
	"time"

	"github.com/spf13/cobra"
)

type serveOpts struct {
	*rootOpts
}

func newServe(parent *rootOpts) *serveOpts {
	return &serveOpts{rootOpts: parent}
}

func (opts *serveOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve cached images, connection status and metrics on a loopback address",
		Args:  noArgs,
		RunE:  opts.RunE,
	}
}

func (opts *serveOpts) RunE(cmd *cobra.Command, _ []string) error {
	rt, closer, err := opts.bootstrap(cmd, sinkTee)
	if err != nil {
		return err
	}
	defer closer()
	return rt.Serve(cmd.Context())
}

type watchOpts struct {
	*rootOpts
	poll time.Duration
}

func newWatch(parent *rootOpts) *watchOpts {
	return &watchOpts{rootOpts: parent}
}

func (opts *watchOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard of the client connection and image cache",
		Args:  noArgs,
		RunE:  opts.RunE,
	}
	cmd.Flags().DurationVar(&opts.poll, "poll", 2*time.Second, "discovery interval")
	return cmd
}

func (opts *watchOpts) RunE(cmd *cobra.Command, _ []string) error {
	rt, closer, err := opts.bootstrap(cmd, sinkFile)
	if err != nil {
		return err
	}
	defer closer()
	return rt.Watch(cmd.Context(), opts.poll)
}
