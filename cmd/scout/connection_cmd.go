package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

type connectionOpts struct {
	*rootOpts
}

func newConnection(parent *rootOpts) *connectionOpts {
	return &connectionOpts{rootOpts: parent}
}

func (opts *connectionOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "connection",
		Short: "Report whether the League client is running and its API port",
		Args:  noArgs,
		RunE:  opts.RunE,
	}
}

func (opts *connectionOpts) RunE(cmd *cobra.Command, _ []string) error {
	rt, closer, err := opts.bootstrap(cmd, sinkStderr)
	if err != nil {
		return err
	}
	defer closer()

	result := rt.Service.DiscoverConnection(cmd.Context())
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}

type debugOpts struct {
	*rootOpts
}

func newDebug(parent *rootOpts) *debugOpts {
	return &debugOpts{rootOpts: parent}
}

func (opts *debugOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "debug",
		Short: "Show what every discovery source reports",
		Args:  noArgs,
		RunE:  opts.RunE,
	}
}

func (opts *debugOpts) RunE(cmd *cobra.Command, _ []string) error {
	rt, closer, err := opts.bootstrap(cmd, sinkStderr)
	if err != nil {
		return err
	}
	defer closer()

	fmt.Fprint(cmd.OutOrStdout(), rt.Service.ConnectionDebug(cmd.Context()))
	return nil
}
