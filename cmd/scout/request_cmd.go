package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

type requestOpts struct {
	*rootOpts
	body     string
	bodyFile string
}

func newRequest(parent *rootOpts) *requestOpts {
	return &requestOpts{rootOpts: parent}
}

func (opts *requestOpts) Command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "request METHOD PATH",
		Short: "Send an authenticated request to the League client API",
		Example: strings.Join([]string{
			"  scout request GET /lol-summoner/v1/current-summoner",
			`  scout request PUT /lol-chat/v1/me --body '{"statusMessage":"gl hf"}'`,
		}, "\n"),
		Args: exactArgs(2, "METHOD and PATH"),
		RunE: opts.RunE,
	}
	cmd.Flags().StringVar(&opts.body, "body", "", "request body (sent as application/json)")
	cmd.Flags().StringVar(&opts.bodyFile, "body-file", "", "read the request body from a file, or - for stdin")
	return cmd
}

func (opts *requestOpts) RunE(cmd *cobra.Command, args []string) error {
	body, err := opts.readBody(cmd)
	if err != nil {
		return err
	}

	rt, closer, err := opts.bootstrap(cmd, sinkStderr)
	if err != nil {
		return err
	}
	defer closer()

	out, err := rt.Service.PerformAuthenticatedRequest(cmd.Context(), args[0], args[1], body)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}

func (opts *requestOpts) readBody(cmd *cobra.Command) (*string, error) {
	bodySet := cmd.Flags().Changed("body")
	fileSet := cmd.Flags().Changed("body-file")
	switch {
	case bodySet && fileSet:
		return nil, newUsageError("please supply only one of --body or --body-file")
	case bodySet:
		return &opts.body, nil
	case fileSet:
		var (
			data []byte
			err  error
		)
		if opts.bodyFile == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(opts.bodyFile)
		}
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		body := string(data)
		return &body, nil
	default:
		return nil, nil
	}
}
