package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

type prefetchOpts struct {
	*rootOpts
}

func newPrefetch(parent *rootOpts) *prefetchOpts {
	return &prefetchOpts{rootOpts: parent}
}

func (opts *prefetchOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "prefetch PATH...",
		Short: "Download images into the local cache",
		Long:  "Download images into the local cache. Paths are relative to /images/game/ on the image origin. Pass - to read paths from stdin, one per line.",
		Example: strings.Join([]string{
			"  scout prefetch champion/Ahri.png item/3078.png",
			"  cat paths.txt | scout prefetch -",
		}, "\n"),
		Args: minArgs(1, "at least one PATH"),
		RunE: opts.RunE,
	}
}

func (opts *prefetchOpts) RunE(cmd *cobra.Command, args []string) error {
	var paths []string
	for _, arg := range args {
		if arg != "-" {
			paths = append(paths, arg)
			continue
		}
		scanner := bufio.NewScanner(cmd.InOrStdin())
		for scanner.Scan() {
			if line := strings.TrimSpace(scanner.Text()); line != "" {
				paths = append(paths, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read paths: %w", err)
		}
	}

	rt, closer, err := opts.bootstrap(cmd, sinkStderr)
	if err != nil {
		return err
	}
	defer closer()

	n := rt.Service.PrefetchImages(cmd.Context(), paths)
	fmt.Fprintf(cmd.OutOrStdout(), "fetched %d of %d\n", n, len(paths))
	return nil
}

type setImageBaseOpts struct {
	*rootOpts
}

func newSetImageBase(parent *rootOpts) *setImageBaseOpts {
	return &setImageBaseOpts{rootOpts: parent}
}

func (opts *setImageBaseOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "set-image-base URL",
		Short: "Change and save the image origin",
		Args:  exactArgs(1, "a URL"),
		RunE:  opts.RunE,
	}
}

func (opts *setImageBaseOpts) RunE(cmd *cobra.Command, args []string) error {
	rt, closer, err := opts.bootstrap(cmd, sinkStderr)
	if err != nil {
		return err
	}
	defer closer()

	rt.Service.SetImageSourceBase(args[0])
	fmt.Fprintln(cmd.OutOrStdout(), rt.Service.ImageSourceBase())
	return nil
}

type clearCacheOpts struct {
	*rootOpts
}

func newClearCache(parent *rootOpts) *clearCacheOpts {
	return &clearCacheOpts{rootOpts: parent}
}

func (opts *clearCacheOpts) Command() *cobra.Command {
	return &cobra.Command{
		Use:   "clear-cache",
		Short: "Delete every cached image",
		Args:  noArgs,
		RunE:  opts.RunE,
	}
}

func (opts *clearCacheOpts) RunE(cmd *cobra.Command, _ []string) error {
	rt, closer, err := opts.bootstrap(cmd, sinkStderr)
	if err != nil {
		return err
	}
	defer closer()

	if err := rt.Service.ClearImageCache(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "cleared %s\n", rt.Service.CacheDir())
	return nil
}
