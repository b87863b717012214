package main

import (
	"github.com/spf13/cobra"
	"github.com/user/cat-census/pkg/config"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cat-census",
		Short:         "cat-census finds the oldest cat up for adoption at the San Francisco SPCA.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCensus,
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.String("log-format", "console", "log format (console, json)")
	pf.String("fetch-mode", config.FetchModeHTTP, "page fetcher (http, chrome)")
	pf.String("base-url", "https://www.sfspca.org", "shelter site base URL")
	pf.Int("max-pages", 0, "maximum listing pages to crawl, 0 for no limit")

	addRunFlags(root)
	root.AddCommand(newRunCmd(), newServeCmd())
	return root
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("list", false, "print a table of every parsed cat")
	cmd.Flags().Bool("open", true, "open the oldest cat's profile in a browser")
}
