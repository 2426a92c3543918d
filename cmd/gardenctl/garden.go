package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"
)

func runCheckIn(api, token, text string, tags []string, out io.Writer) error {
	if text == "" {
		return fmt.Errorf("--text required")
	}
	c := newClient(api, token)
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do("POST", "/api/checkins", map[string]any{"text": text, "tags": tags}, nil, out)
}

func runGet(api, token, path string, query map[string]string, out io.Writer) error {
	c := newClient(api, token)
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do("GET", path, nil, query, out)
}

func runExport(api, token, format string, out io.Writer) error {
	c := newClient(api, token)
	if err := c.requireToken(); err != nil {
		return err
	}
	return c.do("POST", "/api/export", map[string]string{"format": format}, nil, out)
}

func init() {
	var text string
	var tags []string
	checkinCmd := &cobra.Command{
		Use:   "checkin",
		Short: "Record a check-in and grow a plant",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheckIn(apiFlag, tokenFlag, text, tags, cmd.OutOrStdout())
		},
	}
	checkinCmd.Flags().StringVarP(&text, "text", "m", "", "How you feel (required)")
	checkinCmd.Flags().StringSliceVar(&tags, "tag", nil, "Tag, repeatable")
	rootCmd.AddCommand(checkinCmd)

	rootCmd.AddCommand(&cobra.Command{
		Use:   "garden",
		Short: "Show your garden",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(apiFlag, tokenFlag, "/api/gardens/me", nil, cmd.OutOrStdout())
		},
	})

	var limit int
	var generate bool
	insightsCmd := &cobra.Command{
		Use:   "insights",
		Short: "List insights, optionally generating new ones first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if generate {
				c := newClient(apiFlag, tokenFlag)
				if err := c.requireToken(); err != nil {
					return err
				}
				if err := c.do("POST", "/api/insights/generate", nil, nil, io.Discard); err != nil {
					return err
				}
			}
			return runGet(apiFlag, tokenFlag, "/api/insights", map[string]string{"limit": strconv.Itoa(limit)}, cmd.OutOrStdout())
		},
	}
	insightsCmd.Flags().IntVarP(&limit, "limit", "l", 10, "Number of insights")
	insightsCmd.Flags().BoolVarP(&generate, "generate", "g", false, "Generate insights before listing")
	rootCmd.AddCommand(insightsCmd)

	var format string
	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "Queue a data export and print its job id",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(apiFlag, tokenFlag, format, cmd.OutOrStdout())
		},
	}
	exportCmd.Flags().StringVarP(&format, "format", "f", "json", "json or zip")
	rootCmd.AddCommand(exportCmd)
}
