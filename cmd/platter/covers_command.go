package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"platter/internal/covers"
	"platter/internal/discogs"
)

func newCoversCommand(ctx *commandContext) *cobra.Command {
	var inputDir, outputDir string

	cmd := &cobra.Command{
		Use:   "covers",
		Short: "Build a cover gallery for top-selling releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if err := cfg.RequireDiscogs(); err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			input := inputDir
			if input == "" {
				input = cfg.Covers.InputDir
			}
			if input == "" {
				return fmt.Errorf("no input directory: set covers.input_dir or pass --input-dir")
			}
			outDir := outputDir
			if outDir == "" {
				outDir = cfg.CoversOutputDir()
			}

			client, err := discogs.New(discogs.Config{
				Token:     cfg.Discogs.Token,
				Username:  cfg.Discogs.Username,
				UserAgent: cfg.Discogs.UserAgent,
				BaseURL:   cfg.Discogs.BaseURL,
				Delay:     time.Duration(cfg.Covers.RequestDelayMS) * time.Millisecond,
				Logger:    logger,
			})
			if err != nil {
				return err
			}

			hunter := covers.NewHunter(client, logger)
			result, err := hunter.Run(cmd.Context(), input, outDir)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Summary", ""},
				[][]string{
					{"Input files", strconv.Itoa(result.Stats.Files)},
					{"Rows", strconv.Itoa(result.Stats.Rows)},
					{"Releases fetched", strconv.Itoa(result.Stats.Fetched)},
					{"Fetch errors", strconv.Itoa(result.Stats.FetchErrors)},
					{"Covers downloaded", strconv.Itoa(result.Stats.Downloaded)},
					{"Download errors", strconv.Itoa(result.Stats.DownloadErrors)},
					{"Gallery", result.GalleryPath},
				},
				[]columnAlignment{alignLeft, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&inputDir, "input-dir", "", "Directory of top-seller CSV exports")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory the gallery is written to")

	return cmd
}
