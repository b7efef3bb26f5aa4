package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"platter/internal/genre"
	"platter/internal/grid"
	"platter/internal/inventory"
	"platter/internal/logging"
	"platter/internal/textutil"
)

func newAdsCommand(ctx *commandContext) *cobra.Command {
	var (
		imagesDir     string
		inventoryJSON string
		outputDir     string
		tile          int
		minBucket     int
		seed          int64
	)

	cmd := &cobra.Command{
		Use:   "ads",
		Short: "Render per-genre cover grid ads from the gallery inventory",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			images := imagesDir
			if images == "" {
				images = cfg.ImagesRoot()
			}
			invPath := inventoryJSON
			if invPath == "" {
				invPath = filepath.Join(cfg.Paths.GalleryDir, "records.json")
			}
			outDir := outputDir
			if outDir == "" {
				outDir = cfg.AdsOutputDir()
			}
			if tile == 0 {
				tile = cfg.Ads.TileSize
			}
			if minBucket == 0 {
				minBucket = cfg.Ads.MinBucketSize
			}
			if seed == 0 {
				seed = cfg.Ads.Seed
			}

			records, err := inventory.Load(invPath, images)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No usable records found in inventory JSON.")
				return nil
			}
			logger.Info("inventory loaded",
				logging.String("path", invPath),
				logging.Int("records", len(records)))

			entries := make([]genre.Assignment, len(records))
			for i, rec := range records {
				entries[i] = genre.Assignment{Artist: rec.Artist, Broad: rec.BroadGenre}
			}
			entries = genre.ApplyArtistMajority(entries)

			buckets := genre.NewBuckets()
			for i, rec := range records {
				buckets.Add(entries[i].Broad, rec.ImagePath)
			}
			buckets = buckets.SplitComposite().MergeTiny(minBucket)

			renderer := grid.NewRenderer(tile, cfg.Ads.Quality, seed, logger)
			labels := buckets.Labels()
			sort.Slice(labels, func(i, j int) bool {
				return strings.ToLower(labels[i]) < strings.ToLower(labels[j])
			})

			rows := make([][]string, 0, len(labels))
			for _, label := range labels {
				covers := buckets.Covers(label)
				path, err := renderer.RenderGrid(covers, outDir, textutil.SafeSlug(label))
				if err != nil {
					return fmt.Errorf("render %s: %w", label, err)
				}
				rows = append(rows, []string{
					label,
					strconv.Itoa(len(covers)),
					filepath.Base(path),
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Genre", "Covers", "Grid"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft},
			))
			return nil
		},
	}

	cmd.Flags().StringVar(&imagesDir, "images-dir", "", "Directory cover images resolve against")
	cmd.Flags().StringVar(&inventoryJSON, "inventory-json", "", "Inventory JSON export to classify")
	cmd.Flags().StringVar(&outputDir, "output-dir", "", "Directory grid JPEGs are written to")
	cmd.Flags().IntVar(&tile, "tile", 0, "Square tile edge in pixels")
	cmd.Flags().IntVar(&minBucket, "min-bucket", 0, "Buckets smaller than this merge into Misc")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Padding seed; 0 randomizes per run")

	return cmd
}
