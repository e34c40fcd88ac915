package main

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
	"github.com/PuneetGOTO/business-website-sub000/internal/infrastructure/media"
	"github.com/PuneetGOTO/business-website-sub000/pkg/config"
)

var mediaCmd = &cobra.Command{
	Use:   "media",
	Short: "Scan pages for media and manage replacements",
}

var mediaScanCmd = &cobra.Command{
	Use:   "scan [page.html...]",
	Short: "Build the media catalog from site pages",
	Long: `Scans the given pages (or the configured site pages) for images, videos
and backgrounds. Pages are read from --root, or fetched from --url.`,
	RunE: runMediaScan,
}

var mediaReplaceCmd = &cobra.Command{
	Use:   "replace <original-path> <file>",
	Short: "Replace a media path site-wide with the contents of file",
	Args:  cobra.ExactArgs(2),
	RunE:  runMediaReplace,
}

var mediaRestoreCmd = &cobra.Command{
	Use:   "restore <original-path>",
	Short: "Remove the replacement for a media path",
	Args:  cobra.ExactArgs(1),
	RunE:  runMediaRestore,
}

func init() {
	mediaScanCmd.Flags().String("root", config.SiteRoot, "site directory to read pages from")
	mediaScanCmd.Flags().String("url", "", "site base URL to fetch pages from instead of --root")
	mediaScanCmd.Flags().String("kind", "all", "image, video, background or all")
	mediaScanCmd.Flags().String("category", "all", "category filter")
	mediaCmd.AddCommand(mediaScanCmd, mediaReplaceCmd, mediaRestoreCmd)
	rootCmd.AddCommand(mediaCmd)
}

func runMediaScan(cmd *cobra.Command, args []string) error {
	root, _ := cmd.Flags().GetString("root")
	baseURL, _ := cmd.Flags().GetString("url")
	kind, _ := cmd.Flags().GetString("kind")
	category, _ := cmd.Flags().GetString("category")

	sel, err := media.ParseSelection(kind, category)
	if err != nil {
		return err
	}

	var fetcher media.Fetcher = media.FileFetcher{Root: root}
	if baseURL != "" {
		fetcher = media.NewHTTPFetcher(baseURL, config.ScanFetchTimeout)
	}

	pages := args
	if len(pages) == 0 {
		pages = config.SitePages
	}

	scanner := media.NewScanner(fetcher, media.ScanOptions{
		Prefixes:            config.AssetPrefixes,
		Origins:             config.RemoteMediaOrigins,
		BannerSelector:      config.BannerElement,
		DefaultBanner:       config.DefaultBannerImage,
		SupplementaryVideos: config.SupplementaryVideos,
		Concurrency:         config.ScanConcurrency,
	}, newLogger())

	catalog, report := scanner.Scan(context.Background(), pages)
	return printJSON(map[string]any{
		"data":   catalog.Filter(sel),
		"report": report,
	})
}

func runMediaReplace(cmd *cobra.Command, args []string) error {
	original, file := args[0], args[1]
	raw, err := readInput(file)
	if err != nil {
		return err
	}

	body := map[string]string{
		"originalPath":    original,
		"replacementData": media.EncodeDataURI(media.MIMEFromPath(file), raw),
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var rec content.ReplacementRecord
	if err := newRemote().Do(ctx, http.MethodPut, "/media/replacements", body, &rec); err != nil {
		return err
	}
	fmt.Printf("Replaced %s (%d bytes)\n", rec.OriginalPath, len(raw))
	return nil
}

func runMediaRestore(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	path := "/media/replacements?path=" + url.QueryEscape(args[0])
	if err := newRemote().Do(ctx, http.MethodDelete, path, nil, nil); err != nil {
		return err
	}
	fmt.Printf("Restored %s\n", args[0])
	return nil
}
