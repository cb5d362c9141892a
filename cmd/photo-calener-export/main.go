// Command photo-calener-export applies a named filter to an image and saves
// the result, using the same pipeline as the app's Download button.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/gg"

	"github.com/photocalener/photo-calener/internal/config"
	"github.com/photocalener/photo-calener/internal/export"
	"github.com/photocalener/photo-calener/internal/filter"
	"github.com/photocalener/photo-calener/internal/model"
	"github.com/photocalener/photo-calener/internal/platform"
	"github.com/photocalener/photo-calener/internal/upload"
)

func main() {
	var (
		filterKey   = flag.String("filter", filter.KeyNone, "filter: "+strings.Join(filter.Keys(), ", "))
		format      = flag.String("format", string(config.FormatPNG), "output format: png or jpeg")
		quality     = flag.Int("quality", export.DefaultJPEGQuality, "JPEG quality (1-100)")
		outDir      = flag.String("out", ".", "output directory")
		title       = flag.String("title", "", "title used to name the file")
		crossOrigin = flag.Bool("cross-origin", false, "require web images to grant cross-origin access")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <file|url|data-uri>\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	gg.SetLogger(slog.Default())

	d, ok := filter.Lookup(*filterKey)
	if !ok {
		log.Fatalf("Unknown filter %q", *filterKey)
	}

	exportFormat := config.ExportFormat(*format)
	if exportFormat != config.FormatPNG && exportFormat != config.FormatJPEG {
		log.Fatalf("Unsupported format %q", *format)
	}

	ref, err := resolveReference(flag.Arg(0))
	if err != nil {
		log.Fatalf("Failed to read image: %v", err)
	}

	if err := platform.CreateDirectoryIfNotExists(*outDir); err != nil {
		log.Fatalf("Failed to create output directory: %v", err)
	}

	svc := export.NewService(
		export.NewHTTPLoader(*crossOrigin),
		export.NewGGRasterizer(*quality),
		export.NewHTTPFetcher(),
		platform.NewFileSaver(func() string { return *outDir }),
	)
	svc.SetMediaType(exportFormat.MediaType())

	result, err := svc.Export(context.Background(), export.Request{Image: ref, Title: *title, Filter: d})
	if err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	if !result.Path.AppliesFilter() && !d.IsIdentity() {
		log.Printf("Image could not be rasterized; saved the original without the %s filter", d.Name)
	}
	log.Printf("Saved %s (%s, %d bytes)", result.OutputPath, result.MediaType, len(result.Payload))
}

// resolveReference accepts a web URL, a data URI, or a local file path
func resolveReference(arg string) (model.ImageReference, error) {
	for _, prefix := range []string{"http://", "https://", model.DataURIPrefix} {
		if strings.HasPrefix(arg, prefix) {
			return model.ParseReference(arg)
		}
	}
	return upload.NewReader().ReadFile(arg)
}
