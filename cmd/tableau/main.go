// Command tableau reconstructs tables from a PDF's text layer and writes
// them out as JSON, CSV, XLSX, HTML, or debug overlays.
//
// Usage:
//
//	tableau -out results [-pages 0-5] [-csv] [-xlsx] [-html] [-overlay] document.pdf
//
// JSON is always written; the other formats are opt-in.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/tsawler/tableau"
	"github.com/tsawler/tableau/export"
	"github.com/tsawler/tableau/model"
	"github.com/tsawler/tableau/source"
)

func main() {
	var (
		pagesSpec = flag.String("pages", "", "pages to process: '0,2,5' or '0-5' (default all)")
		outDir    = flag.String("out", ".", "output directory")
		writeCSV  = flag.Bool("csv", false, "write one CSV per table")
		writeXLSX = flag.Bool("xlsx", false, "write an XLSX workbook")
		writeHTML = flag.Bool("html", false, "write an HTML rendering")
		overlays  = flag.Bool("overlay", false, "write debug overlay PNGs per table page")
		workers   = flag.Int("workers", 0, "per-page parallelism (0 = one per CPU)")
		noClean   = flag.Bool("no-clean", false, "skip the row-cleaning pipeline")
		overlayW  = flag.Int("overlay-width", 1000, "overlay canvas width")
		overlayH  = flag.Int("overlay-height", 1400, "overlay canvas height")
	)
	flag.Parse()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tableau [flags] <document.pdf>")
		flag.PrintDefaults()
		os.Exit(2)
	}
	input := flag.Arg(0)

	if err := source.Stat(input); err != nil {
		logger.Fatal("cannot read input", zap.String("file", input), zap.Error(err))
	}
	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		logger.Fatal("cannot create output directory", zap.String("dir", *outDir), zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ext := tableau.Open(input).Workers(*workers)
	if *noClean {
		ext = ext.NoClean()
	}
	if *pagesSpec != "" {
		pages, err := parsePages(*pagesSpec)
		if err != nil {
			logger.Fatal("invalid -pages", zap.String("spec", *pagesSpec), zap.Error(err))
		}
		ext = ext.Pages(pages...)
	}

	set, err := ext.TablesContext(ctx)
	if err != nil {
		logger.Fatal("extraction failed", zap.String("file", input), zap.Error(err))
	}

	logger.Info("extraction complete",
		zap.String("file", input),
		zap.Int("tables", len(set.Tables)),
		zap.Int("diagnostics", len(set.Diagnostics)),
	)
	for _, d := range set.Diagnostics {
		logger.Warn("diagnostic",
			zap.Int("page", d.Page),
			zap.String("kind", d.Kind),
			zap.String("message", d.Message),
		)
	}

	stem := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))

	if err := writeFile(filepath.Join(*outDir, stem+".json"), func(f *os.File) error {
		return export.WriteJSON(f, set)
	}); err != nil {
		logger.Fatal("json export failed", zap.Error(err))
	}

	if *writeCSV {
		for i, t := range set.Tables {
			name := fmt.Sprintf("%s_table%d.csv", stem, i+1)
			if err := writeFile(filepath.Join(*outDir, name), func(f *os.File) error {
				return export.WriteCSV(f, t)
			}); err != nil {
				logger.Fatal("csv export failed", zap.String("table", name), zap.Error(err))
			}
		}
	}

	if *writeXLSX {
		if err := writeFile(filepath.Join(*outDir, stem+".xlsx"), func(f *os.File) error {
			return export.WriteXLSX(f, set)
		}); err != nil {
			logger.Fatal("xlsx export failed", zap.Error(err))
		}
	}

	if *writeHTML {
		if err := writeFile(filepath.Join(*outDir, stem+".html"), func(f *os.File) error {
			return export.WriteHTML(f, set)
		}); err != nil {
			logger.Fatal("html export failed", zap.Error(err))
		}
	}

	if *overlays {
		if err := writeOverlays(*outDir, stem, set, *overlayW, *overlayH); err != nil {
			logger.Fatal("overlay export failed", zap.Error(err))
		}
	}

	for i, t := range set.Tables {
		logger.Info("table",
			zap.Int("index", i+1),
			zap.String("kind", t.Kind.String()),
			zap.Int("page_start", t.PageStart),
			zap.Int("page_end", t.PageEnd),
			zap.Int("columns", t.ColCount()),
			zap.Int("rows", t.RowCount()),
		)
	}
}

// parsePages accepts '0,2,5' lists and '0-5' ranges.
func parsePages(spec string) ([]int, error) {
	if start, end, ok := strings.Cut(spec, "-"); ok {
		lo, err := strconv.Atoi(strings.TrimSpace(start))
		if err != nil {
			return nil, fmt.Errorf("bad range start %q", start)
		}
		hi, err := strconv.Atoi(strings.TrimSpace(end))
		if err != nil {
			return nil, fmt.Errorf("bad range end %q", end)
		}
		if hi < lo {
			return nil, fmt.Errorf("range %q is reversed", spec)
		}
		var pages []int
		for p := lo; p <= hi; p++ {
			pages = append(pages, p)
		}
		return pages, nil
	}

	var pages []int
	for _, part := range strings.Split(spec, ",") {
		p, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("bad page %q", part)
		}
		pages = append(pages, p)
	}
	return pages, nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeOverlays(dir, stem string, set *model.TableSet, w, h int) error {
	for i, t := range set.Tables {
		for page := t.PageStart; page <= t.PageEnd; page++ {
			name := fmt.Sprintf("%s_table%d_p%d.png", stem, i+1, page)
			err := writeFile(filepath.Join(dir, name), func(f *os.File) error {
				return export.WriteOverlayPNG(f, t, page, w, h)
			})
			if err != nil {
				return err
			}
		}
	}
	return nil
}
