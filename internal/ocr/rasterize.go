package ocr

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
)

// Rasterizer renders PDF pages to PNG images with poppler's pdftoppm.
type Rasterizer struct {
	binPath string
	dpi     int
}

// NewRasterizer creates a Rasterizer. If binPath is empty, "pdftoppm" is used;
// a non-positive dpi means 300.
func NewRasterizer(binPath string, dpi int) *Rasterizer {
	if binPath == "" {
		binPath = "pdftoppm"
	}
	if dpi <= 0 {
		dpi = 300
	}
	return &Rasterizer{binPath: binPath, dpi: dpi}
}

// Rasterize writes one PNG per page into outDir and returns the image paths in page order.
func (r *Rasterizer) Rasterize(ctx context.Context, pdfPath, outDir string) ([]string, error) {
	prefix := filepath.Join(outDir, "page")

	n := PageCount(pdfPath)
	if n <= 0 {
		// unknown page count: render everything in one pass
		if err := r.run(ctx, pdfPath, prefix); err != nil {
			return nil, err
		}
		return collectPages(outDir)
	}

	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out := fmt.Sprintf("%s-%d", prefix, i)
		if err := r.run(ctx, pdfPath, out, "-f", strconv.Itoa(i), "-l", strconv.Itoa(i), "-singlefile"); err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		pages = append(pages, out+".png")
	}
	return pages, nil
}

func (r *Rasterizer) run(ctx context.Context, pdfPath, outPrefix string, extra ...string) error {
	args := append([]string{"-r", strconv.Itoa(r.dpi), "-png"}, extra...)
	args = append(args, pdfPath, outPrefix)
	cmd := exec.CommandContext(ctx, r.binPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pdftoppm failed for %s: %w: %s", pdfPath, err, bytes.TrimSpace(stderr.Bytes()))
	}
	return nil
}

func collectPages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	type page struct {
		n    int
		path string
	}
	var pages []page
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if n := pageFromName(e.Name()); n > 0 {
			pages = append(pages, page{n: n, path: filepath.Join(dir, e.Name())})
		}
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].n < pages[j].n })

	out := make([]string, len(pages))
	for i, p := range pages {
		out[i] = p.path
	}
	return out, nil
}
