package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mattn/go-isatty"

	"atlas/internal/bulkimage"
)

var imageExtensions = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".webp": {},
	".gif":  {},
}

// collectImageFiles lists image files directly inside dir, sorted by name.
func collectImageFiles(dir string) ([]bulkimage.File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read directory %s: %w", dir, err)
	}

	var files []bulkimage.File
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if _, ok := imageExtensions[ext]; !ok {
			continue
		}
		files = append(files, bulkimage.File{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// progressPrinter rewrites a single status line on interactive terminals and
// prints one line per item otherwise.
type progressPrinter struct {
	out      io.Writer
	inline   bool
	rendered bool
}

func newProgressPrinter(out io.Writer) *progressPrinter {
	inline := false
	if f, ok := out.(*os.File); ok {
		inline = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &progressPrinter{out: out, inline: inline}
}

func (p *progressPrinter) update(progress bulkimage.Progress) {
	if p.inline {
		fmt.Fprintf(p.out, "\r[%3d%%] %d/%d %s", progress.Percent, progress.Completed, progress.Total, progress.Current)
		p.rendered = true
		return
	}
	fmt.Fprintf(p.out, "[%3d%%] %d/%d %s\n", progress.Percent, progress.Completed, progress.Total, progress.Current)
}

func (p *progressPrinter) finish() {
	if p.inline && p.rendered {
		fmt.Fprintln(p.out)
	}
}
