package nuru

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/nuru/image"
	"github.com/bodgit/nuru/palette"
)

const scanWorkers = 10

// File extensions recognised when scanning
const (
	PaletteExt = ".pal"
	ImageExt   = ".img"
)

func (n *Nuru) findFiles(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			// Ignore anything that isn't a normal file
			if !info.Mode().IsRegular() {
				return nil
			}

			switch strings.ToLower(filepath.Ext(file)) {
			case PaletteExt, ImageExt:
			default:
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func (n *Nuru) scanPalette(file string) error {
	b, err := os.ReadFile(file)
	if err != nil {
		return err
	}

	name := PaletteName(file)
	if !validName(name) {
		n.logger.Printf("Skipping \"%s\", cannot derive a palette name\n", file)
		return nil
	}

	p := new(palette.Palette)
	if err := p.UnmarshalBinary(b); err != nil {
		n.logger.Printf("Skipping \"%s\": %s\n", file, err)
		return nil
	}

	id, err := n.lib.AddPalette(name, 0, p)
	if err != nil {
		return err
	}
	n.logger.Printf("Imported \"%s\" as \"%s\" (%s)\n", file, name, id)

	return nil
}

func (n *Nuru) scanImage(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	h, err := image.DecodeHeader(f)
	if err != nil {
		n.logger.Printf("Skipping \"%s\": %s\n", file, err)
		return nil
	}

	for _, name := range []string{h.GlyphPalette, h.ColorPalette} {
		if name == "" {
			continue
		}
		p, err := n.Palette(name)
		if err != nil {
			return err
		}
		if p == nil {
			n.logger.Printf("No palette \"%s\" for \"%s\"\n", name, file)
		}
	}

	return nil
}

func (n *Nuru) fileWorker(ctx context.Context, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			var err error
			switch strings.ToLower(filepath.Ext(file)) {
			case PaletteExt:
				err = n.scanPalette(file)
			case ImageExt:
				err = n.scanImage(file)
			}
			if err != nil {
				errc <- err
				return
			}
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan walks the directory tree at path, importing every palette file into
// the library and checking every image file names palettes that can be
// found. Palette files scanned later replace earlier ones of the same name.
func (n *Nuru) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := n.findFiles(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	for i := 0; i < scanWorkers; i++ {
		errc, err := n.fileWorker(ctx, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
