package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/bodgit/nuru"
	"github.com/bodgit/nuru/image"
	"github.com/urfave/cli/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultDB = "nuru.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	var writers []io.Writer
	if c.Bool("verbose") {
		writers = append(writers, os.Stderr)
	}
	if file := c.String("log-file"); file != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   file,
			MaxSize:    10,
			MaxBackups: 3,
		})
	}

	logger := log.New(io.Discard, "", 0)
	if len(writers) > 0 {
		logger.SetOutput(io.MultiWriter(writers...))
	}
	return logger
}

func run(c *cli.Context, args int, fn func(*nuru.Nuru) error) error {
	if c.NArg() < args {
		cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
	}

	n, err := nuru.New(c.String("db"), newLogger(c))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer n.Close()

	if err := fn(n); err != nil {
		return cli.NewExitError(err, 1)
	}

	return nil
}

func modeFlag(c *cli.Context, name string) (image.Mode, error) {
	v := c.Int(name)
	if v < 0 || v > 0xff {
		return image.Mode{}, fmt.Errorf("%s must be between 0 and 255", name)
	}
	return image.ParseMode(uint8(v)), nil
}

func keyFlag(c *cli.Context, name string) (uint8, error) {
	v := c.Int(name)
	if v < 0 || v > 0xff {
		return 0, fmt.Errorf("%s must be between 0 and 255", name)
	}
	return uint8(v), nil
}

func header(c *cli.Context) (image.Header, error) {
	h := image.Header{
		Cols:         c.Int("cols"),
		Rows:         c.Int("rows"),
		GlyphPalette: c.String("glyph-palette"),
		ColorPalette: c.String("color-palette"),
	}

	var err error
	for _, m := range []struct {
		name string
		mode *image.Mode
	}{
		{"glyph-mode", &h.GlyphMode},
		{"color-mode", &h.ColorMode},
		{"meta-mode", &h.MetaMode},
	} {
		if *m.mode, err = modeFlag(c, m.name); err != nil {
			return image.Header{}, err
		}
	}

	for _, k := range []struct {
		name string
		key  *uint8
	}{
		{"ch-key", &h.ChKey},
		{"fg-key", &h.FgKey},
		{"bg-key", &h.BgKey},
	} {
		if *k.key, err = keyFlag(c, k.name); err != nil {
			return image.Header{}, err
		}
	}

	return h, nil
}

func main() {
	app := cli.NewApp()

	app.Name = "nuru"
	app.Usage = "NURUIMG image and NURUPAL palette utility"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"NURU_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to palette library",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
		&cli.StringFlag{
			Name:    "log-file",
			EnvVars: []string{"NURU_LOG_FILE"},
			Usage:   "also log to `FILE`, rotated when it grows",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "import",
			Usage:     "Import a palette into the library",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "name",
					Usage: "palette name, derived from the file name if not set",
				},
				&cli.StringFlag{
					Name:  "kind",
					Usage: "palette kind, glyph or color, guessed if not set",
				},
			},
			Action: func(c *cli.Context) error {
				return run(c, 1, func(n *nuru.Nuru) error {
					kind, err := nuru.ParseKind(c.String("kind"))
					if err != nil {
						return err
					}
					name, err := n.ImportPalette(c.Args().First(), c.String("name"), kind)
					if err != nil {
						return err
					}
					fmt.Println(name)
					return nil
				})
			},
		},
		{
			Name:      "export",
			Usage:     "Write a library or built-in palette to a file",
			ArgsUsage: "NAME FILE",
			Action: func(c *cli.Context) error {
				return run(c, 2, func(n *nuru.Nuru) error {
					return n.ExportPalette(c.Args().Get(0), c.Args().Get(1))
				})
			},
		},
		{
			Name:  "list",
			Usage: "List available palettes",
			Action: func(c *cli.Context) error {
				return run(c, 0, func(n *nuru.Nuru) error {
					entries, err := n.Palettes()
					if err != nil {
						return err
					}
					for _, e := range entries {
						source := "library"
						if e.Builtin {
							source = "built-in"
						}
						fmt.Printf("%-7s %-5s %d %s %s\n", e.Name, e.Kind, e.EntrySize, e.UUID, source)
					}
					return nil
				})
			},
		},
		{
			Name:      "delete",
			Usage:     "Remove a palette from the library",
			ArgsUsage: "NAME",
			Action: func(c *cli.Context) error {
				return run(c, 1, func(n *nuru.Nuru) error {
					return n.DeletePalette(c.Args().First())
				})
			},
		},
		{
			Name:      "scan",
			Usage:     "Import palettes and check images under a directory",
			ArgsUsage: "DIRECTORY",
			Action: func(c *cli.Context) error {
				return run(c, 1, func(n *nuru.Nuru) error {
					return n.Scan(c.Args().First())
				})
			},
		},
		{
			Name:      "info",
			Usage:     "Describe palette and image files",
			ArgsUsage: "FILE...",
			Action: func(c *cli.Context) error {
				return run(c, 1, func(n *nuru.Nuru) error {
					for _, file := range c.Args().Slice() {
						info, err := n.Info(file)
						if err != nil {
							return err
						}
						fmt.Print(info)
					}
					return nil
				})
			},
		},
		{
			Name:      "new",
			Usage:     "Create a blank image",
			ArgsUsage: "FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "cols", Value: 80, Usage: "number of columns"},
				&cli.IntFlag{Name: "rows", Value: 25, Usage: "number of rows"},
				&cli.IntFlag{Name: "glyph-mode", Value: int(image.ModeGlyphIndex.Byte()), Usage: "glyph mode byte"},
				&cli.IntFlag{Name: "color-mode", Value: int(image.ModeColorIndex.Byte()), Usage: "color mode byte"},
				&cli.IntFlag{Name: "meta-mode", Value: int(image.ModeNone.Byte()), Usage: "metadata mode byte"},
				&cli.IntFlag{Name: "ch-key", Value: 0x20, Usage: "blank glyph index"},
				&cli.IntFlag{Name: "fg-key", Value: 15, Usage: "default foreground index"},
				&cli.IntFlag{Name: "bg-key", Value: 0, Usage: "default background index"},
				&cli.StringFlag{Name: "glyph-palette", Value: "nurustd", Usage: "glyph palette name"},
				&cli.StringFlag{Name: "color-palette", Value: "ansi8", Usage: "color palette name"},
			},
			Action: func(c *cli.Context) error {
				return run(c, 1, func(n *nuru.Nuru) error {
					h, err := header(c)
					if err != nil {
						return err
					}
					return n.NewImage(c.Args().First(), h)
				})
			},
		},
		{
			Name:      "resize",
			Usage:     "Resize an image, keeping existing cells",
			ArgsUsage: "FILE COLS ROWS",
			Action: func(c *cli.Context) error {
				return run(c, 3, func(n *nuru.Nuru) error {
					cols, err := strconv.Atoi(c.Args().Get(1))
					if err != nil {
						return err
					}
					rows, err := strconv.Atoi(c.Args().Get(2))
					if err != nil {
						return err
					}
					return n.ResizeImage(c.Args().First(), cols, rows)
				})
			},
		},
		{
			Name:      "crop",
			Usage:     "Crop an image to its content",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				return run(c, 1, func(n *nuru.Nuru) error {
					return n.CropImage(c.Args().First())
				})
			},
		},
		{
			Name:      "clear",
			Usage:     "Blank every cell of an image",
			ArgsUsage: "FILE",
			Action: func(c *cli.Context) error {
				return run(c, 1, func(n *nuru.Nuru) error {
					return n.ClearImage(c.Args().First())
				})
			},
		},
		{
			Name:      "convert",
			Usage:     "Convert a picture into an image",
			ArgsUsage: "PICTURE FILE",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "cols", Usage: "maximum number of columns"},
				&cli.IntFlag{Name: "colors", Usage: "maximum number of colors"},
				&cli.StringFlag{Name: "glyph-palette", Usage: "glyph palette name"},
				&cli.StringFlag{Name: "color-palette", Usage: "name for the generated color palette"},
				&cli.StringFlag{Name: "palette-file", Usage: "also write the generated color palette to `FILE`"},
			},
			Action: func(c *cli.Context) error {
				return run(c, 2, func(n *nuru.Nuru) error {
					return n.Convert(c.Args().Get(0), c.Args().Get(1), nuru.ConvertOptions{
						Cols:         c.Int("cols"),
						Colors:       c.Int("colors"),
						GlyphPalette: c.String("glyph-palette"),
						ColorPalette: c.String("color-palette"),
						PaletteFile:  c.String("palette-file"),
					})
				})
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
