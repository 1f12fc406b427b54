package main

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"

	"github.com/bodgit/tiffview"
	"github.com/bodgit/tiffview/render"
	"github.com/urfave/cli/v2"
)

const defaultDB = "tiffview.db"

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func newLogger(c *cli.Context) *log.Logger {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func openHistory(c *cli.Context) (*tiffview.History, error) {
	if c.Bool("no-history") {
		return nil, nil
	}
	return tiffview.NewHistory(c.String("db"))
}

// viewerAction sets up a Viewer, opens the named file and hands the initial
// display to fn.
func viewerAction(fn func(*cli.Context, *tiffview.Viewer, tiffview.Pair) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		h, err := openHistory(c)
		if err != nil {
			return cli.NewExitError(err, 1)
		}
		if h != nil {
			defer h.Close()
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		v := tiffview.New(h, newLogger(c))

		p, err := v.OpenFile(ctx, c.Args().First())
		if err != nil {
			return cli.NewExitError(err, 1)
		}

		if err := fn(c, v, p); err != nil {
			return cli.NewExitError(err, 1)
		}

		return nil
	}
}

func compose(c *cli.Context, p tiffview.Pair) image.Image {
	return render.SideBySide(p.Left, p.Right, c.Int("gap"), c.Int("max-height"))
}

func writePNG(file string, m image.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return err
	}

	return f.Close()
}

func show(c *cli.Context, v *tiffview.Viewer, p tiffview.Pair) error {
	dir := c.String("out")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	for i := 0; ; i++ {
		file := filepath.Join(dir, fmt.Sprintf("display-%d.png", i))
		if err := writePNG(file, compose(c, p)); err != nil {
			return err
		}
		fmt.Fprintln(c.App.Writer, file)

		if i == c.Int("steps") {
			return nil
		}

		var err error
		if p, err = v.Advance(); err != nil {
			return err
		}
	}
}

func cycle(c *cli.Context, v *tiffview.Viewer, p tiffview.Pair) error {
	frames := []image.Image{compose(c, p)}
	for i := 0; i < tiffview.NumSteps; i++ {
		p, err := v.Advance()
		if err != nil {
			return err
		}
		frames = append(frames, compose(c, p))
	}

	f, err := os.Create(c.String("out"))
	if err != nil {
		return err
	}
	defer f.Close()

	if err := render.EncodeGIF(f, frames, c.Int("delay")); err != nil {
		return err
	}

	return f.Close()
}

func history(c *cli.Context) error {
	h, err := tiffview.NewHistory(c.String("db"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}
	defer h.Close()

	entries, err := h.Recent(c.Int("limit"))
	if err != nil {
		return cli.NewExitError(err, 1)
	}

	w := tabwriter.NewWriter(c.App.Writer, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "LAST OPENED\tCOUNT\tFORMAT\tSIZE\tPATH")
	for _, e := range entries {
		fmt.Fprintf(w, "%s\t%d\t%s\t%dx%d\t%s\n", e.LastOpened.Format("2006-01-02 15:04:05"), e.Opened, e.Format, e.Width, e.Height, e.Path)
	}

	return w.Flush()
}

func main() {
	app := cli.NewApp()

	app.Name = "tiffview"
	app.Usage = "Cycle an image through grayscale, dimming, dithering and auto-level"
	app.Version = "1.0.0"

	cwd, err := os.Getwd()
	if err != nil {
		log.Fatal(err)
	}

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "db",
			EnvVars: []string{"TIFFVIEW_DB"},
			Value:   filepath.Join(cwd, defaultDB),
			Usage:   "path to history database",
		},
		&cli.BoolFlag{
			Name:    "no-history",
			EnvVars: []string{"TIFFVIEW_NO_HISTORY"},
			Usage:   "do not record opened files",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	displayFlags := []cli.Flag{
		&cli.IntFlag{
			Name:  "gap",
			Value: 10,
			Usage: "pixels between the left and right image",
		},
		&cli.IntFlag{
			Name:  "max-height",
			Value: 0,
			Usage: "scale images taller than this, 0 disables scaling",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:        "show",
			Usage:       "Render successive displays as PNG files",
			Description: "Opens FILE and writes the initial display followed by one display per step.",
			ArgsUsage:   "FILE",
			Flags: append([]cli.Flag{
				&cli.IntFlag{
					Name:  "steps",
					Value: tiffview.NumSteps,
					Usage: "number of times to advance",
				},
				&cli.StringFlag{
					Name:  "out",
					Value: ".",
					Usage: "output directory",
				},
			}, displayFlags...),
			Action: viewerAction(show),
		},
		{
			Name:        "cycle",
			Usage:       "Render a full cycle as an animated GIF",
			Description: "Opens FILE and writes the initial display followed by every step as GIF frames.",
			ArgsUsage:   "FILE",
			Flags: append([]cli.Flag{
				&cli.StringFlag{
					Name:  "out",
					Value: "cycle.gif",
					Usage: "output file",
				},
				&cli.IntFlag{
					Name:  "delay",
					Value: 150,
					Usage: "frame delay in hundredths of a second",
				},
			}, displayFlags...),
			Action: viewerAction(cycle),
		},
		{
			Name:   "history",
			Usage:  "List recently opened files",
			Action: history,
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "limit",
					Value: 20,
					Usage: "maximum number of entries",
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
