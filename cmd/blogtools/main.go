package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"

	"github.com/eringen/blogtools"
	"github.com/eringen/blogtools/placeholder"
)

// version is set at build time via ldflags.
var version = "dev"

type ConfigOpts struct {
	Config string `short:"c" long:"config" value-name:"FILE" description:"Config file (default $BLOGTOOLS_CONFIG or blogtools.yaml)"`
}

type checkOpts struct {
	ConfigOpts
	PostsDir  string `long:"posts-dir" value-name:"DIR" description:"Directory of post documents"`
	PublicDir string `long:"public-dir" value-name:"DIR" description:"Public asset root"`
	Body      bool   `long:"body" description:"Also check site-root images referenced in post bodies"`
}

type heroOpts struct {
	ConfigOpts
	Gradient bool   `long:"gradient" description:"Render the gradient set instead of flat colors"`
	Out      string `long:"out" value-name:"DIR" description:"Output directory"`
}

type placeholderOpts struct {
	ConfigOpts
	Out   string `long:"out" value-name:"DIR" description:"Output directory"`
	Seed  uint64 `long:"seed" description:"Seed for reproducible layouts"`
	Label string `long:"label" description:"Render a single placeholder for this label"`
}

type dateOpts struct {
	ConfigOpts
	PostsDir string `long:"posts-dir" value-name:"DIR" description:"Directory of chapter posts"`
	Start    string `long:"start" value-name:"YYYY-MM-DD" description:"First chapter date"`
	End      string `long:"end" value-name:"YYYY-MM-DD" description:"Last chapter date"`
	DryRun   bool   `long:"dry-run" description:"Report changes without writing"`
}

type initOpts struct {
	ConfigOpts
}

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stdout)
		os.Exit(1)
	}

	if err := run(os.Args[1], os.Args[2:], os.Stdout); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Println(ferr.Message)
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string, stdout io.Writer) error {
	switch cmd {
	case "check-images":
		var opts checkOpts
		if err := parseArgs(&opts, cmd, args); err != nil {
			return err
		}
		app, err := newApp(opts.ConfigOpts, stdout, func(cfg *blogtools.Config) {
			setIf(&cfg.PostsDir, opts.PostsDir)
			setIf(&cfg.PublicDir, opts.PublicDir)
		})
		if err != nil {
			return err
		}
		_, err = app.CheckImages(opts.Body)
		return err

	case "heroes":
		var opts heroOpts
		if err := parseArgs(&opts, cmd, args); err != nil {
			return err
		}
		app, err := newApp(opts.ConfigOpts, stdout, func(cfg *blogtools.Config) {
			setIf(&cfg.ImagesDir, opts.Out)
		})
		if err != nil {
			return err
		}
		_, err = app.GenerateHeroes(opts.Gradient)
		return err

	case "placeholders":
		var opts placeholderOpts
		if err := parseArgs(&opts, cmd, args); err != nil {
			return err
		}
		app, err := newApp(opts.ConfigOpts, stdout, func(cfg *blogtools.Config) {
			setIf(&cfg.ImagesDir, opts.Out)
			if opts.Seed != 0 {
				cfg.Placeholders.Seed = opts.Seed
			}
		})
		if err != nil {
			return err
		}
		var items []placeholder.Item
		if opts.Label != "" {
			items = append(items, blogtools.LabelItem(opts.Label))
		}
		_, err = app.GeneratePlaceholders(items)
		return err

	case "update-dates":
		var opts dateOpts
		if err := parseArgs(&opts, cmd, args); err != nil {
			return err
		}
		app, err := newApp(opts.ConfigOpts, stdout, func(cfg *blogtools.Config) {
			setIf(&cfg.PostsDir, opts.PostsDir)
			setIf(&cfg.Dates.Start, opts.Start)
			setIf(&cfg.Dates.End, opts.End)
		})
		if err != nil {
			return err
		}
		_, err = app.UpdateDates(opts.DryRun)
		return err

	case "init":
		var opts initOpts
		if err := parseArgs(&opts, cmd, args); err != nil {
			return err
		}
		path := opts.Config
		if path == "" {
			path = blogtools.EnvOr("BLOGTOOLS_CONFIG", blogtools.DefaultConfigPath)
		}
		return runInit(path, stdout)

	case "version":
		fmt.Fprintf(stdout, "blogtools %s\n", version)
	case "help", "-h", "--help":
		printUsage(stdout)
	default:
		printUsage(os.Stderr)
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

func parseArgs(opts any, cmd string, args []string) error {
	p := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	p.Name = "blogtools " + cmd
	rest, err := p.ParseArgs(args)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%s: unexpected arguments %v", cmd, rest)
	}
	return nil
}

// newApp loads the config, applies flag overrides and validates the result.
func newApp(common ConfigOpts, stdout io.Writer, override func(*blogtools.Config)) (*blogtools.App, error) {
	path := common.Config
	if path == "" {
		path = blogtools.EnvOr("BLOGTOOLS_CONFIG", blogtools.DefaultConfigPath)
	}
	cfg, err := blogtools.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	override(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return blogtools.New(cfg, blogtools.WithOutput(stdout)), nil
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `blogtools - content maintenance for a static blog

Usage:
  blogtools <command> [flags]

Commands:
  check-images   Report posts whose frontmatter image is missing
  heroes         Generate hero banner images (--gradient for the gradient set)
  placeholders   Generate abstract placeholder images
  update-dates   Spread chapter publish dates evenly across the date range
  init           Write a default blogtools.yaml
  version        Print the blogtools version
  help           Show this help message

Run 'blogtools <command> --help' for the flags of a command.`)
}
