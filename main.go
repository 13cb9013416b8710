package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"text/template"

	"braces.dev/errtrace"
	"go.anag.dev/play2html/internal/highlight"
	"go.anag.dev/play2html/internal/html"
	"go.anag.dev/play2html/internal/lint"
	"go.anag.dev/play2html/internal/markdown"
	"go.anag.dev/play2html/internal/pagefind"
	"go.anag.dev/play2html/internal/playsrc"
	"go.anag.dev/play2html/internal/sliceutil"
	"go.anag.dev/play2html/internal/tour"
)

func main() {
	cmd := mainCmd{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	os.Exit(cmd.Run(os.Args[1:]))
}

// mainCmd is the actual entry point to the program.
type mainCmd struct {
	Stdout io.Writer // == os.Stdout
	Stderr io.Writer // == os.Stderr

	log *log.Logger
}

func (cmd *mainCmd) Run(args []string) (exitCode int) {
	cmd.log = log.New(cmd.Stderr, "", 0)

	opts, err := (&cliParser{
		Stdout: cmd.Stdout,
		Stderr: cmd.Stderr,
	}).Parse(args)
	if err != nil {
		// '$cmd -h' should exit with zero.
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		// No need to print anything.
		// Parse prints messages.
		return 1
	}

	if err := cmd.run(opts); err != nil {
		cmd.log.Printf("play2html: %v", err)
		return 1
	}
	return 0
}

func (cmd *mainCmd) run(opts *params) error {
	debugw, closeDebug, err := opts.Debug.Create(cmd.Stderr)
	if err != nil {
		return errtrace.Wrap(err)
	}
	defer func() { _ = closeDebug() }()

	var debugLog *log.Logger
	if opts.Debug.Bool() {
		debugLog = log.New(debugw, "", 0)
	}

	frontmatter, err := frontmatterTemplate(opts)
	if err != nil {
		return err
	}

	theme := opts.Highlight.Theme
	if len(theme) == 0 {
		theme = "plain"
	}
	style, ok := highlight.StyleNamed(theme)
	if !ok {
		return errtrace.Wrap(fmt.Errorf("unknown highlight theme %q", theme))
	}

	useClasses := opts.Highlight.Mode == highlightModeClasses ||
		(opts.Highlight.Mode == highlightModeAuto && !opts.Embedded)

	finder := playsrc.Finder{
		Log:      cmd.log,
		DebugLog: debugLog,
		Exclude: sliceutil.Transform(opts.Exclude,
			func(g globPattern) string { return string(g) }),
	}

	g := Generator{
		Log:       cmd.log,
		DebugLog:  debugLog,
		Parser:    new(playsrc.Parser),
		Assembler: new(tour.Assembler),
		Renderer: &html.Renderer{
			Embedded:    opts.Embedded,
			FrontMatter: frontmatter,
			Highlighter: &highlight.Highlighter{
				Style:      style,
				UseClasses: useClasses,
			},
			Prose: new(markdown.Renderer),
		},
		OutDir:   opts.OutputDir,
		Basename: opts.Basename,
	}
	if opts.Lint {
		g.Linter = new(lint.Checker)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	generate := func() error {
		refs, err := finder.FindPages(opts.Patterns...)
		if err != nil {
			return errtrace.Wrap(err)
		}

		if err := g.Generate(refs); err != nil {
			return err
		}

		if !opts.Pagefind.Bool() {
			return nil
		}
		exe := opts.Pagefind.String()
		if exe == "-" {
			exe = "" // search $PATH
		}
		cli := pagefind.CLI{Pagefind: exe, Log: cmd.log}
		return errtrace.Wrap(cli.Index(ctx, pagefind.IndexRequest{
			SiteDir:      opts.OutputDir,
			RootSelector: "main#main",
		}))
	}

	if err := generate(); err != nil {
		return err
	}

	if !opts.Watch {
		return nil
	}

	w := watcher{
		Log:      cmd.log,
		Patterns: opts.Patterns,
	}
	return w.Watch(ctx, generate)
}

func frontmatterTemplate(opts *params) (*template.Template, error) {
	if src := opts.Frontmatter; len(src) > 0 {
		t, err := template.New("frontmatter").Parse(src)
		if err != nil {
			return nil, errtrace.Wrap(fmt.Errorf("bad frontmatter template: %w", err))
		}
		return t, nil
	}

	file := opts.FrontmatterFile
	if len(file) == 0 {
		return nil, nil
	}

	bs, err := os.ReadFile(file)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	t, err := template.New(filepath.Base(file)).Parse(string(bs))
	if err != nil {
		return nil, errtrace.Wrap(fmt.Errorf("bad frontmatter template: %w", err))
	}
	return t, nil
}
