package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/peterbourgon/ff/v3"
	"go.anag.dev/play2html/internal/flagvalue"
	"go.anag.dev/play2html/internal/highlight"
)

var (
	errHelp             = flag.ErrHelp
	errInvalidArguments = errors.New("invalid arguments")
)

// params holds all arguments for play2html.
type params struct {
	version bool
	help    Help

	Config string
	Debug  flagvalue.FileSwitch

	Basename  string
	OutputDir string

	Embedded        bool
	Frontmatter     string
	FrontmatterFile string
	Highlight       highlightParams

	Exclude []globPattern

	Lint     bool
	Pagefind flagvalue.FileSwitch
	Watch    bool

	Patterns []string
}

// cliParser parses the command line arguments for play2html.
type cliParser struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (cmd *cliParser) newFlagSet() (*params, *flag.FlagSet) {
	flag := flag.NewFlagSet("play2html", flag.ContinueOnError)
	flag.SetOutput(cmd.Stderr)
	flag.Usage = func() {
		DefaultHelp.Write(cmd.Stderr)
	}

	var p params

	// Filesystem:
	flag.StringVar(&p.OutputDir, "out", "_site", "")
	flag.StringVar(&p.Basename, "basename", "", "")

	// HTML output:
	flag.BoolVar(&p.Embedded, "embed", false, "")
	flag.StringVar(&p.Frontmatter, "frontmatter", "", "")
	flag.StringVar(&p.FrontmatterFile, "frontmatter-file", "", "")
	flag.Var(&p.Highlight, "highlight", "")
	flag.Var(&p.Pagefind, "pagefind", "")

	// Content:
	flag.Var(flagvalue.ListOf(&p.Exclude), "exclude", "")
	flag.BoolVar(&p.Lint, "lint", true, "")

	// Program-level:
	flag.BoolVar(&p.Watch, "watch", false, "")
	flag.StringVar(&p.Config, "config", "", "")
	flag.Var(&p.Debug, "debug", "")
	flag.BoolVar(&p.version, "version", false, "")
	flag.Var(&p.help, "help", "")
	flag.Var(&p.help, "h", "")

	return &p, flag
}

func (cmd *cliParser) Parse(args []string) (*params, error) {
	p, flag := cmd.newFlagSet()
	err := ff.Parse(flag, args,
		ff.WithEnvVarPrefix("PLAY2HTML"),
		ff.WithConfigFileFlag("config"),
		ff.WithConfigFileParser(ff.PlainParser),
		ff.WithAllowMissingConfigFile(true),
	)
	if err != nil {
		return nil, err
	}
	args = flag.Args()

	if p.version {
		fmt.Fprintln(cmd.Stdout, "play2html", _version)
		return nil, errHelp
	}

	if p.help == DefaultHelp && len(args) > 0 {
		// The user might have done "-h foo"
		// instead of "-h=foo".
		// If the argument is a known help topic,
		// take it.
		var h Help
		if err := h.Set(args[0]); err == nil {
			p.help = h
		}
	}

	switch p.help {
	case NoHelp:
		// proceed as usual
	default:
		if err := p.help.Write(cmd.Stderr); err != nil {
			fmt.Fprintln(cmd.Stderr, err)
		}
		return nil, errHelp
	}

	p.Patterns = args
	if len(p.Patterns) == 0 {
		fmt.Fprintln(cmd.Stderr, "Please provide at least one path.")
		UsageHelp.Write(cmd.Stderr)
		return nil, errInvalidArguments
	}

	return p, nil
}

// globPattern is a path.Match pattern,
// validated when the flag is parsed.
type globPattern string

var _ flag.Getter = (*globPattern)(nil)

func (g *globPattern) Get() any { return string(*g) }

func (g *globPattern) String() string { return string(*g) }

func (g *globPattern) Set(s string) error {
	if _, err := path.Match(s, ""); err != nil {
		return fmt.Errorf("bad pattern %q: %w", s, err)
	}
	*g = globPattern(s)
	return nil
}

// highlightMode specifies how generated pages
// get the styles for their highlighted snippets.
type highlightMode int

const (
	// highlightModeAuto uses inline styles in embedded mode
	// and classes otherwise.
	highlightModeAuto highlightMode = iota

	// highlightModeClasses uses css classes in the output,
	// with the styles in the generated stylesheet.
	highlightModeClasses

	// highlightModeInline places styles
	// directly on the generated elements.
	highlightModeInline
)

func (m highlightMode) String() string {
	switch m {
	case highlightModeClasses:
		return "classes"
	case highlightModeInline:
		return "inline"
	default:
		return "auto"
	}
}

func (m *highlightMode) Set(s string) error {
	switch s {
	case "auto":
		*m = highlightModeAuto
	case "classes":
		*m = highlightModeClasses
	case "inline":
		*m = highlightModeInline
	default:
		return fmt.Errorf("unknown highlight mode %q", s)
	}
	return nil
}

// highlightParams is the value of the -highlight flag,
// taking the form '[mode:]theme'.
type highlightParams struct {
	Mode  highlightMode
	Theme string
}

var _ flag.Getter = (*highlightParams)(nil)

func (p *highlightParams) Get() any { return *p }

func (p *highlightParams) String() string {
	if p.Mode == highlightModeAuto {
		return p.Theme
	}
	return fmt.Sprintf("%v:%v", p.Mode, p.Theme)
}

func (p *highlightParams) Set(s string) error {
	mode, theme := highlightModeAuto, s
	if idx := strings.IndexRune(s, ':'); idx >= 0 {
		if err := mode.Set(s[:idx]); err != nil {
			return err
		}
		theme = s[idx+1:]
	}

	if theme != "" {
		if _, ok := highlight.StyleNamed(theme); !ok {
			return fmt.Errorf("unknown highlight theme %q", theme)
		}
	}

	p.Mode, p.Theme = mode, theme
	return nil
}
