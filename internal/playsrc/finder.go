package playsrc

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"braces.dev/errtrace"
	"go.anag.dev/play2html/internal/manifest"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	_bundleExt = ".playground"
	_pageExt   = ".xcplaygroundpage"
	_srcExt    = ".swift"

	_contentsFile = "Contents.swift"
	_pagesDir     = "Pages"
)

// Finder searches for playground pages on disk.
//
// The zero value of this is ready to use.
type Finder struct {
	// Logger to write regular log messages to.
	Log *log.Logger

	// Logger to write debug messages to.
	//
	// Use nil to disable debug logging.
	DebugLog *log.Logger

	// Exclude lists glob patterns of file names to skip
	// while searching directories.
	// Paths named directly are never excluded.
	Exclude []string
}

// FindPages resolves the given path patterns to page references.
//
// A pattern may name a .playground bundle, a standalone .swift file,
// or a directory to search recursively for either.
// Pages inside a bundle are ordered by the bundle's tour.toml manifest
// if it has one, and lexically otherwise.
func (f *Finder) FindPages(patterns ...string) ([]*PageRef, error) {
	var refs []*PageRef
	seen := make(map[string]struct{})

	add := func(found []*PageRef) {
		for _, ref := range found {
			if _, ok := seen[ref.File]; ok {
				continue
			}
			seen[ref.File] = struct{}{}
			refs = append(refs, ref)
		}
	}

	for _, pat := range patterns {
		info, err := os.Stat(pat)
		if err != nil {
			return nil, errtrace.Wrap(err)
		}

		switch {
		case info.IsDir() && strings.HasSuffix(pat, _bundleExt):
			found, err := f.bundleRefs(pat)
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			add(found)

		case info.IsDir():
			found, err := f.walk(pat)
			if err != nil {
				return nil, errtrace.Wrap(err)
			}
			add(found)

		case strings.HasSuffix(pat, _srcExt):
			add([]*PageRef{f.fileRef(pat)})

		default:
			f.logf("[%v] Not a playground page. Skipping.", pat)
		}
	}

	if len(refs) == 0 {
		return nil, errtrace.Wrap(errors.New("no pages found"))
	}
	return refs, nil
}

// walk searches a directory tree for bundles and standalone pages.
func (f *Finder) walk(root string) ([]*PageRef, error) {
	var refs []*PageRef
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if p != root && (strings.HasPrefix(name, ".") || f.excluded(name)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.IsDir() && strings.HasSuffix(name, _bundleExt):
			found, err := f.bundleRefs(p)
			if err != nil {
				return err
			}
			refs = append(refs, found...)
			return filepath.SkipDir

		case !d.IsDir() && strings.HasSuffix(name, _srcExt):
			refs = append(refs, f.fileRef(p))
		}
		return nil
	})
	if err != nil {
		return nil, errtrace.Wrap(err)
	}
	return refs, nil
}

// bundleRefs expands a .playground bundle into page references.
func (f *Finder) bundleRefs(dir string) ([]*PageRef, error) {
	slug := strings.TrimSuffix(filepath.Base(dir), _bundleExt)
	f.debugf("[%v] Inspecting bundle", dir)

	tour, err := f.loadManifest(dir)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	pagesDir := filepath.Join(dir, _pagesDir)
	if _, err := os.Stat(pagesDir); err == nil {
		return f.bundlePageRefs(slug, pagesDir, tour)
	}

	contents := filepath.Join(dir, _contentsFile)
	if _, err := os.Stat(contents); err != nil {
		f.logf("[%v] No %v. Skipping.", dir, _contentsFile)
		return nil, nil
	}

	title := tour.Title
	if title == "" {
		title = titleize(slug)
	}
	return []*PageRef{{Title: title, Path: slug, File: contents}}, nil
}

// bundlePageRefs lists the pages of a multi-page bundle,
// manifest-ordered first, then the rest lexically.
func (f *Finder) bundlePageRefs(slug, pagesDir string, tour *manifest.Tour) ([]*PageRef, error) {
	ents, err := os.ReadDir(pagesDir)
	if err != nil {
		return nil, errtrace.Wrap(err)
	}

	avail := make(map[string]string) // page name => Contents.swift path
	var names []string
	for _, ent := range ents {
		if !ent.IsDir() || !strings.HasSuffix(ent.Name(), _pageExt) {
			continue
		}
		if f.excluded(ent.Name()) {
			continue
		}
		name := strings.TrimSuffix(ent.Name(), _pageExt)
		contents := filepath.Join(pagesDir, ent.Name(), _contentsFile)
		if _, err := os.Stat(contents); err != nil {
			f.logf("[%v] No %v. Skipping.", filepath.Join(pagesDir, ent.Name()), _contentsFile)
			continue
		}
		avail[name] = contents
		names = append(names, name)
	}
	sort.Strings(names)

	var ordered []string
	for _, p := range tour.Pages {
		if _, ok := avail[p.Name]; !ok {
			f.logf("[%v] Page %q in manifest not found. Skipping.", pagesDir, p.Name)
			continue
		}
		ordered = append(ordered, p.Name)
	}
	listed := make(map[string]struct{}, len(ordered))
	for _, name := range ordered {
		listed[name] = struct{}{}
	}
	for _, name := range names {
		if _, ok := listed[name]; !ok {
			ordered = append(ordered, name)
		}
	}

	refs := make([]*PageRef, 0, len(ordered))
	for _, name := range ordered {
		title := tour.PageTitled(name)
		if title == "" {
			title = titleize(name)
		}
		refs = append(refs, &PageRef{
			Title: title,
			Path:  path.Join(slug, name),
			File:  avail[name],
		})
	}
	return refs, nil
}

// excluded reports whether any of the exclude patterns
// matches the given file name.
func (f *Finder) excluded(name string) bool {
	for _, pat := range f.Exclude {
		if ok, _ := path.Match(pat, name); ok {
			f.debugf("[%v] Excluded by %q", name, pat)
			return true
		}
	}
	return false
}

// loadManifest reads a bundle's tour.toml.
// A missing manifest is not an error; it yields an empty Tour.
func (f *Finder) loadManifest(dir string) (*manifest.Tour, error) {
	tour, err := manifest.Load(filepath.Join(dir, manifest.Filename))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &manifest.Tour{}, nil
		}
		return nil, errtrace.Wrap(err)
	}
	f.debugf("[%v] Loaded manifest with %d pages", dir, len(tour.Pages))
	return tour, nil
}

func (f *Finder) fileRef(p string) *PageRef {
	slug := strings.TrimSuffix(filepath.Base(p), _srcExt)
	return &PageRef{
		Title: titleize(slug),
		Path:  slug,
		File:  p,
	}
}

func (f *Finder) logf(format string, args ...any) {
	if f.Log != nil {
		f.Log.Printf(format, args...)
	}
}

func (f *Finder) debugf(format string, args ...any) {
	if f.DebugLog != nil {
		f.DebugLog.Printf(format, args...)
	}
}

var _titleCaser = cases.Title(language.English)

// titleize derives a display title from a page or bundle slug.
func titleize(slug string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(slug)
	return _titleCaser.String(s)
}
