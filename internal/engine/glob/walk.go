package glob

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"go.trai.ch/zerr"
)

// walker expands patterns by recursive directory traversal rooted at a
// package directory. Matches are recorded with their dir-ness so the
// excludeDirectories filter can run afterwards.
type walker struct {
	root string

	// pruned directories are never descended into. These come from
	// exclude patterns of the form "dir/**".
	prunePrefixes [][]string

	matches map[string]matchKind
}

type matchKind struct {
	isDir    bool
	dirsOnly bool
}

func newWalker(root string, prunePrefixes [][]string) *walker {
	return &walker{
		root:          root,
		prunePrefixes: prunePrefixes,
		matches:       make(map[string]matchKind),
	}
}

// expand runs one validated pattern against the tree.
func (w *walker) expand(p pattern) error {
	return w.walk("", p.segments, p.dirsOnly)
}

func (w *walker) walk(relDir string, segs []string, dirsOnly bool) error {
	if len(segs) == 0 {
		return nil
	}
	seg := segs[0]
	rest := segs[1:]

	if seg == doubleStar {
		if len(rest) == 0 {
			// Trailing **: everything below this directory matches.
			return w.collectSubtree(relDir, dirsOnly)
		}
		// ** may consume zero segments.
		if err := w.walk(relDir, rest, dirsOnly); err != nil {
			return err
		}
		entries, err := w.readDir(relDir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			childRel := path.Join(relDir, e.Name())
			if w.isDir(childRel, e) && !w.pruned(childRel) {
				// ** consumes this segment and stays in the
				// pattern for deeper levels.
				if err := w.walk(childRel, segs, dirsOnly); err != nil {
					return err
				}
			}
		}
		return nil
	}

	entries, err := w.readDir(relDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		ok, _ := path.Match(seg, e.Name())
		if !ok {
			continue
		}
		childRel := path.Join(relDir, e.Name())
		childIsDir := w.isDir(childRel, e)
		if len(rest) == 0 {
			if dirsOnly && !childIsDir {
				continue
			}
			w.record(childRel, childIsDir, dirsOnly)
			continue
		}
		if childIsDir && !w.pruned(childRel) {
			if err := w.walk(childRel, rest, dirsOnly); err != nil {
				return err
			}
		}
	}
	return nil
}

// collectSubtree records every entry below relDir, pruning excluded
// subtrees as it descends.
func (w *walker) collectSubtree(relDir string, dirsOnly bool) error {
	entries, err := w.readDir(relDir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		childRel := path.Join(relDir, e.Name())
		childIsDir := w.isDir(childRel, e)
		if !dirsOnly || childIsDir {
			w.record(childRel, childIsDir, dirsOnly)
		}
		if childIsDir && !w.pruned(childRel) {
			if err := w.collectSubtree(childRel, dirsOnly); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *walker) record(rel string, isDir, dirsOnly bool) {
	existing, ok := w.matches[rel]
	if !ok {
		w.matches[rel] = matchKind{isDir: isDir, dirsOnly: dirsOnly}
		return
	}
	// A directory-anchored pattern marks the match as explicitly
	// requested even when another pattern also matched it.
	existing.dirsOnly = existing.dirsOnly || dirsOnly
	w.matches[rel] = existing
}

func (w *walker) pruned(relDir string) bool {
	segs := splitPath(relDir)
	for _, prefix := range w.prunePrefixes {
		if matchSegments(prefix, segs) {
			return true
		}
	}
	return false
}

func (w *walker) readDir(relDir string) ([]os.DirEntry, error) {
	entries, err := os.ReadDir(filepath.Join(w.root, filepath.FromSlash(relDir)))
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to read directory"), "path", relDir)
	}
	return entries, nil
}

// isDir resolves dir-ness through symlinks so that a symlink to a directory
// is traversed like a directory.
func (w *walker) isDir(relPath string, e os.DirEntry) bool {
	if e.IsDir() {
		return true
	}
	if e.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(w.root, filepath.FromSlash(relPath)))
	return err == nil && info.IsDir()
}

func splitPath(rel string) []string {
	if rel == "" {
		return nil
	}
	return strings.Split(rel, "/")
}

// expand computes the final match list for one glob key: include patterns
// expanded with exclude-subtree pruning, exclude matches subtracted as a
// set, directories filtered per excludeDirectories, output sorted and
// deduplicated.
func expand(root string, include, exclude []pattern, excludeDirectories bool) ([]string, error) {
	prefixes := subtreePrefixes(exclude)

	includeWalker := newWalker(root, prefixes)
	for _, p := range include {
		if err := includeWalker.expand(p); err != nil {
			return nil, err
		}
	}

	excluded := make(map[string]bool)
	if len(exclude) > 0 {
		excludeWalker := newWalker(root, nil)
		for _, p := range exclude {
			if err := excludeWalker.expand(p); err != nil {
				return nil, err
			}
		}
		for rel := range excludeWalker.matches {
			excluded[rel] = true
		}
	}

	result := make([]string, 0, len(includeWalker.matches))
	for rel, kind := range includeWalker.matches {
		if excluded[rel] {
			continue
		}
		if excludeDirectories && kind.isDir && !kind.dirsOnly {
			continue
		}
		result = append(result, rel)
	}
	sort.Strings(result)
	return result, nil
}
