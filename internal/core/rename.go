package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"sync"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/ryotapoi/wikimv/internal/logging"
)

// RenameOptions controls the rename operation.
type RenameOptions struct {
	From            string   // old path; relative paths are taken from the wiki root
	To              string   // new path; relative paths are taken from the wiki root
	DryRun          bool     // report changes and diffs without writing
	MoveFile        bool     // also move the file on disk
	Workers         int      // 0 = config value, then runtime.NumCPU()
	ContinueOnError bool     // collect per-file errors instead of aborting
	Exclude         []string // extra exclude globs, added to the config ones
	Color           bool     // colour dry-run diffs
}

// FileChange reports the rewrites made to one file.
type FileChange struct {
	File  string // wiki-relative path
	Links []RewrittenLink
	Diff  string // dry-run only
}

// FileError is a failure to process one file.
type FileError struct {
	File string
	Err  error
}

func (e *FileError) Error() string { return e.File + ": " + e.Err.Error() }

func (e *FileError) Unwrap() error { return e.Err }

// RenameResult reports the outcome of the rename operation.
type RenameResult struct {
	From   string // wiki-relative
	To     string // wiki-relative
	Files  []FileChange
	Moved  bool
	Errors []*FileError
}

// LinkCount returns the number of rewritten links across all files.
func (r *RenameResult) LinkCount() int {
	n := 0
	for _, f := range r.Files {
		n += len(f.Links)
	}
	return n
}

// Rename rewrites every link under wikiRoot that refers to opts.From so it
// points at opts.To. Files are processed in parallel. Unless
// opts.ContinueOnError is set, the first failure aborts the walk and files
// already written are restored.
func Rename(ctx context.Context, wikiRoot string, opts RenameOptions) (*RenameResult, error) {
	lg := logging.FromContext(ctx)

	root, err := absLocation(wikiRoot)
	if err != nil {
		return nil, err
	}
	cfg, err := LoadConfig(root.Path())
	if err != nil {
		return nil, err
	}
	if err := validateGlobPatterns(opts.Exclude); err != nil {
		return nil, err
	}

	from := wikiLocation(root, opts.From)
	to := wikiLocation(root, opts.To)
	if from.Path() == to.Path() {
		return nil, fmt.Errorf("source and destination are the same: %s", from)
	}
	if !withinRoot(root, from) {
		return nil, fmt.Errorf("source is outside the wiki root: %s", from)
	}
	if !withinRoot(root, to) {
		return nil, fmt.Errorf("destination is outside the wiki root: %s", to)
	}
	fromRel := relToRoot(root, from)
	toRel := relToRoot(root, to)

	if opts.MoveFile {
		if !fileExists(from.Path()) {
			return nil, fmt.Errorf("source file not found on disk: %s", fromRel)
		}
		if fileExists(to.Path()) {
			return nil, fmt.Errorf("destination already exists on disk: %s", toRel)
		}
	}

	excludes := append(append([]string(nil), cfg.Rename.ExcludePaths...), opts.Exclude...)
	workers := opts.Workers
	if workers <= 0 {
		workers = cfg.Rename.Workers
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	continueOnError := opts.ContinueOnError || cfg.Rename.ContinueOnError

	files, err := collectFiles(root.Path(), excludes)
	if err != nil {
		return nil, err
	}
	lg.Debug("walking wiki", "root", root.Path(), "files", len(files), "workers", workers)

	op := RenameOperation{From: from, To: to}
	result := &RenameResult{From: fromRel, To: toRel}

	var (
		mu      sync.Mutex
		backups []rewriteBackup
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, rel := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			moving := opts.MoveFile && rel == fromRel
			change, backup, err := renameInFile(root, rel, op, opts, moving)
			if err != nil {
				fe := &FileError{File: rel, Err: err}
				if !continueOnError {
					return fe
				}
				lg.Warn("rewrite failed", "file", rel, "error", err)
				mu.Lock()
				result.Errors = append(result.Errors, fe)
				mu.Unlock()
				return nil
			}
			if change == nil {
				return nil
			}
			lg.Debug("rewrote links", "file", rel, "links", len(change.Links))
			mu.Lock()
			result.Files = append(result.Files, *change)
			if backup != nil {
				backups = append(backups, *backup)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		restoreBackups(backups)
		return nil, err
	}

	if opts.MoveFile && !opts.DryRun {
		if err := moveOnDisk(from, to); err != nil {
			restoreBackups(backups)
			return nil, err
		}
		CleanupEmptyDirs(root.Path(), []string{fromRel})
		result.Moved = true
	}

	sort.Slice(result.Files, func(i, j int) bool { return result.Files[i].File < result.Files[j].File })
	sort.Slice(result.Errors, func(i, j int) bool { return result.Errors[i].File < result.Errors[j].File })

	lg.Info("rename complete",
		"from", fromRel, "to", toRel,
		"files", len(result.Files), "links", result.LinkCount(),
		"dry_run", opts.DryRun, "moved", result.Moved)

	if !opts.DryRun && len(result.Files) > 0 && fileExists(dbPath(root.Path())) {
		if err := Build(ctx, root.Path()); err != nil {
			return result, fmt.Errorf("refresh index: %w", err)
		}
	}

	if len(result.Errors) > 0 {
		errs := make([]error, len(result.Errors))
		for i, fe := range result.Errors {
			errs[i] = fe
		}
		return result, errors.Join(errs...)
	}
	return result, nil
}

// renameInFile rewrites one file. It returns nil change when nothing changed.
// When moving is set the file is the one being moved: its relative links are
// first rebased onto the destination directory.
func renameInFile(root Location, rel string, op RenameOperation, opts RenameOptions, moving bool) (*FileChange, *rewriteBackup, error) {
	full := filepath.Join(root.Path(), rel)
	info, err := os.Stat(full)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, nil, err
	}
	if isBinary(data) || !utf8.Valid(data) {
		return nil, nil, nil
	}
	original := string(data)

	wc, err := NewWikiContext(root, NewLocation(full))
	if err != nil {
		return nil, nil, err
	}
	content := original
	var edits []RewrittenLink
	if moving {
		dst, err := NewWikiContext(root, op.To)
		if err != nil {
			return nil, nil, err
		}
		content, edits = RebaseDocument(content, wc, dst)
		wc = dst
	}
	content, rewritten := rewriteDocument(content, wc, op)
	edits = append(edits, rewritten...)
	if content == original {
		return nil, nil, nil
	}
	for i := range edits {
		edits[i].File = rel
	}
	change := &FileChange{File: rel, Links: edits}

	if opts.DryRun {
		change.Diff = renderDiff(original, content, rel, opts.Color)
		return change, nil, nil
	}
	perm := info.Mode().Perm()
	if err := writeFilePreservePerm(full, []byte(content), perm); err != nil {
		return nil, nil, err
	}
	return change, &rewriteBackup{path: full, content: data, perm: perm}, nil
}

func moveOnDisk(from, to Location) error {
	if err := os.MkdirAll(to.Dir().Path(), 0o755); err != nil {
		return err
	}
	return os.Rename(from.Path(), to.Path())
}

// wikiLocation resolves p against root unless it is absolute.
func wikiLocation(root Location, p string) Location {
	if filepath.IsAbs(p) {
		return NewLocation(p)
	}
	return NewLocation(filepath.Join(root.Path(), p))
}

func relToRoot(root, loc Location) string {
	rel, err := filepath.Rel(root.Path(), loc.Path())
	if err != nil {
		return loc.Path()
	}
	return NormalizePath(rel)
}
