package main

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch <pattern>...",
	Short: "Import matching files and re-import them whenever they change",
	Long: `Watch imports every file matching the patterns, then re-imports files as
they are written. Each batch of changes clears the axiom cache so the next
listing reflects the new triples. Re-importing only adds triples.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		w := &fileWatcher{
			session:  s,
			patterns: args,
			out:      cmd.OutOrStdout(),
			debounce: watchDebounce,
		}
		return w.run(ctx)
	},
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 200*time.Millisecond, "Quiet period before re-importing changed files")
	rootCmd.AddCommand(watchCmd)
}

type fileWatcher struct {
	session  *session
	patterns []string
	out      io.Writer
	debounce time.Duration
}

// matches reports whether path matches any watched pattern.
func (w *fileWatcher) matches(path string) bool {
	for _, p := range w.patterns {
		if ok, _ := doublestar.PathMatch(filepath.Clean(p), filepath.Clean(path)); ok {
			return true
		}
	}
	return false
}

// roots returns the static directory prefix of every pattern.
func (w *fileWatcher) roots() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range w.patterns {
		base, _ := doublestar.SplitPattern(filepath.ToSlash(p))
		base = filepath.FromSlash(base)
		if !seen[base] {
			seen[base] = true
			out = append(out, base)
		}
	}
	return out
}

func addTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

func (w *fileWatcher) run(ctx context.Context) error {
	files, err := expandPatterns(w.patterns)
	if err != nil {
		return err
	}
	if err := w.reload(files); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()
	for _, root := range w.roots() {
		if err := addTree(watcher, root); err != nil {
			return fmt.Errorf("watch %s: %w", root, err)
		}
	}
	slog.Info("watching", "patterns", w.patterns)

	pending := make(map[string]bool)
	timer := time.NewTimer(w.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			slog.Debug("event received", "name", event.Name, "op", event.Op.String())
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(watcher, event.Name); err != nil {
						slog.Warn("failed to watch new directory", "dir", event.Name, "error", err)
					}
					continue
				}
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if !w.matches(event.Name) {
				continue
			}
			pending[event.Name] = true
			timer.Reset(w.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("fsnotify error", "error", err)

		case <-timer.C:
			files := make([]string, 0, len(pending))
			for f := range pending {
				files = append(files, f)
			}
			sort.Strings(files)
			clear(pending)
			if err := w.reload(files); err != nil {
				slog.Error("reload failed", "error", err)
			}
		}
	}
}

// reload imports files and clears the axiom cache.
func (w *fileWatcher) reload(files []string) error {
	total := 0
	for _, f := range files {
		n, err := importFile(w.session.store, f)
		if err != nil {
			return err
		}
		total += n
	}
	w.session.ont.ClearCache()
	count, err := w.session.ont.AxiomCount()
	if err != nil {
		return err
	}
	fmt.Fprintf(w.out, "%s imported %d new triples from %d files; %d axioms\n",
		time.Now().Format(time.TimeOnly), total, len(files), count)
	return nil
}
