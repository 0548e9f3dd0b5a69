package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/tonal/internal/security"
)

const defaultDebounce = 250 * time.Millisecond

func newWatchCmd(a *app) *cobra.Command {
	opts := &themeOptions{}
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch <image>",
		Short: "Rebuild the theme whenever an image changes",
		Long: `Build the theme of a local image, then rebuild it each time the file is
written or replaced. Use --output to keep a theme file up to date for other
tools. Stop with Ctrl+C.

Examples:
  tonal watch ~/.config/wallpaper.png -f json -o ~/.cache/tonal/theme.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if security.IsRemote(args[0]) {
				return errors.New("watch requires a local image file")
			}
			opts.image = args[0]

			return watchImage(cmd.Context(), args[0], debounce, a.logger.Named("watch"), func() error {
				return runTheme(cmd, a, opts, nil)
			})
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "wait this long after the last change before rebuilding")
	opts.register(cmd.Flags())

	return cmd
}

// watchImage calls rebuild once, then again after each burst of writes to
// path, until ctx is done. Errors from rebuild after the first call are
// logged rather than returned, so a half-written file does not end the
// watch.
func watchImage(ctx context.Context, path string, debounce time.Duration, logger hclog.Logger, rebuild func() error) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return fmt.Errorf("failed to access image: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer func() {
		if cerr := watcher.Close(); cerr != nil {
			logger.Warn("failed to close watcher", "error", cerr)
		}
	}()

	// Watch the directory so files replaced by rename are still seen.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", filepath.Dir(abs), err)
	}

	if err := rebuild(); err != nil {
		return err
	}
	logger.Info("watching for changes", "path", abs)

	var pending <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Debug("stopping watch", "path", abs)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Trace("image changed", "op", event.Op.String())
			pending = time.After(debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)

		case <-pending:
			pending = nil
			logger.Debug("rebuilding theme", "path", abs)
			if err := rebuild(); err != nil {
				logger.Error("rebuild failed", "error", err)
			}
		}
	}
}
