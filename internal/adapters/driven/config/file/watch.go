package file

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/partfinder-cli/internal/logger"
)

// relevantOps are the file events that may change the config contents.
const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// settleDelay is how long the file must stay quiet before it is reloaded.
// A plain write truncates first, so the first event can see an empty file.
const settleDelay = 100 * time.Millisecond

// Watch reloads the store whenever the config file changes and then calls
// onChange. It blocks until ctx is cancelled.
//
// The parent directory is watched rather than the file so that editors
// which replace the file on save are followed. Bursts of events are
// coalesced into one reload once the file has been quiet for settleDelay.
// A file that fails to parse is logged and the previous values are kept.
func (s *ConfigStore) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create config watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(s.filePath), err)
	}
	logger.Debug("Watching %s for changes", s.filePath)

	settle := time.NewTimer(settleDelay)
	if !settle.Stop() {
		<-settle.C
	}
	defer settle.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(s.filePath) || event.Op&relevantOps == 0 {
				continue
			}
			logger.Debug("Config %s, waiting for writes to settle", event.Op)
			settle.Reset(settleDelay)

		case <-settle.C:
			if err := s.Load(); err != nil {
				logger.Warn("Ignoring unreadable config %s: %v", s.filePath, err)
				continue
			}
			logger.Debug("Config reloaded")
			if onChange != nil {
				onChange()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Config watcher error: %v", err)
		}
	}
}
