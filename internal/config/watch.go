package config

import (
	"context"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadSettleDelay absorbs the burst of filesystem events an editor save
// produces, so the file is parsed once after the burst rather than mid-write.
const reloadSettleDelay = 100 * time.Millisecond

// Watch monitors the config file at path and invokes onChange with each
// successfully reloaded Config. A reload that fails to parse or validate
// keeps the previous configuration active: the error is logged and onChange
// is not called.
//
// A reloaded config takes effect through onChange — alert rules, webhook
// targets, and per-source softening targets on the next evaluation;
// rebuilding intake readers for added or removed sources is the caller's
// responsibility. Watch blocks until ctx is cancelled.
func Watch(ctx context.Context, path string, onChange func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}
	slog.Info("config: watching for changes", "path", path)

	var settle *time.Timer
	var settleC <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Plain writes, and the create/rename pair an atomic save
			// produces when the file is replaced, all schedule a reload.
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if settle == nil {
				settle = time.NewTimer(reloadSettleDelay)
				settleC = settle.C
			} else {
				settle.Reset(reloadSettleDelay)
			}

		case <-settleC:
			settle = nil
			settleC = nil

			// An atomic save replaced the inode; watch the new one either way.
			_ = watcher.Add(path)

			cfg, err := Load(path)
			if err != nil {
				slog.Error("config: reload failed — keeping previous config",
					"path", path, "err", err)
				continue
			}
			slog.Info("config: reloaded",
				"path", path,
				"sources", len(cfg.Intake.Sources),
				"alert_rules", len(cfg.Alerts.Rules),
			)
			onChange(cfg)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
