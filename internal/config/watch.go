package config

import (
	"context"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch monitors path and swaps reloaded configuration into rt each time the
// file is written. It runs until ctx is cancelled.
//
// Only fields read per-request through Runtime (paste size cap, auth gate)
// take effect on reload. The listen address and the device paste limit are
// fixed at startup; when a reload changes one of them Watch logs a warning
// and serves the rest of the new config anyway.
//
// A failed reload (unreadable file, invalid yaml, failed validation) is
// logged and the previous config stays active.
func Watch(ctx context.Context, path string, rt *Runtime) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(path); err != nil {
		return err
	}

	slog.Info("config: watching for changes", "path", path)

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			// Reload on write and create. Editors often save via rename,
			// which shows up as a create of the watched path.
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}

			cfg, err := Load(path)
			if err != nil {
				slog.Error("config: reload failed, keeping previous config",
					"path", path, "err", err)
				continue
			}

			old := rt.Current()
			if cfg.Server.DevicePasteLimit != old.Server.DevicePasteLimit {
				slog.Warn("config: device_paste_limit changed, restart required to apply",
					"active", old.Server.DevicePasteLimit,
					"file", cfg.Server.DevicePasteLimit)
			}
			if cfg.Server.ListenAddr != old.Server.ListenAddr {
				slog.Warn("config: listen_addr changed, restart required to apply",
					"active", old.Server.ListenAddr,
					"file", cfg.Server.ListenAddr)
			}

			rt.Replace(cfg)
			slog.Info("config: reloaded", "path", path,
				"max_paste_size", cfg.Server.MaxPasteSize,
				"auth_mode", cfg.Server.Auth.Mode)

			// Re-add the file in case an atomic save replaced the inode.
			_ = watcher.Add(path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("config: watcher error", "err", err)
		}
	}
}
