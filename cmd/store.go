package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/bytedance/sonic"

	"github.com/moyoez/configd/presentation"
	"github.com/moyoez/configd/settings"
	"github.com/moyoez/configd/storage"
	"github.com/moyoez/configd/tool"
	"github.com/moyoez/configd/types"
)

// openStore opens the configured backend and loads the config into a new store.
// The returned close func flushes pending writes and releases the backend.
func openStore(ctx context.Context, cfg types.DaemonConfig, p presentation.Presenter) (*settings.Store, func(), error) {
	kv, err := storage.Open(cfg.Storage)
	if err != nil {
		return nil, nil, err
	}
	store := settings.New(kv, storage.NewLegacy(cfg.LegacyDir), settings.Options{
		Delay:     cfg.Debounce,
		Presenter: p,
		Logger:    tool.DefaultLogger,
	})
	store.Load(ctx)
	closeFn := func() {
		store.Close()
		if err := kv.Close(); err != nil {
			tool.DefaultLogger.Warnf("Failed to close storage: %v", err)
		}
	}
	return store, closeFn, nil
}

func printConfig(w io.Writer, cfg *types.Config) error {
	out, err := sonic.ConfigStd.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}
