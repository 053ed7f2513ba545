package app

import (
	"github.com/samber/do/v2"

	"github.com/pokertime/pokertime/internal/config"
	"github.com/pokertime/pokertime/internal/pathutil"
	"github.com/pokertime/pokertime/repository"
	"github.com/pokertime/pokertime/store"
)

// dbPath returns the configured database path or the XDG default.
func dbPath(opts *config.Options) string {
	if opts.DBPath != "" {
		return opts.DBPath
	}

	return pathutil.DBFilePath()
}

// registerStorage provides the bbolt client backing both the sessions and
// the settings.
func registerStorage(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (store.Storage, error) {
		opts := do.MustInvoke[*config.Options](i)

		c, err := store.NewClient(dbPath(opts))
		if err != nil {
			return nil, err
		}

		return c, nil
	})
}

// registerServices provides the repository and settings store on top of
// whatever store.Storage is registered.
func registerServices(injector do.Injector) {
	do.Provide(injector, func(i do.Injector) (*repository.Repository, error) {
		s := do.MustInvoke[store.Storage](i)
		return repository.New(s)
	})

	do.Provide(injector, func(i do.Injector) (*config.SettingsStore, error) {
		s := do.MustInvoke[store.Storage](i)
		return config.NewSettingsStore(s)
	})
}

func newInjector(opts *config.Options) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, opts)
	registerStorage(injector)
	registerServices(injector)

	return injector
}
