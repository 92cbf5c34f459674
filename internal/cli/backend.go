package cli

import (
	"context"
	"fmt"

	"github.com/idilsaglam/tada/internal/config"
	"github.com/idilsaglam/tada/internal/store"
	"github.com/idilsaglam/tada/internal/store/firestoreslot"
	"github.com/idilsaglam/tada/internal/store/jsonstore"
	"github.com/idilsaglam/tada/internal/store/sqlitestore"
)

func noClose() error { return nil }

// openSlot returns the slot for cfg.Backend and a func releasing it.
func openSlot(cfg *config.Config) (store.Slot, func() error, error) {
	switch cfg.Backend {
	case config.BackendFile:
		return jsonstore.New(cfg.DataDir), noClose, nil
	case config.BackendSQLite:
		s, err := sqlitestore.Open(cfg.SQLitePath())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendFirestore:
		s, err := firestoreslot.New(context.Background(), firestoreslot.Config{
			ProjectID:       cfg.Firestore.ProjectID,
			Collection:      cfg.Firestore.Collection,
			CredentialsFile: cfg.Firestore.CredentialsFile,
		})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown backend %q", cfg.Backend)
}
