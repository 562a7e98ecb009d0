package storage

import (
	"fmt"

	"github.com/lieyanc/studypk/internal"
	"github.com/lieyanc/studypk/internal/config"
)

func NewStore(cfg *config.Config, logger internal.Logger) (Store, error) {
	switch cfg.DBType {
	case "postgres":
		return NewPostgresStorage(cfg.DBDSN, logger)
	case "file":
		return NewFileStorage(cfg.DataDir, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
