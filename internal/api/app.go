package api

import (
	"github.com/lieyanc/studypk/internal"
	"github.com/lieyanc/studypk/internal/auth"
	"github.com/lieyanc/studypk/internal/service"
	"github.com/lieyanc/studypk/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Store() storage.Store
	Ledger() *service.Ledger
	Auth() auth.Provider
}
