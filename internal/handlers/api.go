// nti-admin/internal/handlers/api.go

// Package handlers holds the gin HTTP layer. Financial mutations go
// through the ledger engine; list endpoints query the database
// directly for pagination and search.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/hamagold/nti-admin/internal/audit"
	"github.com/hamagold/nti-admin/internal/ledger"
	"github.com/hamagold/nti-admin/internal/notify"
	"github.com/hamagold/nti-admin/internal/perm"
	"github.com/hamagold/nti-admin/internal/store"
)

// API bundles the dependencies every handler needs.
type API struct {
	DB       *gorm.DB
	RDB      *redis.Client
	Engine   *ledger.Engine
	Perms    *perm.Resolver
	Recorder *audit.Recorder
	Deriver  *notify.Deriver
	Hub      *FeedHub
	JWTKey   []byte
}

func New(db *gorm.DB, rdb *redis.Client, engine *ledger.Engine, perms *perm.Resolver, recorder *audit.Recorder, deriver *notify.Deriver, hub *FeedHub, jwtKey []byte) *API {
	return &API{
		DB:       db,
		RDB:      rdb,
		Engine:   engine,
		Perms:    perms,
		Recorder: recorder,
		Deriver:  deriver,
		Hub:      hub,
		JWTKey:   jwtKey,
	}
}

// actorFrom reads the authenticated identity placed in the context by
// the auth middleware.
func actorFrom(c *gin.Context) ledger.Actor {
	return ledger.Actor{
		Name: c.GetString("login"),
		Role: c.GetString("role"),
	}
}

// respondError maps engine and storage sentinels onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ledger.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, ledger.ErrPrecondition),
		errors.Is(err, ledger.ErrConflict),
		errors.Is(err, store.ErrDuplicate),
		errors.Is(err, store.ErrVersionConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "record not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
