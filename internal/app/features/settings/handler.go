// internal/app/features/settings/handler.go
package settings

import (
	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	settingsstore "github.com/dalemusser/duasite/internal/app/store/settings"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the settings singleton as JSON and as the admin form.
type Handler struct {
	DB     *mongo.Database
	Store  *settingsstore.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  settingsstore.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
