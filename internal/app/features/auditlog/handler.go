// internal/app/features/auditlog/handler.go
package auditlog

import (
	uierrors "github.com/dalemusser/duasite/internal/app/features/errors"
	"github.com/dalemusser/duasite/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// Handler serves the sign-in activity page.
type Handler struct {
	DB     *mongo.Database
	Store  *audit.Store
	Log    *zap.Logger
	ErrLog *uierrors.ErrorLogger
}

func NewHandler(db *mongo.Database, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		DB:     db,
		Store:  audit.New(db),
		Log:    logger,
		ErrLog: errLog,
	}
}
