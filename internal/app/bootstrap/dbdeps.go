// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/duasite/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds database/back-end dependencies for the app.
type DBDeps struct {
	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database

	// Jobs runs detached work (geo enrichment, notification email). It is
	// started in Startup and drained in Shutdown.
	Jobs *workers.Queue
}
