// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/researchhub/internal/app/store/content"
	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/firestoredocs"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the document store and the content orchestrator built on it.
// Only the fields for the configured backend are set.
type DBDeps struct {
	Backend string

	MongoClient   *mongo.Client
	MongoDatabase *mongo.Database
	Firestore     *firestoredocs.Client

	Docs    docstore.Client
	Content *content.Store
}
