// internal/app/bootstrap/db.go
package bootstrap

import (
	"context"
	"fmt"

	"github.com/dalemusser/researchhub/internal/app/store/content"
	"github.com/dalemusser/researchhub/internal/app/store/fallback"
	"github.com/dalemusser/researchhub/internal/app/store/firestoredocs"
	"github.com/dalemusser/researchhub/internal/app/store/memdocs"
	"github.com/dalemusser/researchhub/internal/app/store/mongodocs"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/researchhub/internal/app/system/indexes"
	"github.com/dalemusser/researchhub/internal/app/system/timeouts"
	"github.com/dalemusser/researchhub/internal/app/system/validators"
	"github.com/dalemusser/waffle/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectDB opens the configured document store and builds the content
// orchestrator over it. No content is read here; see Startup.
func ConnectDB(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) (DBDeps, error) {
	timeouts.Configure(timeouts.Config{Fetch: appCfg.FetchTimeout})

	deps := DBDeps{Backend: appCfg.DocBackend}
	switch appCfg.DocBackend {
	case BackendMongo:
		client, err := connectMongo(ctx, appCfg, logger)
		if err != nil {
			return DBDeps{}, err
		}
		deps.MongoClient = client
		deps.MongoDatabase = client.Database(appCfg.MongoDatabase)
		deps.Docs = mongodocs.New(deps.MongoDatabase, nil)

	case BackendFirestore:
		fs, err := firestoredocs.Open(ctx, appCfg.FirestoreProjectID, appCfg.FirestoreCredentialsFile)
		if err != nil {
			logger.Error("firestore connect failed", zap.Error(err))
			return DBDeps{}, err
		}
		logger.Info("connected to Firestore", zap.String("project", appCfg.FirestoreProjectID))
		deps.Firestore = fs
		deps.Docs = fs

	case BackendMemory:
		mem := memdocs.New(nil)
		if appCfg.SeedMemoryFallback {
			seedFallback(mem, logger)
		}
		deps.Docs = mem

	default:
		return DBDeps{}, fmt.Errorf("unknown doc_backend %q", appCfg.DocBackend)
	}

	deps.Content = content.New(deps.Docs, logger, content.WithFetchTimeout(appCfg.FetchTimeout))
	return deps, nil
}

func connectMongo(ctx context.Context, appCfg AppConfig, logger *zap.Logger) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(appCfg.MongoURI).
		SetMaxPoolSize(appCfg.MongoMaxPoolSize).
		SetMinPoolSize(appCfg.MongoMinPoolSize)

	cctx, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	client, err := mongo.Connect(cctx, opts)
	if err != nil {
		logger.Error("MongoDB connect failed", zap.Error(err))
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(cctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		logger.Error("MongoDB ping failed", zap.Error(err))
		return nil, fmt.Errorf("mongo ping: %w", err)
	}
	logger.Info("connected to MongoDB",
		zap.String("database", appCfg.MongoDatabase),
		zap.Uint64("max_pool", appCfg.MongoMaxPoolSize))
	return client, nil
}

// seedFallback loads the placeholder dataset into an in-memory store.
func seedFallback(mem *memdocs.Client, logger *zap.Logger) {
	n := 0
	for _, t := range registry.All() {
		docs := fallback.For(t)
		if len(docs) == 0 {
			continue
		}
		mem.Seed(registry.PhysicalName(t), docs...)
		n += len(docs)
	}
	logger.Info("seeded memory store with fallback data", zap.Int("documents", n))
}

// EnsureSchema creates the content collections with their validators and
// reconciles indexes. Only MongoDB has anything to set up.
func EnsureSchema(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if deps.MongoDatabase == nil {
		logger.Debug("no schema setup for backend", zap.String("backend", deps.Backend))
		return nil
	}
	if err := validators.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("collection validators failed", zap.Error(err))
		return err
	}
	if err := indexes.EnsureAll(ctx, deps.MongoDatabase); err != nil {
		logger.Error("index setup failed", zap.Error(err))
		return err
	}
	logger.Info("schema ready", zap.Int("collections", len(registry.Collections())))
	return nil
}
