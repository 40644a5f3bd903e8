// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dalemusser/researchhub/internal/app/store/audit"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup when the Mongo backend is selected. Every
collection's index set is reconciled independently and errors are
aggregated so any problem is visible in one message.

news and events get single-field indexes only; their reads carry at most
one filter or sort.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, coll := range Collections() {
		if err := ensureIndexSet(ctx, db.Collection(coll), Desired()[coll]); err != nil {
			problems = append(problems, coll+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// Desired returns the index models per physical collection.
func Desired() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		"people": {
			named("idx_people_category_name", bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}),
		},
		"publications": {
			named("idx_publications_year", bson.D{{Key: "year", Value: -1}}),
			named("idx_publications_type_year", bson.D{{Key: "publication_type", Value: 1}, {Key: "year", Value: -1}}),
		},
		"projects": {
			named("idx_projects_status_start", bson.D{{Key: "status", Value: 1}, {Key: "start_date", Value: -1}}),
		},
		"achievements": {
			named("idx_achievements_year", bson.D{{Key: "year", Value: -1}}),
		},
		"photo_gallery": {
			named("idx_photo_gallery_category", bson.D{{Key: "category", Value: 1}}),
		},
		"news": {
			named("idx_news_published_date", bson.D{{Key: "published_date", Value: -1}}),
			named("idx_news_category", bson.D{{Key: "category", Value: 1}}),
			named("idx_news_status", bson.D{{Key: "status", Value: 1}}),
			named("idx_news_featured", bson.D{{Key: "is_featured", Value: 1}}),
		},
		"events": {
			named("idx_events_published_date", bson.D{{Key: "published_date", Value: -1}}),
			named("idx_events_category", bson.D{{Key: "category", Value: 1}}),
			named("idx_events_status", bson.D{{Key: "status", Value: 1}}),
		},
		audit.Collection: {
			named("idx_audit_created", bson.D{{Key: "created_at", Value: -1}}),
			named("idx_audit_category_created", bson.D{{Key: "category", Value: 1}, {Key: "created_at", Value: -1}}),
		},
	}
}

// Collections returns the collections EnsureAll touches, in name order.
func Collections() []string {
	d := Desired()
	out := make([]string, 0, len(d))
	for c := range d {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}

func named(name string, keys bson.D) mongo.IndexModel {
	return mongo.IndexModel{Keys: keys, Options: options.Index().SetName(name)}
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func sameBoolPtr(a, b *bool) bool {
	return (a != nil && *a) == (b != nil && *b)
}

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	out := map[string]existingIndex{} // sig -> index
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()),
				zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	existing := listExisting(ctx, coll)

	for _, m := range models {
		var desiredName string
		var desiredUnique *bool
		if m.Options != nil {
			if m.Options.Name != nil {
				desiredName = *m.Options.Name
			}
			desiredUnique = m.Options.Unique
		}
		desiredSig := keySig(m.Keys.(bson.D))
		start := time.Now()

		if ex, ok := existing[desiredSig]; ok {
			if sameBoolPtr(desiredUnique, ex.Unique) && (desiredName == "" || ex.Name == desiredName) {
				zap.L().Debug("reusing existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", ex.Name),
					zap.String("keys", desiredSig))
				continue
			}
			// Name or options differ: drop and recreate.
			if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
				errs = append(errs, fmt.Sprintf("%s(%s): drop failed: %v", coll.Name(), desiredName, err))
				continue
			}
		}

		if _, err := coll.Indexes().CreateOne(ctx, m); err != nil {
			if isOptionsConflictErr(err) {
				zap.L().Warn("index options conflict; keeping existing index",
					zap.String("collection", coll.Name()),
					zap.String("name", desiredName),
					zap.String("keys", desiredSig))
				continue
			}
			errs = append(errs, fmt.Sprintf("%s(%s): %v", coll.Name(), desiredName, err))
			continue
		}
		zap.L().Info("index ensured",
			zap.String("collection", coll.Name()),
			zap.String("name", desiredName),
			zap.String("keys", desiredSig),
			zap.String("took", time.Since(start).String()))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}
