// internal/app/system/validators/validators.go
package validators

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// EnsureAll creates the content collections (if missing) and tries to
// attach JSON-Schema validators. On servers that don't support
// collMod/validators (e.g. some DocumentDB versions), we log and skip.
//
// Schemas only constrain types. Edits may clear any field to "" or null,
// so nothing is required and no enum is enforced.
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	schemas := Schemas()

	for _, coll := range registry.Collections() {
		if _, err := ensureCollection(ctx, db, coll); err != nil {
			problems = append(problems, coll+": "+err.Error())
			continue
		}
		schema, ok := schemas[coll]
		if !ok {
			continue
		}
		if err := setValidator(ctx, db, coll, schema); err != nil {
			if isNoSuchCommand(err) || isNotImplemented(err) {
				zap.L().Info("validator skipped (unsupported)", zap.String("collection", coll))
				continue
			}
			problems = append(problems, coll+": "+err.Error())
		}
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ---------------------- collection helpers & logging ---------------------- */

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.M{"name": name})
	if err != nil {
		return false, err
	}
	return len(names) > 0, nil
}

// ensureCollection idempotently makes sure <name> exists.
// Returns created==true only if we actually created it.
func ensureCollection(ctx context.Context, db *mongo.Database, name string) (created bool, err error) {
	exists, listErr := collectionExists(ctx, db, name)
	if listErr == nil && exists {
		zap.L().Debug("collection exists", zap.String("collection", name))
		return false, nil
	}
	if err := db.CreateCollection(ctx, name); err != nil {
		if isNamespaceExistsErr(err) {
			return false, nil
		}
		zap.L().Warn("createCollection failed", zap.String("collection", name), zap.Error(err))
		return false, err
	}
	zap.L().Info("created collection", zap.String("collection", name))
	return true, nil
}

func setValidator(ctx context.Context, db *mongo.Database, name string, validator bson.M) error {
	cmd := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
		{Key: "validationLevel", Value: "moderate"},
		{Key: "validationAction", Value: "error"},
	}
	var out bson.M
	if err := db.RunCommand(ctx, cmd).Decode(&out); err != nil {
		return err
	}
	zap.L().Info("validator ensured", zap.String("collection", name))
	return nil
}

/* ------------------------- error helpers ------------------------- */

func commandErrMatches(err error, code int32, fragments ...string) bool {
	if err == nil {
		return false
	}
	var ce mongo.CommandError
	if errors.As(err, &ce) && ce.Code == code {
		return true
	}
	s := strings.ToLower(err.Error())
	for _, f := range fragments {
		if strings.Contains(s, f) {
			return true
		}
	}
	return false
}

func isNamespaceExistsErr(err error) bool {
	return commandErrMatches(err, 48, "already exists", "namespace exists")
}

func isNoSuchCommand(err error) bool {
	return commandErrMatches(err, 59, "no such command")
}

func isNotImplemented(err error) bool {
	return commandErrMatches(err, 115, "not implemented", "not supported")
}

/* ------------------------- JSON-Schema docs ---------------------- */

var (
	text     = bson.M{"bsonType": bson.A{"string", "null"}}
	number   = bson.M{"bsonType": bson.A{"int", "long", "double", "null"}}
	flag     = bson.M{"bsonType": bson.A{"bool", "null"}}
	textList = bson.M{"bsonType": bson.A{"array", "null"}, "items": bson.M{"bsonType": "string"}}
)

func object(props bson.M) bson.M {
	return bson.M{"$jsonSchema": bson.M{"bsonType": "object", "properties": props}}
}

// Schemas returns the validator per physical collection.
func Schemas() map[string]bson.M {
	newsLike := object(bson.M{
		"title":          text,
		"content":        text,
		"category":       text,
		"status":         text,
		"is_featured":    flag,
		"tags":           textList,
		"published_date": bson.M{"bsonType": bson.A{"string", "date", "null"}},
	})
	return map[string]bson.M{
		"people": object(bson.M{
			"name":               text,
			"category":           text,
			"research_interests": textList,
		}),
		"publications": object(bson.M{
			"title":          text,
			"authors":        textList,
			"keywords":       textList,
			"year":           number,
			"citations":      number,
			"is_open_access": flag,
		}),
		"projects": object(bson.M{
			"name":         text,
			"status":       text,
			"team_members": textList,
		}),
		"achievements": object(bson.M{
			"name":     text,
			"year":     number,
			"category": text,
		}),
		"research_areas": object(bson.M{
			"title":               text,
			"research_objectives": textList,
			"key_applications":    textList,
		}),
		"news":   newsLike,
		"events": newsLike,
	}
}
