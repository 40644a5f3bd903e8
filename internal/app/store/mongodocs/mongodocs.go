// internal/app/store/mongodocs/mongodocs.go

// Package mongodocs implements docstore.Client on MongoDB. Documents are
// keyed by an ObjectID _id that the application sees as a hex "id".
package mongodocs

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var (
	_ docstore.Client = (*Client)(nil)
	_ docstore.Finder = (*Client)(nil)
)

// Client issues document operations against one Mongo database.
type Client struct {
	db  *mongo.Database
	now docstore.Clock
}

// New creates a Client over db. A nil clock uses time.Now.
func New(db *mongo.Database, clock docstore.Clock) *Client {
	if clock == nil {
		clock = time.Now
	}
	return &Client{db: db, now: clock}
}

// Query implements docstore.Client.
func (c *Client) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	filter := bson.D{}
	for _, f := range q.Filters {
		filter = append(filter, bson.E{Key: f.Field, Value: f.Value})
	}

	opts := options.Find()
	if q.Sort != nil {
		dir := 1
		if q.Sort.Direction == docstore.Descending {
			dir = -1
		}
		opts.SetSort(bson.D{{Key: q.Sort.Field, Value: dir}})
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := c.db.Collection(collection).Find(ctx, filter, opts)
	if err != nil {
		return nil, docstore.Unavailable("query", collection, err)
	}
	defer cur.Close(ctx)

	out := []docstore.Document{}
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, docstore.Unavailable("query", collection, err)
		}
		out = append(out, docstore.NormalizeDates(fromBSON(raw)))
	}
	if err := cur.Err(); err != nil {
		return nil, docstore.Unavailable("query", collection, err)
	}
	return out, nil
}

// Create implements docstore.Client.
func (c *Client) Create(ctx context.Context, collection string, fields docstore.Document) (docstore.Document, error) {
	now := c.now().UTC()
	oid := primitive.NewObjectID()

	doc := bson.M{}
	for k, v := range fields {
		doc[k] = v
	}
	doc["_id"] = oid
	doc[docstore.CreatedAtField] = now
	doc[docstore.UpdatedAtField] = now

	if _, err := c.db.Collection(collection).InsertOne(ctx, doc); err != nil {
		return nil, docstore.Unavailable("create", collection, err)
	}

	out := fields.Clone()
	if out == nil {
		out = docstore.Document{}
	}
	out[docstore.IDField] = oid.Hex()
	out[docstore.CreatedAtField] = now
	out[docstore.UpdatedAtField] = now
	return docstore.NormalizeDates(out), nil
}

// Update implements docstore.Client.
func (c *Client) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	set := bson.M{}
	for k, v := range fields {
		set[k] = v
	}
	set[docstore.UpdatedAtField] = c.now().UTC()

	res, err := c.db.Collection(collection).UpdateOne(ctx, bson.M{"_id": idValue(id)}, bson.M{"$set": set})
	if err != nil {
		return docstore.Unavailable("update", collection, err)
	}
	if res.MatchedCount == 0 {
		return fmt.Errorf("update %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	return nil
}

// FindByID implements docstore.Finder.
func (c *Client) FindByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	var raw bson.M
	err := c.db.Collection(collection).FindOne(ctx, bson.M{"_id": idValue(id)}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("find %s/%s: %w", collection, id, docstore.ErrNotFound)
	}
	if err != nil {
		return nil, docstore.Unavailable("find", collection, err)
	}
	return docstore.NormalizeDates(fromBSON(raw)), nil
}

// Delete implements docstore.Client.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	_, err := c.db.Collection(collection).DeleteOne(ctx, bson.M{"_id": idValue(id)})
	return docstore.Unavailable("delete", collection, err)
}

// Ping implements docstore.Client.
func (c *Client) Ping(ctx context.Context) error {
	return docstore.Unavailable("ping", "", c.db.Client().Ping(ctx, readpref.Primary()))
}

// idValue maps an application id back to the stored _id. Documents imported
// with string ids keep them.
func idValue(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}

// fromBSON converts a decoded document into plain Go values.
func fromBSON(raw bson.M) docstore.Document {
	out := make(docstore.Document, len(raw))
	for k, v := range raw {
		if k == "_id" {
			out[docstore.IDField] = idString(v)
			continue
		}
		out[k] = plain(v)
	}
	return out
}

func idString(v any) string {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case string:
		return t
	}
	return fmt.Sprint(v)
}

func plain(v any) any {
	switch t := v.(type) {
	case bson.M:
		m := make(map[string]any, len(t))
		for k, vv := range t {
			m[k] = plain(vv)
		}
		return m
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = plain(e.Value)
		}
		return m
	case bson.A:
		s := make([]any, len(t))
		for i, vv := range t {
			s[i] = plain(vv)
		}
		return s
	case primitive.DateTime:
		return t.Time().UTC()
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC()
	case primitive.ObjectID:
		return t.Hex()
	case int32:
		return int64(t)
	case primitive.Decimal128:
		return t.String()
	}
	return v
}

