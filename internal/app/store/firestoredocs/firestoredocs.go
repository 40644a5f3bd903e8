// internal/app/store/firestoredocs/firestoredocs.go

// Package firestoredocs implements docstore.Client on Cloud Firestore.
// Setting FIRESTORE_EMULATOR_HOST points the client at a local emulator.
package firestoredocs

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// pingCollection is read with a limit of one by Ping.
const pingCollection = "settings"

var (
	_ docstore.Client = (*Client)(nil)
	_ docstore.Finder = (*Client)(nil)
)

// Client is a docstore.Client backed by a Firestore project.
type Client struct {
	fs *firestore.Client
}

// Open connects to projectID. credentialsFile may be empty to use the
// ambient application default credentials.
func Open(ctx context.Context, projectID, credentialsFile string) (*Client, error) {
	if projectID == "" {
		return nil, errors.New("firestore: project id is required")
	}
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	fs, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore connect: %w", err)
	}
	return &Client{fs: fs}, nil
}

// New wraps an existing Firestore client.
func New(fs *firestore.Client) *Client {
	return &Client{fs: fs}
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.fs.Close()
}

// Query implements docstore.Client.
func (c *Client) Query(ctx context.Context, collection string, q docstore.Query) ([]docstore.Document, error) {
	fq := c.fs.Collection(collection).Query
	for _, f := range q.Filters {
		fq = fq.Where(f.Field, "==", f.Value)
	}
	if q.Sort != nil {
		fq = fq.OrderBy(q.Sort.Field, direction(q.Sort.Direction))
	}
	if q.Limit > 0 {
		fq = fq.Limit(q.Limit)
	}

	snaps, err := fq.Documents(ctx).GetAll()
	if err != nil {
		return nil, docstore.Unavailable("query", collection, mapErr(err))
	}
	out := make([]docstore.Document, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, fromSnapshot(snap.Ref.ID, snap.Data()))
	}
	return out, nil
}

// Create implements docstore.Client. Timestamps are assigned by the server.
func (c *Client) Create(ctx context.Context, collection string, fields docstore.Document) (docstore.Document, error) {
	data := make(map[string]any, len(fields)+2)
	for k, v := range fields {
		data[k] = v
	}
	data[docstore.CreatedAtField] = firestore.ServerTimestamp
	data[docstore.UpdatedAtField] = firestore.ServerTimestamp

	ref, wr, err := c.fs.Collection(collection).Add(ctx, data)
	if err != nil {
		return nil, docstore.Unavailable("create", collection, mapErr(err))
	}

	out := fields.Clone()
	if out == nil {
		out = docstore.Document{}
	}
	out[docstore.IDField] = ref.ID
	out[docstore.CreatedAtField] = wr.UpdateTime
	out[docstore.UpdatedAtField] = wr.UpdateTime
	return docstore.NormalizeDates(out), nil
}

// Update implements docstore.Client.
func (c *Client) Update(ctx context.Context, collection, id string, fields docstore.Document) error {
	_, err := c.fs.Collection(collection).Doc(id).Update(ctx, updatesFor(fields))
	if err == nil {
		return nil
	}
	if err = mapErr(err); errors.Is(err, docstore.ErrNotFound) {
		return fmt.Errorf("update %s/%s: %w", collection, id, err)
	}
	return docstore.Unavailable("update", collection, err)
}

// FindByID implements docstore.Finder.
func (c *Client) FindByID(ctx context.Context, collection, id string) (docstore.Document, error) {
	snap, err := c.fs.Collection(collection).Doc(id).Get(ctx)
	if err != nil {
		if err = mapErr(err); errors.Is(err, docstore.ErrNotFound) {
			return nil, fmt.Errorf("find %s/%s: %w", collection, id, err)
		}
		return nil, docstore.Unavailable("find", collection, err)
	}
	return fromSnapshot(snap.Ref.ID, snap.Data()), nil
}

// Delete implements docstore.Client. Deleting a missing document succeeds.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	if _, err := c.fs.Collection(collection).Doc(id).Delete(ctx); err != nil {
		return docstore.Unavailable("delete", collection, mapErr(err))
	}
	return nil
}

// Ping implements docstore.Client.
func (c *Client) Ping(ctx context.Context) error {
	if _, err := c.fs.Collection(pingCollection).Limit(1).Documents(ctx).GetAll(); err != nil {
		return docstore.Unavailable("ping", pingCollection, mapErr(err))
	}
	return nil
}

func direction(d docstore.Direction) firestore.Direction {
	if d == docstore.Descending {
		return firestore.Desc
	}
	return firestore.Asc
}

// updatesFor turns a field map into field updates in key order. The store
// updated_at is always set server-side.
func updatesFor(fields docstore.Document) []firestore.Update {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		if k == docstore.UpdatedAtField {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]firestore.Update, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, firestore.Update{Path: k, Value: fields[k]})
	}
	return append(out, firestore.Update{Path: docstore.UpdatedAtField, Value: firestore.ServerTimestamp})
}

// fromSnapshot converts snapshot data into a Document carrying id.
func fromSnapshot(id string, data map[string]any) docstore.Document {
	d := make(docstore.Document, len(data)+1)
	for k, v := range data {
		d[k] = v
	}
	d[docstore.IDField] = id
	return docstore.NormalizeDates(d)
}

// mapErr turns a gRPC NotFound into docstore.ErrNotFound.
func mapErr(err error) error {
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("%w: %v", docstore.ErrNotFound, err)
	}
	return err
}
