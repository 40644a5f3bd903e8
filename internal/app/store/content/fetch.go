// internal/app/store/content/fetch.go
package content

import (
	"context"
	"errors"

	"github.com/dalemusser/researchhub/internal/app/store/docstore"
	"github.com/dalemusser/researchhub/internal/app/store/fallback"
	"github.com/dalemusser/researchhub/internal/app/store/registry"
	"github.com/dalemusser/researchhub/internal/app/system/metrics"
	"github.com/dalemusser/researchhub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Fetch returns t's collection for params. It never fails; see FetchResult.
func (s *Store) Fetch(ctx context.Context, t registry.EntityType, p Params) []docstore.Document {
	return s.FetchResult(ctx, t, p).Items
}

// FetchResult reads t from the store and records the outcome as t's shared
// state. Live documents win; an empty or failed read resolves to the
// bundled placeholder content when the registry allows it for t, and to an
// empty list otherwise. A read still pending after the fetch timeout counts
// as a failure and is not retried.
func (s *Store) FetchResult(ctx context.Context, t registry.EntityType, p Params) Result {
	start := s.now()
	token := s.begin(t)

	coll := registry.PhysicalName(t)
	if registry.SingleCondition(t) && p.conditionCount() > 1 {
		s.log.Debug("query conditions reduced to one",
			zap.String("entity_type", string(t)),
			zap.Int("requested", p.conditionCount()))
	}
	docs, err := s.query(ctx, t, coll, BuildQuery(t, p))
	res := resolve(t, docs, err)

	if err != nil {
		s.log.Warn("content fetch degraded",
			zap.String("entity_type", string(t)),
			zap.String("collection", coll),
			zap.String("source", res.Source.String()),
			zap.Error(err))
	} else if res.Source == SourceFallback {
		s.log.Info("content fetch using fallback",
			zap.String("entity_type", string(t)),
			zap.String("collection", coll))
	}

	s.finish(t, token, res)
	metrics.ObserveFetch(string(t), res.Source.String(), s.now().Sub(start))

	res.Items = docstore.CloneAll(res.Items)
	return res
}

// begin issues a request token and marks t loading.
func (s *Store) begin(t registry.EntityType) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateFor(t)
	st.issued++
	st.inflight++
	return st.issued
}

// finish clears loading and lands res unless something newer already has.
func (s *Store) finish(t registry.EntityType, token uint64, res Result) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.stateFor(t)
	st.inflight--
	if res.Err != nil {
		s.lastErr = res.Err
	}
	if token <= st.applied {
		s.log.Debug("stale fetch response discarded",
			zap.String("entity_type", string(t)),
			zap.Uint64("token", token),
			zap.Uint64("applied", st.applied))
		return
	}
	st.applied = token
	s.publish(st, docstore.CloneAll(res.Items), res.Source)
}

// query runs q with the bounded wait. The store call runs on its own
// goroutine so a backend that ignores cancellation still cannot hold the
// fetch past its deadline.
func (s *Store) query(ctx context.Context, t registry.EntityType, coll string, q docstore.Query) ([]docstore.Document, error) {
	ctx, cancel := timeouts.WithTimeout(ctx, s.fetchTimeout, s.log, "fetch "+string(t))
	defer cancel()

	type reply struct {
		docs []docstore.Document
		err  error
	}
	ch := make(chan reply, 1)
	go func() {
		docs, err := s.docs.Query(ctx, coll, q)
		ch <- reply{docs: docs, err: err}
	}()

	select {
	case r := <-ch:
		if r.err != nil {
			metrics.ObserveFetchFailure(string(t), "error")
			return nil, docstore.Unavailable("query", coll, r.err)
		}
		return r.docs, nil
	case <-ctx.Done():
		reason := "canceled"
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			reason = "timeout"
		}
		metrics.ObserveFetchFailure(string(t), reason)
		return nil, docstore.Unavailable("query", coll, ctx.Err())
	}
}

// resolve applies the fallback policy to a query outcome.
func resolve(t registry.EntityType, docs []docstore.Document, err error) Result {
	if err == nil && len(docs) > 0 {
		return Result{EntityType: t, Items: normalize(t, docs), Source: SourceLive}
	}
	if registry.AllowsFallback(t) && fallback.Has(t) {
		return Result{EntityType: t, Items: normalize(t, fallback.For(t)), Source: SourceFallback, Err: err}
	}
	return Result{EntityType: t, Items: []docstore.Document{}, Source: SourceEmpty, Err: err}
}

// normalize renders date fields as text and guarantees every list field of
// t is a non-nil []any.
func normalize(t registry.EntityType, docs []docstore.Document) []docstore.Document {
	lists := registry.ListFields(t)
	for _, d := range docs {
		docstore.NormalizeDates(d)
		for _, f := range lists {
			d[f] = asList(d[f])
		}
	}
	return docs
}

// normalizePartial is normalize for a document holding only some fields:
// list fields are converted only when present.
func normalizePartial(t registry.EntityType, d docstore.Document) {
	docstore.NormalizeDates(d)
	for _, f := range registry.ListFields(t) {
		if v, ok := d[f]; ok {
			d[f] = asList(v)
		}
	}
}

func asList(v any) []any {
	switch l := v.(type) {
	case []any:
		if l == nil {
			return []any{}
		}
		return l
	case []string:
		out := make([]any, len(l))
		for i, s := range l {
			out[i] = s
		}
		return out
	case nil:
		return []any{}
	}
	return []any{v}
}

