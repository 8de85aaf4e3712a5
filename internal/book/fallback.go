package book

import (
	"context"
	"fmt"
	"log"

	"github.com/VictoriaMetrics/metrics"
)

// FallbackStore serves every call from primary and repeats it against
// fallback when primary reports itself unavailable. Nothing is copied
// between the two stores.
type FallbackStore struct {
	primary  Store
	fallback Store
}

func NewFallbackStore(primary, fallback Store) *FallbackStore {
	return &FallbackStore{primary: primary, fallback: fallback}
}

func withFallback[T any](s *FallbackStore, op string, call func(Store) (T, error)) (T, error) {
	out, err := call(s.primary)
	if err == nil || !IsUnavailable(err) {
		return out, err
	}

	log.Printf("store fallback op=%s error=%v", op, err)
	metrics.GetOrCreateCounter(fmt.Sprintf(`book_store_fallbacks_total{op=%q}`, op)).Inc()
	return call(s.fallback)
}

func (s *FallbackStore) List(ctx context.Context) ([]Book, error) {
	return withFallback(s, "list", func(st Store) ([]Book, error) {
		return st.List(ctx)
	})
}

func (s *FallbackStore) Get(ctx context.Context, id int64) (Book, error) {
	return withFallback(s, "get", func(st Store) (Book, error) {
		return st.Get(ctx, id)
	})
}

func (s *FallbackStore) Create(ctx context.Context, in Input) (Book, error) {
	return withFallback(s, "create", func(st Store) (Book, error) {
		return st.Create(ctx, in)
	})
}

func (s *FallbackStore) Update(ctx context.Context, id int64, in Input) (Book, error) {
	return withFallback(s, "update", func(st Store) (Book, error) {
		return st.Update(ctx, id, in)
	})
}

func (s *FallbackStore) Delete(ctx context.Context, id int64) error {
	_, err := withFallback(s, "delete", func(st Store) (struct{}, error) {
		return struct{}{}, st.Delete(ctx, id)
	})
	return err
}
