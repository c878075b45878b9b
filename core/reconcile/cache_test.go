package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"par-manager/core/catalog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingReader struct {
	calls    atomic.Int32
	products []catalog.ProductStock
	err      error
	delay    time.Duration
}

func (r *countingReader) ListActiveProducts(ctx context.Context) ([]catalog.ProductStock, error) {
	r.calls.Add(1)
	if r.delay > 0 {
		time.Sleep(r.delay)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.products, r.err
}

func TestCache_Disabled(t *testing.T) {
	reader := &countingReader{products: []catalog.ProductStock{product(1, "A", "A", "", "", 1)}}
	cache := NewCache(reader, 0)

	for i := 0; i < 3; i++ {
		_, err := cache.Products(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), reader.calls.Load())
}

func TestCache_HitAndInvalidate(t *testing.T) {
	reader := &countingReader{products: []catalog.ProductStock{product(1, "A", "A", "", "", 1)}}
	cache := NewCache(reader, time.Minute)
	ctx := context.Background()

	_, err := cache.Products(ctx)
	require.NoError(t, err)
	_, err = cache.Products(ctx)
	require.NoError(t, err)
	assert.Equal(t, int32(1), reader.calls.Load())

	cache.Invalidate()

	report, err := cache.Report(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.TotalLines)
	assert.Equal(t, int32(2), reader.calls.Load())
}

func TestCache_Expiry(t *testing.T) {
	reader := &countingReader{}
	cache := NewCache(reader, 10*time.Millisecond)
	ctx := context.Background()

	_, err := cache.Products(ctx)
	require.NoError(t, err)
	time.Sleep(25 * time.Millisecond)
	_, err = cache.Products(ctx)
	require.NoError(t, err)

	assert.Equal(t, int32(2), reader.calls.Load())
}

func TestCache_ErrorNotCached(t *testing.T) {
	reader := &countingReader{err: errors.New("db down")}
	cache := NewCache(reader, time.Minute)

	_, err := cache.Products(context.Background())
	assert.EqualError(t, err, "db down")

	reader.err = nil
	_, err = cache.Products(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int32(2), reader.calls.Load())
}

func TestCache_Stampede(t *testing.T) {
	reader := &countingReader{delay: 50 * time.Millisecond}
	cache := NewCache(reader, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.Products(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), reader.calls.Load())
}

func TestCache_SharedReadIgnoresCallerCancel(t *testing.T) {
	reader := &countingReader{products: []catalog.ProductStock{product(1, "A", "A", "", "", 1)}, delay: 50 * time.Millisecond}
	cache := NewCache(reader, time.Minute)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	products, err := cache.Products(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 1)

	first, cancelFirst := context.WithCancel(context.Background())
	cache.Invalidate()
	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = cache.Products(first)
	}()
	go func() {
		defer wg.Done()
		time.Sleep(10 * time.Millisecond)
		cancelFirst()
		_, errs[1] = cache.Products(context.Background())
	}()
	wg.Wait()

	assert.NoError(t, errs[0])
	assert.NoError(t, errs[1])
}
