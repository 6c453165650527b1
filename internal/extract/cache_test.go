package extract

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sora-estate/maisoku/internal/listing"
)

// countingExtractor records how many times it is called and returns a fixed
// result or error.
type countingExtractor struct {
	calls  atomic.Int32
	record *listing.Record
	err    error
}

func (c *countingExtractor) Extract(ctx context.Context, imageData []byte, mimeType string, lang listing.Language) (*listing.Record, error) {
	c.calls.Add(1)
	if c.err != nil {
		return nil, c.err
	}
	return c.record, nil
}

func testRecord() *listing.Record {
	rec := &listing.Record{
		PropertyName: "Sora Heights",
		Price:        "¥45,000,000",
		Location:     "Osaka",
	}
	rec.Normalize()
	return rec
}

func TestCachedExtractorHit(t *testing.T) {
	inner := &countingExtractor{record: testRecord()}
	cached := NewCachedExtractor(inner)
	img := []byte("fixture-a")

	first, err := cached.Extract(t.Context(), img, "image/jpeg", listing.LanguageChinese)
	require.NoError(t, err)

	second, err := cached.Extract(t.Context(), img, "image/jpeg", listing.LanguageChinese)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), inner.calls.Load(), "second identical request must not hit the provider")
	assert.Equal(t, 1, cached.Len())
}

func TestCachedExtractorKeyedByLanguage(t *testing.T) {
	inner := &countingExtractor{record: testRecord()}
	cached := NewCachedExtractor(inner)
	img := []byte("fixture-a")

	_, err := cached.Extract(t.Context(), img, "image/jpeg", listing.LanguageChinese)
	require.NoError(t, err)
	_, err = cached.Extract(t.Context(), img, "image/jpeg", listing.LanguageEnglish)
	require.NoError(t, err)

	assert.Equal(t, int32(2), inner.calls.Load(), "each language is a distinct cache key")
	assert.Equal(t, 2, cached.Len())
}

func TestCachedExtractorKeyedByContent(t *testing.T) {
	inner := &countingExtractor{record: testRecord()}
	cached := NewCachedExtractor(inner)

	_, err := cached.Extract(t.Context(), []byte("flyer-one"), "image/jpeg", listing.LanguageChinese)
	require.NoError(t, err)
	_, err = cached.Extract(t.Context(), []byte("flyer-two"), "image/jpeg", listing.LanguageChinese)
	require.NoError(t, err)

	assert.Equal(t, int32(2), inner.calls.Load())
}

// gatedExtractor blocks inside Extract until released so concurrent callers
// pile up on the same in-flight call.
type gatedExtractor struct {
	calls   atomic.Int32
	record  *listing.Record
	entered chan struct{}
	release chan struct{}
}

func (g *gatedExtractor) Extract(ctx context.Context, imageData []byte, mimeType string, lang listing.Language) (*listing.Record, error) {
	g.calls.Add(1)
	close(g.entered)
	<-g.release
	return g.record, nil
}

func TestCachedExtractorCollapsesConcurrentMisses(t *testing.T) {
	inner := &gatedExtractor{
		record:  testRecord(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	cached := NewCachedExtractor(inner)
	img := []byte("fixture-a")

	const callers = 8
	var wg sync.WaitGroup
	records := make([]*listing.Record, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records[i], errs[i] = cached.Extract(context.Background(), img, "image/jpeg", listing.LanguageChinese)
		}()
	}

	// Release only after the first caller is inside the provider and the
	// rest have had time to join the same flight.
	<-inner.entered
	time.Sleep(50 * time.Millisecond)
	close(inner.release)
	wg.Wait()

	assert.Equal(t, int32(1), inner.calls.Load(), "concurrent identical misses must collapse into one provider call")
	for i := range callers {
		require.NoError(t, errs[i])
		assert.Equal(t, inner.record, records[i])
	}
	assert.Equal(t, 1, cached.Len())
}

func TestCachedExtractorDoesNotCacheFailures(t *testing.T) {
	inner := &countingExtractor{err: newError(KindEmptyResponse, "blank", nil)}
	cached := NewCachedExtractor(inner)
	img := []byte("fixture-a")

	_, err := cached.Extract(t.Context(), img, "image/jpeg", listing.LanguageChinese)
	assert.Equal(t, KindEmptyResponse, KindOf(err))
	assert.Equal(t, 0, cached.Len(), "failed calls must not be cached")

	_, err = cached.Extract(t.Context(), img, "image/jpeg", listing.LanguageChinese)
	assert.Error(t, err)
	assert.Equal(t, int32(2), inner.calls.Load(), "errors are retried, not served from cache")
}
