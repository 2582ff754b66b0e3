package rescache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oocheck/oocheck/internal/checkerr"
	"github.com/oocheck/oocheck/internal/srcpos"
)

func openTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(":memory:")
	require.NoError(t, err)
	return c
}

func TestLookupMissOnUnknownDigest(t *testing.T) {
	c := openTestCache(t)
	_, hit, err := c.Lookup("unknown")
	require.NoError(t, err)
	require.False(t, hit)
}

func TestStoreThenLookupRoundTripsErrors(t *testing.T) {
	c := openTestCache(t)
	errs := checkerr.List{
		checkerr.New(checkerr.Undefined, srcpos.New(1, 1, 1, 5), "unbound identifier mystery"),
	}
	require.NoError(t, c.Store("digest-1", "run-1", errs))

	got, hit, err := c.Lookup("digest-1")
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 1)
	require.Equal(t, checkerr.Undefined, got[0].Kind)
	require.Equal(t, "unbound identifier mystery", got[0].Message)
	require.Equal(t, srcpos.New(1, 1, 1, 5), got[0].Pos)
}

func TestStoreTwiceForSameDigestUpsertsRatherThanDuplicates(t *testing.T) {
	c := openTestCache(t)
	require.NoError(t, c.Store("digest-1", "run-1", checkerr.List{
		checkerr.New(checkerr.Undefined, srcpos.New(1, 1, 1, 5), "first"),
	}))
	require.NoError(t, c.Store("digest-1", "run-2", checkerr.List{
		checkerr.New(checkerr.TypeMismatch, srcpos.New(2, 1, 2, 5), "second"),
	}))

	got, hit, err := c.Lookup("digest-1")
	require.NoError(t, err)
	require.True(t, hit)
	require.Len(t, got, 1)
	require.Equal(t, "second", got[0].Message)
	require.Equal(t, checkerr.TypeMismatch, got[0].Kind)
}

func TestLookupWithNoErrorsReturnsEmptySlice(t *testing.T) {
	c := openTestCache(t)
	require.NoError(t, c.Store("digest-clean", "run-1", nil))

	got, hit, err := c.Lookup("digest-clean")
	require.NoError(t, err)
	require.True(t, hit)
	require.Empty(t, got)
}
