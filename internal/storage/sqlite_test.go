package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenSQLite("file:" + filepath.Join(t.TempDir(), "test.db") + "?_fk=1")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, InitSchema(db))
	return NewStore(db)
}

func TestSaveAndRecentComparisons(t *testing.T) {
	s := openTestStore(t)

	recs := []Comparison{
		{ID: "a", ChatID: 1, Symbol1: "AAPL", Symbol2: "MSFT", Years: 5, TS: 100},
		{ID: "b", ChatID: 1, Symbol1: "SPY", Symbol2: "QQQ", Years: 3, TS: 200},
		{ID: "c", ChatID: 2, Symbol1: "KO", Symbol2: "PEP", Years: 1, TS: 300},
	}
	for _, r := range recs {
		require.NoError(t, s.SaveComparison(r))
	}

	got, err := s.RecentComparisons(1, 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	// newest first
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "QQQ", got[0].Symbol2)
	assert.Equal(t, "a", got[1].ID)

	got, err = s.RecentComparisons(1, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestRecentComparisons_EmptyChat(t *testing.T) {
	s := openTestStore(t)
	got, err := s.RecentComparisons(99, 5)
	require.NoError(t, err)
	assert.Empty(t, got)
}
