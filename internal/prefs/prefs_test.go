package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	t.Parallel()

	s := Store{Dir: filepath.Join(t.TempDir(), "swipedeck")}
	p, err := s.Load()
	require.NoError(t, err)
	require.Empty(t, p.LastDeck)

	require.NoError(t, s.Save(Prefs{LastDeck: "films"}))
	p, err = s.Load()
	require.NoError(t, err)
	require.Equal(t, "films", p.LastDeck)

	_, err = os.Stat(s.path() + ".tmp")
	require.True(t, os.IsNotExist(err))
}

func TestStoreCorruptFile(t *testing.T) {
	t.Parallel()

	s := Store{Dir: t.TempDir()}
	require.NoError(t, os.WriteFile(s.path(), []byte("{"), 0o600))
	_, err := s.Load()
	require.Error(t, err)
}
