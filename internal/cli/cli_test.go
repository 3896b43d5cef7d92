package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jask/swipedeck/internal/database/repository"
)

func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body := fmt.Sprintf("[database]\npath = %q\n\n[log]\ndir = %q\nlevel = \"debug\"\n",
		filepath.Join(dir, "data", "swipedeck.db"), filepath.Join(dir, "logs"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func run(t *testing.T, cfgPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

const snacksYAML = `name: snacks
title: Snack Attack
cards:
  - name: Crisps
    description: salty
  - name: Mochi
    description: sweet
`

func TestDecksListsSeededDeck(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t)
	out, err := run(t, cfg, "decks")
	require.NoError(t, err)
	require.Contains(t, out, "NAME")
	require.Contains(t, out, "destinations")
	require.Contains(t, out, "Swipe Destinations")
	require.Contains(t, out, "4")
}

func TestImportRemoveAndSeed(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t)
	file := filepath.Join(t.TempDir(), "snacks.yaml")
	require.NoError(t, os.WriteFile(file, []byte(snacksYAML), 0o600))

	out, err := run(t, cfg, "import", file)
	require.NoError(t, err)
	require.Contains(t, out, `imported 2 cards into "snacks"`)

	out, err = run(t, cfg, "decks")
	require.NoError(t, err)
	require.Contains(t, out, "Snack Attack")

	out, err = run(t, cfg, "rm", "destinations", "--vacuum")
	require.NoError(t, err)
	require.Contains(t, out, `deleted "destinations"`)

	// another deck still exists, so the default is not seeded back
	out, err = run(t, cfg, "decks")
	require.NoError(t, err)
	require.NotContains(t, out, "destinations")

	_, err = run(t, cfg, "rm", "destinations")
	require.ErrorIs(t, err, repository.ErrNotFound)

	out, err = run(t, cfg, "seed")
	require.NoError(t, err)
	require.Contains(t, out, "restored")
	out, err = run(t, cfg, "decks")
	require.NoError(t, err)
	require.Contains(t, out, "destinations")
}

func TestImportErrors(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t)
	_, err := run(t, cfg, "import", filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("name: bad\ncards: []\n"), 0o600))
	_, err = run(t, cfg, "import", bad)
	require.Error(t, err)

	_, err = run(t, cfg, "import")
	require.Error(t, err)
}

func TestInvalidConfigFails(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[log]\nlevel = \"loud\"\n"), 0o600))
	_, err := run(t, path, "decks")
	require.ErrorContains(t, err, "invalid config")
}

func TestChooseDeck(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t)
	ctx := context.Background()
	e, err := openEnv(ctx, cfg, false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = e.close() })

	_, err = e.ingest.ImportYAML(ctx, bytes.NewBufferString(snacksYAML))
	require.NoError(t, err)

	d, err := chooseDeck(ctx, e.decks, "snaks", "destinations", "destinations")
	require.NoError(t, err)
	require.Equal(t, "snacks", d.Name)

	d, err = chooseDeck(ctx, e.decks, "", "snacks", "destinations")
	require.NoError(t, err)
	require.Equal(t, "snacks", d.Name)

	d, err = chooseDeck(ctx, e.decks, "", "a deck that was deleted", "destinations")
	require.NoError(t, err)
	require.Equal(t, "destinations", d.Name)

	_, err = chooseDeck(ctx, e.decks, "spreadsheets", "", "destinations")
	require.Error(t, err)

	for _, name := range []string{"deck1", "deck2"} {
		_, err := e.ingest.ImportYAML(ctx, bytes.NewBufferString("name: "+name+"\ncards:\n  - name: A\n"))
		require.NoError(t, err)
	}
	require.NoError(t, e.maintenance.DeleteDeck(ctx, "deck1"))
	d, err = chooseDeck(ctx, e.decks, "", "deck1", "destinations")
	require.NoError(t, err)
	require.Equal(t, "destinations", d.Name)
}

func TestSeedSampleDeck(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t)
	out, err := run(t, cfg, "seed", "--sample", "12", "--sample-seed", "7")
	require.NoError(t, err)
	require.Contains(t, out, `wrote 12 cards to "sample"`)

	out, err = run(t, cfg, "decks")
	require.NoError(t, err)
	require.Contains(t, out, "Sample Destinations")
	require.Contains(t, out, "12")
}

func TestPlayHeadless(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t)
	out, err := run(t, cfg, "play", "like", "nope", "right")
	require.NoError(t, err)
	require.Contains(t, out, "Swipe Destinations")
	require.Contains(t, out, "LIKE  Rome (Italy)")
	require.Contains(t, out, "NOPE  New York (USA)")
	require.Contains(t, out, "LIKE  Paris (France)")
	require.Contains(t, out, "1 left")
}

func TestPlayPastEmptyAndReset(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t)
	out, err := run(t, cfg, "play", "left", "left", "left", "left", "left", "reset", "left")
	require.NoError(t, err)
	require.Contains(t, out, "left: no cards left")
	require.Contains(t, out, "reset")
	require.Contains(t, out, "3 left")

	_, err = run(t, cfg, "play", "up")
	require.ErrorContains(t, err, `unknown move "up"`)
}

func TestAddCardGoesOnTop(t *testing.T) {
	t.Parallel()

	cfg := writeConfig(t)
	out, err := run(t, cfg, "add", "destinations", "Lisbon", "Portugal", "--image", "https://example.com/lisbon.jpg")
	require.NoError(t, err)
	require.Contains(t, out, `added "Lisbon" to "destinations"`)

	out, err = run(t, cfg, "play", "like")
	require.NoError(t, err)
	require.Contains(t, out, "LIKE  Lisbon (Portugal)")
	require.Contains(t, out, "4 left")

	_, err = run(t, cfg, "add", "destinations", "Nowhere", "--image", "not a url")
	require.ErrorContains(t, err, "invalid card")

	_, err = run(t, cfg, "add", "nope", "Lisbon")
	require.ErrorIs(t, err, repository.ErrNotFound)
}
