package retention

import (
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moyu-x/vibecleaner/internal"
	"github.com/moyu-x/vibecleaner/pkg/scanner"
	"github.com/moyu-x/vibecleaner/pkg/session"
)

var now = time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return now }

func writeAged(t *testing.T, fs afero.Fs, path string, size int, age time.Duration) {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, path, make([]byte, size), 0644))
	mtime := now.Add(-age)
	require.NoError(t, fs.Chtimes(path, mtime, mtime))
}

func names(records []scanner.FileRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.RelPath
	}
	return out
}

const day = 24 * time.Hour

func TestSelect_AgeAndSize(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAged(t, fs, "/dl/old-big.iso", 2*internal.BytesPerMB, 31*day)
	writeAged(t, fs, "/dl/recent-big.iso", 2*internal.BytesPerMB, 29*day)
	writeAged(t, fs, "/dl/old-small.txt", internal.BytesPerMB/2, 40*day)
	writeAged(t, fs, "/dl/nested/old.iso", internal.BytesPerMB, 60*day)

	s := session.New("/dl", session.WithFs(fs), session.WithClock(clock))
	selected, err := Select(s, Policy{Days: 30, MinSizeMB: 1})
	require.NoError(t, err)

	assert.Equal(t, []string{"nested/old.iso", "old-big.iso"}, names(selected))
}

func TestSelect_CutoffIsStrict(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAged(t, fs, "/dl/exact.txt", 10, 30*day)
	writeAged(t, fs, "/dl/older.txt", 10, 30*day+time.Second)

	s := session.New("/dl", session.WithFs(fs), session.WithClock(clock))
	selected, err := Select(s, DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, []string{"older.txt"}, names(selected))
}

func TestSelect_SkipsArchive(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAged(t, fs, "/dl/Archive/already.txt", 10, 90*day)
	writeAged(t, fs, "/dl/old.txt", 10, 90*day)

	s := session.New("/dl", session.WithFs(fs), session.WithClock(clock))
	selected, err := Select(s, DefaultPolicy())
	require.NoError(t, err)

	assert.Equal(t, []string{"old.txt"}, names(selected))
}

func TestSelect_InvalidPolicy(t *testing.T) {
	s := session.New("/dl", session.WithFs(afero.NewMemMapFs()))

	_, err := Select(s, Policy{Days: -1})
	assert.Error(t, err)
}

func TestSelect_MissingRoot(t *testing.T) {
	s := session.New("/missing", session.WithFs(afero.NewMemMapFs()))

	_, err := Select(s, DefaultPolicy())
	assert.ErrorIs(t, err, internal.ErrNotFound)
}

func TestArchive_MirrorsStructure(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAged(t, fs, "/dl/projects/2025/report.pdf", 100, 45*day)
	writeAged(t, fs, "/dl/fresh.txt", 100, day)

	s := session.New("/dl", session.WithFs(fs), session.WithClock(clock))
	archived, err := Archive(s, DefaultPolicy())
	require.NoError(t, err)
	require.Len(t, archived, 1)

	exists, _ := afero.Exists(fs, "/dl/Archive/projects/2025/report.pdf")
	assert.True(t, exists)
	exists, _ = afero.Exists(fs, "/dl/projects/2025/report.pdf")
	assert.False(t, exists)
	exists, _ = afero.Exists(fs, "/dl/fresh.txt")
	assert.True(t, exists)

	info, err := fs.Stat("/dl/Archive/projects/2025/report.pdf")
	require.NoError(t, err)
	assert.True(t, info.ModTime().Equal(now.Add(-45*day)))

	assert.Equal(t, 1, s.Stats.FilesMoved)
	assert.Equal(t, int64(100), s.Stats.BytesFreed)

	entries := s.Log.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, internal.OpArchive, entries[0].Operation)
	assert.Equal(t, "/dl/Archive/projects/2025/report.pdf", entries[0].Dest())
}

func TestArchive_UniqueDestination(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAged(t, fs, "/dl/Archive/a.txt", 1, day)
	writeAged(t, fs, "/dl/a.txt", 1, 40*day)

	s := session.New("/dl", session.WithFs(fs), session.WithClock(clock))
	_, err := Archive(s, DefaultPolicy())
	require.NoError(t, err)

	exists, _ := afero.Exists(fs, "/dl/Archive/a_1.txt")
	assert.True(t, exists)
}

func TestArchive_DryRun(t *testing.T) {
	fs := afero.NewMemMapFs()
	writeAged(t, fs, "/dl/sub/old.txt", 1, 40*day)

	s := session.New("/dl", session.WithFs(fs), session.WithClock(clock), session.WithDryRun(true))
	archived, err := Archive(s, DefaultPolicy())
	require.NoError(t, err)
	assert.Len(t, archived, 1)

	exists, _ := afero.Exists(fs, "/dl/sub/old.txt")
	assert.True(t, exists)
	dirExists, _ := afero.DirExists(fs, "/dl/Archive")
	assert.False(t, dirExists)
	assert.Equal(t, internal.RunStats{}, *s.Stats)

	entries := s.Log.Entries()
	require.Len(t, entries, 1)
	assert.True(t, entries[0].DryRun)
	assert.Equal(t, "/dl/Archive/sub/old.txt", entries[0].Dest())
}
