package migration

import (
	"context"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_OrdersAndFilters(t *testing.T) {
	fsys := fstest.MapFS{
		"V10__later.sql":   {Data: []byte("SELECT 10;")},
		"V2__second.sql":   {Data: []byte("SELECT 2;")},
		"V1__first.sql":    {Data: []byte("  SELECT 1;\n")},
		"README.md":        {Data: []byte("ignored")},
		"V3_bad_name.sql":  {Data: []byte("SELECT 3;")},
		"nested/V4__x.sql": {Data: []byte("SELECT 4;")},
	}

	migs, err := Runner{FS: fsys}.Migrations()
	require.NoError(t, err)
	require.Len(t, migs, 3)

	assert.Equal(t, []int64{1, 2, 10}, []int64{migs[0].Version, migs[1].Version, migs[2].Version})
	assert.Equal(t, "first", migs[0].Name)
	assert.Equal(t, "SELECT 1;", migs[0].SQL)
	assert.Len(t, migs[0].Checksum, 64)
}

func TestLoadMigrations_Errors(t *testing.T) {
	_, err := loadMigrations(fstest.MapFS{
		"V1__a.sql": {Data: []byte("SELECT 1;")},
		"V1__b.sql": {Data: []byte("SELECT 2;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")

	_, err = loadMigrations(fstest.MapFS{"V1__empty.sql": {Data: []byte("  \n")}})
	assert.ErrorContains(t, err, "empty migration file")
}

func TestLoadMigrations_ChecksumIgnoresSurroundingSpace(t *testing.T) {
	a, err := loadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("SELECT 1;")}})
	require.NoError(t, err)
	b, err := loadMigrations(fstest.MapFS{"V1__a.sql": {Data: []byte("\nSELECT 1;\n\n")}})
	require.NoError(t, err)
	assert.Equal(t, a[0].Checksum, b[0].Checksum)
}

func TestEmbeddedMigrations(t *testing.T) {
	migs, err := Runner{}.Migrations()
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(migs), 2)

	var all strings.Builder
	for _, m := range migs {
		all.WriteString(m.SQL)
	}
	for _, table := range []string{"users", "profiles", "dosha_assessments", "wellness_plans", "lifestyle_logs", "wellness_insights"} {
		assert.Contains(t, all.String(), "CREATE TABLE IF NOT EXISTS "+table+" (")
	}
}

func TestRun_NilDB(t *testing.T) {
	assert.Error(t, Runner{}.Run(context.Background(), nil))
}
