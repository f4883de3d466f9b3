package database

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
)

func TestConfigConnectionStrings(t *testing.T) {
	cfg := Config{Host: "db", User: "bot", Password: "p@ss word", Name: "names"}
	assert.True(t, cfg.Enabled())
	assert.Equal(t, "user=bot password='p@ss word' host=db port=5432 dbname=names sslmode=disable", cfg.DSN())
	assert.Equal(t, "postgres://bot:p%40ss%20word@db:5432/names?sslmode=disable", cfg.URL())

	assert.False(t, Config{Host: "  "}.Enabled())
}

func TestMigrationVersions(t *testing.T) {
	files := []string{"000001_create_generation_events.up.sql", "000002_add_index.up.sql", "000003_x.up.sql"}
	assert.Equal(t, uint64(2), parseVersion(files[1]))
	assert.Equal(t, []string{"000002_add_index.up.sql", "000003_x.up.sql"}, selectApplied(files, 1, 3))
	assert.Empty(t, selectApplied(files, 3, 3))
}

func TestListMigrationFiles(t *testing.T) {
	src := fstest.MapFS{
		"000002_b.up.sql":   {Data: []byte("select 1;")},
		"000001_a.up.sql":   {Data: []byte("select 1;")},
		"000001_a.down.sql": {Data: []byte("select 1;")},
		"README.md":         {Data: []byte("x")},
	}
	assert.Equal(t, []string{"000001_a.up.sql", "000002_b.up.sql"}, listMigrationFiles(src))
}
