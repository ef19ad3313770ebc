package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMigrations_OrdenYChecksum(t *testing.T) {
	files := fstest.MapFS{
		"V2__notes.sql": {Data: []byte("CREATE TABLE b (id int);\n")},
		"V1__init.sql":  {Data: []byte("CREATE TABLE a (id int);")},
		"README.md":     {Data: []byte("ignorado")},
		"V3_malo.sql":   {Data: []byte("SELECT 1;")},
	}
	migs, err := LoadMigrations(files)
	require.NoError(t, err)
	require.Len(t, migs, 2)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Equal(t, "init", migs[0].Name)
	assert.Equal(t, int64(2), migs[1].Version)
	assert.Len(t, migs[0].Checksum, 64)

	// Espacios al final no cambian el checksum.
	again, err := LoadMigrations(fstest.MapFS{"V1__init.sql": {Data: []byte("CREATE TABLE a (id int);\n\n")}})
	require.NoError(t, err)
	assert.Equal(t, migs[0].Checksum, again[0].Checksum)
}

func TestLoadMigrations_Errores(t *testing.T) {
	_, err := LoadMigrations(fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	})
	assert.ErrorContains(t, err, "duplicate migration version")

	_, err = LoadMigrations(fstest.MapFS{"V1__vacia.sql": {Data: []byte("  \n")}})
	assert.ErrorContains(t, err, "empty migration file")
}

func TestMigracionesEmbebidas(t *testing.T) {
	m := NewMigrator(nil)
	migs, err := LoadMigrations(m.files)
	require.NoError(t, err)
	require.NotEmpty(t, migs)
	assert.Equal(t, int64(1), migs[0].Version)
	assert.Contains(t, migs[0].SQL, "CREATE TABLE IF NOT EXISTS project_collaborators")
	assert.Contains(t, migs[0].SQL, "reject_owner_collaborator")
}
