package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "reel.db"), DefaultOpenOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	return database
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever", DefaultOpenOptions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestSqliteDSN(t *testing.T) {
	assert.Equal(t,
		"file:/tmp/reel.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)",
		sqliteDSN("/tmp/reel.db", 5000))
	assert.Equal(t, "file:x.db?mode=memory", sqliteDSN("file:x.db?mode=memory", 5000))
	assert.Equal(t, ":memory:", sqliteDSN(":memory:", 5000))
}

func TestMigrateUp_FreshDB(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	var versions []int
	require.NoError(t, database.Conn().SelectContext(ctx, &versions, "SELECT version FROM schema_migrations ORDER BY version"))

	migrations, err := loadMigrations(DriverSQLite)
	require.NoError(t, err)

	require.Len(t, versions, len(migrations))
	for i, m := range migrations {
		assert.Equal(t, m.Version, versions[i])
	}

	_, err = database.Conn().ExecContext(ctx, "SELECT 1 FROM reviews LIMIT 0")
	require.NoError(t, err, "reviews table should exist")

	_, err = database.Conn().ExecContext(ctx, "SELECT 1 FROM movies LIMIT 0")
	require.NoError(t, err, "movies table should exist")
}

func TestMigrateUp_Idempotent(t *testing.T) {
	database := openTestDB(t)

	err := migrateUp(context.Background(), database.Conn(), DriverSQLite)
	assert.NoError(t, err, "second migrateUp should be idempotent")
}

func TestMigrateDown(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()
	conn := database.Conn()

	_, err := conn.ExecContext(ctx, `
		INSERT INTO reviews (original_title, description, vote_average, created_at, updated_at)
		VALUES ('Great', 'Loved it', 9, 1, 1)
	`)
	require.NoError(t, err)

	// Revert the last migration (movies).
	require.NoError(t, MigrateDown(ctx, database, 1))

	_, err = conn.ExecContext(ctx, "SELECT 1 FROM movies LIMIT 0")
	require.Error(t, err, "movies should not exist after down migration")

	var count int
	require.NoError(t, conn.GetContext(ctx, &count, "SELECT COUNT(*) FROM reviews"))
	assert.Equal(t, 1, count, "review row should be preserved")

	// Re-applying brings the table back.
	require.NoError(t, migrateUp(ctx, conn, DriverSQLite))
	_, err = conn.ExecContext(ctx, "SELECT 1 FROM movies LIMIT 0")
	require.NoError(t, err)
}

func TestMigrateDown_InvalidN(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	require.Error(t, MigrateDown(ctx, database, 0), "n=0 should fail")
	require.Error(t, MigrateDown(ctx, database, -1), "n=-1 should fail")
}

func TestMigrateDown_TooMany(t *testing.T) {
	database := openTestDB(t)

	migrations, err := loadMigrations(DriverSQLite)
	require.NoError(t, err)

	err = MigrateDown(context.Background(), database, len(migrations)+1)
	assert.Error(t, err, "requesting more down migrations than applied should fail")
}

func TestLoadMigrations_Valid(t *testing.T) {
	for _, driver := range []string{DriverSQLite, DriverPostgres} {
		t.Run(driver, func(t *testing.T) {
			migrations, err := loadMigrations(driver)
			require.NoError(t, err)
			require.NotEmpty(t, migrations)

			for i := 1; i < len(migrations); i++ {
				assert.Greater(t, migrations[i].Version, migrations[i-1].Version,
					"migrations should be in ascending version order")
			}

			for _, m := range migrations {
				assert.NotEmpty(t, m.UpSQL, "migration %d up SQL should not be empty", m.Version)
				assert.NotEmpty(t, m.DownSQL, "migration %d down SQL should not be empty", m.Version)
				assert.NotEmpty(t, m.Name, "migration %d name should not be empty", m.Version)
			}
		})
	}
}

func TestLoadMigrations_DriversInStep(t *testing.T) {
	lite, err := loadMigrations(DriverSQLite)
	require.NoError(t, err)
	pg, err := loadMigrations(DriverPostgres)
	require.NoError(t, err)

	require.Len(t, pg, len(lite))
	for i := range lite {
		assert.Equal(t, lite[i].Version, pg[i].Version)
		assert.Equal(t, lite[i].Name, pg[i].Name)
	}
}

func TestParseFilename(t *testing.T) {
	tests := []struct {
		filename      string
		wantVersion   int
		wantName      string
		wantDirection string
		wantErr       bool
	}{
		{"0001_initial.up.sql", 1, "initial", "up", false},
		{"0001_initial.down.sql", 1, "initial", "down", false},
		{"0002_create_movies.up.sql", 2, "create_movies", "up", false},
		{"0100_big_version.down.sql", 100, "big_version", "down", false},
		{"bad.sql", 0, "", "", true},
		{"0001_initial.sql", 0, "", "", true},
		{"0000_zero.up.sql", 0, "", "", true},
		{"-1_negative.up.sql", 0, "", "", true},
		{"abc_notnumber.up.sql", 0, "", "", true},
		{"0001_.up.sql", 0, "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			version, name, direction, err := parseFilename(tt.filename)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantVersion, version)
			assert.Equal(t, tt.wantName, name)
			assert.Equal(t, tt.wantDirection, direction)
		})
	}
}
