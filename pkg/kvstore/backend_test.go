package kvstore

import (
	"context"
	"path/filepath"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func exerciseBackend(t *testing.T, backend Backend) {
	t.Helper()
	ctx := context.Background()

	_, found, err := backend.Get(ctx, "lms_users")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, backend.Set(ctx, "lms_users", `[{"id":"a"}]`))
	require.NoError(t, backend.Set(ctx, "lms_users", `[{"id":"b"}]`))
	value, found, err := backend.Get(ctx, "lms_users")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, `[{"id":"b"}]`, value)

	require.NoError(t, backend.Delete(ctx, "lms_users"))
	require.NoError(t, backend.Delete(ctx, "lms_users"))
	_, found, err = backend.Get(ctx, "lms_users")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryBackend(t *testing.T) {
	exerciseBackend(t, NewMemoryBackend())
}

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()
	backend, err := NewFileBackend(dir)
	require.NoError(t, err)
	exerciseBackend(t, backend)

	assert.Equal(t, filepath.Join(dir, "lms_session%3Aabc.json"), backend.Path("lms_session:abc"))
}

func TestSQLiteBackend(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	backend, err := NewSQLiteBackend(db, "kv_entries")
	require.NoError(t, err)
	exerciseBackend(t, backend)
}

func TestSQLiteBackendRejectsBadTableName(t *testing.T) {
	_, err := NewSQLiteBackend(nil, "kv; DROP TABLE users")
	assert.Error(t, err)
}

func TestRedisBackendWithoutClient(t *testing.T) {
	backend := NewRedisBackend(nil, "lms:")
	_, _, err := backend.Get(context.Background(), "lms_users")
	assert.Error(t, err)
	assert.Error(t, backend.Set(context.Background(), "lms_users", "[]"))
}

func newPostgresBackendMock(t *testing.T) (*PostgresBackend, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	backend, err := NewPostgresBackend(sqlx.NewDb(db, "sqlmock"), "kv_entries")
	require.NoError(t, err)
	return backend, mock, func() { db.Close() }
}

func TestPostgresBackendGet(t *testing.T) {
	backend, mock, cleanup := newPostgresBackendMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_entries WHERE key = $1")).
		WithArgs("lms_courses").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow(`[]`))

	value, found, err := backend.Get(context.Background(), "lms_courses")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[]", value)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBackendGetMissing(t *testing.T) {
	backend, mock, cleanup := newPostgresBackendMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_entries")).
		WithArgs("lms_courses").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, found, err := backend.Get(context.Background(), "lms_courses")
	require.NoError(t, err)
	assert.False(t, found)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBackendSetAndDelete(t *testing.T) {
	backend, mock, cleanup := newPostgresBackendMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_entries (key, value, updated_at)")).
		WithArgs("lms_users", "[]", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_entries WHERE key = $1")).
		WithArgs("lms_users").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, backend.Set(context.Background(), "lms_users", "[]"))
	require.NoError(t, backend.Delete(context.Background(), "lms_users"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBackendEnsureSchema(t *testing.T) {
	backend, mock, cleanup := newPostgresBackendMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS kv_entries")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, backend.EnsureSchema(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}
