package kv

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func TestSetAndGet(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "auth_token", []byte("t1")))

	v, err := r.Get(ctx, "auth_token")
	require.NoError(t, err)
	require.Equal(t, []byte("t1"), v)
}

func TestGet_MissingKeyIsNilNil(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	v, err := r.Get(context.Background(), "absent")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSet_Upserts(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "user_role", []byte("SENDER")))
	require.NoError(t, r.Set(ctx, "user_role", []byte("TRANSPORTER")))

	v, err := r.Get(ctx, "user_role")
	require.NoError(t, err)
	require.Equal(t, []byte("TRANSPORTER"), v)
}

func TestDelete_Idempotent(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "x", []byte{1}))
	require.NoError(t, r.Delete(ctx, "x"))
	require.NoError(t, r.Delete(ctx, "x"))

	v, err := r.Get(ctx, "x")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestDeletePrefix(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "user_profile_7", []byte("{}")))
	require.NoError(t, r.Set(ctx, "user_profile_42", []byte("{}")))
	require.NoError(t, r.Set(ctx, "userXprofile_1", []byte("{}")))
	require.NoError(t, r.Set(ctx, "auth_token", []byte("t")))

	require.NoError(t, r.DeletePrefix(ctx, "user_profile_"))

	for key, want := range map[string]bool{
		"user_profile_7":  false,
		"user_profile_42": false,
		"auth_token":      true,
		"userXprofile_1":  true, // underscore is not a wildcard
	} {
		v, err := r.Get(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, want, v != nil, key)
	}
}

func TestInTx_CommitAndRollback(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	err := r.InTx(ctx, func(tx Repository) error {
		require.NoError(t, tx.Set(ctx, "a", []byte{1}))
		return tx.Set(ctx, "b", []byte{2})
	})
	require.NoError(t, err)

	err = r.InTx(ctx, func(tx Repository) error {
		require.NoError(t, tx.Set(ctx, "c", []byte{3}))
		return errors.New("abort")
	})
	require.Error(t, err)

	v, err := r.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, []byte{2}, v)
	v, err = r.Get(ctx, "c")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestInTx_Nested(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	err := r.InTx(ctx, func(tx Repository) error {
		return tx.InTx(ctx, func(inner Repository) error {
			return inner.Set(ctx, "k", []byte("v"))
		})
	})
	require.NoError(t, err)

	v, err := r.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), v)
}

func TestErrorsWrapped_ClosedDB(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()
	require.NoError(t, db.Close())

	_, err := r.Get(ctx, "k")
	require.ErrorContains(t, err, "failed to get kv[k]")

	require.ErrorContains(t, r.Set(ctx, "k", nil), "failed to set kv[k]")
	require.ErrorContains(t, r.Delete(ctx, "k"), "failed to delete kv[k]")
	require.ErrorContains(t, r.DeletePrefix(ctx, "p"), `failed to delete kv prefix "p"`)
}

func TestDeletePrefix_EscapesWildcards(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM kv WHERE key LIKE`).
		WithArgs(`user\_profile\_%`).
		WillReturnResult(sqlmock.NewResult(0, 2))

	r := NewSQLiteRepository(db)
	require.NoError(t, r.DeletePrefix(context.Background(), "user_profile_"))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInTx_RollsBackOnWriteFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO kv`).WithArgs("auth_token", []byte("t1")).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`INSERT INTO kv`).WithArgs("user_role", []byte("SENDER")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	r := NewSQLiteRepository(db)
	ctx := context.Background()
	err = r.InTx(ctx, func(tx Repository) error {
		if err := tx.Set(ctx, "auth_token", []byte("t1")); err != nil {
			return err
		}
		return tx.Set(ctx, "user_role", []byte("SENDER"))
	})
	require.ErrorContains(t, err, "disk full")
	require.NoError(t, mock.ExpectationsWereMet())
}
