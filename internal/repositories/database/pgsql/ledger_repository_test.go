package pgsql

import (
	"errors"
	"fmt"
	"testing"

	"github.com/dianadimla/walo_backend/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsWriteConflict(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{
			name: "serialization failure",
			err:  &pgconn.PgError{Code: "40001"},
			want: true,
		},
		{
			name: "deadlock detected",
			err:  &pgconn.PgError{Code: "40P01"},
			want: true,
		},
		{
			name: "unique violation is not a conflict",
			err:  &pgconn.PgError{Code: "23505"},
			want: false,
		},
		{
			name: "plain error",
			err:  errors.New("connection reset"),
			want: false,
		},
		{
			name: "nil error",
			err:  nil,
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isWriteConflict(tt.err))
		})
	}
}

// The commit path wraps store failures in apperrors.ErrStoreUnavailable while
// keeping the pg error in the chain. The retry decision must still see the
// serialization code through that wrapping.
func TestIsWriteConflict_SeesThroughStoreUnavailableWrap(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "40001", Message: "could not serialize access due to concurrent update"}
	wrapped := fmt.Errorf("%w: failed to commit atomic unit: %w", apperrors.ErrStoreUnavailable, pgErr)

	assert.True(t, isWriteConflict(wrapped))
	assert.True(t, errors.Is(wrapped, apperrors.ErrStoreUnavailable))
}

func TestIsWriteConflict_IgnoresWrappedNonConflictCodes(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "57P01", Message: "terminating connection due to administrator command"}
	wrapped := fmt.Errorf("%w: failed to commit atomic unit: %w", apperrors.ErrStoreUnavailable, pgErr)

	assert.False(t, isWriteConflict(wrapped))
	assert.True(t, errors.Is(wrapped, apperrors.ErrStoreUnavailable))
}
