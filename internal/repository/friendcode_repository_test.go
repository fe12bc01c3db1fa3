package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/peakplay/coaching-api/internal/models"
)

func TestFriendCodeRepositoryFindByCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewFriendCodeRepository(db)
	maxUses := 3
	rows := sqlmock.NewRows([]string{"id", "code", "uses", "max_uses", "expires_at", "active", "created_at", "updated_at"}).
		AddRow("fc-1", "FRIEND2026", 1, &maxUses, nil, true, time.Now(), time.Now())
	mock.ExpectQuery("SELECT id, code").
		WithArgs("FRIEND2026").
		WillReturnRows(rows)

	code, err := repo.FindByCode(context.Background(), "FRIEND2026")
	require.NoError(t, err)
	assert.Equal(t, 1, code.Uses)
	require.NotNil(t, code.MaxUses)
	assert.Equal(t, 3, *code.MaxUses)
	assert.True(t, code.Usable(time.Now()))
}

func TestFriendCodeRepositoryIncrementUses(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewFriendCodeRepository(db)
	mock.ExpectExec("UPDATE friend_codes").
		WithArgs(sqlmock.AnyArg(), "fc-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.IncrementUses(context.Background(), "fc-1"))
}

func TestFriendCodeUsable(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	exhausted := 2

	cases := []struct {
		name string
		code models.FriendCode
		want bool
	}{
		{"active unconstrained", models.FriendCode{Active: true}, true},
		{"inactive", models.FriendCode{Active: false}, false},
		{"expired", models.FriendCode{Active: true, ExpiresAt: &past}, false},
		{"not yet expired", models.FriendCode{Active: true, ExpiresAt: &future}, true},
		{"exhausted", models.FriendCode{Active: true, Uses: 2, MaxUses: &exhausted}, false},
		{"uses remaining", models.FriendCode{Active: true, Uses: 1, MaxUses: &exhausted}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.code.Usable(now))
		})
	}
}
