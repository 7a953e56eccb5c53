package user_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	userModel "github.com/pegatrainingexilent2-lang/pega-learning-app/internal/model/user"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/testutils"
	"github.com/pegatrainingexilent2-lang/pega-learning-app/internal/user"
)

func TestRepository_CreateDuplicate(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := user.NewRepository(db)
	ctx := context.Background()

	u := testutils.NewTestUser()
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	dup := testutils.NewTestUser(testutils.WithEmail(u.Email))
	err := repo.Create(ctx, dup)
	assert.ErrorIs(t, err, user.ErrAlreadyExists)
}

func TestRepository_GetNotFound(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := user.NewRepository(db)
	ctx := context.Background()

	_, err := repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, user.ErrNotFound)

	_, err = repo.GetByID(ctx, -1)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestRepository_ApprovalAndPremium(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := user.NewRepository(db)
	ctx := context.Background()

	u := testutils.CreateTestUser(db)

	pending, err := repo.ListPending(ctx)
	require.NoError(t, err)
	assert.True(t, containsUser(pending, u.ID))

	approved, err := repo.SetApproved(ctx, u.ID, true)
	require.NoError(t, err)
	assert.True(t, approved.IsApproved)

	pending, err = repo.ListPending(ctx)
	require.NoError(t, err)
	assert.False(t, containsUser(pending, u.ID))

	// 重复设置是幂等的
	require.NoError(t, repo.SetPremiumByEmail(ctx, u.Email))
	require.NoError(t, repo.SetPremiumByEmail(ctx, u.Email))
	got, err := repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, got.IsPremium)

	assert.ErrorIs(t, repo.SetPremiumByEmail(ctx, "ghost@example.com"), user.ErrNotFound)
	_, err = repo.SetApproved(ctx, -1, true)
	assert.ErrorIs(t, err, user.ErrNotFound)
}

func TestRepository_RedeemResetToken(t *testing.T) {
	db := testutils.SetupTestDB(t)
	repo := user.NewRepository(db)
	ctx := context.Background()
	// 数据库时间精度为微秒
	now := time.Now().Truncate(time.Microsecond)

	tests := []struct {
		name    string
		expiry  time.Time
		wantErr error
	}{
		{name: "有效令牌", expiry: now.Add(time.Hour)},
		{name: "恰好到期", expiry: now},
		{name: "令牌已过期", expiry: now.Add(-time.Minute), wantErr: user.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := testutils.CreateTestUser(db)
			token := "tok-" + u.Email
			require.NoError(t, repo.SetResetToken(ctx, u.ID, token, tt.expiry))

			err := repo.RedeemResetToken(ctx, token, "new-hash", now)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			got, err := repo.GetByID(ctx, u.ID)
			require.NoError(t, err)
			assert.Equal(t, "new-hash", got.PasswordHash)
			assert.Nil(t, got.ResetToken)
			assert.Nil(t, got.ResetTokenExpiry)

			// 同一令牌不能再次兑换
			assert.ErrorIs(t, repo.RedeemResetToken(ctx, token, "again", now), user.ErrNotFound)
		})
	}
}

func TestMemoryUserStore_ConcurrentRedeem(t *testing.T) {
	u := testutils.NewTestUser()
	store := testutils.NewMemoryUserStore(u)
	ctx := context.Background()
	require.NoError(t, store.SetResetToken(ctx, u.ID, "shared", time.Now().Add(time.Hour)))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if store.RedeemResetToken(ctx, "shared", "h", time.Now()) == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, success)
}

func containsUser(users []userModel.User, id int) bool {
	for _, u := range users {
		if u.ID == id {
			return true
		}
	}
	return false
}
