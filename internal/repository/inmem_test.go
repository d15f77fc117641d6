package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cryptofolio-backend/internal/domain"
)

func TestInMemoryWalletRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryWalletRepository()

	entries, err := repo.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, entries)

	saved := []domain.WalletEntry{
		{ID: "1", CoinID: "bitcoin", Quantity: 1, BuyDate: "2024-01-01", BuyPrice: 100},
	}
	require.NoError(t, repo.Save(ctx, "user-1", saved))

	entries, err = repo.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, saved, entries)

	// The repository stores copies; mutating the caller's slice after the
	// fact must not leak into stored state.
	saved[0].Quantity = 99
	entries, err = repo.Load(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 1.0, entries[0].Quantity)
}

func TestInMemoryWalletRepository_UsersIsolated(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryWalletRepository()

	require.NoError(t, repo.Save(ctx, "user-1", []domain.WalletEntry{{ID: "1", CoinID: "bitcoin"}}))

	entries, err := repo.Load(ctx, "user-2")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestInMemoryAlertRepository_All(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryAlertRepository()

	require.NoError(t, repo.Save(ctx, "user-1", []domain.Alert{{ID: "1", CoinID: "bitcoin", MaxPrice: 100}}))
	require.NoError(t, repo.Save(ctx, "user-2", []domain.Alert{{ID: "2", CoinID: "eth", MaxPrice: 200}}))

	all, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Len(t, all["user-1"], 1)
	assert.Equal(t, "eth", all["user-2"][0].CoinID)
}

func TestInMemoryFavoriteRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryFavoriteRepository()

	favorites, err := repo.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, favorites)

	require.NoError(t, repo.Save(ctx, "user-1", []string{"bitcoin", "eth"}))
	favorites, err = repo.List(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"bitcoin", "eth"}, favorites)
}

func TestInMemoryMarketRepository_SnapshotReplace(t *testing.T) {
	repo := NewInMemoryMarketRepository()
	assert.Empty(t, repo.GetMarkets())

	repo.SaveMarkets([]domain.Market{{CoinID: "bitcoin"}, {CoinID: "eth"}})
	assert.Len(t, repo.GetMarkets(), 2)

	repo.SaveMarkets([]domain.Market{{CoinID: "sol"}})
	markets := repo.GetMarkets()
	require.Len(t, markets, 1)
	assert.Equal(t, "sol", markets[0].CoinID)
}

func TestTokenRepository(t *testing.T) {
	repo := NewTokenRepository()
	assert.Zero(t, repo.GetTokenCount())

	repo.RegisterToken("tok-a", "web", 1700000000)
	repo.RegisterToken("tok-b", "android", 1700000001)
	// Re-registering refreshes, it does not duplicate.
	repo.RegisterToken("tok-a", "web", 1700000002)

	assert.Equal(t, 2, repo.GetTokenCount())
	assert.ElementsMatch(t, []string{"tok-a", "tok-b"}, repo.GetAllTokens())

	repo.UnregisterToken("tok-a")
	assert.Equal(t, 1, repo.GetTokenCount())
}
