package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cryptofolio-backend/internal/domain"
)

// PostgresWalletRepository stores wallets in Postgres for self-hosted setups
// without Firebase. Saves keep document-store semantics: the user's rows are
// replaced wholesale in one transaction, last writer wins.
type PostgresWalletRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresWalletRepository(pool *pgxpool.Pool) *PostgresWalletRepository {
	return &PostgresWalletRepository{pool: pool}
}

func (r *PostgresWalletRepository) Load(ctx context.Context, userID string) ([]domain.WalletEntry, error) {
	rows, err := r.pool.Query(ctx, `
		select id, coin_id, coin_name, symbol, quantity, buy_date, buy_price, sell_date, sell_price
		from wallet_entries
		where user_id = $1
		order by position
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load wallet: %v", domain.ErrUpstream, err)
	}
	defer rows.Close()

	entries := make([]domain.WalletEntry, 0)
	for rows.Next() {
		var e domain.WalletEntry
		var sellDate *string
		if err := rows.Scan(&e.ID, &e.CoinID, &e.CoinName, &e.Symbol, &e.Quantity,
			&e.BuyDate, &e.BuyPrice, &sellDate, &e.SellPrice); err != nil {
			return nil, fmt.Errorf("%w: scan wallet entry: %v", domain.ErrUpstream, err)
		}
		if sellDate != nil {
			e.SellDate = *sellDate
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load wallet: %v", domain.ErrUpstream, err)
	}
	return entries, nil
}

func (r *PostgresWalletRepository) Save(ctx context.Context, userID string, entries []domain.WalletEntry) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: save wallet: %v", domain.ErrUpstream, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `delete from wallet_entries where user_id = $1`, userID); err != nil {
		return fmt.Errorf("%w: save wallet: %v", domain.ErrUpstream, err)
	}

	for i, e := range entries {
		var sellDate *string
		if e.SellDate != "" {
			sellDate = &e.SellDate
		}
		_, err := tx.Exec(ctx, `
			insert into wallet_entries(
				user_id, id, coin_id, coin_name, symbol,
				quantity, buy_date, buy_price, sell_date, sell_price, position
			) values ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		`, userID, e.ID, e.CoinID, e.CoinName, e.Symbol,
			e.Quantity, e.BuyDate, e.BuyPrice, sellDate, e.SellPrice, i)
		if err != nil {
			return fmt.Errorf("%w: save wallet: %v", domain.ErrUpstream, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: save wallet: %v", domain.ErrUpstream, err)
	}
	return nil
}
