package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cryptofolio-backend/internal/domain"
)

// PostgresFavoriteRepository stores favorite coin ids in Postgres.
type PostgresFavoriteRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresFavoriteRepository(pool *pgxpool.Pool) *PostgresFavoriteRepository {
	return &PostgresFavoriteRepository{pool: pool}
}

func (r *PostgresFavoriteRepository) List(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		select coin_id from favorite_coins where user_id = $1 order by coin_id
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load favorites: %v", domain.ErrUpstream, err)
	}
	defer rows.Close()

	coinIDs := make([]string, 0)
	for rows.Next() {
		var coinID string
		if err := rows.Scan(&coinID); err != nil {
			return nil, fmt.Errorf("%w: scan favorite: %v", domain.ErrUpstream, err)
		}
		coinIDs = append(coinIDs, coinID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load favorites: %v", domain.ErrUpstream, err)
	}
	return coinIDs, nil
}

func (r *PostgresFavoriteRepository) Save(ctx context.Context, userID string, coinIDs []string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: save favorites: %v", domain.ErrUpstream, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `delete from favorite_coins where user_id = $1`, userID); err != nil {
		return fmt.Errorf("%w: save favorites: %v", domain.ErrUpstream, err)
	}
	for _, coinID := range coinIDs {
		if _, err := tx.Exec(ctx, `
			insert into favorite_coins(user_id, coin_id) values ($1,$2)
			on conflict do nothing
		`, userID, coinID); err != nil {
			return fmt.Errorf("%w: save favorites: %v", domain.ErrUpstream, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: save favorites: %v", domain.ErrUpstream, err)
	}
	return nil
}
