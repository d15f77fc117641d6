package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cryptofolio-backend/internal/domain"
)

// PostgresAlertRepository stores price alerts in Postgres, with the same
// replace-the-list save semantics as the wallet repository.
type PostgresAlertRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresAlertRepository(pool *pgxpool.Pool) *PostgresAlertRepository {
	return &PostgresAlertRepository{pool: pool}
}

func (r *PostgresAlertRepository) List(ctx context.Context, userID string) ([]domain.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		select id, coin_id, coin_name, min_price, max_price
		from price_alerts
		where user_id = $1
		order by position
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: load alerts: %v", domain.ErrUpstream, err)
	}
	defer rows.Close()

	alerts := make([]domain.Alert, 0)
	for rows.Next() {
		var a domain.Alert
		if err := rows.Scan(&a.ID, &a.CoinID, &a.CoinName, &a.MinPrice, &a.MaxPrice); err != nil {
			return nil, fmt.Errorf("%w: scan alert: %v", domain.ErrUpstream, err)
		}
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load alerts: %v", domain.ErrUpstream, err)
	}
	return alerts, nil
}

func (r *PostgresAlertRepository) Save(ctx context.Context, userID string, alerts []domain.Alert) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return fmt.Errorf("%w: save alerts: %v", domain.ErrUpstream, err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `delete from price_alerts where user_id = $1`, userID); err != nil {
		return fmt.Errorf("%w: save alerts: %v", domain.ErrUpstream, err)
	}

	for i, a := range alerts {
		_, err := tx.Exec(ctx, `
			insert into price_alerts(user_id, id, coin_id, coin_name, min_price, max_price, position)
			values ($1,$2,$3,$4,$5,$6,$7)
		`, userID, a.ID, a.CoinID, a.CoinName, a.MinPrice, a.MaxPrice, i)
		if err != nil {
			return fmt.Errorf("%w: save alerts: %v", domain.ErrUpstream, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%w: save alerts: %v", domain.ErrUpstream, err)
	}
	return nil
}

func (r *PostgresAlertRepository) All(ctx context.Context) (map[string][]domain.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		select user_id, id, coin_id, coin_name, min_price, max_price
		from price_alerts
		order by user_id, position
	`)
	if err != nil {
		return nil, fmt.Errorf("%w: load alerts: %v", domain.ErrUpstream, err)
	}
	defer rows.Close()

	all := make(map[string][]domain.Alert)
	for rows.Next() {
		var userID string
		var a domain.Alert
		if err := rows.Scan(&userID, &a.ID, &a.CoinID, &a.CoinName, &a.MinPrice, &a.MaxPrice); err != nil {
			return nil, fmt.Errorf("%w: scan alert: %v", domain.ErrUpstream, err)
		}
		all[userID] = append(all[userID], a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: load alerts: %v", domain.ErrUpstream, err)
	}
	return all, nil
}
