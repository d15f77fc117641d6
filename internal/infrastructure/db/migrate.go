package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate creates the minimal tables needed by this app.
// This keeps setup simple (no external migration tool), but still gives persistence.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`create table if not exists wallet_entries (
			user_id text not null,
			id text not null,
			coin_id text not null,
			coin_name text not null default '',
			symbol text not null default '',
			quantity double precision not null,
			buy_date text not null,
			buy_price double precision not null,
			sell_date text null,
			sell_price double precision null,
			position int not null default 0,
			primary key (user_id, id)
		);`,
		`create index if not exists wallet_entries_user_idx on wallet_entries(user_id, position);`,
		`create table if not exists price_alerts (
			user_id text not null,
			id text not null,
			coin_id text not null,
			coin_name text not null default '',
			min_price double precision not null,
			max_price double precision not null,
			position int not null default 0,
			primary key (user_id, id)
		);`,
		`create index if not exists price_alerts_user_idx on price_alerts(user_id, position);`,
		`create table if not exists favorite_coins (
			user_id text not null,
			coin_id text not null,
			primary key (user_id, coin_id)
		);`,
	}

	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
