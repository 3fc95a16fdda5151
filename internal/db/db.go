package db

import (
	"context"
	"time"

	"github.com/geocoder89/inscricoes/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewPool(dbCfg config.DBConfig) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dbCfg.DBURL())

	if err != nil {
		return nil, err
	}

	cfg.MaxConns = dbCfg.MaxConns

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)

	if err != nil {
		return nil, err
	}

	err = pool.Ping(ctx)

	if err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
