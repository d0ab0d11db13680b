package db

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/go-pg/pg/v10"
	"github.com/jackc/pgx"
	"github.com/jackc/pgx/stdlib"
	"github.com/pressly/goose/v3"
)

// ConnConfig converts go-pg options into a pgx connection config for goose.
func ConnConfig(opts *pg.Options) (pgx.ConnConfig, error) {
	host, port, err := net.SplitHostPort(opts.Addr)
	if err != nil {
		return pgx.ConnConfig{}, fmt.Errorf("parse database addr %q: %w", opts.Addr, err)
	}

	p, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return pgx.ConnConfig{}, fmt.Errorf("parse database port %q: %w", port, err)
	}

	return pgx.ConnConfig{
		Host:     host,
		Port:     uint16(p),
		Database: opts.Database,
		User:     opts.User,
		Password: opts.Password,
	}, nil
}

// Migrate applies all pending goose migrations from dir.
func Migrate(ctx context.Context, config pgx.ConnConfig, dir string) error {
	sqldb := stdlib.OpenDB(config)
	defer sqldb.Close()

	if err := sqldb.PingContext(ctx); err != nil {
		return fmt.Errorf("ping db: %w", err)
	}

	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqldb, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	return nil
}
