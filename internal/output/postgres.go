package output

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/medireach/storefront/internal/models"
)

// PostgresOutput lands tracking events in per-topic tables so dashboards can
// query placements and courier traces with plain SQL.
type PostgresOutput struct {
	pool *pgxpool.Pool
}

func NewPostgresOutput(cfg *models.DatabaseConfig) (*PostgresOutput, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}

	p := &PostgresOutput{pool: pool}
	if err := p.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return p, nil
}

func (p *PostgresOutput) ensureSchema(ctx context.Context) error {
	for _, table := range []string{models.TopicOrderPlaced, models.TopicOrderStatus, models.TopicCourierPosition} {
		_, err := p.pool.Exec(ctx, fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				id BIGSERIAL PRIMARY KEY,
				order_id TEXT NOT NULL,
				event_time TIMESTAMPTZ NOT NULL,
				payload JSONB NOT NULL
			)`, table))
		if err != nil {
			return fmt.Errorf("failed to create table %s: %w", table, err)
		}
	}
	return nil
}

func (p *PostgresOutput) WriteMessage(topic string, msg []byte) error {
	table, err := topicToTable(topic)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	query := fmt.Sprintf(`
		INSERT INTO %s (order_id, event_time, payload)
		VALUES (
			$1::jsonb ->> 'orderId',
			to_timestamp(($1::jsonb ->> 'timestamp')::bigint),
			$1::jsonb
		)`, table)
	if _, err := p.pool.Exec(ctx, query, string(msg)); err != nil {
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return nil
}

func (p *PostgresOutput) Close() error {
	p.pool.Close()
	return nil
}

func topicToTable(topic string) (string, error) {
	switch topic {
	case models.TopicOrderPlaced, models.TopicOrderStatus, models.TopicCourierPosition:
		// Topic names double as table identifiers.
		return topic, nil
	default:
		return "", fmt.Errorf("unknown tracking topic: %s", topic)
	}
}
