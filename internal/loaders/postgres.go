package loaders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrSettingsNotFound distinguishes an unknown tenant from a datastore
// failure; the settings endpoint maps it to 404.
var ErrSettingsNotFound = errors.New("widget settings not found")

type PostgresClient struct {
	dsn  string
	pool *pgxpool.Pool
}

// WidgetSettingsRecord represents a single row from the widget_settings table
type WidgetSettingsRecord struct {
	UserID       string
	PrimaryColor string
	BusinessName string
	BusinessInfo string
	SalesRepName string
}

// MessageRow is one conversation turn persisted for operator analytics.
type MessageRow struct {
	UniqueMsgID  string
	SessionID    string
	Role         string // user | assistant
	Content      string
	CreatedAt    time.Time
	TenantUserID string
}

func NewPostgresClient(dsn string, workerCount, batchSize int) (*PostgresClient, error) {
	client := &PostgresClient{
		dsn: dsn,
	}

	pool, err := client.createConnectionPool(workerCount)
	if err != nil {
		return nil, err
	}

	client.pool = pool
	log.Println("Successfully connected to PostgreSQL database with connection pool")
	return client, nil
}

func (c *PostgresClient) createConnectionPool(workerCount int) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(c.dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Postgres DSN: %w", err)
	}

	cfg.MaxConns = int32(workerCount) + 2
	cfg.MinConns = 1
	cfg.HealthCheckPeriod = 30 * time.Second
	cfg.MaxConnLifetime = 60 * time.Minute
	cfg.MaxConnIdleTime = 15 * time.Minute

	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping Postgres: %w", err)
	}

	return pool, nil
}

func (c *PostgresClient) Close() error {
	if c.pool != nil {
		c.pool.Close()
	}
	return nil
}

func (c *PostgresClient) GetPool() *pgxpool.Pool {
	return c.pool
}

// GetWidgetSettings fetches the widget configuration for one tenant.
func (c *PostgresClient) GetWidgetSettings(ctx context.Context, uid string) (*WidgetSettingsRecord, error) {
	if uid == "" {
		return nil, fmt.Errorf("uid is required")
	}

	query := `
        SELECT user_id, primary_color, business_name, business_info, sales_rep_name
        FROM widget_settings
        WHERE user_id = $1
        LIMIT 1
    `

	var rec WidgetSettingsRecord
	var primaryColor, businessName, businessInfo, salesRepName *string
	err := c.pool.QueryRow(ctx, query, uid).Scan(
		&rec.UserID, &primaryColor, &businessName, &businessInfo, &salesRepName,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query widget_settings: %w", err)
	}

	// NULL columns come back as empty strings; the widget applies its own
	// defaults client side.
	if primaryColor != nil {
		rec.PrimaryColor = *primaryColor
	}
	if businessName != nil {
		rec.BusinessName = *businessName
	}
	if businessInfo != nil {
		rec.BusinessInfo = *businessInfo
	}
	if salesRepName != nil {
		rec.SalesRepName = *salesRepName
	}

	return &rec, nil
}

// UpsertWidgetSettings is the dashboard's write path into the settings store.
func (c *PostgresClient) UpsertWidgetSettings(ctx context.Context, rec *WidgetSettingsRecord) error {
	if rec == nil || rec.UserID == "" {
		return fmt.Errorf("user id is required")
	}

	query := `
        INSERT INTO widget_settings (user_id, primary_color, business_name, business_info, sales_rep_name, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        ON CONFLICT (user_id)
        DO UPDATE SET
            primary_color = EXCLUDED.primary_color,
            business_name = EXCLUDED.business_name,
            business_info = EXCLUDED.business_info,
            sales_rep_name = EXCLUDED.sales_rep_name,
            updated_at = NOW()
    `

	_, err := c.pool.Exec(ctx, query,
		rec.UserID, rec.PrimaryColor, rec.BusinessName, rec.BusinessInfo, rec.SalesRepName,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert widget settings: %w", err)
	}
	return nil
}

// BatchInsertMessages inserts a batch of conversation turns into the messages table
func (c *PostgresClient) BatchInsertMessages(ctx context.Context, rows []MessageRow) error {
	if len(rows) == 0 {
		return nil
	}

	query := `
        INSERT INTO messages (
            id, session_id, tenant_user_id, "role", content, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6)
    `

	successCount := 0
	for _, r := range rows {
		_, err := c.pool.Exec(ctx, query,
			r.UniqueMsgID,
			r.SessionID,
			r.TenantUserID,
			r.Role,
			r.Content,
			r.CreatedAt.UTC(),
		)
		if err != nil {
			log.Printf("Failed to insert message for session=%s: %v", r.SessionID, err)
			continue
		}
		successCount++
	}

	if successCount == 0 {
		return fmt.Errorf("failed to insert any messages")
	}

	return nil
}
