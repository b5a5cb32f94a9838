package database

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"drying-engine/pkg/logging"
	"drying-engine/pkg/metrics"
)

const (
	pingTimeout         = 5 * time.Second
	healthTimeout       = 2 * time.Second
	poolMonitorInterval = 10 * time.Second
	poolWarnUtilization = 0.8
)

// Config holds database connection configuration
type Config struct {
	Host            string
	Port            int
	User            string
	Password        string
	Database        string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN renders the config as a lib/pq connection URL
func (c *Config) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + strconv.Itoa(c.Port),
		Path:   "/" + c.Database,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": []string{c.SSLMode}}.Encode()
	}
	return u.String()
}

// PostgresDB is the catalog store's connection pool. Every statement it runs
// is timed under a query type label.
type PostgresDB struct {
	db      *sqlx.DB
	cfg     *Config
	logger  *logging.StructuredLogger
	metrics *metrics.Collector
	done    chan struct{}
}

// NewPostgresDB opens the pool, verifies it with a ping and starts the pool
// monitor. Call Close to stop both.
func NewPostgresDB(ctx context.Context, cfg *Config, logger *logging.StructuredLogger, metricsCollector *metrics.Collector) (*PostgresDB, error) {
	db, err := sqlx.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database %s at %s:%d: %w", cfg.Database, cfg.Host, cfg.Port, err)
	}

	p := &PostgresDB{
		db:      db,
		cfg:     cfg,
		logger:  logger,
		metrics: metricsCollector,
		done:    make(chan struct{}),
	}

	logger.Info(ctx, "[DB_INIT] Catalog database pool ready", logging.Fields{
		"host":              cfg.Host,
		"port":              cfg.Port,
		"database":          cfg.Database,
		"max_open_conns":    cfg.MaxOpenConns,
		"conn_max_lifetime": cfg.ConnMaxLifetime.String(),
	})

	go p.watchPool()

	return p, nil
}

// Close stops the pool monitor and closes every connection
func (p *PostgresDB) Close() error {
	close(p.done)
	p.logger.Info(context.Background(), "[DB_CLOSE] Closing catalog database pool", logging.Fields{
		"database": p.cfg.Database,
	})
	return p.db.Close()
}

// DB exposes the pool for callers that need database/sql directly (goose)
func (p *PostgresDB) DB() *sqlx.DB {
	return p.db
}

// ExecContext runs a statement that returns no rows
func (p *PostgresDB) ExecContext(ctx context.Context, queryType, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := p.db.ExecContext(ctx, query, args...)
	p.finish(ctx, queryType, start, err)
	return result, err
}

// SelectContext scans every row of query into dest
func (p *PostgresDB) SelectContext(ctx context.Context, queryType string, dest interface{}, query string, args ...interface{}) error {
	start := time.Now()
	err := p.db.SelectContext(ctx, dest, query, args...)
	p.finish(ctx, queryType, start, err)
	return err
}

// BeginTx starts a serializable transaction
func (p *PostgresDB) BeginTx(ctx context.Context) (*sqlx.Tx, error) {
	tx, err := p.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		p.metrics.RecordDBError("begin_tx")
		p.logger.Error(ctx, "[DB_TX_ERROR] Failed to begin transaction", logging.Fields{}, err)
		return nil, err
	}
	return tx, nil
}

// HealthCheck pings the pool with a short deadline
func (p *PostgresDB) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// finish records the duration of one statement and, on failure, the error
func (p *PostgresDB) finish(ctx context.Context, queryType string, start time.Time, err error) {
	elapsed := time.Since(start)
	p.metrics.DBQueryDuration.WithLabelValues(queryType).Observe(elapsed.Seconds())

	fields := logging.Fields{
		"query_type":  queryType,
		"duration_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		p.metrics.RecordDBError(queryType)
		p.logger.Error(ctx, "[DB_QUERY_ERROR] Statement failed", fields, err)
		return
	}
	p.logger.Debug(ctx, "[DB_QUERY] Statement executed", fields)
}

// watchPool publishes pool statistics until Close
func (p *PostgresDB) watchPool() {
	ticker := time.NewTicker(poolMonitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.done:
			return
		case <-ticker.C:
			p.reportPool(p.db.Stats())
		}
	}
}

func (p *PostgresDB) reportPool(stats sql.DBStats) {
	p.metrics.UpdateDBConnectionPool(stats.InUse, stats.Idle, stats.OpenConnections)

	if p.cfg.MaxOpenConns <= 0 {
		return
	}
	if utilization := float64(stats.InUse) / float64(p.cfg.MaxOpenConns); utilization > poolWarnUtilization {
		p.logger.Warn(context.Background(), "[DB_POOL_WARNING] Connection pool nearly exhausted", logging.Fields{
			"in_use":      stats.InUse,
			"max_open":    p.cfg.MaxOpenConns,
			"utilization": fmt.Sprintf("%.0f%%", utilization*100),
		})
	}
}
