package postgres

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"bathroom/config"
	"bathroom/internal/domain/lifecycle"
	"bathroom/internal/errors"
	"bathroom/internal/infra/persistence/model"

	pgLib "github.com/slighter12/go-lib/database/postgres"
	"gorm.io/gorm"
)

const (
	dbPoolMonitorInterval       = 5 * time.Second
	dbPoolWarnDurationThreshold = 50 * time.Millisecond

	// The column index only sees stored values; this one also catches rows written around the repository.
	createLowerEmailIndexSQL = `CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email_lower ON users (lower(email))`
)

// Conn is an open PostgreSQL connection together with its pool monitor.
type Conn struct {
	DB *gorm.DB

	sqlDB         *sql.DB
	cancelMonitor context.CancelFunc
}

// Open connects to PostgreSQL, verifies the connection and optionally migrates the users table.
func Open(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Conn, error) {
	if cfg.Postgres == nil {
		return nil, errors.New("postgres store selected but no postgres config given")
	}

	db, err := pgLib.New(cfg.Postgres)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PostgreSQL client")
	}
	db = db.Session(&gorm.Session{
		// A single insert per registration needs no implicit transaction.
		SkipDefaultTransaction: true,
		Logger:                 newGormSlogLogger(logger, cfg),
	})

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get PostgreSQL sql.DB")
	}

	pingCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()

		return nil, errors.Wrap(err, "failed to ping PostgreSQL")
	}

	if cfg.Store.AutoMigrate {
		if err := Migrate(pingCtx, db); err != nil {
			_ = sqlDB.Close()

			return nil, err
		}
	}

	monitorCtx, cancelMonitor := context.WithCancel(context.Background())
	go monitorDBPool(monitorCtx, logger, sqlDB, dbPoolMonitorInterval)

	return &Conn{
		DB:            db,
		sqlDB:         sqlDB,
		cancelMonitor: cancelMonitor,
	}, nil
}

// Migrate creates or updates the users table and its indexes.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.UserModel{}); err != nil {
		return errors.Wrap(err, "failed to migrate users table")
	}
	if err := db.WithContext(ctx).Exec(createLowerEmailIndexSQL).Error; err != nil {
		return errors.Wrap(err, "failed to create users email index")
	}

	return nil
}

// Close stops the pool monitor and closes the pool.
func (c *Conn) Close(_ context.Context) error {
	c.cancelMonitor()

	return errors.WithStack(c.sqlDB.Close())
}

func monitorDBPool(ctx context.Context, logger *slog.Logger, sqlDB *sql.DB, interval time.Duration) {
	if logger == nil || sqlDB == nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	prev := sqlDB.Stats()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cur := sqlDB.Stats()
			waitDelta := cur.WaitCount - prev.WaitCount
			waitDurationDelta := cur.WaitDuration - prev.WaitDuration

			if waitDelta > 0 {
				attrs := []slog.Attr{
					slog.Int64("waitCountDelta", waitDelta),
					slog.Duration("waitDurationDelta", waitDurationDelta),
					slog.Duration("avgWait", waitDurationDelta/time.Duration(waitDelta)),
					slog.Int("openConns", cur.OpenConnections),
					slog.Int("inUseConns", cur.InUse),
					slog.Int("idleConns", cur.Idle),
				}
				level := slog.LevelDebug
				if waitDurationDelta >= dbPoolWarnDurationThreshold {
					level = slog.LevelWarn
				}
				logger.LogAttrs(ctx, level, "Postgres pool wait", attrs...)
			}

			prev = cur
		}
	}
}
