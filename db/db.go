package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"projdesk/models"

	_ "modernc.org/sqlite" // Use pure Go SQLite driver (no CGO required)
)

// Store owns the single shared SQLite connection. Every operation serializes
// through one exclusive lock; the lock is not reentrant, so operations that
// read after writing release it before the follow-up read.
type Store struct {
	orm   *gorm.DB
	sqlDB *sql.DB
	mu    sync.Mutex
	log   *zap.Logger
}

// New opens (or creates) the database at dbPath, applies pending migrations
// and returns a ready Store.
func New(dbPath string, log *zap.Logger) (*Store, error) {
	config := &gorm.Config{
		Logger:      logger.Default.LogMode(logger.Silent),
		PrepareStmt: true, // Cache prepared statements for better performance
	}

	// modernc DSN parameters: busy timeout so a stray second handle does not
	// fail immediately, foreign_keys so ON DELETE CASCADE is honored, and
	// sqlite-compatible datetime formatting.
	dsn := dbPath + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)&_time_format=sqlite"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	orm, err := gorm.Open(sqlite.Dialector{Conn: sqlDB}, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// WAL + NORMAL synchronous: safe together and much faster than FULL.
	if err := orm.Exec("PRAGMA journal_mode = WAL;").Error; err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if err := orm.Exec("PRAGMA synchronous = NORMAL;").Error; err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	// SQLite only supports one writer at a time; keep a single connection and
	// serialize access through the store lock instead of the driver pool.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := migrate(sqlDB); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Info("database ready", zap.String("path", dbPath))
	return &Store{orm: orm, sqlDB: sqlDB, log: log}, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.sqlDB.Close()
}

// Shutdown satisfies the container's shutdown hook.
func (s *Store) Shutdown() error {
	return s.Close()
}

// acquire takes the store lock without blocking. Failing fast keeps a
// re-entrant call visible as ErrLockBusy instead of a silent deadlock on the
// single shared connection.
func (s *Store) acquire() error {
	if !s.mu.TryLock() {
		return models.ErrLockBusy
	}
	return nil
}

func (s *Store) release() {
	s.mu.Unlock()
}

// setClause is one (column, value) pair of a partial update, kept in the
// declaration order of the entity's field list.
type setClause struct {
	col string
	val any
}

// execPartialUpdate runs a single UPDATE touching exactly the supplied
// columns. Zero supplied fields is rejected rather than executed as a no-op.
// Tables that carry an updated_at column get it bumped alongside.
func (s *Store) execPartialUpdate(table string, id int64, sets []setClause, touchUpdatedAt bool) error {
	if len(sets) == 0 {
		return fmt.Errorf("update %s: no fields supplied: %w", table, models.ErrInvalidRequest)
	}

	frags := make([]string, 0, len(sets)+1)
	args := make([]any, 0, len(sets)+2)
	for _, c := range sets {
		frags = append(frags, c.col+" = ?")
		args = append(args, c.val)
	}
	if touchUpdatedAt {
		frags = append(frags, "updated_at = ?")
		args = append(args, time.Now())
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", table, strings.Join(frags, ", "))
	if err := s.orm.Exec(query, args...).Error; err != nil {
		return storeErr("update "+table, err)
	}
	return nil
}

// storeErr maps driver/gorm failures onto the shared error taxonomy.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, models.ErrNotFound)
	case isConstraintError(err):
		return fmt.Errorf("%s: %w: %v", op, models.ErrConstraint, err)
	default:
		return fmt.Errorf("%s: %w: %v", op, models.ErrStorage, err)
	}
}

func isConstraintError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "constraint")
}
