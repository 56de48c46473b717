package store

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"clubbot/internal/model"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// ErrDuplicateName is returned when a club role name is already taken.
	ErrDuplicateName = errors.New("club role name already exists")
	// ErrAlreadyAssigned is returned when a (user, role) assignment
	// already exists.
	ErrAlreadyAssigned = errors.New("member already has this role")
	// ErrBusy wraps sqlite lock contention; callers may retry.
	ErrBusy = errors.New("storage busy")
)

// Store owns the on-disk schema and all SQL. Each method runs on its own
// pooled connection; there is no shared mutable connection state between
// operations.
type Store struct {
	db *gorm.DB
}

// Open opens (or creates) the sqlite database at path and migrates the
// schema idempotently.
func Open(path string) (*Store, error) {
	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         newLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}

	if err := db.AutoMigrate(
		&model.Contribution{},
		&model.Warning{},
		&model.ModerationLog{},
		&model.ClubRole{},
		&model.MemberRole{},
		&model.Account{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &Store{db: db}, nil
}

// storageErr wraps driver errors, surfacing sqlite lock contention as the
// retryable ErrBusy.
func storageErr(op string, err error) error {
	msg := err.Error()
	if strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "database table is locked") ||
		strings.Contains(msg, "SQLITE_BUSY") {
		return fmt.Errorf("%s: %w", op, ErrBusy)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}
