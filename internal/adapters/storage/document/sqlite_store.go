package document

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"liftlog/internal/adapters/storage"
	domain "liftlog/internal/domain/document"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

// Clock supplies the current time; swapped out in tests.
type Clock func() time.Time

// SQLiteStore implements Store on a two-slot SQLite table: the primary
// document blob plus one rolling backup of the previously committed
// blob (rotated on every save, not kept as a history).
type SQLiteStore struct {
	db  storage.SQLDB
	now Clock
}

// NewSQLiteStore creates a new SQLiteStore.
func NewSQLiteStore(db storage.SQLDB) *SQLiteStore {
	return &SQLiteStore{db: db, now: time.Now}
}

// NewSQLiteStoreWithClock creates a store with a fixed clock for tests.
func NewSQLiteStoreWithClock(db storage.SQLDB, now Clock) *SQLiteStore {
	return &SQLiteStore{db: db, now: now}
}

// Load reads the primary slot. A missing row, corrupt JSON, or a blob
// without a program falls back to a fresh default document; a partial
// but structurally valid blob comes back repaired. Content problems are
// logged, never fatal: the app always starts.
func (s *SQLiteStore) Load(ctx context.Context) (domain.Document, error) {
	payload, ok, err := s.readSlot(ctx, storage.SlotPrimary)
	if err != nil {
		return domain.Document{}, fmt.Errorf("read document slot: %w", err)
	}
	if !ok {
		return domain.Default(s.now()), nil
	}

	d, err := domain.Decode(payload)
	if err != nil {
		log.WithError(err).Warn("persisted document unreadable, starting from defaults")
		return domain.Default(s.now()), nil
	}
	return d, nil
}

// Save rotates the current primary payload into the backup slot, then
// writes the document. Backup rotation is best-effort and never blocks
// the save; a full-storage failure surfaces as ErrStorageExhausted.
func (s *SQLiteStore) Save(ctx context.Context, d domain.Document) error {
	payload, err := domain.Encode(d)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if prev, ok, err := s.readSlot(ctx, storage.SlotPrimary); err != nil {
		log.WithError(err).Warn("could not read current document for backup rotation")
	} else if ok {
		if err := s.writeSlot(ctx, storage.SlotBackup, prev); err != nil {
			log.WithError(err).Warn("backup rotation failed, saving anyway")
		}
	}

	if err := s.writeSlot(ctx, storage.SlotPrimary, payload); err != nil {
		if isStorageFull(err) {
			return fmt.Errorf("%w: %v", ErrStorageExhausted, err)
		}
		return fmt.Errorf("write document slot: %w", err)
	}
	return nil
}

// LoadBackup decodes the backup slot, reporting whether one exists.
func (s *SQLiteStore) LoadBackup(ctx context.Context) (domain.Document, bool, error) {
	payload, ok, err := s.readSlot(ctx, storage.SlotBackup)
	if err != nil || !ok {
		return domain.Document{}, false, err
	}
	d, err := domain.Decode(payload)
	if err != nil {
		return domain.Document{}, false, fmt.Errorf("decode backup: %w", err)
	}
	return d, true, nil
}

func (s *SQLiteStore) readSlot(ctx context.Context, slot string) ([]byte, bool, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM document_slot WHERE slot = ?`, slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (s *SQLiteStore) writeSlot(ctx context.Context, slot string, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO document_slot (slot, payload, saved_at)
		 VALUES (?, ?, ?)
		 ON CONFLICT(slot) DO UPDATE SET
		   payload=excluded.payload, saved_at=excluded.saved_at`,
		slot, payload, s.now().Format(timeLayout))
	return err
}

// isStorageFull recognizes SQLITE_FULL conditions so the caller can
// distinguish "storage exhausted" from a generic write failure.
func isStorageFull(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "database or disk is full") ||
		strings.Contains(msg, "no space left on device")
}
