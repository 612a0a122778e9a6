// Package codes issues, validates and consumes the short-lived numeric
// codes used for email verification and password reset.
package codes

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"math/rand"
	"sync"
	"time"

	"gorm.io/gorm"

	"github.com/dramoir/dramoir-backend/internal/models"
)

const (
	// CodeLength is the number of digits in an issued code.
	CodeLength = 6
	// TTL is how long an issued code stays redeemable.
	TTL = 15 * time.Minute
)

// ErrInvalidCode is returned for every consumption failure: wrong digits,
// expired, already used, or no such user. Callers must not distinguish
// the cases in responses.
var ErrInvalidCode = errors.New("invalid or expired code")

// MatchStrategy selects how a submitted code is located before it is
// consumed.
type MatchStrategy int

const (
	// MatchExact finds the single row matching user, code, purpose,
	// unused and unexpired in one predicate. This is the default.
	MatchExact MatchStrategy = iota
	// MatchLatest finds the most recently created unused row for
	// user+code+purpose and then checks its validity.
	MatchLatest
)

// Manager issues and consumes one-time codes. The random source and clock
// are injectable so tests can be deterministic.
type Manager struct {
	db       *gorm.DB
	strategy MatchStrategy
	now      func() time.Time

	mu  sync.Mutex // guards rng, which is not safe for concurrent use
	rng *rand.Rand
}

type Option func(*Manager)

// WithClock replaces the clock used for expiry computation and checks.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithRand replaces the digit source.
func WithRand(rng *rand.Rand) Option {
	return func(m *Manager) { m.rng = rng }
}

// WithStrategy selects the matching strategy for Consume.
func WithStrategy(s MatchStrategy) Option {
	return func(m *Manager) { m.strategy = s }
}

func NewManager(db *gorm.DB, opts ...Option) *Manager {
	m := &Manager{
		db:       db,
		strategy: MatchExact,
		now:      time.Now,
		rng:      rand.New(rand.NewSource(cryptoSeed())),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func cryptoSeed() int64 {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(b[:]))
}

// generate draws six independent uniform digits. Collisions across history
// are accepted and not checked.
func (m *Manager) generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, CodeLength)
	for i := range buf {
		buf[i] = byte('0' + m.rng.Intn(10))
	}
	return string(buf)
}

// Issue persists a new code for the user and purpose and returns the
// plaintext. Previously issued codes are left untouched; delivery is the
// caller's concern.
func (m *Manager) Issue(userID uint, purpose models.CodePurpose) (string, error) {
	code := m.generate()
	now := m.now()
	record := models.OneTimeCode{
		UserID:    userID,
		Code:      code,
		Purpose:   purpose,
		ExpiresAt: now.Add(TTL),
	}
	// Keep the row timestamp on the same clock as the expiry
	record.CreatedAt = now
	if err := m.db.Create(&record).Error; err != nil {
		return "", err
	}
	return code, nil
}

// Consume locates the submitted code and marks it used. It runs against tx
// so callers can commit the account mutation and the consumption together.
// The mark is a conditional update on the used flag; if a concurrent
// consumer got there first, zero rows are affected and ErrInvalidCode is
// returned, so a code can never be redeemed twice.
func (m *Manager) Consume(tx *gorm.DB, userID uint, code string, purpose models.CodePurpose) (*models.OneTimeCode, error) {
	now := m.now()

	var record models.OneTimeCode
	switch m.strategy {
	case MatchLatest:
		err := tx.Where("user_id = ? AND code = ? AND purpose = ? AND used = ?",
			userID, code, purpose, false).
			Order("created_at DESC").
			First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCode
			}
			return nil, err
		}
		if !record.IsValid(now) {
			return nil, ErrInvalidCode
		}
	default:
		err := tx.Where("user_id = ? AND code = ? AND purpose = ? AND used = ? AND expires_at > ?",
			userID, code, purpose, false, now).
			First(&record).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrInvalidCode
			}
			return nil, err
		}
	}

	result := tx.Model(&models.OneTimeCode{}).
		Where("id = ? AND used = ?", record.ID, false).
		Update("used", true)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrInvalidCode
	}

	record.Used = true
	return &record, nil
}
