// Package xp awards experience points and derives levels from them.
package xp

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
)

// PointsPerLevel is the XP span of a single level.
const PointsPerLevel = 100

var (
	ErrInvalidAmount  = errors.New("xp amount must be positive")
	ErrInvalidProfile = errors.New("profile id is required")
)

// Profile is a per-user XP record. Level is a cached copy of LevelFor(XP).
type Profile struct {
	ID          string
	XP          int
	Level       int
	LastUpdated time.Time
}

// Result reports the outcome of a grant.
type Result struct {
	NewXP     int
	NewLevel  int
	LeveledUp bool
}

// Store persists profiles. AddXP must apply the increment atomically and
// return the profile as it was before and after the increment; a missing
// profile counts as XP 0, level 1.
type Store interface {
	AddXP(ctx context.Context, profileID string, amount int, now time.Time) (before, after Profile, err error)
	Profile(ctx context.Context, profileID string) (Profile, error)
}

// LevelFor returns floor(xp/100)+1.
func LevelFor(xp int) int {
	if xp < 0 {
		xp = 0
	}
	return xp/PointsPerLevel + 1
}

// Progress returns the percentage of the current level already earned,
// clamped to [0, 100].
func Progress(xp, level int) int {
	p := xp - (level-1)*PointsPerLevel
	return min(max(p, 0), 100)
}

// Accumulator grants XP through a Store.
type Accumulator struct {
	store  Store
	logger *slog.Logger
	now    func() time.Time
}

func NewAccumulator(store Store, logger *slog.Logger) *Accumulator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Accumulator{store: store, logger: logger, now: time.Now}
}

// Grant adds amount to the profile. When the store write fails nothing is
// reported as recorded.
func (a *Accumulator) Grant(ctx context.Context, profileID string, amount int) (Result, error) {
	if strings.TrimSpace(profileID) == "" {
		return Result{}, ErrInvalidProfile
	}
	if amount <= 0 {
		return Result{}, ErrInvalidAmount
	}

	before, after, err := a.store.AddXP(ctx, profileID, amount, a.now())
	if err != nil {
		a.logger.Error("grant xp", "profile", profileID, "amount", amount, "error", err)
		return Result{}, fmt.Errorf("grant %d xp to %q: %w", amount, profileID, err)
	}

	prevLevel := before.Level
	if prevLevel < 1 {
		prevLevel = LevelFor(before.XP)
	}
	newLevel := LevelFor(after.XP)

	res := Result{
		NewXP:     after.XP,
		NewLevel:  newLevel,
		LeveledUp: newLevel > prevLevel,
	}
	a.logger.Debug("xp granted", "profile", profileID, "amount", amount, "xp", res.NewXP, "level", res.NewLevel)
	return res, nil
}

// Profile returns the stored profile with its level recomputed from XP.
func (a *Accumulator) Profile(ctx context.Context, profileID string) (Profile, error) {
	if strings.TrimSpace(profileID) == "" {
		return Profile{}, ErrInvalidProfile
	}
	p, err := a.store.Profile(ctx, profileID)
	if err != nil {
		return Profile{}, fmt.Errorf("load profile %q: %w", profileID, err)
	}
	p.Level = LevelFor(p.XP)
	return p, nil
}
