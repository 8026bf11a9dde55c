// Package app enforces the daily session limit for free accounts.
package app

import (
	"context"
	"time"

	"example/thinking-assistant/app/models"
)

const FreeDailySessionLimit = 1

type quotaError struct {
	Limit int
	Used  int
}

func (e quotaError) Error() string {
	return "daily session quota exceeded"
}

func dayStartUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// enforceDailyQuota loads (or creates) the account for clientID and fails
// with quotaError when a free account has already started a session today.
// Sessions count against the UTC calendar day of their creation timestamp.
func enforceDailyQuota(ctx context.Context, clientID string) (models.Account, error) {
	account, err := getOrCreateAccount(ctx, clientID)
	if err != nil {
		return models.Account{}, err
	}

	if account.Plan != models.PlanFree {
		return account, nil
	}

	used, err := store.CountSessionsSince(ctx, clientID, dayStartUTC(time.Now()))
	if err != nil {
		return models.Account{}, err
	}
	if used >= FreeDailySessionLimit {
		return account, quotaError{Limit: FreeDailySessionLimit, Used: used}
	}

	return account, nil
}

func sessionsUsedToday(ctx context.Context, clientID string) (int, error) {
	return store.CountSessionsSince(ctx, clientID, dayStartUTC(time.Now()))
}
