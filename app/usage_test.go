package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"example/thinking-assistant/app/models"
)

func TestDayStartUTC(t *testing.T) {
	cases := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"midday",
			time.Date(2024, time.March, 5, 13, 45, 12, 0, time.UTC),
			time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"exact midnight",
			time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC),
		},
		{
			"non-utc input",
			time.Date(2024, time.March, 5, 1, 0, 0, 0, time.FixedZone("UTC+3", 3*3600)),
			time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := dayStartUTC(tc.in); !got.Equal(tc.want) {
				t.Fatalf("dayStartUTC(%v) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestEnforceDailyQuotaCreatesAccount(t *testing.T) {
	ms := newMemStore()
	store = ms
	t.Cleanup(func() { store = nil })

	account, err := enforceDailyQuota(context.Background(), "fresh-client")
	if err != nil {
		t.Fatalf("enforceDailyQuota error = %v", err)
	}
	if account.Plan != models.PlanFree {
		t.Fatalf("new account plan = %s, want free", account.Plan)
	}
	if _, err := ms.AccountByClientID(context.Background(), "fresh-client"); err != nil {
		t.Fatalf("account should be persisted: %v", err)
	}
}

func TestEnforceDailyQuotaBlocksSecondFreeSession(t *testing.T) {
	ms := newMemStore()
	store = ms
	t.Cleanup(func() { store = nil })

	if _, err := store.InsertSession(context.Background(), models.Session{
		ClientID:  "c1",
		Category:  models.CategoryBusiness,
		CreatedAt: time.Now().UTC(),
	}); err != nil {
		t.Fatalf("InsertSession error = %v", err)
	}

	_, err := enforceDailyQuota(context.Background(), "c1")
	var qe quotaError
	if !errors.As(err, &qe) {
		t.Fatalf("expected quotaError, got %v", err)
	}
	if qe.Limit != FreeDailySessionLimit || qe.Used != 1 {
		t.Fatalf("quotaError = %+v", qe)
	}
}

func TestEnforceDailyQuotaIgnoresYesterday(t *testing.T) {
	ms := newMemStore()
	store = ms
	t.Cleanup(func() { store = nil })

	if _, err := store.InsertSession(context.Background(), models.Session{
		ClientID:  "c1",
		Category:  models.CategoryBusiness,
		CreatedAt: dayStartUTC(time.Now()).Add(-time.Minute),
	}); err != nil {
		t.Fatalf("InsertSession error = %v", err)
	}

	if _, err := enforceDailyQuota(context.Background(), "c1"); err != nil {
		t.Fatalf("yesterday's session should not count: %v", err)
	}
}

func TestEnforceDailyQuotaProBypasses(t *testing.T) {
	ms := newMemStore()
	store = ms
	t.Cleanup(func() { store = nil })

	ms.accounts["pro"] = models.Account{ClientID: "pro", Plan: models.PlanPro}
	for i := 0; i < 5; i++ {
		if _, err := store.InsertSession(context.Background(), models.Session{
			ClientID:  "pro",
			CreatedAt: time.Now().UTC(),
		}); err != nil {
			t.Fatalf("InsertSession error = %v", err)
		}
		if _, err := enforceDailyQuota(context.Background(), "pro"); err != nil {
			t.Fatalf("pro plan should be unlimited, got %v on session %d", err, i)
		}
	}
}
