// Package app provides account persistence and plan endpoints.
package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"example/thinking-assistant/app/models"

	"github.com/gin-gonic/gin"
)

func getOrCreateAccount(ctx context.Context, clientID string) (models.Account, error) {
	account, err := store.AccountByClientID(ctx, clientID)
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return models.Account{}, err
	}

	now := time.Now().UTC()
	account = models.Account{
		ClientID:  clientID,
		Plan:      models.PlanFree,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := store.InsertAccount(ctx, account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// initOrTouchAccount creates a free account if absent. On repeat calls it
// only fills a previously unset email and refreshes updated_at.
func initOrTouchAccount(ctx context.Context, clientID, email string) (models.Account, error) {
	account, err := store.AccountByClientID(ctx, clientID)
	if errors.Is(err, ErrNotFound) {
		now := time.Now().UTC()
		account = models.Account{
			ClientID:  clientID,
			Plan:      models.PlanFree,
			Email:     email,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := store.InsertAccount(ctx, account); err != nil {
			return models.Account{}, err
		}
		return account, nil
	}
	if err != nil {
		return models.Account{}, err
	}

	if account.Email == "" && email != "" {
		account.Email = email
	}
	account.UpdatedAt = time.Now().UTC()
	if err := store.SaveAccount(ctx, account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// InitAccount registers (or touches) the account for a client id.
func InitAccount(c *gin.Context) {
	var req models.InitAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing client_id"})
		return
	}

	account, err := initOrTouchAccount(c.Request.Context(), req.ClientID, req.Email)
	if err != nil {
		log.Printf("init account failed client=%s err=%v", req.ClientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to initialize account"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"account": account})
}

// UpgradeAccount forces plan=pro for the given client id, creating the
// account first if needed. There is no billing verification on this path:
// anyone who knows a client_id can upgrade it.
func UpgradeAccount(c *gin.Context) {
	var req models.UpgradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing client_id"})
		return
	}

	account, err := getOrCreateAccount(c.Request.Context(), req.ClientID)
	if err != nil {
		log.Printf("upgrade lookup failed client=%s err=%v", req.ClientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load account"})
		return
	}

	account.Plan = models.PlanPro
	account.UpdatedAt = time.Now().UTC()
	if err := store.SaveAccount(c.Request.Context(), account); err != nil {
		log.Printf("upgrade save failed client=%s err=%v", req.ClientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update plan"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "plan": account.Plan})
}

// GetAccount returns plan and daily usage info for a client id.
func GetAccount(c *gin.Context) {
	clientID := c.Param("clientid")
	if clientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing client id"})
		return
	}

	account, err := getOrCreateAccount(c.Request.Context(), clientID)
	if err != nil {
		log.Printf("account lookup failed client=%s err=%v", clientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load account"})
		return
	}

	used, err := sessionsUsedToday(c.Request.Context(), clientID)
	if err != nil {
		log.Printf("usage count failed client=%s err=%v", clientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load usage"})
		return
	}

	var dailyLimit any = nil
	var remaining any = nil
	if account.Plan == models.PlanFree {
		dailyLimit = FreeDailySessionLimit
		remainingCount := FreeDailySessionLimit - used
		if remainingCount < 0 {
			remainingCount = 0
		}
		remaining = remainingCount
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":         account.Plan,
		"sessionsUsed": used,
		"dailyLimit":   dailyLimit,
		"remaining":    remaining,
	})
}
