package app

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"example/thinking-assistant/app/config"
	"example/thinking-assistant/app/models"

	"github.com/gin-gonic/gin"
)

// Health is a public health check endpoint.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// TestStore reports store connectivity for debugging deployments.
func TestStore(c *gin.Context) {
	cfg, _ := config.LoadConfig()

	resp := gin.H{
		"backend":           "running",
		"database":          "not available",
		"connection_status": "not connected",
		"collections":       []string{},
		"database_url":      cfg.DB.URI != "",
		"database_name":     cfg.DB.Database != "",
	}

	if store == nil {
		resp["database"] = "not initialized"
		c.JSON(http.StatusOK, resp)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := store.Ping(ctx); err != nil {
		resp["database"] = "error: " + truncate(err.Error(), 50)
		c.JSON(http.StatusOK, resp)
		return
	}
	resp["database"] = "connected"
	resp["connection_status"] = "connected"

	if names, err := store.CollectionNames(ctx); err == nil {
		if len(names) > 10 {
			names = names[:10]
		}
		resp["collections"] = names
	}

	c.JSON(http.StatusOK, resp)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// StartSession creates a new session at step 0 and returns the first
// question. Free accounts are limited to one session per UTC day.
func StartSession(c *gin.Context) {
	var req models.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	questions, ok := questionsFor(req.Category)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category"})
		return
	}

	account, err := enforceDailyQuota(c.Request.Context(), req.ClientID)
	if err != nil {
		var qe quotaError
		if errors.As(err, &qe) {
			c.JSON(http.StatusPaymentRequired, gin.H{
				"error": "daily session limit reached",
				"limit": qe.Limit,
				"used":  qe.Used,
			})
			return
		}
		log.Printf("quota check failed client=%s err=%v", req.ClientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	now := time.Now().UTC()
	sess := models.Session{
		Category:  req.Category,
		Name:      req.Name,
		Goal:      req.Goal,
		Step:      0,
		ClientID:  req.ClientID,
		Plan:      account.Plan,
		CreatedAt: now,
		UpdatedAt: now,
	}

	sessionID, err := store.InsertSession(c.Request.Context(), sess)
	if err != nil {
		log.Printf("insert session failed client=%s err=%v", req.ClientID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session_id":  sessionID,
		"question":    questions[0],
		"step":        0,
		"total_steps": len(questions),
	})
}

// NextQuestion returns the question at the session's current step, or done
// once the bank is exhausted.
func NextQuestion(c *gin.Context) {
	sess, ok := loadSession(c)
	if !ok {
		return
	}

	questions := questionBank[sess.Category]
	if sess.Step >= len(questions) {
		c.JSON(http.StatusOK, gin.H{"done": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question":    questions[sess.Step],
		"step":        sess.Step,
		"total_steps": len(questions),
	})
}

// SubmitAnswer records the answer against the current step and advances the
// cursor. Answers past the end of the bank are still logged, with an empty
// question snapshot; the cursor keeps moving forward.
func SubmitAnswer(c *gin.Context) {
	var req models.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "answer must not be empty"})
		return
	}

	sess, ok := loadSession(c)
	if !ok {
		return
	}

	questions := questionBank[sess.Category]
	question := ""
	if sess.Step < len(questions) {
		question = questions[sess.Step]
	}

	msg := models.Message{
		SessionID: sess.ID,
		Step:      sess.Step,
		Question:  question,
		Answer:    req.Answer,
		CreatedAt: time.Now().UTC(),
	}
	if err := store.InsertMessage(c.Request.Context(), msg); err != nil {
		log.Printf("insert message failed session=%s err=%v", sess.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record answer"})
		return
	}

	if err := store.AdvanceSessionStep(c.Request.Context(), sess.ID); err != nil {
		log.Printf("advance step failed session=%s err=%v", sess.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to record answer"})
		return
	}

	next := sess.Step + 1
	if next >= len(questions) {
		c.JSON(http.StatusOK, gin.H{"done": true})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"question":    questions[next],
		"step":        next,
		"total_steps": len(questions),
	})
}

// GetSuggestions runs the suggestion rules over the session's answers and
// returns the freshly persisted idea batch.
func GetSuggestions(c *gin.Context) {
	sess, ok := loadSession(c)
	if !ok {
		return
	}

	ideas, err := generateSuggestions(c.Request.Context(), sess)
	if err != nil {
		log.Printf("suggestions failed session=%s err=%v", sess.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate suggestions"})
		return
	}
	if ideas == nil {
		ideas = []models.Idea{}
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": ideas})
}

func loadSession(c *gin.Context) (models.Session, bool) {
	sessionID := c.Param("sessionid")
	if sessionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing session id"})
		return models.Session{}, false
	}

	sess, err := store.SessionByID(c.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
			return models.Session{}, false
		}
		log.Printf("session lookup failed id=%s err=%v", sessionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load session"})
		return models.Session{}, false
	}
	return sess, true
}
