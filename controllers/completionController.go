package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/PrayerArmy/initializers"
	"github.com/PrayerArmy/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// GetPrayerCompletions lists completion records, optionally scoped to a
// single request via ?prayer_request_id=.
func GetPrayerCompletions(c *gin.Context) {
	query := initializers.DB.From("prayer_completions").Select("*")

	if rawID := c.Query("prayer_request_id"); rawID != "" {
		requestID, err := strconv.Atoi(rawID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
			return
		}
		query = query.Where(goqu.C("prayer_request_id").Eq(requestID))
	}

	var completions []models.PrayerCompletion
	if err := query.ScanStructs(&completions); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer completions"})
		return
	}

	if completions == nil {
		completions = []models.PrayerCompletion{}
	}

	c.JSON(http.StatusOK, completions)
}

// TogglePrayerCompletion flips whether a team member has prayed over a
// request. The insert relies on the unique (prayer_request_id,
// team_member_id) index: zero rows affected means the pair already
// exists, in which case it is deleted instead. The toggle is a single
// conditional server-side write either way, so concurrent admin
// sessions cannot double-insert.
func TogglePrayerCompletion(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	memberID, err := strconv.Atoi(c.Param("team_member_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team member ID"})
		return
	}

	completion := models.PrayerCompletion{
		Prayer_Request_ID: requestID,
		Team_Member_ID:    memberID,
		Completed_At:      time.Now(),
	}

	insert := initializers.DB.Insert("prayer_completions").
		Rows(completion).
		OnConflict(goqu.DoNothing())

	result, err := insert.Executor().Exec()
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record prayer completion"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected > 0 {
		c.JSON(http.StatusOK, gin.H{
			"message":   "Prayer completion recorded",
			"completed": true,
		})
		return
	}

	deleteStmt := initializers.DB.Delete("prayer_completions").
		Where(
			goqu.C("prayer_request_id").Eq(requestID),
			goqu.C("team_member_id").Eq(memberID),
		)

	if _, err := deleteStmt.Executor().Exec(); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to clear prayer completion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Prayer completion cleared",
		"completed": false,
	})
}

// IsPrayerCompleted reports whether the given member has prayed over
// the given request.
func IsPrayerCompleted(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	memberID, err := strconv.Atoi(c.Param("team_member_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team member ID"})
		return
	}

	var completion models.PrayerCompletion
	found, err := initializers.DB.From("prayer_completions").
		Where(
			goqu.C("prayer_request_id").Eq(requestID),
			goqu.C("team_member_id").Eq(memberID),
		).
		ScanStruct(&completion)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer completion"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"completed": found})
}

// GetCompletionSummary reports how many of the current roster have
// prayed over a request. The denominator is always the full roster
// size, whichever request is asked about.
func GetCompletionSummary(c *gin.Context) {
	requestID, err := strconv.Atoi(c.Param("prayer_request_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer request ID"})
		return
	}

	completedCount, err := initializers.DB.From("prayer_completions").
		Where(goqu.C("prayer_request_id").Eq(requestID)).
		Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch completion summary"})
		return
	}

	totalMembers, err := initializers.DB.From("team_members").Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch completion summary"})
		return
	}

	c.JSON(http.StatusOK, models.CompletionSummary{
		Prayer_Request_ID: requestID,
		Completed_Count:   int(completedCount),
		Total_Members:     int(totalMembers),
	})
}
