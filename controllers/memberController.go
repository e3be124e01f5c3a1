package controllers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/PrayerArmy/initializers"
	"github.com/PrayerArmy/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

func AddTeamMember(c *gin.Context) {
	fellowshipID, err := strconv.Atoi(c.Param("fellowship_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fellowship ID"})
		return
	}

	var newMember models.TeamMemberCreate
	if err := c.BindJSON(&newMember); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newMember.Name = strings.TrimSpace(newMember.Name)
	if newMember.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Team member name is required"})
		return
	}

	if newMember.Email != nil && strings.TrimSpace(*newMember.Email) == "" {
		newMember.Email = nil
	}

	// Every member belongs to exactly one live fellowship.
	var fellowship models.Fellowship
	found, err := initializers.DB.From("fellowships").
		Where(goqu.C("fellowship_id").Eq(fellowshipID)).
		ScanStruct(&fellowship)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fellowship"})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Fellowship not found"})
		return
	}

	member := models.TeamMember{
		Name:          newMember.Name,
		Email:         newMember.Email,
		Fellowship_ID: fellowshipID,
	}

	insert := initializers.DB.Insert("team_members").Rows(member).Returning("team_member_id")

	var insertedID int
	_, err = insert.Executor().ScanVal(&insertedID)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add team member"})
		return
	}

	member.Team_Member_ID = insertedID

	c.JSON(http.StatusCreated, member)
}

// GetTeamMembers returns the whole roster across fellowships, in the
// order members were added. The dashboard uses it for the prayer team
// buttons and the completion ratio denominator.
func GetTeamMembers(c *gin.Context) {
	var members []models.TeamMember
	err := initializers.DB.From("team_members").
		Order(goqu.I("created_at").Asc()).
		ScanStructs(&members)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch team members"})
		return
	}

	if members == nil {
		members = []models.TeamMember{}
	}

	c.JSON(http.StatusOK, members)
}

// RemoveTeamMember deletes a member and their prayer completions in one
// transaction, so completion rows never point at a missing member.
func RemoveTeamMember(c *gin.Context) {
	memberID, err := strconv.Atoi(c.Param("team_member_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid team member ID"})
		return
	}

	tx, err := initializers.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove team member"})
		return
	}

	_, err = tx.Delete("prayer_completions").
		Where(goqu.C("team_member_id").Eq(memberID)).
		Executor().Exec()
	if err != nil {
		tx.Rollback()
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove team member"})
		return
	}

	result, err := tx.Delete("team_members").
		Where(goqu.C("team_member_id").Eq(memberID)).
		Executor().Exec()
	if err != nil {
		tx.Rollback()
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove team member"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Team member not found"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove team member"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Team member removed successfully"})
}
