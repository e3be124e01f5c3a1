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

func CreateFellowship(c *gin.Context) {
	var newFellowship models.FellowshipCreate
	if err := c.BindJSON(&newFellowship); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newFellowship.Name = strings.TrimSpace(newFellowship.Name)
	if newFellowship.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Fellowship name is required"})
		return
	}

	fellowship := models.Fellowship{
		Name: newFellowship.Name,
	}

	insert := initializers.DB.Insert("fellowships").Rows(fellowship).Returning("fellowship_id")

	var insertedID int
	_, err := insert.Executor().ScanVal(&insertedID)
	if err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create fellowship"})
		return
	}

	fellowship.Fellowship_ID = insertedID

	c.JSON(http.StatusCreated, fellowship)
}

func GetFellowships(c *gin.Context) {
	var fellowships []models.Fellowship
	err := initializers.DB.From("fellowships").
		Order(goqu.I("created_at").Asc()).
		ScanStructs(&fellowships)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fellowships"})
		return
	}

	if fellowships == nil {
		fellowships = []models.Fellowship{}
	}

	c.JSON(http.StatusOK, fellowships)
}

// DeleteFellowship cascades inside one transaction: completions of the
// fellowship's members first, then the members, then the fellowship
// row. A failure at any step rolls everything back, so no orphaned
// member is ever observable.
func DeleteFellowship(c *gin.Context) {
	fellowshipID, err := strconv.Atoi(c.Param("fellowship_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fellowship ID"})
		return
	}

	tx, err := initializers.DB.Begin()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fellowship"})
		return
	}

	memberIDs := goqu.From("team_members").
		Select("team_member_id").
		Where(goqu.C("fellowship_id").Eq(fellowshipID))

	_, err = tx.Delete("prayer_completions").
		Where(goqu.C("team_member_id").In(memberIDs)).
		Executor().Exec()
	if err != nil {
		tx.Rollback()
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fellowship"})
		return
	}

	_, err = tx.Delete("team_members").
		Where(goqu.C("fellowship_id").Eq(fellowshipID)).
		Executor().Exec()
	if err != nil {
		tx.Rollback()
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fellowship"})
		return
	}

	result, err := tx.Delete("fellowships").
		Where(goqu.C("fellowship_id").Eq(fellowshipID)).
		Executor().Exec()
	if err != nil {
		tx.Rollback()
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fellowship"})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		tx.Rollback()
		c.JSON(http.StatusNotFound, gin.H{"error": "Fellowship not found"})
		return
	}

	if err := tx.Commit(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete fellowship"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Fellowship and its team members deleted successfully"})
}

// GetFellowshipMembers lists the fellowship's members in the order they
// were added.
func GetFellowshipMembers(c *gin.Context) {
	fellowshipID, err := strconv.Atoi(c.Param("fellowship_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid fellowship ID"})
		return
	}

	var members []models.TeamMember
	err = initializers.DB.From("team_members").
		Where(goqu.C("fellowship_id").Eq(fellowshipID)).
		Order(goqu.I("created_at").Asc()).
		ScanStructs(&members)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch fellowship members"})
		return
	}

	if members == nil {
		members = []models.TeamMember{}
	}

	c.JSON(http.StatusOK, members)
}
