package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/PrayerArmy/initializers"
	"github.com/PrayerArmy/models"
	"github.com/doug-martin/goqu/v9"
	"golang.org/x/crypto/bcrypt"
)

func AdminLogin(c *gin.Context) {
	var login models.Login

	if err := c.ShouldBindJSON(&login); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var admin models.AdminProfile
	found, err := initializers.DB.From("admin_profile").Select("*").Where(goqu.C("username").Eq(login.Username)).ScanStruct(&admin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	err = bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(login.Password))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	generateToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   admin.Admin_Profile_ID,
		"exp":  time.Now().Add(time.Hour * 24).Unix(),
		"role": "admin",
	})

	token, err := generateToken.SignedString([]byte(os.Getenv("SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(200, gin.H{
		"message": "Admin logged in successfully.",
		"token":   token,
		"admin":   admin,
	})
}

// AdminSignup provisions another dashboard admin. Reachable only behind
// CheckAdmin, so an existing admin session is required.
func AdminSignup(c *gin.Context) {
	var signup models.AdminSignup

	if err := c.ShouldBindJSON(&signup); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	adminCount, err := initializers.DB.From("admin_profile").Select("username").Where(goqu.C("username").Eq(signup.Username)).Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if adminCount > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already exists."})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	newAdmin := models.AdminProfile{
		Username:   signup.Username,
		Password:   string(passwordHash),
		Email:      signup.Email,
		First_Name: signup.First_Name,
		Last_Name:  signup.Last_Name,
	}

	insert := initializers.DB.Insert("admin_profile").Rows(newAdmin).Executor()
	if _, err := insert.Exec(); err != nil {
		log.Println(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"message": "Admin created successfully.",
		"admin":   signup,
	})
}

func GetAdminProfile(c *gin.Context) {

	admin, _ := c.Get("currentAdmin")

	c.JSON(200, gin.H{
		"admin": admin,
	})
}
