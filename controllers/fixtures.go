package controllers

import (
	"time"

	"github.com/PrayerArmy/models"
	"golang.org/x/crypto/bcrypt"
)

// Test fixture data for use in tests

// MockAdmin creates a sample admin profile for testing
func MockAdmin() models.AdminProfile {
	return models.AdminProfile{
		Admin_Profile_ID: 1,
		Username:         "adminuser",
		Email:            "admin@example.com",
		First_Name:       "Admin",
		Last_Name:        "User",
		Created_At:       time.Now(),
	}
}

// MockAdminWithPassword creates a sample admin with a bcrypt hashed password
// Password is "admin123" - use this in tests
func MockAdminWithPassword() models.AdminProfile {
	hashedPassword, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	return models.AdminProfile{
		Admin_Profile_ID: 1,
		Username:         "adminuser",
		Password:         string(hashedPassword),
		Email:            "admin@example.com",
		First_Name:       "Admin",
		Last_Name:        "User",
		Created_At:       time.Now(),
	}
}

// MockFellowship creates a sample fellowship for testing
func MockFellowship() models.Fellowship {
	return models.Fellowship{
		Fellowship_ID: 1,
		Name:          "Youth",
		Created_At:    time.Now(),
	}
}

// MockTeamMember creates a sample team member for testing
func MockTeamMember() models.TeamMember {
	return models.TeamMember{
		Team_Member_ID: 1,
		Name:           "Asha",
		Fellowship_ID:  1,
		Created_At:     time.Now(),
	}
}

// MockPrayerRequest creates a sample pending prayer request for testing
func MockPrayerRequest() models.PrayerRequest {
	text := "Please pray for healing"
	return models.PrayerRequest{
		Prayer_Request_ID: 1,
		Request_Number:    "PR-1001",
		Name:              "Sam",
		Mobile_Number:     "555-0100",
		Prayer_Text:       &text,
		Status:            "pending",
		Created_At:        time.Now(),
	}
}
