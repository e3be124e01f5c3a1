package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/PrayerArmy/controllers"
	"github.com/PrayerArmy/initializers"
	"github.com/PrayerArmy/middlewares"
	"github.com/PrayerArmy/services"
)

func setupRouter() *gin.Engine {
	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	// public surface: the submission form and admin login
	router.POST("/requests", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.SubmitPrayerRequest)
	router.POST("/login", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.AdminLogin)
	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	// Password reset endpoints
	router.POST("/auth/forgot-password", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.ForgotPassword)
	router.POST("/auth/verify-reset-code", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.VerifyResetCode)
	router.POST("/auth/reset-password", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.ResetPassword)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		auth.GET("/admins/me", controllers.GetAdminProfile)

		// dashboard routes
		admin := auth.Group("/")
		admin.Use(middlewares.CheckAdmin)
		{
			admin.POST("/admins", controllers.AdminSignup)

			// email delivery smoke check
			admin.POST("/test/email", controllers.TestEmailService)

			// prayer request triage
			admin.GET("/requests", controllers.GetPrayerRequests)
			admin.GET("/requests/:prayer_request_id", controllers.GetPrayerRequest)
			admin.PATCH("/requests/:prayer_request_id/complete", controllers.MarkPrayerRequestCompleted)
			admin.DELETE("/requests/:prayer_request_id", controllers.DeletePrayerRequest)

			// fellowship roster
			admin.GET("/fellowships", controllers.GetFellowships)
			admin.POST("/fellowships", controllers.CreateFellowship)
			admin.DELETE("/fellowships/:fellowship_id", controllers.DeleteFellowship)
			admin.GET("/fellowships/:fellowship_id/members", controllers.GetFellowshipMembers)
			admin.POST("/fellowships/:fellowship_id/members", controllers.AddTeamMember)
			admin.GET("/members", controllers.GetTeamMembers)
			admin.DELETE("/members/:team_member_id", controllers.RemoveTeamMember)

			// prayer completion tracking
			admin.GET("/completions", controllers.GetPrayerCompletions)
			admin.POST("/requests/:prayer_request_id/completions/:team_member_id", controllers.TogglePrayerCompletion)
			admin.GET("/requests/:prayer_request_id/completions/:team_member_id", controllers.IsPrayerCompleted)
			admin.GET("/requests/:prayer_request_id/completions/summary", controllers.GetCompletionSummary)
		}
	}

	return router
}

func main() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitStorageService()
	services.InitEmailService()

	if err := setupRouter().Run(); err != nil {
		log.Fatal(err)
	}
}
