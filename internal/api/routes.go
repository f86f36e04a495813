package api

import (
	"alcyxob/liftlog/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	workoutService service.WorkoutService,
	videoService service.VideoService,
	exerciseService service.ExerciseService,
) {
	sessionHandler := NewSessionHandler(workoutService)
	videoHandler := NewVideoHandler(videoService)
	exerciseHandler := NewExerciseHandler(exerciseService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			athleteID, err := getAthleteIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get athlete ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"athleteId": athleteID})
		})

		// --- Exercise Catalog ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.ListExercises)
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
		}

		// --- Live Sessions ---
		protected.POST("/sessions", sessionHandler.StartSession)
		sessionGroup := protected.Group("/sessions/:sessionId")
		{
			sessionGroup.GET("", sessionHandler.GetSession)
			sessionGroup.DELETE("", sessionHandler.DiscardSession)
			sessionGroup.POST("/end", sessionHandler.EndWorkout)

			sessionGroup.POST("/exercises/toggle", sessionHandler.ToggleExercise)
			sessionGroup.POST("/exercises/:exerciseIndex/expand", sessionHandler.ToggleExpanded)
			sessionGroup.POST("/exercises/:exerciseIndex/sets", sessionHandler.AddSet)
			sessionGroup.PATCH("/exercises/:exerciseIndex/sets/:setIndex", sessionHandler.UpdateSetField)
			sessionGroup.DELETE("/exercises/:exerciseIndex/sets/:setIndex", sessionHandler.RemoveSet)
			sessionGroup.POST("/exercises/:exerciseIndex/sets/:setIndex/complete", sessionHandler.ToggleSetCompletion)

			sessionGroup.POST("/timer/toggle", sessionHandler.ToggleTimer)
			sessionGroup.POST("/rest/start", sessionHandler.StartRest)
			sessionGroup.POST("/rest/stop", sessionHandler.StopRest)
			sessionGroup.POST("/rest/adjust", sessionHandler.AdjustRest)
			sessionGroup.PUT("/rest/default", sessionHandler.SetDefaultRest)

			sessionGroup.POST("/mode", sessionHandler.SelectMode)
			sessionGroup.POST("/videos/upload-url", videoHandler.RequestUploadURL)
			sessionGroup.POST("/videos", videoHandler.ConfirmUpload)
		}

		protected.GET("/workouts", sessionHandler.ListWorkouts)
		protected.GET("/videos/url", videoHandler.GetVideoDownloadURL)
	}
}
