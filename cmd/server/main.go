package main

import (
	"log"

	"assessment-backend/internal/config"
	"assessment-backend/internal/database"
	"assessment-backend/internal/handlers"
	"assessment-backend/internal/middleware"
	"assessment-backend/internal/services"
	"assessment-backend/internal/ws"

	_ "assessment-backend/docs"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// @title           Assessment API
// @version         1.0
// @description     Versioned assessments, question sets and option sets with user submissions
// @host            localhost:8080
// @BasePath        /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Enter "Bearer {token}"

func main() {
	cfg := config.Load()

	db := database.Connect(cfg)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	r := setupRouter(cfg, db, ws.NewHub())

	log.Printf("server starting on :%s", cfg.ServerPort)
	if err := r.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

func setupRouter(cfg *config.Config, db *gorm.DB, hub *ws.Hub) *gin.Engine {
	scoringService := services.NewScoringService()
	typeService := services.NewAssessmentTypeService(db)
	groupService := services.NewUserGroupService(db)
	userService := services.NewUserService(db)
	authService := services.NewAuthService(userService, cfg.JWTSecret)
	assessmentService := services.NewAssessmentService(db)
	questionService := services.NewQuestionService(db)
	questionSetService := services.NewQuestionSetService(db)
	optionSetService := services.NewOptionSetService(db)
	optionService := services.NewOptionService(db)
	submissionService := services.NewSubmissionService(db, scoringService)
	deliveryService := services.NewDeliveryService(
		userService, groupService, assessmentService, questionSetService, optionSetService, scoringService,
	)

	authHandler := handlers.NewAuthHandler(authService)
	typeHandler := handlers.NewAssessmentTypeHandler(typeService)
	groupHandler := handlers.NewUserGroupHandler(groupService)
	userHandler := handlers.NewUserHandler(userService, deliveryService)
	assessmentHandler := handlers.NewAssessmentHandler(assessmentService, hub)
	questionHandler := handlers.NewQuestionHandler(questionService)
	questionSetHandler := handlers.NewQuestionSetHandler(questionSetService, hub)
	optionSetHandler := handlers.NewOptionSetHandler(optionSetService, hub)
	optionHandler := handlers.NewOptionHandler(optionService)
	submissionHandler := handlers.NewSubmissionHandler(submissionService)
	healthHandler := handlers.NewHealthHandler(db)
	wsHandler := handlers.NewWSHandler(hub)

	r := gin.Default()
	r.Use(middleware.RequestID())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middleware.RequestIDHeader},
		ExposeHeaders:    []string{middleware.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
	}))

	r.GET("/health", healthHandler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	r.GET("/ws/activations", wsHandler.HandleActivations)

	api := r.Group("/api/v1")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		protected := api.Group("")
		protected.Use(middleware.JWTAuth(authService))

		types := protected.Group("/assessment-types")
		{
			types.GET("", typeHandler.ListAssessmentTypes)
			types.POST("", typeHandler.CreateAssessmentType)
			types.GET("/:id", typeHandler.GetAssessmentType)
			types.PUT("/:id", typeHandler.UpdateAssessmentType)
			types.DELETE("/:id", typeHandler.DeleteAssessmentType)
			types.GET("/:id/assessments", assessmentHandler.ListAssessmentVersions)
			types.GET("/:id/active-assessment", assessmentHandler.GetActiveAssessment)
		}

		groups := protected.Group("/user-groups")
		{
			groups.GET("", groupHandler.ListUserGroups)
			groups.POST("", groupHandler.CreateUserGroup)
			groups.GET("/:id", groupHandler.GetUserGroup)
			groups.PUT("/:id", groupHandler.UpdateUserGroup)
			groups.DELETE("/:id", groupHandler.DeleteUserGroup)
		}

		users := protected.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.DELETE("/:id", userHandler.DeleteUser)
			users.GET("/:id/current-assessment", userHandler.GetCurrentAssessment)
		}

		assessments := protected.Group("/assessments")
		{
			assessments.GET("", assessmentHandler.ListAssessments)
			assessments.POST("", assessmentHandler.CreateAssessment)
			assessments.GET("/:id", assessmentHandler.GetAssessment)
			assessments.PATCH("/:id", assessmentHandler.UpdateAssessment)
			assessments.DELETE("/:id", assessmentHandler.DeleteAssessment)
			assessments.POST("/:id/activate", assessmentHandler.ActivateAssessment)
			assessments.GET("/:id/question-sets", questionSetHandler.ListAssessmentQuestionSets)
			assessments.GET("/:id/active-question-set", questionSetHandler.GetActiveQuestionSet)
		}

		questions := protected.Group("/questions")
		{
			questions.GET("", questionHandler.ListQuestions)
			questions.POST("", questionHandler.CreateQuestion)
			questions.GET("/:id", questionHandler.GetQuestion)
			questions.PATCH("/:id", questionHandler.UpdateQuestion)
			questions.DELETE("/:id", questionHandler.DeleteQuestion)
			questions.GET("/:id/option-sets", optionSetHandler.ListQuestionOptionSets)
			questions.GET("/:id/active-option-set", optionSetHandler.GetActiveOptionSet)
		}

		questionSets := protected.Group("/question-sets")
		{
			questionSets.POST("", questionSetHandler.CreateQuestionSet)
			questionSets.GET("/:id", questionSetHandler.GetQuestionSet)
			questionSets.DELETE("/:id", questionSetHandler.DeleteQuestionSet)
			questionSets.POST("/:id/activate", questionSetHandler.ActivateQuestionSet)
			questionSets.GET("/:id/questions", questionHandler.ListQuestionSetQuestions)
			questionSets.GET("/:id/results", submissionHandler.GetQuestionSetResults)
			questionSets.GET("/:id/submissions/export", submissionHandler.ExportQuestionSetSubmissions)
		}

		optionSets := protected.Group("/option-sets")
		{
			optionSets.POST("", optionSetHandler.CreateOptionSet)
			optionSets.GET("/:id", optionSetHandler.GetOptionSet)
			optionSets.DELETE("/:id", optionSetHandler.DeleteOptionSet)
			optionSets.POST("/:id/activate", optionSetHandler.ActivateOptionSet)
		}

		options := protected.Group("/options")
		{
			options.GET("", optionHandler.ListOptions)
			options.POST("", optionHandler.CreateOption)
			options.GET("/:id", optionHandler.GetOption)
			options.PATCH("/:id", optionHandler.UpdateOption)
			options.DELETE("/:id", optionHandler.DeleteOption)
		}

		submissions := protected.Group("/submissions")
		{
			submissions.GET("", submissionHandler.ListSubmissions)
			submissions.POST("", submissionHandler.CreateSubmission)
			submissions.GET("/:id", submissionHandler.GetSubmission)
			submissions.DELETE("/:id", submissionHandler.DeleteSubmission)
		}
	}

	return r
}
