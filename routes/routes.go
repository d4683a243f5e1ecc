package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillquest/backend/config"
	"github.com/skillquest/backend/controllers"
	"github.com/skillquest/backend/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)
	staffMiddleware := middleware.StaffMiddleware(db, cfg)

	app.Get("/api/auth/me", authMiddleware, authController.Me)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg)
	enrollmentsController := controllers.NewEnrollmentsController(db, cfg)
	quizzesController := controllers.NewQuizzesController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.ListCourses)
	courses.Get("/:id", coursesController.GetCourse)
	courses.Post("/:id/enroll", enrollmentsController.Enroll)
	courses.Get("/:id/access", enrollmentsController.CheckAccess)
	courses.Get("/:id/quizzes", quizzesController.ListCourseQuizzes)

	// Course management (admin or instructor)
	courses.Post("/", staffMiddleware, coursesController.CreateCourse)
	courses.Put("/:id", staffMiddleware, coursesController.UpdateCourse)
	courses.Delete("/:id", staffMiddleware, coursesController.DeleteCourse)
	courses.Post("/:id/lessons", staffMiddleware, coursesController.AddLesson)
	courses.Put("/:id/lessons/:lessonId", staffMiddleware, coursesController.UpdateLesson)
	courses.Delete("/:id/lessons/:lessonId", staffMiddleware, coursesController.DeleteLesson)
	courses.Post("/:id/quizzes", staffMiddleware, quizzesController.CreateQuiz)

	// Quizzes routes
	quizzes := app.Group("/api/quizzes", authMiddleware)
	quizzes.Get("/:id", quizzesController.GetQuiz)
	quizzes.Post("/:id/attempts", quizzesController.SubmitAttempt)
	quizzes.Post("/:id/questions", staffMiddleware, quizzesController.AddQuestion)

	// Progress routes
	progressController := controllers.NewProgressController(db, cfg)
	app.Post("/api/users/progress", authMiddleware, progressController.CompleteLesson)
	app.Get("/api/users/progress", authMiddleware, progressController.GetProgress)
	app.Get("/api/users/enrollments", authMiddleware, enrollmentsController.MyEnrollments)

	// Badges routes
	badgesController := controllers.NewBadgesController(db, cfg)
	app.Get("/api/badges", authMiddleware, badgesController.MyBadges)
	app.Get("/api/badges/catalog", authMiddleware, badgesController.Catalog)

	// Payments routes. The webhook authenticates with a shared secret
	// header instead of a user token.
	paymentsController := controllers.NewPaymentsController(db, cfg)
	app.Post("/api/payments", authMiddleware, paymentsController.CreatePayment)
	app.Get("/api/payments", authMiddleware, paymentsController.ListPayments)
	app.Post("/api/payments/webhook", paymentsController.Webhook)

	// Users routes
	usersController := controllers.NewUsersController(db, cfg)
	app.Get("/api/users", authMiddleware, adminMiddleware, usersController.ListUsers)
	app.Get("/api/users/leaderboard", authMiddleware, usersController.Leaderboard)
}
