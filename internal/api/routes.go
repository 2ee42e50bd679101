package api

import "github.com/gofiber/fiber/v2"

func RegisterRoutes(app *fiber.App, handler *Handler) {
	registerPageRoutes(app, handler)
	registerAPIRoutes(app, handler)
	app.Use(handler.NotFound)
}

func registerPageRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/favicon.ico", sendNoContent)
	app.Get("/lang/:lang", handler.SetLanguage)

	app.Get("/login", handler.ShowLogin)
	app.Post("/session", handler.CreateSession)
	app.Post("/session/logout", handler.SessionRequired, handler.Logout)

	app.Get("/onboarding", handler.SessionRequired, handler.OnboardingOnly(), handler.ShowOnboarding)
	app.Post("/onboarding", handler.SessionRequired, handler.OnboardingOnly(), handler.SubmitOnboarding)

	protected := handler.Protected()
	app.Get("/", handler.SessionRequired, protected, handler.ShowHome)
	app.Get("/dashboard", handler.SessionRequired, protected, handler.ShowDashboard)
	app.Get("/workouts", handler.SessionRequired, protected, handler.ShowWorkouts)
	app.Get("/profile", handler.SessionRequired, protected, handler.ShowProfile)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api", handler.SessionRequired)

	me := api.Group("/me")
	me.Get("", handler.GetMe)
	me.Post("", handler.UpdateMe)
	me.Delete("", handler.DeleteMe)
	me.Post("/notifications", handler.SetNotifications)
	me.Post("/picture", handler.UploadPicture)
	me.Get("/cache", handler.GetCachedUser)
	me.Delete("/cache", handler.ClearCachedUser)

	dashboard := api.Group("/dashboard")
	dashboard.Get("", handler.GetDashboard)
	dashboard.Post("/metrics", handler.SetMetric)
	dashboard.Post("/food", handler.AddFood)
	dashboard.Delete("/food/:index", handler.RemoveFood)
	dashboard.Post("/workouts/:index/toggle", handler.ToggleWorkout)
	dashboard.Post("/goals", handler.AddGoal)
	dashboard.Post("/goals/:index/toggle", handler.ToggleGoal)
	dashboard.Delete("/goals/:index", handler.RemoveGoal)

	workouts := api.Group("/workouts")
	workouts.Get("", handler.GetWorkouts)
	workouts.Post("/cards", handler.CreateCard)
	workouts.Delete("/cards/:id", handler.DeleteCard)
	workouts.Post("/cards/:id/favorite", handler.FavoriteCard)
	workouts.Delete("/cards/:id/favorite", handler.UnfavoriteCard)
	workouts.Post("/weekly", handler.AssignWeekly)
	workouts.Delete("/weekly", handler.UnassignWeekly)

	api.Get("/achievements", handler.ListAchievements)
	api.Get("/achievements/current", handler.CurrentAchievement)
	api.Delete("/achievements/current", handler.HideAchievement)

	api.Get("/notifications", handler.ListNotifications)
	api.Delete("/notifications/:id", handler.DeleteNotification)
	api.Post("/push", handler.ReceivePush)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
