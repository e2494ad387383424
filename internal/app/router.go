package app

import (
	"kidsphere_backend/internal/middleware"
	"kidsphere_backend/internal/model"
	"kidsphere_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.Health)
		api.POST("/register", c.auth.Register)
		api.POST("/login", c.auth.Login)

		// Gateway callback carries its own HMAC, not a user token.
		api.POST("/payments/confirm", c.payment.Confirm)
		api.GET("/plans", c.payment.Plans)

		// Public content; claims are attached when present.
		public := api.Group("")
		public.Use(middleware.OptionalAuthMiddleware())
		{
			public.GET("/news", c.news.Feed)
			public.GET("/news/:id", c.news.Get)
			public.GET("/debates", c.debate.List)
			public.GET("/debates/:id", c.debate.Get)
			public.GET("/quizzes", c.quiz.List)
			public.GET("/quizzes/:id", c.quiz.Get)
			public.GET("/knowledge", c.knowledge.List)
			public.GET("/knowledge/:id", c.knowledge.Get)
			public.GET("/tests", c.test.List)
			public.GET("/tests/:id", c.test.Get)
			public.GET("/subjects", c.subject.List)
			public.GET("/subjects/:id", c.subject.Get)
			public.GET("/careers", c.career.List)
			public.GET("/careers/:id", c.career.Get)
			public.GET("/challenges", c.challenge.List)
			public.GET("/badges", c.challenge.Badges)
		}

		authed := api.Group("")
		authed.Use(middleware.AuthMiddleware(), middleware.ActivityMiddleware(repos.user))
		{
			authed.GET("/me", c.auth.Me)
			authed.PUT("/me", c.user.UpdateProfile)

			authed.POST("/children", c.user.AddChild)
			authed.GET("/children", c.user.ListChildren)
			authed.PUT("/children/:id", c.user.UpdateChild)
			authed.DELETE("/children/:id", c.user.DeleteChild)

			authed.POST("/quizzes/:id/start", c.quiz.Start)
			authed.POST("/quizzes/:id/answers", c.quiz.Answer)
			authed.GET("/quizzes/:id/results", c.quiz.Results)

			authed.POST("/knowledge/:id/answers", c.knowledge.Answer)
			authed.GET("/knowledge/:id/results", c.knowledge.Results)

			authed.POST("/tests/:id/answers", c.test.Answer)
			authed.GET("/tests/:id/result", c.test.Result)

			authed.POST("/subjects/:id/answers", c.subject.Answer)
			authed.GET("/subjects/:id/result", c.subject.Result)

			authed.POST("/careers/:id/answers", c.career.Answer)
			authed.GET("/careers/:id/report", c.career.Report)

			authed.POST("/challenges/:id/tasks", c.challenge.RecordTask)
			authed.GET("/challenges/status", c.challenge.Status)

			authed.GET("/debates/:id/history", c.debate.History)

			// AI debate turns are premium content.
			premium := authed.Group("")
			premium.Use(middleware.PlanMiddleware(model.PlanPremium))
			{
				premium.POST("/debates/:id/turns", c.debate.Turn)
				premium.POST("/debates/:id/turns/stream", c.debate.TurnStream)
			}

			authed.POST("/folders", c.folder.Create)
			authed.GET("/folders", c.folder.List)
			authed.GET("/folders/:id", c.folder.Contents)
			authed.DELETE("/folders/:id", c.folder.Delete)
			authed.POST("/folders/:id/items", c.folder.SaveItem)
			authed.DELETE("/folders/:id/items/:itemType/:itemId", c.folder.RemoveItem)

			authed.POST("/payments/orders", c.payment.CreateOrder)
			authed.GET("/payments/orders", c.payment.Orders)
		}

		editor := api.Group("/admin")
		editor.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(model.Editor))
		{
			editor.GET("/news", c.news.ListAll)
			editor.POST("/news", c.news.Create)
			editor.PUT("/news/:id", c.news.Update)
			editor.PUT("/news/:id/publish", c.news.Publish)
			editor.DELETE("/news/:id", c.news.Delete)
			editor.POST("/news/upload", c.news.UploadImage)

			editor.GET("/debates", c.debate.ListAll)
			editor.POST("/debates", c.debate.Create)
			editor.PUT("/debates/:id", c.debate.Update)
			editor.DELETE("/debates/:id", c.debate.Delete)

			editor.POST("/quizzes", c.quiz.Create)
			editor.DELETE("/quizzes/:id", c.quiz.Delete)
			editor.POST("/knowledge", c.knowledge.Create)
			editor.POST("/tests", c.test.Create)
			editor.POST("/subjects", c.subject.Create)
			editor.POST("/careers", c.career.Create)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(model.Admin))
		{
			admin.GET("/users", c.user.ListUsers)
			admin.PUT("/users/:id/disable", c.user.DisableUser)
			admin.POST("/challenges", c.challenge.Create)
		}
	}
}
