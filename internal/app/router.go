package app

import (
	"studyhub_backend/docs"
	"studyhub_backend/internal/config"
	"studyhub_backend/internal/middleware"
	"studyhub_backend/internal/model"
	"studyhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	// 个人资料
	rg.GET("/profile", c.user.GetProfile)
	rg.PUT("/profile", c.user.UpdateProfile)
	rg.POST("/profile/avatar", c.user.UploadAvatar)

	// 模拟测试：浏览与作答
	rg.GET("/model-tests", c.modelTest.ListPublished)
	rg.GET("/model-tests/:id", c.modelTest.GetTest)
	rg.POST("/model-tests/:id/start", c.testAttempt.StartTest)
	rg.GET("/attempts", c.testAttempt.ListMyAttempts)
	rg.POST("/attempts/:id/answers", c.testAttempt.SubmitAnswer)
	rg.POST("/attempts/:id/finish", c.testAttempt.FinishTest)
	rg.GET("/attempts/:id/results", c.testAttempt.GetTestResults)

	// 笔记
	rg.POST("/notes", c.note.Create)
	rg.GET("/notes", c.note.List)
	rg.GET("/notes/:id", c.note.Get)
	rg.PUT("/notes/:id", c.note.Update)
	rg.DELETE("/notes/:id", c.note.Delete)
	rg.POST("/notes/:id/attachment", c.note.AttachFile)

	// 问答
	rg.POST("/questions", c.qa.CreateQuestion)
	rg.GET("/questions", c.qa.ListQuestions)
	rg.GET("/questions/:id", c.qa.GetQuestion)
	rg.DELETE("/questions/:id", c.qa.DeleteQuestion)
	rg.POST("/questions/:id/answers", c.qa.PostAnswer)
	rg.POST("/questions/:id/answers/:answerId/accept", c.qa.AcceptAnswer)
	rg.POST("/votes", c.qa.CastVote)
	rg.DELETE("/votes", c.qa.RetractVote)

	// 任务
	rg.POST("/tasks", c.task.Create)
	rg.GET("/tasks", c.task.List)
	rg.PUT("/tasks/:id", c.task.Update)
	rg.PUT("/tasks/:id/completion", c.task.SetCompleted)
	rg.DELETE("/tasks/:id", c.task.Delete)

	// 学习计时
	rg.POST("/study-sessions/start", c.session.Start)
	rg.POST("/study-sessions/:id/stop", c.session.Stop)
	rg.GET("/study-sessions", c.session.List)

	// 比赛
	rg.GET("/contests", c.contest.List)
	rg.GET("/contests/:id", c.contest.Get)
	rg.POST("/contests/:id/join", c.contest.Join)
	rg.GET("/contests/:id/leaderboard", c.contest.Leaderboard)

	// 通知
	rg.GET("/notifications", c.notification.List)
	rg.GET("/notifications/unread-count", c.notification.UnreadCount)
	rg.POST("/notifications/:id/read", c.notification.MarkRead)
	rg.POST("/notifications/read-all", c.notification.MarkAllRead)

	// 收藏
	rg.POST("/saved-items", c.savedItem.Save)
	rg.DELETE("/saved-items", c.savedItem.Unsave)
	rg.GET("/saved-items", c.savedItem.List)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/teacher")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/model-tests", c.modelTest.CreateTest)
		teacher.GET("/model-tests", c.modelTest.ListAll)
		teacher.PUT("/model-tests/:id", c.modelTest.UpdateTest)
		teacher.POST("/model-tests/:id/publish", c.modelTest.PublishTest)
		teacher.DELETE("/model-tests/:id", c.modelTest.DeleteTest)

		teacher.POST("/contests", c.contest.Create)
	}
}
