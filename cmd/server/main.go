package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yunwei-iot/ams-backend/internal/config"
	"github.com/yunwei-iot/ams-backend/internal/database"
	"github.com/yunwei-iot/ams-backend/internal/handler"
	"github.com/yunwei-iot/ams-backend/internal/middleware"
	"github.com/yunwei-iot/ams-backend/internal/migration"
	"github.com/yunwei-iot/ams-backend/internal/redis"
	"github.com/yunwei-iot/ams-backend/internal/repository"
	"github.com/yunwei-iot/ams-backend/internal/service"
	"github.com/yunwei-iot/ams-backend/pkg/response"
	"github.com/yunwei-iot/ams-backend/web"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 初始化数据库连接
	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}
	defer database.Close()
	log.Println("数据库连接成功")

	// 初始化 Redis 连接
	if err := redis.Init(&cfg.Redis); err != nil {
		log.Fatalf("初始化 Redis 失败: %v", err)
	}
	defer redis.Close()
	log.Println("Redis 连接成功")

	// 执行数据库迁移
	results, err := migration.NewRunner(database.GetDB()).Run(migration.All())
	if err != nil {
		for _, r := range results {
			if r.Status == migration.StatusFailed {
				log.Printf("迁移 %s 失败: %v", r.Name, r.Err)
			}
		}
		log.Fatalf("数据库迁移失败: %v", err)
	}
	log.Println("数据库迁移完成")

	// 初始化 Repository
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	deviceRepo := repository.NewDeviceRepository(db)
	alertRepo := repository.NewAlertRepository(db)
	orderRepo := repository.NewWorkOrderRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	articleRepo := repository.NewArticleRepository(db)
	fileRepo := repository.NewFileInfoRepository(db)
	catRepo := repository.NewFileCategoryRepository(db)
	settingRepo := repository.NewSettingRepository(db)
	themeRepo := repository.NewThemeRepository(db)
	recordRepo := repository.NewLoginRecordRepository(db)

	// 初始化 Service
	userService := service.NewUserService(userRepo)
	tokenService := service.NewTokenService(&cfg.JWT)
	recordService := service.NewLoginRecordService(recordRepo)
	authService := service.NewAuthService(userService, tokenService, recordService)
	deviceService := service.NewDeviceService(deviceRepo, alertRepo)
	alertService := service.NewAlertService(alertRepo, deviceRepo, messageRepo, userRepo, settingRepo)
	orderService := service.NewWorkOrderService(orderRepo, messageRepo)
	messageService := service.NewMessageService(messageRepo, userRepo)
	articleService := service.NewArticleService(articleRepo)
	fileService := service.NewFileService(fileRepo, catRepo, &cfg.OSS)
	settingService := service.NewSettingService(settingRepo, cfg.Settings.SnapshotTTL)
	themeService := service.NewThemeService(themeRepo)

	// 初始化 Handler
	authHandler := handler.NewAuthHandler(authService, userService)
	userHandler := handler.NewUserHandler(userService)
	deviceHandler := handler.NewDeviceHandler(deviceService)
	alertHandler := handler.NewAlertHandler(alertService)
	orderHandler := handler.NewWorkOrderHandler(orderService)
	messageHandler := handler.NewMessageHandler(messageService)
	articleHandler := handler.NewArticleHandler(articleService)
	fileHandler := handler.NewFileHandler(fileService)
	settingHandler := handler.NewSettingHandler(settingService)
	themeHandler := handler.NewThemeHandler(themeService)
	recordHandler := handler.NewLoginRecordHandler(recordService)

	// 设置 Gin 模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()

	// 全局中间件
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	// 健康检查
	router.GET("/health", func(c *gin.Context) {
		dbStatus := "ok"
		if err := database.Ping(); err != nil {
			dbStatus = "error"
		}

		redisStatus := "ok"
		redisClient := redis.GetClient()
		if redisClient == nil {
			redisStatus = "error"
		} else if err := redisClient.Ping(c.Request.Context()).Err(); err != nil {
			redisStatus = "error"
		}

		response.Success(c, gin.H{
			"status":   "ok",
			"time":     time.Now().Format(time.RFC3339),
			"database": dbStatus,
			"redis":    redisStatus,
		})
	})

	// API 路由组
	api := router.Group("/api/v1")
	{
		// 认证路由（公开）
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/refresh", authHandler.Refresh)
		}

		// 公开路由：前端初始化配置与已发布内容
		public := api.Group("/public")
		public.Use(middleware.OptionalJWTAuth(tokenService))
		{
			public.GET("/config", settingHandler.PublicConfig)
			public.GET("/articles", articleHandler.ListPublic)
			public.GET("/articles/:id", articleHandler.GetPublic)
		}

		// 需要登录的路由
		authed := api.Group("")
		authed.Use(middleware.JWTAuth(tokenService))
		{
			authed.GET("/auth/profile", authHandler.Profile)
			authed.PUT("/auth/password", authHandler.ChangePassword)

			// 设备
			authed.GET("/devices", deviceHandler.List)
			authed.GET("/devices/markers", deviceHandler.Markers)
			authed.GET("/devices/overview", deviceHandler.Overview)
			authed.GET("/devices/:id", deviceHandler.Get)
			authed.POST("/devices", deviceHandler.Create)
			authed.PUT("/devices/:id", deviceHandler.Update)
			authed.PUT("/devices/:id/status", deviceHandler.UpdateStatus)

			// 告警
			authed.GET("/alerts", alertHandler.List)
			authed.GET("/alerts/:id", alertHandler.Get)
			authed.POST("/alerts", alertHandler.Report)
			authed.PUT("/alerts/:id/handle", alertHandler.Handle)

			// 工单
			authed.GET("/work-orders", orderHandler.List)
			authed.GET("/work-orders/:id", orderHandler.Get)
			authed.POST("/work-orders", orderHandler.Create)
			authed.PUT("/work-orders/:id/assign", orderHandler.Assign)
			authed.PUT("/work-orders/:id/finish", orderHandler.Finish)
			authed.PUT("/work-orders/:id/close", orderHandler.Close)

			// 我的消息
			authed.GET("/messages", messageHandler.ListMine)
			authed.GET("/messages/unread-count", messageHandler.UnreadCount)
			authed.PUT("/messages/:id/read", messageHandler.MarkRead)
			authed.DELETE("/messages/:id", messageHandler.Delete)

			// 文件
			authed.GET("/files/upload-policy", fileHandler.UploadPolicy)
			authed.POST("/files", fileHandler.Save)
			authed.GET("/files", fileHandler.List)
			authed.GET("/file-categories", fileHandler.ListCategories)

			// 个人主题
			authed.GET("/theme", themeHandler.Get)
			authed.PUT("/theme", themeHandler.Save)
			authed.POST("/theme/reset", themeHandler.Reset)

			// 仅管理员的路由
			admin := authed.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/users", userHandler.List)
				admin.GET("/users/:id", userHandler.Get)
				admin.POST("/users", userHandler.Create)
				admin.PUT("/users/:id", userHandler.Update)
				admin.PUT("/users/:id/status", userHandler.SetStatus)
				admin.DELETE("/users/:id", userHandler.Delete)

				admin.PUT("/devices/:id/enabled", deviceHandler.SetEnabled)
				admin.DELETE("/devices/:id", deviceHandler.Delete)
				admin.DELETE("/alerts/:id", alertHandler.Delete)
				admin.DELETE("/work-orders/:id", orderHandler.Delete)

				admin.POST("/messages/send", messageHandler.Send)
				admin.POST("/messages/broadcast", messageHandler.Broadcast)

				admin.DELETE("/files/:id", fileHandler.Delete)
				admin.POST("/file-categories", fileHandler.CreateCategory)
				admin.PUT("/file-categories/:id", fileHandler.UpdateCategory)
				admin.DELETE("/file-categories/:id", fileHandler.DeleteCategory)

				admin.GET("/articles", articleHandler.List)
				admin.GET("/articles/:id", articleHandler.Get)
				admin.POST("/articles", articleHandler.Create)
				admin.PUT("/articles/:id", articleHandler.Update)
				admin.PUT("/articles/:id/audit", articleHandler.Audit)
				admin.DELETE("/articles/:id", articleHandler.Delete)

				admin.GET("/settings", settingHandler.List)
				admin.PUT("/settings", settingHandler.UpdateBatch)
				admin.POST("/settings/reset", settingHandler.Reset)

				admin.GET("/login-records", recordHandler.List)
				admin.GET("/login-records/markers", recordHandler.Markers)
			}
		}
	}

	// 管理后台静态页面，未匹配的路径回退到前端路由
	router.NoRoute(web.NewStaticHandler("").SPAHandler())

	// 创建 HTTP 服务器
	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		log.Printf("服务启动，监听地址: %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，等待 5 秒
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务关闭失败: %v", err)
	}

	database.Close()
	redis.Close()

	log.Println("服务已关闭")
}
