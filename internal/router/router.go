package router

import (
	"Supply_Library/internal/config"
	"Supply_Library/internal/handler"
	"Supply_Library/internal/middleware"
	"Supply_Library/internal/pkg"
	"Supply_Library/internal/repository/redis"
	"Supply_Library/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func InitRouter(cfg *config.Config, db *gorm.DB, log *zap.Logger) *gin.Engine {
	r := gin.Default()

	emailCfg := pkg.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.SMTPFrom,
	}

	emailSvc := service.NewEmailService(emailCfg)
	userSvc := service.NewUserService(db, emailSvc)
	profileSvc := service.NewProfileService(db, cfg.AvatarDir)
	communitySvc := service.NewCommunityService(db, redis.NewMemberCountCache())
	invitationSvc := service.NewInvitationService(db, emailSvc, log)
	itemSvc := service.NewItemService(db)
	sheetSvc := service.NewSheetService(cfg.SheetCSVURL)

	user := handler.NewUserHandler(userSvc)
	email := handler.NewEmailHandler(emailSvc)
	profile := handler.NewProfileHandler(profileSvc)
	community := handler.NewCommunityHandler(communitySvc, profileSvc)
	invitation := handler.NewInvitationHandler(invitationSvc, profileSvc)
	item := handler.NewItemHandler(itemSvc)
	sheet := handler.NewSheetHandler(sheetSvc)

	// 头像静态目录和指标
	r.Static("/avatars", cfg.AvatarDir)
	r.GET("/metrics", gin.WrapH(pkg.MetricsHandler()))

	// 邮件相关接口
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", email.SendCode)
	}

	// 用户相关接口
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", user.Register)
		userGroup.POST("/login", user.Login)
		userGroup.POST("/reset", user.ResetPassword)
	}

	// token相关接口
	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", user.TokenRefresh)
	}

	// 登录态接口
	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware())
	{
		authGroup.POST("/logout", user.Logout)
		authGroup.POST("/change-password", user.ChangePassword)
	}

	// profile相关接口
	profileGroup := r.Group("/api/profile")
	profileGroup.Use(middleware.AuthMiddleware())
	{
		profileGroup.GET("", profile.Me)
		profileGroup.PUT("", profile.Update)
		profileGroup.POST("/avatar", profile.UploadAvatar)
	}

	// 社区相关接口
	communityGroup := r.Group("/api/community")
	communityGroup.Use(middleware.AuthMiddleware())
	{
		communityGroup.POST("/create", community.Create)
		communityGroup.GET("/list", community.List)
		communityGroup.GET("/:id", community.Detail)
		communityGroup.POST("/:id/join", community.Join)
		communityGroup.POST("/:id/leave", community.Leave)
		communityGroup.GET("/:id/members", community.Members)
		communityGroup.POST("/:id/avatar", community.UploadAvatar)
		communityGroup.GET("/:id/items", item.CommunityItems)
		communityGroup.POST("/:id/items", item.CreateInCommunity)
		communityGroup.POST("/:id/invite", invitation.Invite)
		communityGroup.GET("/:id/invitations", invitation.CommunityList)
	}

	// 邀请相关接口
	invitationGroup := r.Group("/api/invitation")
	invitationGroup.Use(middleware.AuthMiddleware())
	{
		invitationGroup.GET("/list", invitation.MyList)
		invitationGroup.POST("/:id/respond", invitation.Respond)
	}

	// 物品相关接口
	itemGroup := r.Group("/api/item")
	itemGroup.Use(middleware.AuthMiddleware())
	{
		itemGroup.POST("/create", item.CreatePersonal)
		itemGroup.POST("/:id/share", item.Share)
		itemGroup.GET("/mine/search", item.SearchOwn)
		itemGroup.GET("/accessible", item.Accessible)
		itemGroup.GET("/search", item.Search)
	}

	// 旧版表格导入，只读
	sheetGroup := r.Group("/api/sheet")
	{
		sheetGroup.GET("/items", sheet.Items)
	}

	return r
}
