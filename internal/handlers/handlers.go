package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/bintangginanjar/Personal-Portfolio-API/internal/cache"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/config"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/middleware"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/models"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/repository"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/security"
	"github.com/bintangginanjar/Personal-Portfolio-API/internal/service"
)

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	keyring     *security.Keyring
	authService *service.AuthService
	db          *pgxpool.Pool
	cache       *redis.Client
	userCache   *cache.UserStore
	users       repository.Users
	profiles    repository.Profiles
	projects    repository.Projects
	images      repository.ProjectImages
	skills      repository.Skills
	services    repository.Services
	socials     repository.SocialAccounts
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, redisClient *redis.Client, keyring *security.Keyring, cfg *config.AppConfig) HandlerSet {
	users := repository.NewPostgresUsers(db)

	var userStore *cache.UserStore
	if redisClient != nil {
		userStore = cache.NewUserStore(redisClient, cfg.Redis.UserTTL, log)
	}

	var tokenCache service.TokenCache
	if userStore != nil {
		tokenCache = userStore
	}
	auth := service.NewAuthService(users, keyring, tokenCache, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		keyring:     keyring,
		authService: auth,
		db:          db,
		cache:       redisClient,
		userCache:   userStore,
		users:       users,
		profiles:    repository.NewPostgresProfiles(db),
		projects:    repository.NewPostgresProjects(db),
		images:      repository.NewPostgresProjectImages(db),
		skills:      repository.NewPostgresSkills(db),
		services:    repository.NewPostgresServices(db),
		socials:     repository.NewPostgresSocialAccounts(db),
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	router.POST("/users", h.RegisterUser)
	router.POST("/auth/login", h.Login)

	var userCache middleware.UserCache
	if h.userCache != nil {
		userCache = h.userCache
	}

	protected := router.Group("")
	protected.Use(
		middleware.Auth(h.keyring, h.users, userCache),
		middleware.RequireRoles(models.RoleAdmin),
	)

	protected.DELETE("/auth/logout", h.Logout)

	protected.GET("/users/current", h.CurrentUser)
	protected.PATCH("/users/current", h.UpdateCurrentUser)

	protected.POST("/users/profiles", h.RegisterProfile)
	protected.GET("/users/profiles", h.GetProfile)
	protected.PATCH("/users/profiles", h.UpdateProfile)
	protected.DELETE("/users/profiles", h.DeleteProfile)

	protected.POST("/users/projects", h.RegisterProject)
	protected.GET("/users/projects/:projectId", h.GetProject)
	protected.GET("/users/project/list", h.ListProjects)
	protected.PATCH("/users/projects/:projectId", h.UpdateProject)
	protected.DELETE("/users/projects/:projectId", h.DeleteProject)

	protected.POST("/users/projects/:projectId", h.RegisterImage)
	protected.GET("/users/projects/:projectId/image/:imageId", h.GetImage)
	protected.GET("/users/projects/images/list", h.ListImages)
	protected.PATCH("/users/projects/:projectId/image/:imageId", h.UpdateImage)
	protected.DELETE("/users/projects/:projectId/image/:imageId", h.DeleteImage)

	protected.POST("/users/skills", h.RegisterSkill)
	protected.GET("/users/skills/:skillId", h.GetSkill)
	protected.GET("/users/skills", h.ListSkills)
	protected.PATCH("/users/skills/:skillId", h.UpdateSkill)
	protected.DELETE("/users/skills/:skillId", h.DeleteSkill)

	protected.POST("/users/services", h.RegisterService)
	protected.GET("/users/services/:serviceId", h.GetService)
	protected.GET("/users/services/list", h.ListServices)
	protected.PATCH("/users/services/:serviceId", h.UpdateService)
	protected.DELETE("/users/services/:serviceId", h.DeleteService)

	protected.POST("/users/socials", h.RegisterSocialAccount)
	protected.GET("/users/socials/:socialId", h.GetSocialAccount)
	protected.GET("/users/socials/list", h.ListSocialAccounts)
	protected.PATCH("/users/socials/:socialId", h.UpdateSocialAccount)
	protected.DELETE("/users/socials/:socialId", h.DeleteSocialAccount)
}
