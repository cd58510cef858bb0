package container

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hibiken/asynq"

	"blogpress-backend/internal/config"
	infraCache "blogpress-backend/internal/infrastructure/cache"
	"blogpress-backend/internal/infrastructure/database"
	"blogpress-backend/internal/infrastructure/email"
	"blogpress-backend/pkg/cache"
	"blogpress-backend/pkg/jwt"

	"blogpress-backend/internal/domains/blog"
	blogHandler "blogpress-backend/internal/domains/blog/handler"
	blogRepo "blogpress-backend/internal/domains/blog/repository"
	blogService "blogpress-backend/internal/domains/blog/service"
	"blogpress-backend/internal/domains/comment"
	commentHandler "blogpress-backend/internal/domains/comment/handler"
	commentRepo "blogpress-backend/internal/domains/comment/repository"
	commentService "blogpress-backend/internal/domains/comment/service"
	"blogpress-backend/internal/domains/otp"
	otpRepo "blogpress-backend/internal/domains/otp/repository"
	otpService "blogpress-backend/internal/domains/otp/service"
	"blogpress-backend/internal/domains/tag"
	tagHandler "blogpress-backend/internal/domains/tag/handler"
	tagRepo "blogpress-backend/internal/domains/tag/repository"
	tagService "blogpress-backend/internal/domains/tag/service"
	"blogpress-backend/internal/domains/user"
	userHandler "blogpress-backend/internal/domains/user/handler"
	userRepo "blogpress-backend/internal/domains/user/repository"
	userService "blogpress-backend/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
// Pattern: Service Locator + Dependency Injection
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	// Shared across all domains - lifecycle: singleton

	Config      *config.Config       // Application config
	DB          *database.PostgresDB // Database connection pool
	Cache       cache.Cache          // Redis cache (interface)
	JWTManager  *jwt.Manager
	AsynqClient *asynq.Client // Task queue producer

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================

	UserRepo    user.Repository
	OTPRepo     otp.Repository
	BlogRepo    blog.Repository
	CommentRepo comment.Repository
	TagRepo     tag.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================

	UserService    user.Service
	OTPService     otp.Service
	BlogService    blog.Service
	CommentService comment.Service
	TagService     tag.Service

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================

	UserHandler    *userHandler.UserHandler
	BlogHandler    *blogHandler.BlogHandler
	CommentHandler *commentHandler.CommentHandler
	TagHandler     *tagHandler.TagHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer tạo và initialize toàn bộ dependency graph
//
// QUAN TRỌNG: Thứ tự initialization:
// 1. Config (không phụ thuộc gì)
// 2. Infrastructure (DB, Cache, Asynq) - phụ thuộc Config
// 3. Repositories - phụ thuộc Infrastructure
// 4. Services - phụ thuộc Repositories
// 5. Handlers - phụ thuộc Services
//
// Nếu thứ tự sai → panic (nil pointer dereference)
func NewContainer() (*Container, error) {
	log.Println("🔧 Initializing DI Container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	log.Println("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	log.Printf("✅ Config loaded (Environment: %s)", cfg.App.Environment)

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	log.Println("🗄️  Connecting to PostgreSQL...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	db, err := database.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(context.Background()); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	log.Println("✅ Database connected")

	// ========================================
	// STEP 3: INITIALIZE CACHE + QUEUE CLIENT
	// ========================================
	log.Println("🔴 Connecting to Redis...")

	redisCache := infraCache.NewRedisCache(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)

	// Redis failure không critical - cache miss và rate limit fall open
	if err := redisCache.Ping(context.Background()); err != nil {
		log.Printf("⚠️  Redis connection failed (non-critical): %v", err)
	} else {
		log.Println("✅ Redis connected")
	}
	c.Cache = redisCache

	c.AsynqClient = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	c.JWTManager = jwt.NewManager(
		cfg.JWT.Secret,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
	)

	// ========================================
	// STEP 4: INITIALIZE REPOSITORIES
	// ========================================
	log.Println("📦 Initializing repositories...")
	c.initRepositories()
	log.Println("✅ Repositories initialized")

	// ========================================
	// STEP 5: INITIALIZE SERVICES
	// ========================================
	log.Println("⚙️  Initializing services...")
	c.initServices()
	log.Println("✅ Services initialized")

	// ========================================
	// STEP 6: INITIALIZE HANDLERS
	// ========================================
	log.Println("🎯 Initializing handlers...")
	c.initHandlers()
	log.Println("✅ Handlers initialized")

	log.Println("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

// initRepositories khởi tạo tất cả repositories
// Pattern: Constructor Injection
func (c *Container) initRepositories() {
	pool := c.DB.Pool

	// User repo có cache-aside layer nên cần cả Cache
	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache)
	c.OTPRepo = otpRepo.NewPostgresRepository(pool)
	c.TagRepo = tagRepo.NewPostgresRepository(pool)
	c.BlogRepo = blogRepo.NewPostgresRepository(pool, c.Cache)
	c.CommentRepo = commentRepo.NewPostgresRepository(pool)
}

// initServices khởi tạo tất cả services
func (c *Container) initServices() {
	// OTP service đứng trước vì user service phụ thuộc nó
	c.OTPService = otpService.NewOTPService(c.OTPRepo, c.Cache, c.Config.OTP)

	// Email gửi async qua task queue - worker process mới thật sự gửi SMTP
	mailer := email.NewAsyncDispatcher(c.AsynqClient)

	c.UserService = userService.NewUserService(
		c.UserRepo,
		c.OTPService,
		mailer,
		c.JWTManager,
	)

	c.TagService = tagService.NewTagService(c.TagRepo)

	// Blog service cần user repo (author filter) và tag service (find-or-create)
	c.BlogService = blogService.NewBlogService(
		c.BlogRepo,
		c.UserRepo,
		c.TagRepo,
		c.TagService,
	)

	c.CommentService = commentService.NewCommentService(c.CommentRepo, c.BlogRepo)
}

// initHandlers khởi tạo tất cả HTTP handlers
func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.BlogHandler = blogHandler.NewBlogHandler(c.BlogService)
	c.CommentHandler = commentHandler.NewCommentHandler(c.CommentService)
	c.TagHandler = tagHandler.NewTagHandler(c.TagService)
}

// ========================================
// CLEANUP
// ========================================

// Cleanup dọn dẹp resources khi shutdown
// Gọi trong graceful shutdown của server
func (c *Container) Cleanup() {
	log.Println("🧹 Cleaning up container resources...")

	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Printf("⚠️  Failed to close Asynq client: %v", err)
		} else {
			log.Println("✅ Asynq client closed")
		}
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Printf("⚠️  Failed to close Redis: %v", err)
			} else {
				log.Println("✅ Redis connections closed")
			}
		}
	}

	if c.DB != nil {
		c.DB.Close()
		log.Println("✅ Database connections closed")
	}
}
