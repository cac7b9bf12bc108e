package provider

import (
	"github.com/parskala/internal/cache"
	"github.com/parskala/internal/config"
	"github.com/parskala/internal/logger"
	"github.com/parskala/internal/models"
	"github.com/parskala/internal/queue"
	"github.com/parskala/internal/repository"
	"github.com/parskala/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo    repository.AdminRepository
	UserRepo     repository.UserRepository
	ProfileRepo  repository.ProfileRepository
	OrderRepo    repository.OrderRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	WishlistRepo repository.WishlistRepository
	CategoryRepo repository.CategoryRepository
	TicketRepo   repository.TicketRepository
	TutorialRepo repository.TutorialRepository
	DashboardRepo repository.DashboardRepository

	// Services
	AuthService      *service.AuthService
	UserAuthService  *service.UserAuthService
	EmailService     *service.EmailService
	UploadService    *service.UploadService
	ProductService   *service.ProductService
	CategoryService  *service.CategoryService
	CartService      *service.CartService
	OrderService     *service.OrderService
	TicketService    *service.TicketService
	TutorialService  *service.TutorialService
	WishlistService  *service.WishlistService
	DashboardService *service.DashboardService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.ProfileRepo = repository.NewProfileRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.TicketRepo = repository.NewTicketRepository(db)
	c.TutorialRepo = repository.NewTutorialRepository(db)
	c.DashboardRepo = repository.NewDashboardRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(c.Config, c.UserRepo, c.ProfileRepo)
	c.UploadService = service.NewUploadService(c.Config)
	c.ProductService = service.NewProductService(c.ProductRepo, c.CategoryRepo)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.ProductRepo, c.CartRepo, c.QueueClient, c.Config.Payment.Currency)
	c.TicketService = service.NewTicketService(c.TicketRepo, c.OrderRepo, c.QueueClient)
	c.TutorialService = service.NewTutorialService(c.TutorialRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.DashboardService = service.NewDashboardService(c.DashboardRepo, c.OrderRepo)
}
