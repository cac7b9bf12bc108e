package main

import (
	"github.com/parskala/internal/config"
	"github.com/parskala/internal/logger"
	"github.com/parskala/internal/models"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 初始化默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{
			Slug:        "mobile-phones",
			Name:        "گوشی موبایل",
			Description: "انواع گوشی هوشمند با گارانتی معتبر",
			SortOrder:   1,
			IsActive:    true,
		},
		{
			Slug:        "laptops",
			Name:        "لپ‌تاپ",
			Description: "لپ‌تاپ‌های اداری و گیمینگ",
			SortOrder:   2,
			IsActive:    true,
		},
		{
			Slug:        "accessories",
			Name:        "لوازم جانبی",
			Description: "هدفون، پاوربانک و سایر لوازم جانبی",
			SortOrder:   3,
			IsActive:    true,
		},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			// 不存在则创建
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"mobile-phones", "laptops", "accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}
	phonesID := categoryIDs["mobile-phones"]
	laptopsID := categoryIDs["laptops"]
	accessoriesID := categoryIDs["accessories"]

	discount := func(v float64) *models.Money {
		m := models.NewMoneyFromDecimal(decimal.NewFromFloat(v))
		return &m
	}

	// 添加商品
	products := []models.Product{
		{
			Slug:        "galaxy-a55",
			Name:        "گوشی سامسونگ Galaxy A55",
			Description: "گوشی هوشمند با صفحه نمایش ۶.۶ اینچی و دوربین ۵۰ مگاپیکسلی",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(21500000)),
			CategoryID:  phonesID,
			Images: models.StringArray([]string{
				"/uploads/products/galaxy-a55-front.jpg",
				"/uploads/products/galaxy-a55-back.jpg",
			}),
			Specifications: models.SpecList([]models.SpecPair{
				{Key: "حافظه داخلی", Value: "۲۵۶ گیگابایت"},
				{Key: "رم", Value: "۸ گیگابایت"},
				{Key: "باتری", Value: "۵۰۰۰ میلی‌آمپر ساعت"},
			}),
			StockQuantity: 15,
			IsActive:      true,
			IsFeatured:    true,
			SortOrder:     1,
		},
		{
			Slug:          "redmi-note-13",
			Name:          "گوشی شیائومی Redmi Note 13",
			Description:   "گوشی اقتصادی با دوربین ۱۰۸ مگاپیکسلی",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(13800000)),
			DiscountPrice: discount(12900000),
			CategoryID:    phonesID,
			Images: models.StringArray([]string{
				"/uploads/products/redmi-note-13.jpg",
			}),
			Specifications: models.SpecList([]models.SpecPair{
				{Key: "حافظه داخلی", Value: "۱۲۸ گیگابایت"},
				{Key: "رم", Value: "۶ گیگابایت"},
			}),
			StockQuantity: 30,
			IsActive:      true,
			SortOrder:     2,
		},
		{
			Slug:        "asus-vivobook-15",
			Name:        "لپ‌تاپ ایسوس VivoBook 15",
			Description: "لپ‌تاپ ۱۵.۶ اینچی مناسب کارهای اداری و دانشجویی",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(38500000)),
			CategoryID:  laptopsID,
			Images: models.StringArray([]string{
				"/uploads/products/vivobook-15.jpg",
			}),
			Specifications: models.SpecList([]models.SpecPair{
				{Key: "پردازنده", Value: "Core i5 نسل ۱۲"},
				{Key: "رم", Value: "۱۶ گیگابایت"},
				{Key: "حافظه", Value: "۵۱۲ گیگابایت SSD"},
			}),
			StockQuantity: 8,
			IsActive:      true,
			IsFeatured:    true,
			SortOrder:     1,
		},
		{
			Slug:          "anker-powerbank-20000",
			Name:          "پاوربانک انکر ۲۰۰۰۰ میلی‌آمپر",
			Description:   "پاوربانک با شارژ سریع ۲۲.۵ وات و دو خروجی USB",
			Price:         models.NewMoneyFromDecimal(decimal.NewFromFloat(2450000)),
			DiscountPrice: discount(2190000),
			CategoryID:    accessoriesID,
			Images: models.StringArray([]string{
				"/uploads/products/anker-powerbank.jpg",
			}),
			StockQuantity: 50,
			IsActive:      true,
			SortOrder:     1,
		},
		{
			Slug:        "soundcore-q30",
			Name:        "هدفون بی‌سیم Soundcore Q30",
			Description: "هدفون با حذف نویز فعال و ۴۰ ساعت شارژدهی",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(3900000)),
			CategoryID:  accessoriesID,
			Images: models.StringArray([]string{
				"/uploads/products/soundcore-q30.jpg",
			}),
			StockQuantity: 0,
			IsActive:      true,
			SortOrder:     2,
		},
		{
			Slug:        "windows-11-pro-license",
			Name:        "لایسنس اورجینال ویندوز ۱۱ پرو",
			Description: "کد فعال‌سازی قانونی ویندوز ۱۱ پرو، ارسال از طریق ایمیل پس از تایید پرداخت",
			ProductType: models.ProductTypeDigital,
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(4800000)),
			CategoryID:  accessoriesID,
			Images: models.StringArray([]string{
				"/uploads/products/windows-11-pro.jpg",
			}),
			IsActive:  true,
			SortOrder: 3,
		},
	}

	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 添加视频教程
	tutorials := []models.Tutorial{
		{
			Title:       "آموزش ثبت سفارش و پرداخت کارت به کارت",
			Description: "راهنمای گام به گام خرید از فروشگاه و بارگذاری رسید پرداخت",
			VideoURL:    "https://www.aparat.com/v/parskala-checkout",
			VideoType:   models.TutorialVideoTypeEmbed,
			Category:    "خرید",
			Duration:    "06:45",
			IsFree:      true,
			IsActive:    true,
			SortOrder:   1,
		},
		{
			Title:       "راه‌اندازی اولیه گوشی سامسونگ",
			Description: "تنظیمات اولیه، انتقال اطلاعات و نکات امنیتی",
			VideoURL:    "/uploads/videos/samsung-setup.mp4",
			VideoType:   models.TutorialVideoTypeUpload,
			Thumbnail:   "/uploads/videos/samsung-setup-cover.jpg",
			Category:    "موبایل",
			Duration:    "12:30",
			IsFree:      true,
			IsActive:    true,
			SortOrder:   2,
		},
		{
			Title:       "نگهداری باتری لپ‌تاپ",
			Description: "نکات افزایش عمر باتری ویژه مشتریان",
			VideoURL:    "https://www.aparat.com/v/parskala-battery",
			VideoType:   models.TutorialVideoTypeEmbed,
			Category:    "لپ‌تاپ",
			Duration:    "08:10",
			IsFree:      false,
			IsActive:    true,
			SortOrder:   3,
		},
	}

	for _, tutorial := range tutorials {
		var existing models.Tutorial
		if err := models.DB.Where("title = ?", tutorial.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&tutorial).Error; err != nil {
				stdLog.Printf("Failed to create tutorial %s: %v", tutorial.Title, err)
			} else {
				stdLog.Printf("Created tutorial: %s", tutorial.Title)
			}
		} else {
			stdLog.Printf("Tutorial already exists: %s", tutorial.Title)
		}
	}

	// 添加演示用户
	demoEmail := "demo@parskala.ir"
	var existingUser models.User
	if err := models.DB.Where("email = ?", demoEmail).First(&existingUser).Error; err != nil {
		hash, hashErr := bcrypt.GenerateFromPassword([]byte("demo123456"), bcrypt.DefaultCost)
		if hashErr != nil {
			stdLog.Printf("Failed to hash demo user password: %v", hashErr)
		} else {
			demoUser := models.User{
				Email:        demoEmail,
				PasswordHash: string(hash),
				DisplayName:  "کاربر آزمایشی",
				Status:       "active",
			}
			if err := models.DB.Create(&demoUser).Error; err != nil {
				stdLog.Printf("Failed to create demo user: %v", err)
			} else {
				stdLog.Printf("Created demo user: %s", demoEmail)
			}
		}
	} else {
		stdLog.Printf("Demo user already exists: %s", demoEmail)
	}

	stdLog.Printf("Seed completed")
}
