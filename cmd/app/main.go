package main

import (
	"log"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	mt "github.com/Bimsaraimalka/bixlayclothing-v1-sub000/external/midtrans"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/external/rabbit"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/external/resend"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/external/smsgw"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/background"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/cart"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/db"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/middleware"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/pricing"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/repository"
	"github.com/Bimsaraimalka/bixlayclothing-v1-sub000/internal/services"
)

func main() {
	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect()
	if err != nil {
		log.Fatal(err)
	}
	defer pool.Close()

	queue := background.New(256)
	defer queue.Stop()

	pricingCfg := pricing.ConfigFromEnv()
	auth := middleware.NewAuth(os.Getenv("JWT_SECRET"), 72*time.Hour)

	// ======================
	// EXTERNALS
	// ======================
	var notifiers []services.Notifier

	if url := os.Getenv("RABBITMQ_URL"); url != "" {
		queueName := os.Getenv("ORDER_QUEUE_NAME")
		if queueName == "" {
			queueName = "order.notifications"
		}
		chPool, err := rabbit.NewChannelPool(url, queueName, 4)
		if err != nil {
			log.Fatal(err)
		}
		defer chPool.Close()
		notifiers = append(notifiers, rabbit.NewPublisher(chPool, queueName))
	}

	if os.Getenv("RESEND_API_KEY") != "" {
		from := os.Getenv("MAIL_FROM")
		if from == "" {
			from = "orders@bixlay.example.com"
		}
		mailer, err := resend.NewMailer(from)
		if err != nil {
			log.Fatal(err)
		}
		notifiers = append(notifiers, mailer)
	}

	if os.Getenv("SMS_API_KEY") != "" {
		sms, err := smsgw.NewClient()
		if err != nil {
			log.Fatal(err)
		}
		notifiers = append(notifiers, sms)
	}

	snapClient := mt.NewSnapClient()

	// ======================
	// REPOSITORIES
	// ======================
	authRepo := repository.NewAuthRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	productRepo := repository.NewProductRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	templateRepo := repository.NewTemplateRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	promoRepo := repository.NewPromoRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(authRepo, customerRepo)
	productSvc := services.NewProductService(productRepo, templateRepo)
	categorySvc := services.NewCategoryService(categoryRepo)
	templateSvc := services.NewTemplateService(templateRepo)
	promoSvc := services.NewPromoService(promoRepo)
	cartSvc := services.NewCartService(productRepo, cartRepo, customerRepo, promoSvc)
	orderSvc := services.NewOrderService(orderRepo, promoRepo, pricingCfg, queue, notifiers...)
	paymentSvc := services.NewPaymentService(paymentRepo, orderRepo, snapClient)

	sessions := cart.NewManager(queue)

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	api := e.Group("/bixlay")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc, cartSvc, sessions, auth)
	registerProductRoutes(api, productSvc, auth)
	registerCategoryRoutes(api, categorySvc, auth)
	registerTemplateRoutes(api, templateSvc, auth)
	registerPromoRoutes(api, promoSvc, auth)
	registerCartRoutes(api, cartSvc, sessions, pricingCfg, auth)
	registerOrderRoutes(api, orderSvc, authSvc, cartSvc, sessions, auth)
	registerPaymentRoutes(api, paymentSvc, auth)

	// ======================
	// SERVER
	// ======================
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
