package main

import (
	"log"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	"app/internal/infra/ledger"
	infraRepo "app/internal/infra/repository"
	repo "app/internal/repository"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
)

func main() {
	//.envは無くても起動できる（本番は環境変数で渡す）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := gormDB.AutoMigrate(
		&model.Listing{},
		&model.Cart{},
		&model.CartItem{},
		&model.Payment{},
		&model.Order{},
		&model.OrderItem{},
	); err != nil {
		log.Fatalf("migrate failed: %v", err)
	}

	//冪等台帳。Redisがあれば共有台帳、無ければメモリ実装
	var led repo.IdempotencyLedger
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       0,
		})
		defer client.Close()
		led = ledger.NewRedisLedger(client)
		log.Printf("idempotency ledger: redis at %s", cfg.RedisAddr)
	} else {
		led = ledger.NewMemoryLedger()
		log.Printf("idempotency ledger: in-memory")
	}

	//Repository（GORM実装）生成
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	listingRepo := infraRepo.NewListingGormRepository(gormDB)
	txManager := infraRepo.NewTxManagerGorm(gormDB)

	//Usecase生成
	cartUC := usecase.NewCartUsecase(cartRepo, cartItemRepo, listingRepo)
	checkoutUC := usecase.NewCheckoutUsecase(txManager, led)
	webhookUC := usecase.NewWebhookUsecase(txManager, led, cfg.WebhookSecret)
	orderUC := usecase.NewOrderUsecase(txManager)

	//Handler生成
	cartH := handler.NewCartHandler(cartUC)
	checkoutH := handler.NewCheckoutHandler(checkoutUC)
	webhookH := handler.NewWebhookHandler(webhookUC)
	orderH := handler.NewOrderHandler(orderUC)

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, cartH, checkoutH, orderH, webhookH); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
