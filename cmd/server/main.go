package main

import (
	"context"
	"log"
	"net/http"

	httpapi "quickbite/internal/api/http"
	"quickbite/internal/config"
	"quickbite/internal/service"
	"quickbite/internal/storage"
)

func main() {
	cfg := config.Load()

	db := config.MustInitPostgres()
	defer db.Close()

	if err := storage.EnsureSchema(db); err != nil {
		log.Fatal("Failed to ensure schema:", err)
	}
	if err := storage.SeedCatalog(db); err != nil {
		log.Fatal("Failed to seed catalog:", err)
	}

	rdb := config.MustInitRedis()
	defer rdb.Close()

	eventWriter := config.NewKafkaWriter("order-events")
	defer eventWriter.Close()

	statusReader := config.NewKafkaReader("order-status", "quickbite-status")
	defer statusReader.Close()

	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	catalog := storage.NewPostgresCatalog(db)
	state := storage.NewRedisStateStore(rdb)
	publisher := storage.NewKafkaOrderPublisher(eventWriter)
	rpc := storage.NewJSONRPCClient(cfg.RPCURL, httpClient)

	catalogSvc := service.NewCatalogService(catalog)
	cartSvc := service.NewCartService(state, catalog)
	userSvc := service.NewUserService(state)
	orderSvc := service.NewOrderService(state, state, state, publisher,
		service.NewOrderQRGenerator("http://localhost:"+cfg.ServerPort))
	walletSvc := service.NewWalletService(rpc, cfg.TokenContract, cfg.HistoryTimeout)
	weatherSvc := service.NewWeatherService(httpClient, cfg.WeatherBaseURL, cfg.WeatherGeoURL, cfg.WeatherAPIKey)

	consumer := service.NewStatusConsumer(statusReader, orderSvc)
	go consumer.Start(context.Background())

	handler := httpapi.NewHandler(catalogSvc, cartSvc, orderSvc, userSvc, walletSvc, weatherSvc)
	httpapi.StartServer(":"+cfg.ServerPort, httpapi.NewRouter(handler))
}
