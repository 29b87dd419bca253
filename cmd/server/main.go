package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	api "github.com/glkeru/plagadmin/internal/api"
	db "github.com/glkeru/plagadmin/internal/db"
	kafka "github.com/glkeru/plagadmin/internal/external/kafka"
	rabbit "github.com/glkeru/plagadmin/internal/external/rabbitmq"
	interf "github.com/glkeru/plagadmin/internal/interfaces"
	model "github.com/glkeru/plagadmin/internal/models"
	service "github.com/glkeru/plagadmin/internal/services"
	otel "github.com/glkeru/plagadmin/observability/otel"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Источник пользователей на случай работы без базы бэкенда
type seedSource struct{}

func (seedSource) LoadUsers(ctx context.Context) ([]model.User, error) {
	return model.SeedUsers(), nil
}

func main() {
	// log
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	// config
	port := os.Getenv("ADMIN_PORT")
	if port == "" {
		panic("env ADMIN_PORT is not set")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// tracing
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown := otel.InitTracer(ctx)
		defer shutdown()
	}

	// хранилище настроек
	var store interf.ConfigStorage
	cf, err := db.NewConfigDB()
	if err != nil {
		panic(err)
	}
	store = cf

	// пользователи: база бэкенда или стартовые данные
	var source interf.UserSource
	pg, err := db.NewUsersDB(logger)
	if err != nil {
		logger.Error(err.Error())
		source = seedSource{}
	} else {
		source = pg
	}

	// cache
	var cache interf.SummaryCache
	cs, err := db.NewCacheService()
	if err != nil {
		logger.Error(err.Error())
	} else {
		cache = cs
	}

	// services
	users, err := service.NewUserLedger(source, logger)
	if err != nil {
		panic(err)
	}
	promos := service.NewPromoRegistry(model.SeedPromoCodes(), logger)
	pricing, err := service.NewPricingService(store, logger)
	if err != nil {
		panic(err)
	}
	checks := service.NewCheckFeed(model.SeedChecks(), users, cache, logger)

	// события пайплайна проверок
	reader, err := kafka.GetNewReader("checks")
	if err != nil {
		logger.Error(err.Error())
	} else {
		defer reader.CloseReader()
		go consumeChecks(ctx, logger, reader, checks)
	}

	// события погашения промокодов
	redeems, err := rabbit.NewRabbitConsumer()
	if err != nil {
		logger.Error(err.Error())
	} else {
		defer redeems.Close()
		go consumeRedeems(ctx, logger, redeems, promos, users)
	}

	// api handlers
	r := api.NewHandler(users, promos, pricing, checks, logger)
	srv := &http.Server{
		Handler:      otelhttp.NewHandler(r, "plagadmin"),
		Addr:         ":" + port,
		WriteTimeout: 10 * time.Second,
		ReadTimeout:  10 * time.Second,
	}
	go srv.ListenAndServe()

	// shutdown
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	<-interrupt
	cancel()
	timeout, tcancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer tcancel()
	err = srv.Shutdown(timeout)
	if err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}

// Чтение событий пайплайна проверок в журнал
func consumeChecks(ctx context.Context, logger *zap.Logger, reader *kafka.KafkaChecks, checks *service.CheckFeed) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
			event, err := reader.GetNewMessage(ctx)
			if err != nil {
				logger.Error(err.Error())
				return
			}
			entry, err := service.ParseCheckEvent(event)
			if err != nil {
				logger.Error(err.Error())
				continue
			}
			checks.Append(ctx, entry)
		}
	}
}

// Учет погашений: счетчик использования кода + начисление бонусов пользователю
func consumeRedeems(ctx context.Context, logger *zap.Logger, consumer *rabbit.RabbitConsumer, promos *service.PromoRegistry, users *service.UserLedger) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-consumer.Msg:
			if !ok {
				return
			}
			event, err := service.ParseRedeemEvent(string(msg.Body))
			if err != nil {
				logger.Error(err.Error())
				continue
			}
			success := true
			promo, err := promos.RecordUse(event.Code)
			if err != nil {
				logger.Error(err.Error())
				success = false
			} else {
				_, err = users.AdjustBalance(event.UserID, strconv.Itoa(promo.BonusAmount), "promo "+promo.Code)
				if err != nil {
					logger.Error(err.Error())
					success = false
				}
			}
			err = consumer.Processed(ctx, event.RedeemID, success)
			if err != nil {
				logger.Error(err.Error())
			}
		}
	}
}
