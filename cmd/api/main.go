package main

import (
	"context"

	"Supply_Library/internal/config"
	"Supply_Library/internal/pkg"
	"Supply_Library/internal/repository/mysql"
	"Supply_Library/internal/repository/redis"
	"Supply_Library/internal/router"
	"Supply_Library/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := pkg.NewLogger(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	pkg.SetSecrets(cfg.AccessSecret, cfg.RefreshSecret)

	if err := mysql.InitDB(cfg.MySQLDSN); err != nil {
		log.Fatal("连接mysql失败", zap.Error(err))
	}
	if err := mysql.AutoMigrate(mysql.DB); err != nil {
		log.Fatal("自动建表失败", zap.Error(err))
	}

	// 连接redis
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		log.Fatal("连接redis失败", zap.Error(err))
	}
	defer redis.Close()

	// outbox事件投递，没配kafka就只打日志
	sender := service.LogSender(log)
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			log.Fatal("连接kafka失败", zap.Error(err))
		}
		defer producer.Close()
		sender = service.KafkaSender(producer)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go service.NewOutboxRelayer(mysql.DB, sender, log).Run(ctx)
	go service.NewMemberCountReconciler(mysql.DB, log).Run(ctx)

	// Gin
	r := router.InitRouter(cfg, mysql.DB, log)
	if err := r.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("http服务退出", zap.Error(err))
	}
}
