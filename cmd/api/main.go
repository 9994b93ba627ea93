package main

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/sngm3741/jobboard/api/internal/config"
	mongostore "github.com/sngm3741/jobboard/api/internal/infrastructure/mongo"
	"github.com/sngm3741/jobboard/api/internal/server"
	"github.com/sngm3741/jobboard/api/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("設定の読み込みに失敗しました: %v", err)
	}
	logger := cfg.Logger

	shutdownTracer, err := telemetry.InitTracer(context.Background(), "jobboard-api", cfg.OTELCollectorURL)
	if err != nil {
		logger.Fatal("トレーサーの初期化に失敗しました", zap.Error(err))
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			logger.Warn("トレーサーの終了に失敗しました", zap.Error(err))
		}
	}()

	var client *mongo.Client
	if cfg.StoreDriver == config.StoreDriverMongo {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
		defer cancel()

		clientOptions := options.Client().ApplyURI(cfg.MongoURI).SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))
		client, err = mongo.Connect(ctx, clientOptions)
		if err != nil {
			logger.Fatal("MongoDB 接続に失敗しました", zap.Error(err))
		}
		db := client.Database(cfg.MongoDatabase)
		if err := mongostore.EnsureIndexes(ctx, db, cfg.JobCollection, cfg.ApplicationCollection); err != nil {
			logger.Warn("インデックス作成に失敗しました", zap.Error(err))
		}
	} else {
		logger.Warn("メモリストアで起動します。再起動でデータは失われます")
	}

	app := server.New(cfg, client)
	if err := app.Run(); err != nil {
		logger.Fatal("サーバー起動に失敗", zap.Error(err))
	}
}
