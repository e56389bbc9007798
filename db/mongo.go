package db

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"libdb-finder/config"
)

// ErrNotConfigured 는 MONGO_URI 가 없어 감사 로그를 쓰지 않을 때 반환된다.
var ErrNotConfigured = errors.New("mongo uri is not configured")

const AnalysisRunsCollection = "analysis_runs"

// Connect 는 분석 실행 기록용 MongoDB 에 연결하고 인덱스를 보장한다.
// 호출자는 반환된 client 를 Disconnect 해야 한다.
func Connect(ctx context.Context, cfg config.MongoConfig) (*mongo.Client, *mongo.Database, error) {
	if cfg.URI == "" {
		return nil, nil, ErrNotConfigured
	}
	dbName := cfg.Database
	if dbName == "" {
		dbName = "libdb"
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cl, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, nil, err
	}
	if err := cl.Ping(ctx, readpref.Primary()); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, err
	}

	d := cl.Database(dbName)
	if err := ensureIndexes(ctx, d); err != nil {
		_ = cl.Disconnect(context.Background())
		return nil, nil, err
	}
	config.Logger.Infof("MongoDB connected (db=%s) and indexes ensured", dbName)
	return cl, d, nil
}

func ensureIndexes(ctx context.Context, d *mongo.Database) error {
	col := d.Collection(AnalysisRunsCollection)

	// 최근 실행 조회용
	if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_created_at_desc"),
	}); err != nil {
		return err
	}
	if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "run_id", Value: 1}},
		Options: options.Index().SetName("uniq_run_id").SetUnique(true),
	}); err != nil {
		return err
	}
	if _, err := col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "organization", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("idx_organization_created_at"),
	}); err != nil {
		return err
	}
	return nil
}
