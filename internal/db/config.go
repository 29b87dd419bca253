package admin

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	model "github.com/glkeru/plagadmin/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ConfigDB struct {
	mgo  *mongo.Client
	coll *mongo.Collection
}

const configKey = "pricing"

func NewConfigDB() (*ConfigDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	mng := os.Getenv("ADMIN_MONGO")
	if mng == "" {
		return nil, fmt.Errorf("env ADMIN_MONGO is not set")
	}

	opts := options.Client().ApplyURI("mongodb://" + mng)
	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	err = client.Ping(ctx, nil)
	if err != nil {
		return nil, err
	}
	db := client.Database("adminDB")
	coll := db.Collection("config")

	return &ConfigDB{client, coll}, nil
}

func (c ConfigDB) LoadConfig(ctx context.Context) (model.PricingConfig, error) {
	var cfg model.PricingConfig
	err := c.coll.FindOne(ctx, bson.M{"_id": configKey}).Decode(&cfg)
	if err != nil {
		// конфиг еще ни разу не сохраняли
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.DefaultPricingConfig(), nil
		}
		return model.PricingConfig{}, err
	}
	return cfg, nil
}

func (c ConfigDB) SaveConfig(ctx context.Context, cfg model.PricingConfig) error {
	opts := options.Replace().SetUpsert(true)
	_, err := c.coll.ReplaceOne(ctx, bson.M{"_id": configKey}, cfg, opts)
	return err
}
