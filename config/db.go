package config

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/apex/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	db     *mongo.Database
	client *mongo.Client
	once   sync.Once
)

// ConnectDB initializes and returns a MongoDB database connection.
func ConnectDB() *mongo.Database {
	once.Do(func() {
		mongoURI := os.Getenv("MONGODB_URI")
		if mongoURI == "" {
			log.Fatal("Please define the MONGODB_URI environment variable")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		c, err := mongo.Connect(ctx, options.Client().ApplyURI(mongoURI))
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to MongoDB")
		}
		if err := c.Ping(ctx, nil); err != nil {
			log.WithError(err).Fatal("Failed to ping MongoDB")
		}

		log.Info("Connected to MongoDB")

		client = c
		db = client.Database("civicconnect")
	})

	return db
}
