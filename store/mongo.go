package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"civicconnect-be/models"
)

// MongoBackend persists the collections in MongoDB. Save rewrites the whole
// collection to keep the load/save contract the store is built on.
type MongoBackend struct {
	issues   *mongo.Collection
	citizens *mongo.Collection
}

func NewMongoBackend(db *mongo.Database) *MongoBackend {
	return &MongoBackend{
		issues:   db.Collection("issues"),
		citizens: db.Collection("citizens"),
	}
}

func (b *MongoBackend) LoadIssues(ctx context.Context) ([]models.Issue, error) {
	cursor, err := b.issues.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var issues []models.Issue
	if err := cursor.All(ctx, &issues); err != nil {
		return nil, err
	}
	if len(issues) == 0 {
		return nil, nil
	}
	return issues, nil
}

func (b *MongoBackend) SaveIssues(ctx context.Context, issues []models.Issue) error {
	if _, err := b.issues.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(issues) == 0 {
		return nil
	}
	docs := make([]interface{}, len(issues))
	for i, issue := range issues {
		docs[i] = issue
	}
	_, err := b.issues.InsertMany(ctx, docs)
	return err
}

func (b *MongoBackend) LoadCitizens(ctx context.Context) ([]models.Citizen, error) {
	cursor, err := b.citizens.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var citizens []models.Citizen
	if err := cursor.All(ctx, &citizens); err != nil {
		return nil, err
	}
	if len(citizens) == 0 {
		return nil, nil
	}
	return citizens, nil
}

func (b *MongoBackend) SaveCitizens(ctx context.Context, citizens []models.Citizen) error {
	if _, err := b.citizens.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(citizens) == 0 {
		return nil
	}
	docs := make([]interface{}, len(citizens))
	for i, citizen := range citizens {
		docs[i] = citizen
	}
	_, err := b.citizens.InsertMany(ctx, docs)
	return err
}
