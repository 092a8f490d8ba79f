package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/folio-site/folio/backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepo implements a MongoDB-backed repository for portfolio items.
// Ids are UUID strings stored in _id.
type MongoRepo struct {
	col *mongo.Collection
}

func NewMongoRepo(ctx context.Context, col *mongo.Collection) (*MongoRepo, error) {
	idx := []mongo.IndexModel{
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "type", Value: 1}}},
	}
	if _, err := col.Indexes().CreateMany(ctx, idx); err != nil {
		return nil, err
	}
	return &MongoRepo{col: col}, nil
}

func (m *MongoRepo) Create(ctx context.Context, item *models.PortfolioItem) error {
	now := time.Now().UTC()
	item.ID = uuid.NewString()
	item.CreatedAt = now
	item.UpdatedAt = now
	_, err := m.col.InsertOne(ctx, item)
	return err
}

func (m *MongoRepo) Get(ctx context.Context, id string) (*models.PortfolioItem, error) {
	var it models.PortfolioItem
	if err := m.col.FindOne(ctx, bson.M{"_id": id}).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func listFilter(opts ListOptions) bson.M {
	filter := bson.M{}
	if opts.Type != "" {
		filter["type"] = opts.Type
	}
	if opts.FeaturedOnly {
		filter["isFeatured"] = true
	}
	if opts.Search != "" {
		rx := primitive.Regex{Pattern: regexp.QuoteMeta(opts.Search), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": rx},
			bson.M{"description": rx},
		}
	}
	return filter
}

func listSort(by SortBy) bson.D {
	if by == SortByTitle {
		return bson.D{{Key: "title", Value: 1}, {Key: "createdAt", Value: 1}}
	}
	return bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}
}

func (m *MongoRepo) List(ctx context.Context, opts ListOptions) ([]*models.PortfolioItem, error) {
	cur, err := m.col.Find(ctx, listFilter(opts), options.Find().SetSort(listSort(opts.SortBy)))
	if err != nil {
		return nil, err
	}
	out := []*models.PortfolioItem{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (m *MongoRepo) Update(ctx context.Context, id string, p Patch) (*models.PortfolioItem, error) {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Link != nil {
		set["link"] = *p.Link
	}
	if p.Type != nil {
		set["type"] = *p.Type
	}
	if p.IsFeatured != nil {
		set["isFeatured"] = *p.IsFeatured
	}
	if p.Image != nil {
		set["image"] = *p.Image
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var it models.PortfolioItem
	if err := m.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}

func (m *MongoRepo) Delete(ctx context.Context, id string) (*models.PortfolioItem, error) {
	var it models.PortfolioItem
	if err := m.col.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&it); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &it, nil
}
