package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/citylink/citylink-api/internal/core/domain"
)

const collectionIssues = "issues"

// cityCollation makes city matching case-insensitive (strength 2 ignores case
// but not accents), preserving the product's "new york" == "New York" rule.
// Email matching on accounts deliberately does NOT get this treatment.
var cityCollation = &options.Collation{Locale: "en", Strength: 2}

// IssueRepository implements ports.IssueRepository using MongoDB.
type IssueRepository struct {
	col *mongo.Collection
}

func NewIssueRepository(db *mongo.Database) *IssueRepository {
	return &IssueRepository{col: db.Collection(collectionIssues)}
}

func (r *IssueRepository) Create(ctx context.Context, issue *domain.Issue) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, issue); err != nil {
		return fmt.Errorf("insert issue: %w", err)
	}
	return nil
}

func (r *IssueRepository) FindByID(ctx context.Context, id string) (*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var i domain.Issue
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&i); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrIssueNotFound
		}
		return nil, fmt.Errorf("find issue: %w", err)
	}
	return &i, nil
}

// UpdateStatus sets status and updated_at. A missing id matches nothing,
// which is the contract's benign no-op.
func (r *IssueRepository) UpdateStatus(ctx context.Context, id string, status domain.IssueStatus, updatedAt time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     string(status),
		"updated_at": updatedAt.UTC(),
	}}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("update issue status: %w", err)
	}
	return nil
}

// SetSummary stores the analysis text without touching updated_at.
func (r *IssueRepository) SetSummary(ctx context.Context, id string, summary string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{"ai_summary": summary}}
	if _, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update); err != nil {
		return fmt.Errorf("set issue summary: %w", err)
	}
	return nil
}

// ListByCity matches the city case-insensitively, in creation order.
func (r *IssueRepository) ListByCity(ctx context.Context, city string) ([]*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().
		SetCollation(cityCollation).
		SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"city": city}, opts)
	if err != nil {
		return nil, fmt.Errorf("list issues by city: %w", err)
	}
	defer cur.Close(ctx)

	var issues []*domain.Issue
	if err := cur.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return issues, nil
}

// ListByAuthor matches author_id exactly, in creation order.
func (r *IssueRepository) ListByAuthor(ctx context.Context, authorID string) ([]*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{"author_id": authorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list issues by author: %w", err)
	}
	defer cur.Close(ctx)

	var issues []*domain.Issue
	if err := cur.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return issues, nil
}

func (r *IssueRepository) ListAll(ctx context.Context) ([]*domain.Issue, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer cur.Close(ctx)

	var issues []*domain.Issue
	if err := cur.All(ctx, &issues); err != nil {
		return nil, fmt.Errorf("decode issues: %w", err)
	}
	return issues, nil
}

// EnsureIndexes creates the partition indexes. The city index carries the same
// collation the queries use so it is actually eligible.
func (r *IssueRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "city", Value: 1}},
			Options: options.Index().SetCollation(cityCollation),
		},
		{Keys: bson.D{{Key: "author_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
