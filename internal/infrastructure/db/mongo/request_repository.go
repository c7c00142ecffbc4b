package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/siteflow/quoting-api/internal/core/domain"
)

const requestsCollection = "requests"

type RequestRepository struct {
	coll *mongo.Collection
}

func NewRequestRepository(db *mongo.Database) *RequestRepository {
	return &RequestRepository{coll: db.Collection(requestsCollection)}
}

type mongoRequest struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      primitive.ObjectID `bson:"user_id"`
	Type        string             `bson:"type"`
	Description string             `bson:"description"`
	Budget      *float64           `bson:"budget,omitempty"`
	Price       *float64           `bson:"price,omitempty"`
	PayoutLink  string             `bson:"bmac_link,omitempty"`
	Status      string             `bson:"status"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type mongoRequestWithOwner struct {
	mongoRequest `bson:",inline"`
	OwnerEmail   string `bson:"owner_email"`
}

func (mr *mongoRequest) toDomain() *domain.Request {
	return &domain.Request{
		ID:          mr.ID.Hex(),
		UserID:      mr.UserID.Hex(),
		Type:        mr.Type,
		Description: mr.Description,
		Budget:      mr.Budget,
		Price:       mr.Price,
		PayoutLink:  mr.PayoutLink,
		Status:      domain.RequestStatus(mr.Status),
		CreatedAt:   mr.CreatedAt,
		UpdatedAt:   mr.UpdatedAt,
	}
}

func (r *RequestRepository) Create(ctx context.Context, req *domain.Request) (*domain.Request, error) {
	ownerID, err := primitive.ObjectIDFromHex(req.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoRequest{
		UserID:      ownerID,
		Type:        req.Type,
		Description: req.Description,
		Budget:      req.Budget,
		Status:      string(req.Status),
		CreatedAt:   req.CreatedAt,
		UpdatedAt:   req.UpdatedAt,
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert request: %w", err)
	}

	created := *req
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *RequestRepository) FindByID(ctx context.Context, id string) (*domain.Request, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mr mongoRequest
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("find request: %w", err)
	}
	return mr.toDomain(), nil
}

// ListByUser returns the given user's requests, newest first.
func (r *RequestRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Request, error) {
	ownerID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"user_id": ownerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoRequest
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode requests: %w", err)
	}

	out := make([]*domain.Request, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

// ListAllWithOwner joins each request with its owner's email via $lookup,
// newest first.
func (r *RequestRepository) ListAllWithOwner(ctx context.Context) ([]*domain.RequestWithOwner, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$unwind", Value: bson.M{"path": "$owner", "preserveNullAndEmptyArrays": true}}},
		{{Key: "$addFields", Value: bson.M{"owner_email": "$owner.email"}}},
		{{Key: "$project", Value: bson.M{"owner": 0}}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("list requests with owner: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []mongoRequestWithOwner
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode requests with owner: %w", err)
	}

	out := make([]*domain.RequestWithOwner, 0, len(docs))
	for i := range docs {
		out = append(out, &domain.RequestWithOwner{
			Request:    *docs[i].toDomain(),
			OwnerEmail: docs[i].OwnerEmail,
		})
	}
	return out, nil
}

// Quote sets price, payout link, and status=quoted in one document update.
// The filter matches only while the request is still pending, so price and
// link can never be torn across a concurrent quote or overwritten later.
func (r *RequestRepository) Quote(ctx context.Context, id string, price float64, payoutLink string) (*domain.Request, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(domain.StatusPending)}
	update := bson.M{"$set": bson.M{
		"price":      price,
		"bmac_link":  payoutLink,
		"status":     string(domain.StatusQuoted),
		"updated_at": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mr mongoRequest
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.missReason(ctx, oid)
		}
		return nil, fmt.Errorf("quote request: %w", err)
	}
	return mr.toDomain(), nil
}

// UpdateStatus advances a request from current to next, conditional on the
// document still being in the expected state.
func (r *RequestRepository) UpdateStatus(ctx context.Context, id string, current, next domain.RequestStatus) (*domain.Request, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrRequestNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": oid, "status": string(current)}
	update := bson.M{"$set": bson.M{"status": string(next), "updated_at": time.Now().UTC()}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var mr mongoRequest
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&mr); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, r.missReason(ctx, oid)
		}
		return nil, fmt.Errorf("update request status: %w", err)
	}
	return mr.toDomain(), nil
}

// missReason disambiguates a conditional-update miss: the document either
// does not exist (not found) or is no longer in the expected state.
func (r *RequestRepository) missReason(ctx context.Context, oid primitive.ObjectID) error {
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.ErrRequestNotFound
	}
	if err != nil {
		return fmt.Errorf("find request: %w", err)
	}
	return domain.ErrInvalidTransition
}

// EnsureIndexes creates necessary indexes on the requests collection.
func (r *RequestRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexes)
	return err
}
