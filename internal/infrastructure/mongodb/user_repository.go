package mongodb

import (
	"context"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
)

type userDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	FirebaseUID string        `bson:"firebaseUid"`
	Email       string        `bson:"email"`
	DisplayName string        `bson:"displayName"`
	Role        string        `bson:"role"`
	LastLogin   time.Time     `bson:"lastLogin"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

func (d userDoc) toEntity() *entity.User {
	return &entity.User{
		ID:          d.ID.Hex(),
		SubjectID:   d.FirebaseUID,
		Email:       d.Email,
		DisplayName: d.DisplayName,
		Role:        entity.Role(d.Role),
		LastLogin:   d.LastLogin,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(UsersCollection)}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	now := time.Now().UTC()
	doc := userDoc{
		ID:          bson.NewObjectID(),
		FirebaseUID: u.SubjectID,
		Email:       strings.ToLower(u.Email),
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		LastLogin:   u.LastLogin,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	u.ID = doc.ID.Hex()
	u.Email = doc.Email
	u.CreatedAt = now
	u.UpdatedAt = now
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M) (*entity.User, error) {
	var doc userDoc
	if err := r.coll.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	return doc.toEntity(), nil
}

func (r *UserRepository) GetBySubject(ctx context.Context, subjectID string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"firebaseUid": subjectID})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, bson.M{"email": strings.ToLower(email)})
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return r.set(ctx, id, bson.M{"lastLogin": at})
}

func (r *UserRepository) UpdateRole(ctx context.Context, id string, role entity.Role) error {
	return r.set(ctx, id, bson.M{"role": string(role)})
}

func (r *UserRepository) set(ctx context.Context, id string, fields bson.M) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	fields["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
