package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
)

type experienceDoc struct {
	ID             bson.ObjectID `bson:"_id,omitempty"`
	Type           string        `bson:"type"`
	Title          string        `bson:"title"`
	Organization   string        `bson:"organization"`
	Location       string        `bson:"location"`
	StartDate      time.Time     `bson:"startDate"`
	EndDate        *time.Time    `bson:"endDate,omitempty"`
	Current        bool          `bson:"current"`
	Description    string        `bson:"description"`
	Skills         []string      `bson:"skills"`
	CertificateURL string        `bson:"certificateUrl"`
	Order          int           `bson:"order"`
	CreatedAt      time.Time     `bson:"createdAt"`
	UpdatedAt      time.Time     `bson:"updatedAt"`
}

func (d experienceDoc) toEntity() entity.Experience {
	return entity.Experience{
		ID:             d.ID.Hex(),
		Type:           entity.ExperienceType(d.Type),
		Title:          d.Title,
		Organization:   d.Organization,
		Location:       d.Location,
		StartDate:      d.StartDate,
		EndDate:        d.EndDate,
		Current:        d.Current,
		Description:    d.Description,
		Skills:         nonNil(d.Skills),
		CertificateURL: d.CertificateURL,
		Order:          d.Order,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// experienceUpdate builds the $set/$unset document for patch.
func experienceUpdate(p entity.ExperiencePatch) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if p.Type != nil {
		set["type"] = string(*p.Type)
	}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Organization != nil {
		set["organization"] = *p.Organization
	}
	if p.Location != nil {
		set["location"] = *p.Location
	}
	if p.StartDate != nil {
		set["startDate"] = *p.StartDate
	}
	if p.EndDate != nil && !p.ClearEndDate {
		set["endDate"] = *p.EndDate
	}
	if p.Current != nil {
		set["current"] = *p.Current
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Skills != nil {
		set["skills"] = nonNil(*p.Skills)
	}
	if p.CertificateURL != nil {
		set["certificateUrl"] = *p.CertificateURL
	}
	if p.Order != nil {
		set["order"] = *p.Order
	}
	update := bson.M{"$set": set}
	if p.ClearEndDate {
		update["$unset"] = bson.M{"endDate": ""}
	}
	return update
}

type ExperienceRepository struct {
	coll *mongo.Collection
}

func NewExperienceRepository(db *mongo.Database) *ExperienceRepository {
	return &ExperienceRepository{coll: db.Collection(ExperiencesCollection)}
}

func (r *ExperienceRepository) List(ctx context.Context, f entity.ExperienceFilter) ([]entity.Experience, error) {
	filter := bson.M{}
	if f.Type != "" {
		filter["type"] = string(f.Type)
	}
	opts := options.Find().SetSort(bson.D{{Key: "startDate", Value: -1}, {Key: "order", Value: 1}})
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []experienceDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Experience, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

func (r *ExperienceRepository) Get(ctx context.Context, id string) (*entity.Experience, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc experienceDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	e := doc.toEntity()
	return &e, nil
}

func (r *ExperienceRepository) Create(ctx context.Context, e *entity.Experience) error {
	now := time.Now().UTC()
	doc := experienceDoc{
		ID:             bson.NewObjectID(),
		Type:           string(e.Type),
		Title:          e.Title,
		Organization:   e.Organization,
		Location:       e.Location,
		StartDate:      e.StartDate,
		EndDate:        e.EndDate,
		Current:        e.Current,
		Description:    e.Description,
		Skills:         nonNil(e.Skills),
		CertificateURL: e.CertificateURL,
		Order:          e.Order,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	e.ID = doc.ID.Hex()
	e.Skills = doc.Skills
	e.CreatedAt = now
	e.UpdatedAt = now
	return nil
}

func (r *ExperienceRepository) Update(ctx context.Context, id string, patch entity.ExperiencePatch) (*entity.Experience, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc experienceDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		experienceUpdate(patch),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mapErr(err)
	}
	e := doc.toEntity()
	return &e, nil
}

func (r *ExperienceRepository) Delete(ctx context.Context, id string) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ExperienceRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ repository.ExperienceRepository = (*ExperienceRepository)(nil)
