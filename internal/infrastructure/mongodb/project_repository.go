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

type projectDoc struct {
	ID          bson.ObjectID `bson:"_id,omitempty"`
	Title       string        `bson:"title"`
	Description string        `bson:"description"`
	TechStack   []string      `bson:"techStack"`
	GithubURL   string        `bson:"githubUrl"`
	LiveURL     string        `bson:"liveUrl"`
	ImageURL    string        `bson:"imageUrl"`
	Featured    bool          `bson:"featured"`
	Order       int           `bson:"order"`
	CreatedAt   time.Time     `bson:"createdAt"`
	UpdatedAt   time.Time     `bson:"updatedAt"`
}

func (d projectDoc) toEntity() entity.Project {
	return entity.Project{
		ID:          d.ID.Hex(),
		Title:       d.Title,
		Description: d.Description,
		TechStack:   nonNil(d.TechStack),
		GithubURL:   d.GithubURL,
		LiveURL:     d.LiveURL,
		ImageURL:    d.ImageURL,
		Featured:    d.Featured,
		Order:       d.Order,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// projectSet builds the $set document for the fields present in patch.
func projectSet(p entity.ProjectPatch) bson.M {
	set := bson.M{"updatedAt": time.Now().UTC()}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.TechStack != nil {
		set["techStack"] = nonNil(*p.TechStack)
	}
	if p.GithubURL != nil {
		set["githubUrl"] = *p.GithubURL
	}
	if p.LiveURL != nil {
		set["liveUrl"] = *p.LiveURL
	}
	if p.ImageURL != nil {
		set["imageUrl"] = *p.ImageURL
	}
	if p.Featured != nil {
		set["featured"] = *p.Featured
	}
	if p.Order != nil {
		set["order"] = *p.Order
	}
	return set
}

type ProjectRepository struct {
	coll *mongo.Collection
}

func NewProjectRepository(db *mongo.Database) *ProjectRepository {
	return &ProjectRepository{coll: db.Collection(ProjectsCollection)}
}

func (r *ProjectRepository) List(ctx context.Context) ([]entity.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "createdAt", Value: -1}})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []projectDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]entity.Project, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toEntity())
	}
	return out, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id string) (*entity.Project, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc projectDoc
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		return nil, mapErr(err)
	}
	p := doc.toEntity()
	return &p, nil
}

func (r *ProjectRepository) Create(ctx context.Context, p *entity.Project) error {
	now := time.Now().UTC()
	doc := projectDoc{
		ID:          bson.NewObjectID(),
		Title:       p.Title,
		Description: p.Description,
		TechStack:   nonNil(p.TechStack),
		GithubURL:   p.GithubURL,
		LiveURL:     p.LiveURL,
		ImageURL:    p.ImageURL,
		Featured:    p.Featured,
		Order:       p.Order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return mapErr(err)
	}
	p.ID = doc.ID.Hex()
	p.TechStack = doc.TechStack
	p.CreatedAt = now
	p.UpdatedAt = now
	return nil
}

func (r *ProjectRepository) Update(ctx context.Context, id string, patch entity.ProjectPatch) (*entity.Project, error) {
	oid, err := objectID(id)
	if err != nil {
		return nil, err
	}
	var doc projectDoc
	err = r.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": projectSet(patch)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return nil, mapErr(err)
	}
	p := doc.toEntity()
	return &p, nil
}

func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
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

func (r *ProjectRepository) DeleteAll(ctx context.Context) (int64, error) {
	res, err := r.coll.DeleteMany(ctx, bson.D{})
	if err != nil {
		return 0, err
	}
	return res.DeletedCount, nil
}

var _ repository.ProjectRepository = (*ProjectRepository)(nil)
