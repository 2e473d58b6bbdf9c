package repository

import (
	"context"

	"PortfolioFM/apperr"
	"PortfolioFM/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// experiencesCollection is the fixed collection backing experience records.
const experiencesCollection = "experiences"

// ExperienceRepository defines experience data operations.
type ExperienceRepository interface {
	// ListExperiences returns entries sorted for display: parsed end period
	// descending, then start period descending, unparsable periods last.
	ListExperiences(ctx context.Context) ([]model.Experience, error)
	GetExperience(ctx context.Context, id primitive.ObjectID) (*model.Experience, error)
	CreateExperience(ctx context.Context, experience *model.Experience) (string, error)
	CreateExperiences(ctx context.Context, experiences []model.Experience) ([]string, error)
	UpdateExperience(ctx context.Context, id primitive.ObjectID, experience *model.Experience) error
	DeleteExperience(ctx context.Context, id primitive.ObjectID) error
}

type mongoExperienceRepository struct {
	store *DocumentStore
}

// NewExperienceRepository creates an ExperienceRepository over the document store.
func NewExperienceRepository(store *DocumentStore) ExperienceRepository {
	return &mongoExperienceRepository{store: store}
}

func (r *mongoExperienceRepository) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	var experiences []model.Experience
	if err := r.store.Find(ctx, experiencesCollection, bson.M{}, &experiences); err != nil {
		return nil, err
	}
	// Periods are free text, so ordering happens here rather than in the store.
	model.SortExperiences(experiences)
	return experiences, nil
}

func (r *mongoExperienceRepository) GetExperience(ctx context.Context, id primitive.ObjectID) (*model.Experience, error) {
	var experience model.Experience
	if err := r.store.FindOne(ctx, experiencesCollection, bson.M{"_id": id}, &experience); err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.NotFound, "Experience not found")
		}
		return nil, err
	}
	return &experience, nil
}

func (r *mongoExperienceRepository) CreateExperience(ctx context.Context, experience *model.Experience) (string, error) {
	experience.ID = primitive.NilObjectID
	oid, err := r.store.InsertOne(ctx, experiencesCollection, experience)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}

func (r *mongoExperienceRepository) CreateExperiences(ctx context.Context, experiences []model.Experience) ([]string, error) {
	docs := make([]interface{}, 0, len(experiences))
	for _, e := range experiences {
		e.ID = primitive.NilObjectID
		docs = append(docs, e)
	}
	return r.store.InsertMany(ctx, experiencesCollection, docs)
}

func (r *mongoExperienceRepository) UpdateExperience(ctx context.Context, id primitive.ObjectID, experience *model.Experience) error {
	update := bson.M{"$set": bson.M{
		"title":       experience.Title,
		"company":     experience.Company,
		"location":    experience.Location,
		"start_date":  experience.StartDate,
		"end_date":    experience.EndDate,
		"description": experience.Description,
	}}
	matched, err := r.store.UpdateOne(ctx, experiencesCollection, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperr.New(apperr.NotFound, "Experience not found")
	}
	return nil
}

func (r *mongoExperienceRepository) DeleteExperience(ctx context.Context, id primitive.ObjectID) error {
	err := r.store.DeleteOne(ctx, experiencesCollection, bson.M{"_id": id})
	if apperr.Is(err, apperr.NotFound) {
		return apperr.New(apperr.NotFound, "Experience not found")
	}
	return err
}
