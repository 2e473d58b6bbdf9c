package repository

import (
	"context"

	"PortfolioFM/apperr"
	"PortfolioFM/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// projectsCollection is the fixed collection backing project records.
const projectsCollection = "projects"

// ProjectRepository defines project data operations.
type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	GetProject(ctx context.Context, id primitive.ObjectID) (*model.Project, error)
	CreateProject(ctx context.Context, project *model.Project) (string, error)
	CreateProjects(ctx context.Context, projects []model.Project) ([]string, error)
	UpdateProject(ctx context.Context, id primitive.ObjectID, project *model.Project) error
	DeleteProject(ctx context.Context, id primitive.ObjectID) error
}

type mongoProjectRepository struct {
	store *DocumentStore
}

// NewProjectRepository creates a ProjectRepository over the document store.
func NewProjectRepository(store *DocumentStore) ProjectRepository {
	return &mongoProjectRepository{store: store}
}

func (r *mongoProjectRepository) ListProjects(ctx context.Context) ([]model.Project, error) {
	var projects []model.Project
	if err := r.store.Find(ctx, projectsCollection, bson.M{}, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

func (r *mongoProjectRepository) GetProject(ctx context.Context, id primitive.ObjectID) (*model.Project, error) {
	var project model.Project
	if err := r.store.FindOne(ctx, projectsCollection, bson.M{"_id": id}, &project); err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.NotFound, "Project not found")
		}
		return nil, err
	}
	return &project, nil
}

func (r *mongoProjectRepository) CreateProject(ctx context.Context, project *model.Project) (string, error) {
	project.ID = primitive.NilObjectID
	oid, err := r.store.InsertOne(ctx, projectsCollection, project)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}

func (r *mongoProjectRepository) CreateProjects(ctx context.Context, projects []model.Project) ([]string, error) {
	docs := make([]interface{}, 0, len(projects))
	for _, p := range projects {
		p.ID = primitive.NilObjectID
		docs = append(docs, p)
	}
	return r.store.InsertMany(ctx, projectsCollection, docs)
}

func (r *mongoProjectRepository) UpdateProject(ctx context.Context, id primitive.ObjectID, project *model.Project) error {
	update := bson.M{"$set": bson.M{
		"name":         project.Name,
		"description":  project.Description,
		"technologies": project.Technologies,
		"year":         project.Year,
		"github":       project.GitHub,
		"demo_url":     project.DemoURL,
		"image_url":    project.ImageURL,
	}}
	matched, err := r.store.UpdateOne(ctx, projectsCollection, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if matched == 0 {
		return apperr.New(apperr.NotFound, "Project not found")
	}
	return nil
}

func (r *mongoProjectRepository) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	err := r.store.DeleteOne(ctx, projectsCollection, bson.M{"_id": id})
	if apperr.Is(err, apperr.NotFound) {
		return apperr.New(apperr.NotFound, "Project not found")
	}
	return err
}
