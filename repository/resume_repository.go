package repository

import (
	"context"

	"PortfolioFM/apperr"
	"PortfolioFM/model"

	"go.mongodb.org/mongo-driver/bson"
)

// resumeCollection is the fixed collection backing the singleton resume record.
const resumeCollection = "resume"

// ResumeRepository defines operations on the singleton resume record.
type ResumeRepository interface {
	GetResume(ctx context.Context) (*model.Resume, error)
	// ListResumes returns every stored resume record. More than one record
	// only exists transiently between a replace's delete and insert.
	ListResumes(ctx context.Context) ([]model.Resume, error)
	// ReplaceResume deletes all prior resume records and inserts the new
	// one, enforcing the at-most-one-active invariant.
	ReplaceResume(ctx context.Context, resume *model.Resume) (string, error)
	DeleteResumes(ctx context.Context) error
}

type mongoResumeRepository struct {
	store *DocumentStore
}

// NewResumeRepository creates a ResumeRepository over the document store.
func NewResumeRepository(store *DocumentStore) ResumeRepository {
	return &mongoResumeRepository{store: store}
}

func (r *mongoResumeRepository) GetResume(ctx context.Context) (*model.Resume, error) {
	var resume model.Resume
	if err := r.store.FindOne(ctx, resumeCollection, bson.M{}, &resume); err != nil {
		if apperr.Is(err, apperr.NotFound) {
			return nil, apperr.New(apperr.NotFound, "No resume uploaded")
		}
		return nil, err
	}
	return &resume, nil
}

func (r *mongoResumeRepository) ListResumes(ctx context.Context) ([]model.Resume, error) {
	var resumes []model.Resume
	if err := r.store.Find(ctx, resumeCollection, bson.M{}, &resumes); err != nil {
		return nil, err
	}
	return resumes, nil
}

func (r *mongoResumeRepository) ReplaceResume(ctx context.Context, resume *model.Resume) (string, error) {
	if _, err := r.store.DeleteMany(ctx, resumeCollection, bson.M{}); err != nil {
		return "", err
	}
	oid, err := r.store.InsertOne(ctx, resumeCollection, resume)
	if err != nil {
		return "", err
	}
	return oid.Hex(), nil
}

func (r *mongoResumeRepository) DeleteResumes(ctx context.Context) error {
	deleted, err := r.store.DeleteMany(ctx, resumeCollection, bson.M{})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return apperr.New(apperr.NotFound, "No resume uploaded")
	}
	return nil
}
