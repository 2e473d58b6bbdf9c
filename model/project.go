package model

import "go.mongodb.org/mongo-driver/bson/primitive"

// Project represents a portfolio project.
type Project struct {
	ID           primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Description  string             `json:"description" bson:"description"`
	Technologies []string           `json:"technologies" bson:"technologies"`
	Year         int                `json:"year" bson:"year"`
	GitHub       string             `json:"github,omitempty" bson:"github,omitempty"`
	DemoURL      string             `json:"demo_url,omitempty" bson:"demo_url,omitempty"`
	ImageURL     string             `json:"image_url,omitempty" bson:"image_url,omitempty"`
}

// ProjectResponse is a Project with its identifier rendered as a hex string.
type ProjectResponse struct {
	ID string `json:"id"`
	Project
}

// NewProjectResponse converts a stored project for the API surface.
func NewProjectResponse(p Project) ProjectResponse {
	return ProjectResponse{ID: p.ID.Hex(), Project: p}
}
