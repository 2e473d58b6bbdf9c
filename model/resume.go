package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Resume is the singleton resume record. Uploading a new resume replaces
// any prior record and its blob.
type Resume struct {
	ID          primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	Filename    string             `json:"filename" bson:"filename"`
	FileID      string             `json:"file_id" bson:"file_id"`
	ContentType string             `json:"content_type" bson:"content_type"`
	UploadedAt  time.Time          `json:"uploaded_at" bson:"uploaded_at"`
}

// ResumeResponse is a Resume with its identifier rendered as a hex string.
type ResumeResponse struct {
	ID string `json:"id"`
	Resume
}

// NewResumeResponse converts the stored resume for the API surface.
func NewResumeResponse(r Resume) ResumeResponse {
	return ResumeResponse{ID: r.ID.Hex(), Resume: r}
}
