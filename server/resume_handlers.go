package server

import (
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"PortfolioFM/apperr"
	"PortfolioFM/logger"
	"PortfolioFM/model"
)

const resumeContentType = "application/pdf"

// GetResumeHandler returns the resume metadata.
func (h *APIHandler) GetResumeHandler(w http.ResponseWriter, r *http.Request) {
	resume, err := h.resumeRepo.GetResume(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, model.NewResumeResponse(*resume))
}

// UploadResumeHandler replaces the singleton resume. The new blob is stored
// first, then the record is swapped, then the old blobs are removed, so a
// crash mid-way never leaves a record pointing at a missing blob.
func (h *APIHandler) UploadResumeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB max memory
		writeError(w, apperr.Wrap(apperr.InvalidInput, "failed to parse multipart form", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, apperr.New(apperr.InvalidInput, "missing 'file' in form"))
		return
	}
	defer file.Close()

	if !strings.EqualFold(filepath.Ext(header.Filename), ".pdf") {
		writeError(w, apperr.New(apperr.InvalidInput, "Only PDF files are accepted"))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, fmt.Errorf("failed to read upload: %w", err))
		return
	}

	old, err := h.resumeRepo.ListResumes(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	blobID, err := h.blobs.Upload(ctx, header.Filename, data, resumeContentType)
	if err != nil {
		writeError(w, err)
		return
	}

	resume := &model.Resume{
		Filename:    header.Filename,
		FileID:      blobID,
		ContentType: resumeContentType,
		UploadedAt:  time.Now().UTC(),
	}
	id, err := h.resumeRepo.ReplaceResume(ctx, resume)
	if err != nil {
		if delErr := h.blobs.Delete(ctx, blobID); delErr != nil {
			logger.Warn("[UploadResumeHandler] failed to delete new blob after record failure",
				logger.String("blob_id", blobID), logger.ErrorField(delErr))
		}
		writeError(w, err)
		return
	}

	// Replaced records no longer reference these blobs.
	for _, prev := range old {
		if prev.FileID == "" {
			continue
		}
		if err := h.blobs.Delete(ctx, prev.FileID); err != nil {
			logger.Warn("[UploadResumeHandler] failed to delete replaced blob",
				logger.String("blob_id", prev.FileID), logger.ErrorField(err))
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"id":       id,
		"filename": header.Filename,
		"message":  "Resume uploaded successfully",
	})
}

// ViewResumeHandler streams the resume inline.
func (h *APIHandler) ViewResumeHandler(w http.ResponseWriter, r *http.Request) {
	h.streamResume(w, r, "inline")
}

// DownloadResumeHandler streams the resume as an attachment.
func (h *APIHandler) DownloadResumeHandler(w http.ResponseWriter, r *http.Request) {
	h.streamResume(w, r, "attachment")
}

func (h *APIHandler) streamResume(w http.ResponseWriter, r *http.Request, disposition string) {
	ctx := r.Context()

	resume, err := h.resumeRepo.GetResume(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	stream, info, err := h.blobs.OpenDownloadStream(ctx, resume.FileID)
	if err != nil {
		writeError(w, err)
		return
	}
	defer stream.Close()

	contentType := info.ContentType
	if contentType == "" {
		contentType = resume.ContentType
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, resume.Filename))
	if info.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	if _, err := io.Copy(w, stream); err != nil {
		logger.Error("[streamResume] streaming failed",
			logger.String("blob_id", resume.FileID), logger.ErrorField(err))
	}
}

// DeleteResumeHandler removes the resume record and its blob, blob first.
func (h *APIHandler) DeleteResumeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	resume, err := h.resumeRepo.GetResume(ctx)
	if err != nil {
		writeError(w, err)
		return
	}

	if resume.FileID != "" {
		if err := h.blobs.Delete(ctx, resume.FileID); err != nil {
			writeError(w, err)
			return
		}
	}

	if err := h.resumeRepo.DeleteResumes(ctx); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Resume deleted successfully"})
}
