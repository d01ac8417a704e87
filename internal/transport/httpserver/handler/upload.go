package handler

import (
	"errors"
	"net/http"
)

// UploadImage accepts a multipart form with a "file" part and stores it
// as an event poster. Oversized bodies are cut off by MaxBytesReader.
func (h *Handlers) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	if err := r.ParseMultipartForm(h.maxUpload); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "file_too_large", "file exceeds the upload size limit")
			return
		}
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "file is required")
		return
	}
	defer file.Close()

	if !h.uploads.Allowed(header.Filename) {
		writeError(w, http.StatusBadRequest, "invalid_file_type", "file type not allowed")
		return
	}

	url, err := h.uploads.Save(header.Filename, file)
	if err != nil {
		h.log.InternalError("upload.image: save failed", err, "filename", header.Filename)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"url": url})
}
