package http

import (
	"io"
	"net/http"

	"drivehub-backend/internal/domain"
	"drivehub-backend/internal/storage"

	"github.com/gorilla/mux"
)

// EvidenceHandler serves the payment proof blob store. The rest of the
// system only ever sees the opaque key this hands out.
type EvidenceHandler struct {
	store        storage.EvidenceStore
	maxSizeBytes int64
}

func NewEvidenceHandler(store storage.EvidenceStore, maxSizeMB int64) *EvidenceHandler {
	return &EvidenceHandler{store: store, maxSizeBytes: maxSizeMB << 20}
}

type uploadResponse struct {
	EvidenceRef string `json:"evidence_ref"`
}

func (h *EvidenceHandler) Upload(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	if contentType != "image/jpeg" && contentType != "image/png" && contentType != "application/pdf" {
		writeError(w, r, &domain.ValidationError{Field: "Content-Type", Reason: "expected image/jpeg, image/png or application/pdf"})
		return
	}

	key := h.store.NewKey()
	limited := http.MaxBytesReader(w, r.Body, h.maxSizeBytes)
	if err := h.store.Save(key, limited); err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, uploadResponse{EvidenceRef: key})
}

func (h *EvidenceHandler) Download(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]
	file, err := h.store.Open(key)
	if err != nil {
		writeError(w, r, domain.ErrNotFound)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Cache-Control", "private, max-age=3600")
	_, _ = io.Copy(w, file)
}
