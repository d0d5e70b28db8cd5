package animals

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"zoo-registry/internal/middleware"
)

// Un archivo adjunto de más de 10 MiB se rechaza en el parseo del multipart.
const maxFileBytes = 10 << 20

func RegisterRoutes(r chi.Router, readSvc *ReadService, writeSvc *WriteService) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Post("/", createAnimalHandler(writeSvc))
		ar.Get("/{animalID}", getAnimalHandler(readSvc))
		ar.Put("/{animalID}/file", putFileHandler(writeSvc))
		ar.Get("/{animalID}/file", getFileHandler(readSvc))
	})
}

type createAnimalRequest struct {
	ZooID       int64           `json:"zooId"`
	Designation string          `json:"designation"`
	Species     string          `json:"species"`
	Weight      decimal.Decimal `json:"weight"`
}

type fileMetadataResponse struct {
	ID       int64  `json:"id"`
	Filename string `json:"filename"`
	Mimetype string `json:"mimetype"`
}

type animalDetailResponse struct {
	ID          int64                 `json:"id"`
	Version     int64                 `json:"version"`
	ZooID       int64                 `json:"zooId,omitempty"`
	Designation string                `json:"designation"`
	Species     Species               `json:"species"`
	Weight      decimal.Decimal       `json:"weight"`
	File        *fileMetadataResponse `json:"file,omitempty"`
}

func createAnimalHandler(svc *WriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createAnimalRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		id, err := svc.Create(r.Context(), CreateInput{
			ZooID:       req.ZooID,
			Designation: req.Designation,
			Species:     Species(req.Species),
			Weight:      req.Weight,
		})
		if err != nil {
			writeAnimalError(w, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/animals/%d", id))
		w.WriteHeader(http.StatusCreated)
	}
}

func getAnimalHandler(svc *ReadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseAnimalID(chi.URLParam(r, "animalID"))
		if !ok {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		a, err := svc.FindByID(r.Context(), id)
		if err != nil {
			writeAnimalError(w, err)
			return
		}

		out := animalDetailResponse{
			ID:          a.ID,
			Version:     a.Version,
			ZooID:       a.ZooID,
			Designation: a.Designation,
			Species:     a.Species,
			Weight:      a.Weight,
		}
		if a.File != nil {
			out.File = &fileMetadataResponse{
				ID:       a.File.ID,
				Filename: a.File.Filename,
				Mimetype: a.File.Mimetype,
			}
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// putFileHandler recibe el binario como multipart, campo "file". Un upload
// nuevo reemplaza al anterior: un animal tiene a lo sumo un archivo.
func putFileHandler(svc *WriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, ok := parseAnimalID(chi.URLParam(r, "animalID"))
		if !ok {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		if err := r.ParseMultipartForm(maxFileBytes); err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}
		part, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, `multipart field "file" is required`, http.StatusBadRequest)
			return
		}
		defer part.Close() //nolint:errcheck

		data, err := io.ReadAll(part)
		if err != nil {
			http.Error(w, "could not read file", http.StatusBadRequest)
			return
		}

		if _, err := svc.AddFile(r.Context(), id, data, header.Filename, header.Header.Get("Content-Type")); err != nil {
			writeAnimalError(w, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/animals/%d/file", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

func getFileHandler(svc *ReadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseAnimalID(chi.URLParam(r, "animalID"))
		if !ok {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}

		f, found, err := svc.FindFileByAnimalID(r.Context(), id)
		if err != nil {
			writeAnimalError(w, err)
			return
		}
		if !found {
			http.Error(w, fmt.Sprintf("no file for animal %d", id), http.StatusNotFound)
			return
		}

		if f.Mimetype != "" {
			w.Header().Set("Content-Type", f.Mimetype)
		}
		if f.Filename != "" {
			w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", f.Filename))
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(f.Data)
	}
}

func parseAnimalID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func writeAnimalError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// writeJSON está duplicado intencionalmente en handlers de distintos
// módulos (zoos/animals) para evitar un helper compartido prematuro.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
