package zoos

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"zoo-registry/internal/domain/animals"
	"zoo-registry/internal/middleware"
)

func RegisterRoutes(r chi.Router, readSvc *ReadService, writeSvc *WriteService) {
	r.Route("/zoos", func(zr chi.Router) {
		zr.Post("/", createZooHandler(writeSvc))
		zr.Get("/", findZoosHandler(readSvc))

		zr.Get("/{zooID}", getZooHandler(readSvc))
		zr.Put("/{zooID}", updateZooHandler(writeSvc))
		zr.Delete("/{zooID}", deleteZooHandler(writeSvc))
	})
}

type addressRequest struct {
	Country     string `json:"country"`
	PostalCode  string `json:"postalCode"`
	Street      string `json:"street"`
	HouseNumber int    `json:"houseNumber"`
	Surname     string `json:"surname"`
}

type animalRequest struct {
	Designation string          `json:"designation"`
	Species     string          `json:"species" enums:"mammal,fish,reptile,amphibian,bird,invertebrate"`
	Weight      decimal.Decimal `json:"weight"`
}

type createZooRequest struct {
	Designation string          `json:"designation"`
	EntranceFee decimal.Decimal `json:"entranceFee"`
	Open        bool            `json:"open"`
	Homepage    string          `json:"homepage"`
	Address     *addressRequest `json:"address"`
	Animals     []animalRequest `json:"animals"`
}

// updateZooRequest son solo los campos core; dirección y animales no se
// mutan vía PUT. Los punteros distinguen "ausente" de "cero": un campo que
// no viene en el JSON conserva el valor persistido.
type updateZooRequest struct {
	Designation *string          `json:"designation"`
	EntranceFee *decimal.Decimal `json:"entranceFee"`
	Open        *bool            `json:"open"`
	Homepage    *string          `json:"homepage"`
}

type addressResponse struct {
	ID          int64  `json:"id"`
	Country     string `json:"country"`
	PostalCode  string `json:"postalCode"`
	Street      string `json:"street"`
	HouseNumber int    `json:"houseNumber"`
	Surname     string `json:"surname"`
}

type animalResponse struct {
	ID          int64           `json:"id"`
	Version     int64           `json:"version"`
	Designation string          `json:"designation"`
	Species     animals.Species `json:"species"`
	Weight      decimal.Decimal `json:"weight"`
}

type zooResponse struct {
	ID          int64            `json:"id"`
	Version     int64            `json:"version"`
	Designation string           `json:"designation"`
	EntranceFee decimal.Decimal  `json:"entranceFee"`
	Open        bool             `json:"open"`
	Homepage    string           `json:"homepage"`
	Address     *addressResponse `json:"address,omitempty"`
	Animals     []animalResponse `json:"animals,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type sliceResponse struct {
	Content       []zooResponse `json:"content"`
	TotalElements int64         `json:"totalElements"`
}

// createZooHandler godoc
// @Summary Crear un zoológico
// @Description Crea un zoo con su dirección (obligatoria) y animales (opcionales). Devuelve la ubicación del recurso nuevo sin body. Autenticación: `X-Debug-User-ID` (dev) o `Authorization: Bearer <token>` (prod).
// @Tags zoos
// @Accept json
// @Param payload body createZooRequest true "Zoo completo con dirección y animales anidados"
// @Success 201 {string} string "creado, ver header Location"
// @Failure 400 {string} string "payload inválido"
// @Failure 401 {string} string "unauthorized"
// @Failure 422 {string} string "designation ya existe"
// @Router /zoos [post]
func createZooHandler(svc *WriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createZooRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.Address == nil {
			http.Error(w, "address is required", http.StatusBadRequest)
			return
		}

		zooAnimals := make([]animals.Animal, 0, len(req.Animals))
		for _, a := range req.Animals {
			species := animals.Species(a.Species)
			if !species.Valid() {
				http.Error(w, "species must be one of mammal, fish, reptile, amphibian, bird, invertebrate", http.StatusBadRequest)
				return
			}
			if a.Weight.IsNegative() {
				http.Error(w, "weight must not be negative", http.StatusBadRequest)
				return
			}
			zooAnimals = append(zooAnimals, animals.Animal{
				Designation: a.Designation,
				Species:     species,
				Weight:      a.Weight,
			})
		}

		z := Zoo{
			Designation: req.Designation,
			EntranceFee: req.EntranceFee,
			Open:        req.Open,
			Homepage:    req.Homepage,
			Address: &Address{
				Country:     req.Address.Country,
				PostalCode:  req.Address.PostalCode,
				Street:      req.Address.Street,
				HouseNumber: req.Address.HouseNumber,
				Surname:     req.Address.Surname,
			},
			Animals: zooAnimals,
		}

		id, err := svc.Create(r.Context(), z)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("Location", fmt.Sprintf("/zoos/%d", id))
		w.WriteHeader(http.StatusCreated)
	}
}

// getZooHandler godoc
// @Summary Buscar un zoológico por id
// @Description Devuelve el zoo con su dirección; con `withAnimals=true` también los animales. Soporta GET condicional con If-None-Match contra la versión actual.
// @Tags zoos
// @Produce json
// @Param zooID path int true "ID del zoo"
// @Param withAnimals query bool false "Cargar también los animales"
// @Param If-None-Match header string false "Versión conocida, p.ej. \"0\""
// @Success 200 {object} zooResponse
// @Success 304 {string} string "sin cambios"
// @Failure 404 {string} string "no existe"
// @Router /zoos/{zooID} [get]
func getZooHandler(svc *ReadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := parseID(chi.URLParam(r, "zooID"))
		if !ok {
			http.Error(w, "zoo not found", http.StatusNotFound)
			return
		}
		withAnimals := r.URL.Query().Get("withAnimals") == "true"

		z, err := svc.FindByID(r.Context(), id, withAnimals)
		if err != nil {
			writeError(w, err)
			return
		}

		etag := versionETag(z.Version)
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
		writeJSON(w, http.StatusOK, toZooResponse(z))
	}
}

// findZoosHandler godoc
// @Summary Buscar zoológicos con criterios
// @Description Filtra por designation (substring), entranceFee (cota superior), open y homepage; pagina con page/size. size=0 devuelve todo.
// @Tags zoos
// @Produce json
// @Param designation query string false "Substring, case-insensitive"
// @Param entranceFee query number false "Entrada máxima"
// @Param open query bool false "Abierto"
// @Param homepage query string false "Igualdad exacta"
// @Param page query int false "Número de página, desde 0"
// @Param size query int false "Tamaño de página, default 5"
// @Success 200 {object} sliceResponse
// @Failure 404 {string} string "criterios inválidos o página vacía"
// @Router /zoos [get]
func findZoosHandler(svc *ReadService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		raw := map[string]string{}
		for key := range query {
			if key == "page" || key == "size" {
				continue
			}
			raw[key] = query.Get(key)
		}

		slice, err := svc.Find(r.Context(), raw, parsePageable(query.Get("page"), query.Get("size")))
		if err != nil {
			writeError(w, err)
			return
		}

		out := sliceResponse{
			Content:       make([]zooResponse, 0, len(slice.Content)),
			TotalElements: slice.TotalElements,
		}
		for _, z := range slice.Content {
			out.Content = append(out.Content, toZooResponse(z))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

// updateZooHandler godoc
// @Summary Actualizar los campos core de un zoológico
// @Description Requiere el header If-Match con el token de versión vigente. Devuelve la versión nueva en el header ETag, sin body.
// @Tags zoos
// @Accept json
// @Param zooID path int true "ID del zoo"
// @Param If-Match header string true "Token de versión, p.ej. \"0\""
// @Param payload body updateZooRequest true "Campos core"
// @Success 204 {string} string "actualizado, ver header ETag"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "no existe"
// @Failure 412 {string} string "versión inválida o desactualizada"
// @Failure 428 {string} string "falta el header If-Match"
// @Router /zoos/{zooID} [put]
func updateZooHandler(svc *WriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, ok := parseID(chi.URLParam(r, "zooID"))
		if !ok {
			http.Error(w, "zoo not found", http.StatusNotFound)
			return
		}

		// Falta de token y token incorrecto son fallas distintas: 428 vs 412.
		version := r.Header.Get("If-Match")
		if version == "" {
			http.Error(w, `header "If-Match" is missing`, http.StatusPreconditionRequired)
			return
		}
		version = trimETag(version)

		var req updateZooRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		if req.EntranceFee != nil && req.EntranceFee.IsNegative() {
			http.Error(w, "entranceFee must not be negative", http.StatusBadRequest)
			return
		}

		newVersion, err := svc.Update(r.Context(), id, CorePatch{
			Designation: req.Designation,
			EntranceFee: req.EntranceFee,
			Open:        req.Open,
			Homepage:    req.Homepage,
		}, version)
		if err != nil {
			writeError(w, err)
			return
		}

		w.Header().Set("ETag", versionETag(newVersion))
		w.WriteHeader(http.StatusNoContent)
	}
}

// deleteZooHandler godoc
// @Summary Borrar un zoológico
// @Description Borra el zoo con su dirección y todos sus animales, atómicamente. Un id inexistente es 404.
// @Tags zoos
// @Param zooID path int true "ID del zoo"
// @Success 204 {string} string "borrado"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "no existe"
// @Router /zoos/{zooID} [delete]
func deleteZooHandler(svc *WriteService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id, ok := parseID(chi.URLParam(r, "zooID"))
		if !ok {
			http.Error(w, "zoo not found", http.StatusNotFound)
			return
		}

		if _, err := svc.Delete(r.Context(), id); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func toZooResponse(z Zoo) zooResponse {
	out := zooResponse{
		ID:          z.ID,
		Version:     z.Version,
		Designation: z.Designation,
		EntranceFee: z.EntranceFee,
		Open:        z.Open,
		Homepage:    z.Homepage,
		CreatedAt:   z.CreatedAt,
		UpdatedAt:   z.UpdatedAt,
	}
	if z.Address != nil {
		out.Address = &addressResponse{
			ID:          z.Address.ID,
			Country:     z.Address.Country,
			PostalCode:  z.Address.PostalCode,
			Street:      z.Address.Street,
			HouseNumber: z.Address.HouseNumber,
			Surname:     z.Address.Surname,
		}
	}
	for _, a := range z.Animals {
		out.Animals = append(out.Animals, animalResponse{
			ID:          a.ID,
			Version:     a.Version,
			Designation: a.Designation,
			Species:     a.Species,
			Weight:      a.Weight,
		})
	}
	return out
}

func parsePageable(page, size string) Pageable {
	p := Pageable{Page: DefaultPageNumber, Size: DefaultPageSize}
	if page != "" {
		if n, err := strconv.Atoi(page); err == nil && n >= 0 {
			p.Page = n
		}
	}
	if size != "" {
		if n, err := strconv.Atoi(size); err == nil && n >= 0 {
			p.Size = n // 0 explícito = sin paginación
		}
	}
	return p
}

func parseID(raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func versionETag(version int64) string {
	return `"` + strconv.FormatInt(version, 10) + `"`
}

// trimETag saca un par de comillas estilo ETag si vienen; el service recibe
// el decimal pelado.
func trimETag(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	return v
}

func writeError(w http.ResponseWriter, err error) {
	var outdated *VersionOutdatedError
	switch {
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDesignationExists):
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
	case errors.Is(err, ErrVersionInvalid):
		http.Error(w, err.Error(), http.StatusPreconditionFailed)
	case errors.As(err, &outdated):
		http.Error(w, outdated.Error(), http.StatusPreconditionFailed)
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
