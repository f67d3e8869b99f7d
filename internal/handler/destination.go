package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/smarttrav/internal/domain"
)

// multipartMemory is how much of an upload ParseMultipartForm keeps in memory
// before spilling to temp files.
const multipartMemory = 8 << 20

// ListDestinations handles GET /destinations?category=&q=&page=&limit=.
func (s *Server) ListDestinations(w http.ResponseWriter, r *http.Request) {
	p, err := pagination(r)
	if err != nil {
		requestError(w, err.Error())
		return
	}
	var category, query *string
	if err := queryParam(r, "category", &category); err != nil {
		requestError(w, err.Error())
		return
	}
	if err := queryParam(r, "q", &query); err != nil {
		requestError(w, err.Error())
		return
	}

	var f domain.DestinationFilter
	if category != nil {
		f.Category = domain.Category(*category)
	}
	if query != nil {
		f.Query = *query
	}

	page, err := s.destinations.List(r.Context(), f, p)
	if err != nil {
		s.fail(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, pageResponse(page, s.destinationToResponse))
}

// GetDestination handles GET /destinations/{id}.
func (s *Server) GetDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	d, err := s.destinations.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, s.destinationToResponse(d))
}

// CreateDestination handles POST /destinations (admin).
func (s *Server) CreateDestination(w http.ResponseWriter, r *http.Request) {
	var body DestinationRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}
	d, err := s.destinations.Create(r.Context(), body.toDomain())
	if err != nil {
		s.fail(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusCreated, s.destinationToResponse(d))
}

// UpdateDestination handles PUT /destinations/{id} (admin). The body replaces
// every editable field.
func (s *Server) UpdateDestination(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	var body DestinationRequest
	if err := decodeBody(r, &body); err != nil {
		requestError(w, err.Error())
		return
	}

	in := body.toDomain()
	in.ID = id
	d, err := s.destinations.Update(r.Context(), in)
	if err != nil {
		s.fail(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, s.destinationToResponse(d))
}

// UploadDestinationImage handles POST /destinations/{id}/image (admin).
// The file is read from the multipart field "image".
func (s *Server) UploadDestinationImage(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "id")
	if err != nil {
		requestError(w, err.Error())
		return
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeErrorBody(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
			return
		}
		requestError(w, "expected a multipart/form-data body")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		requestError(w, `multipart field "image" is required`)
		return
	}
	defer file.Close()

	d, err := s.destinations.UploadImage(r.Context(), id, file)
	if err != nil {
		s.fail(w, r, err, "destination")
		return
	}
	writeJSON(w, http.StatusOK, s.destinationToResponse(d))
}

func (b DestinationRequest) toDomain() domain.Destination {
	return domain.Destination{
		Name:        b.Name,
		Description: b.Description,
		Location:    b.Location,
		Category:    domain.Category(b.Category),
		PricePerDay: b.PricePerDay,
		Tags:        strings.Join(b.Tags, ","),
	}
}
