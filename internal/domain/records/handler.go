package records

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"strings"

	"github.com/chsharoze/sharoze-iftikhar-iwh-i-practicum/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	ViewHomepage = "homepage"
	ViewUpdates  = "updates"

	FormPath = "/update-cobj"

	// maxFormBytes vale para las tres codificaciones del POST.
	maxFormBytes = 1 << 20
)

// Renderer dibuja una vista HTML con status (lo implementa internal/web).
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

// ListPage es el view-model del listado.
type ListPage struct {
	Title        string
	Records      []Record
	ErrorMessage string
}

// FormValues son los valores tal cual los mandó el usuario (sin trim).
type FormValues struct {
	Name    string `json:"name"`
	Bio     string `json:"bio"`
	Species string `json:"species"`
}

// FormPage es el view-model del formulario de alta.
type FormPage struct {
	Title        string
	FormPath     string
	ErrorMessage string
	Values       FormValues
}

type HandlerOptions struct {
	AppTitle string
	Logger   logger.Logger
}

func RegisterRoutes(r chi.Router, svc *Service, view Renderer, opts HandlerOptions) {
	h := &handlers{
		svc:       svc,
		view:      view,
		log:       opts.Logger,
		listTitle: "Homepage | " + opts.AppTitle,
		formTitle: "Update Custom Object Form | " + opts.AppTitle,
	}
	if h.log == nil {
		h.log = logger.NewNop()
	}

	r.Get("/", h.list)
	r.Route(FormPath, func(fr chi.Router) {
		fr.Get("/", h.showForm)
		fr.Post("/", h.create)
	})
}

type handlers struct {
	svc  *Service
	view Renderer
	log  logger.Logger

	listTitle string
	formTitle string
}

func (h *handlers) list(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		re := AsRemoteError(err)
		h.log.Error("list records failed", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"status":     re.StatusCode,
			"err":        err,
		})
		h.render(w, http.StatusInternalServerError, ViewHomepage, ListPage{
			Title:        h.listTitle,
			Records:      []Record{},
			ErrorMessage: re.Display(),
		})
		return
	}

	h.render(w, http.StatusOK, ViewHomepage, ListPage{
		Title:   h.listTitle,
		Records: items,
	})
}

func (h *handlers) showForm(w http.ResponseWriter, _ *http.Request) {
	h.render(w, http.StatusOK, ViewUpdates, FormPage{
		Title:    h.formTitle,
		FormPath: FormPath,
	})
}

func (h *handlers) create(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	values, err := decodeForm(r)
	if err != nil {
		h.render(w, http.StatusBadRequest, ViewUpdates, FormPage{
			Title:        h.formTitle,
			FormPath:     FormPath,
			ErrorMessage: "Invalid form submission.",
		})
		return
	}

	_, err = h.svc.Create(r.Context(), CreateInput{
		Name:    values.Name,
		Bio:     values.Bio,
		Species: values.Species,
	})
	if err != nil {
		page := FormPage{
			Title:    h.formTitle,
			FormPath: FormPath,
			Values:   values,
		}

		var ve *ValidationError
		if errors.As(err, &ve) {
			page.ErrorMessage = ve.Message
			h.render(w, http.StatusBadRequest, ViewUpdates, page)
			return
		}

		re := AsRemoteError(err)
		h.log.Error("create record failed", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"status":     re.StatusCode,
			"err":        err,
		})
		page.ErrorMessage = re.Display()
		h.render(w, http.StatusInternalServerError, ViewUpdates, page)
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *handlers) render(w http.ResponseWriter, status int, name string, data any) {
	if err := h.view.Render(w, status, name, data); err != nil {
		h.log.Error("render failed", map[string]any{"view": name, "err": err})
	}
}

// decodeForm acepta urlencoded/multipart o JSON (Content-Type application/json).
func decodeForm(r *http.Request) (FormValues, error) {
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.EqualFold(ct, "application/json") {
		var v FormValues
		if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
			return FormValues{}, err
		}
		return v, nil
	}

	if strings.EqualFold(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxFormBytes); err != nil {
			return FormValues{}, err
		}
	} else if err := r.ParseForm(); err != nil {
		return FormValues{}, err
	}

	return FormValues{
		Name:    r.PostFormValue(PropName),
		Bio:     r.PostFormValue(PropBio),
		Species: r.PostFormValue(PropSpecies),
	}, nil
}
