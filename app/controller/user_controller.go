package controller

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fnp-marketplace/app/response"
	"fnp-marketplace/logger"
	"fnp-marketplace/models"
	"fnp-marketplace/utils"
)

// UserController handles admin requests for application users
type UserController struct {
	service UserService
}

// NewUserController creates a new UserController
func NewUserController(svc UserService) *UserController {
	return &UserController{service: svc}
}

// List handles GET /admin/users?p=1&search=&role=farmer
func (c *UserController) List(w http.ResponseWriter, r *http.Request) {
	logger.Log.Infof("📥 ListUsers: Received %s request to %s", r.Method, r.URL.Path)

	q := r.URL.Query()
	filter := models.UserFilter{Search: strings.TrimSpace(q.Get("search"))}
	if raw := strings.TrimSpace(q.Get("role")); raw != "" {
		role, ok := models.ParseRole(raw)
		if !ok {
			verr := &models.ValidationError{}
			verr.Add("role", "must be farmer, buyer or admin")
			response.FromError(w, "ListUsers", verr)
			return
		}
		filter.Role = role
	}

	users, total, err := c.service.List(r.Context(), filter, utils.PageFromQuery(q))
	if err != nil {
		response.FromError(w, "ListUsers", err)
		return
	}
	response.JSON(w, http.StatusOK, models.NewListResponse(users, total))
}

// Get handles GET /admin/users/{id}
func (c *UserController) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	user, err := c.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, "GetUser", err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

// Create handles POST /admin/users
// Example request:
//
//	{
//	  "name": "Tendai Moyo", "email": "tendai@example.com", "password": "changeme1",
//	  "role": "farmer", "specializations": ["beef", "goat"]
//	}
func (c *UserController) Create(w http.ResponseWriter, r *http.Request) {
	logger.Log.Infof("📥 CreateUser: Received %s request to %s", r.Method, r.URL.Path)

	var in models.UserInput
	if err := decodeBody(w, r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := c.service.Create(r.Context(), in)
	if err != nil {
		response.FromError(w, "CreateUser", err)
		return
	}

	logger.Log.Infof("✅ CreateUser: Created user %s (%s)", user.ID, user.Role)
	response.JSON(w, http.StatusCreated, user)
}

// Update handles PUT /admin/users/{id}. A blank password keeps the current one.
func (c *UserController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 UpdateUser: Received %s request for id=%s", r.Method, id)

	var in models.UserInput
	if err := decodeBody(w, r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := c.service.Update(r.Context(), id, in)
	if err != nil {
		response.FromError(w, "UpdateUser", err)
		return
	}
	response.JSON(w, http.StatusOK, user)
}

// Delete handles DELETE /admin/users/{id}
func (c *UserController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 DeleteUser: Received %s request for id=%s", r.Method, id)

	if err := c.service.Delete(r.Context(), id); err != nil {
		response.FromError(w, "DeleteUser", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
