package controller

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fnp-marketplace/models"
	"fnp-marketplace/repository"
	"fnp-marketplace/utils"
)

func TestUserController_ListFilters(t *testing.T) {
	svc := new(mockUserService)
	c := NewUserController(svc)
	svc.On("List", mock.Anything, models.UserFilter{Search: "moyo", Role: models.RoleFarmer}, utils.NewPage(3, 20)).
		Return([]*models.User{{ID: "u-1", Name: "Tendai Moyo", Role: models.RoleFarmer}}, 41, nil)

	req := httptest.NewRequest(http.MethodGet, "/admin/users?p=3&search=moyo&role=Farmer", nil)
	rec := serve(http.MethodGet, "/admin/users", c.List, req)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeMap(t, rec)
	assert.EqualValues(t, 41, body["total"])
	assert.Len(t, body["data"], 1)
}

func TestUserController_ListUnknownRole(t *testing.T) {
	svc := new(mockUserService)
	c := NewUserController(svc)

	req := httptest.NewRequest(http.MethodGet, "/admin/users?role=vet", nil)
	rec := serve(http.MethodGet, "/admin/users", c.List, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
}

func TestUserController_Create(t *testing.T) {
	svc := new(mockUserService)
	c := NewUserController(svc)
	svc.On("Create", mock.Anything, mock.MatchedBy(func(in models.UserInput) bool {
		return in.Email == "tendai@example.com" && len(in.Specializations) == 2
	})).Return(&models.User{ID: "u-1", Email: "tendai@example.com", PasswordHash: "hash"}, nil)

	body := `{"name":"Tendai","email":"tendai@example.com","password":"changeme1","role":"farmer","specializations":["beef","goat"]}`
	req := httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(body))
	rec := serve(http.MethodPost, "/admin/users", c.Create, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hash", "password hashes never leave the server")
}

func TestUserController_CreateConflict(t *testing.T) {
	svc := new(mockUserService)
	c := NewUserController(svc)
	svc.On("Create", mock.Anything, mock.Anything).Return(nil, repository.ErrConflict)

	req := httptest.NewRequest(http.MethodPost, "/admin/users", strings.NewReader(`{"email":"dup@example.com"}`))
	rec := serve(http.MethodPost, "/admin/users", c.Create, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUserController_UpdateAndDelete(t *testing.T) {
	svc := new(mockUserService)
	c := NewUserController(svc)
	svc.On("Update", mock.Anything, "u-1", mock.Anything).Return(&models.User{ID: "u-1"}, nil)
	svc.On("Delete", mock.Anything, "u-2").Return(repository.ErrNotFound)

	req := httptest.NewRequest(http.MethodPut, "/admin/users/u-1", strings.NewReader(`{"name":"Tendai"}`))
	rec := serve(http.MethodPut, "/admin/users/{id}", c.Update, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/admin/users/u-2", nil)
	rec = serve(http.MethodDelete, "/admin/users/{id}", c.Delete, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
