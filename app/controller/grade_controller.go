package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"fnp-marketplace/app/response"
	"fnp-marketplace/logger"
	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
	"fnp-marketplace/utils"
)

// GradeController serves the category and grade table the price list forms are built from
type GradeController struct{}

// NewGradeController creates a new GradeController
func NewGradeController() *GradeController {
	return &GradeController{}
}

// List handles GET /grades. The table is paged like every other list.
func (c *GradeController) List(w http.ResponseWriter, r *http.Request) {
	all := pricing.AllGrades()
	page := utils.PageFromQuery(r.URL.Query())
	response.JSON(w, http.StatusOK, models.NewListResponse(utils.Slice(all, page), len(all)))
}

// ByCategory handles GET /grades/{category}. An unknown category is an empty list, not an error.
// Example response:
//
//	{"data": [{"key": "super", "code": "S", "label": "Super"}], "total": 6}
func (c *GradeController) ByCategory(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "category")
	category, ok := pricing.ParseCategory(name)
	if !ok {
		logger.Log.Debugf("🔍 GradesByCategory: unknown category %q", name)
	}
	grades := pricing.Grades(category)
	response.JSON(w, http.StatusOK, models.NewListResponse(grades, len(grades)))
}
