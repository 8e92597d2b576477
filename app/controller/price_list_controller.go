package controller

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"fnp-marketplace/app/response"
	"fnp-marketplace/logger"
	"fnp-marketplace/models"
	"fnp-marketplace/pricing"
	"fnp-marketplace/repository"
	"fnp-marketplace/service"
	"fnp-marketplace/utils"
)

// PriceListController handles HTTP requests for producer price lists
type PriceListController struct {
	service   PriceListService
	documents PriceListDocumentRenderer
}

// NewPriceListController creates a new PriceListController
func NewPriceListController(svc PriceListService, documents PriceListDocumentRenderer) *PriceListController {
	return &PriceListController{
		service:   svc,
		documents: documents,
	}
}

// List handles GET /producer-price-lists?p=1&size=20&search=&client_id=
// Example response:
//
//	{
//	  "data": [{"id": "...", "client_name": "Premium Meats", "effectiveDate": "2024-01-15", "beef": {...}}],
//	  "total": 1
//	}
func (c *PriceListController) List(w http.ResponseWriter, r *http.Request) {
	logger.Log.Infof("📥 ListPriceLists: Received %s request to %s", r.Method, r.URL.Path)

	q := r.URL.Query()
	page := utils.PageFromQuery(q)
	filter := repository.PriceListFilter{
		Search:   strings.TrimSpace(q.Get("search")),
		ClientID: strings.TrimSpace(q.Get("client_id")),
	}

	lists, total, err := c.service.List(r.Context(), filter, page)
	if err != nil {
		response.FromError(w, "ListPriceLists", err)
		return
	}

	logger.Log.Infof("✅ ListPriceLists: Returned %d of %d price lists", len(lists), total)
	response.JSON(w, http.StatusOK, models.NewListResponse(lists, total))
}

// Get handles GET /producer-price-lists/{id}. Only categories with hasPrice are returned.
func (c *PriceListController) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 GetPriceList: Received %s request for id=%s", r.Method, id)

	list, err := c.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, "GetPriceList", err)
		return
	}
	response.JSON(w, http.StatusOK, list)
}

// Breakdown handles GET /producer-price-lists/{id}/breakdown
// Example response:
//
//	{
//	  "client_name": "Premium Meats",
//	  "categories": [{"category": "beef", "rows": [{"code": "S", "label": "Super", "delivered": "$50.00", "collected": "-"}]}]
//	}
func (c *PriceListController) Breakdown(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 PriceListBreakdown: Received %s request for id=%s", r.Method, id)

	list, err := c.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, "PriceListBreakdown", err)
		return
	}
	response.JSON(w, http.StatusOK, pricing.Breakdown(list))
}

// Render handles GET /producer-price-lists/{id}/render and returns the printable HTML page
func (c *PriceListController) Render(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 RenderPriceList: Received %s request for id=%s", r.Method, id)

	list, err := c.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, "RenderPriceList", err)
		return
	}
	html, err := c.documents.RenderHTML(list)
	if err != nil {
		response.FromError(w, "RenderPriceList", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(html)
}

// PDF handles GET /producer-price-lists/{id}/pdf
func (c *PriceListController) PDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 PriceListPDF: Received %s request for id=%s", r.Method, id)

	list, err := c.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, "PriceListPDF", err)
		return
	}
	pdf, err := c.documents.GeneratePDF(r.Context(), list)
	if err != nil {
		response.FromError(w, "PriceListPDF", err)
		return
	}

	filename := fmt.Sprintf("price-list-%s.pdf", list.EffectiveDate.Format(pricing.DateLayout))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
	logger.Log.Infof("✅ PriceListPDF: Sent %d bytes for id=%s", len(pdf), id)
}

// New handles GET /admin/producer-price-lists/new?client_id=&client_name=&client_specialization=
// and returns the creation form: every category hidden, every grade priced 0.
func (c *PriceListController) New(w http.ResponseWriter, r *http.Request) {
	logger.Log.Infof("📥 NewPriceList: Received %s request to %s", r.Method, r.URL.Path)

	q := r.URL.Query()
	draft := c.service.NewDraft(q.Get("client_id"), q.Get("client_name"), q.Get("client_specialization"))
	response.JSON(w, http.StatusOK, draft.FormView())
}

// Edit handles GET /admin/producer-price-lists/{id} and returns the edit form, hidden categories included
func (c *PriceListController) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 EditPriceList: Received %s request for id=%s", r.Method, id)

	list, err := c.service.Get(r.Context(), id)
	if err != nil {
		response.FromError(w, "EditPriceList", err)
		return
	}
	response.JSON(w, http.StatusOK, list.FormView())
}

// Create handles POST /admin/producer-price-lists
// Example request:
//
//	{
//	  "client_id": "c-1", "client_name": "Premium Meats", "effectiveDate": "2024-01-15",
//	  "beef": {"hasPrice": true, "super": {"pricing": {"delivered": 5000, "collected": 4500}}, ...}
//	}
func (c *PriceListController) Create(w http.ResponseWriter, r *http.Request) {
	logger.Log.Infof("📥 CreatePriceList: Received %s request to %s", r.Method, r.URL.Path)

	body, err := readBody(w, r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := c.service.Create(r.Context(), body)
	if err != nil {
		response.FromError(w, "CreatePriceList", err)
		return
	}

	logger.Log.Infof("✅ CreatePriceList: Created id=%s for client_id=%s", list.ID, list.ClientID)
	response.JSON(w, http.StatusCreated, list)
}

// Update handles PUT /admin/producer-price-lists/{id}
func (c *PriceListController) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 UpdatePriceList: Received %s request for id=%s", r.Method, id)

	body, err := readBody(w, r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := c.service.Update(r.Context(), id, body)
	if err != nil {
		response.FromError(w, "UpdatePriceList", err)
		return
	}

	logger.Log.Infof("✅ UpdatePriceList: Updated id=%s", id)
	response.JSON(w, http.StatusOK, list)
}

// BulkFill handles POST /admin/producer-price-lists/{id}/bulk-fill
// Example request: {"category": "beef", "priceType": "delivered", "value": 6000}
func (c *PriceListController) BulkFill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 BulkFillPriceList: Received %s request for id=%s", r.Method, id)

	var req service.BulkFillRequest
	if err := decodeBody(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := c.service.BulkFill(r.Context(), id, req)
	if err != nil {
		response.FromError(w, "BulkFillPriceList", err)
		return
	}

	logger.Log.Infof("✅ BulkFillPriceList: Filled %s %s on id=%s", req.Category, req.PriceType, id)
	response.JSON(w, http.StatusOK, list.FormView())
}

// Delete handles DELETE /admin/producer-price-lists/{id}
func (c *PriceListController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	logger.Log.Infof("📥 DeletePriceList: Received %s request for id=%s", r.Method, id)

	if err := c.service.Delete(r.Context(), id); err != nil {
		response.FromError(w, "DeletePriceList", err)
		return
	}

	logger.Log.Infof("✅ DeletePriceList: Deleted id=%s", id)
	w.WriteHeader(http.StatusNoContent)
}
