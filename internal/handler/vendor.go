package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/ewhitmore/marquee/internal/model"
	"github.com/ewhitmore/marquee/internal/store"
	ws "github.com/ewhitmore/marquee/internal/websocket"
)

type VendorHandler struct {
	store  *store.VendorStore
	hub    *ws.Hub
	logger *slog.Logger
}

func NewVendorHandler(s *store.VendorStore, hub *ws.Hub, logger *slog.Logger) *VendorHandler {
	return &VendorHandler{store: s, hub: hub, logger: logger}
}

type vendorRequest struct {
	Name         string `json:"name"`
	ContactEmail string `json:"contact_email"`
	PhoneNumber  string `json:"phone_number"`
	Address      string `json:"address"`
	Website      string `json:"website"`
}

func (req *vendorRequest) validate(w http.ResponseWriter) bool {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return false
	}
	if req.ContactEmail != "" && !emailRegexp.MatchString(req.ContactEmail) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "contact_email must be a valid email"})
		return false
	}
	return true
}

func (h *VendorHandler) List(w http.ResponseWriter, r *http.Request) {
	vendors, err := h.store.List()
	if err != nil {
		h.logger.Error("list vendors", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to list vendors"})
		return
	}
	if vendors == nil {
		vendors = []model.Vendor{}
	}
	writeJSON(w, http.StatusOK, vendors)
}

func (h *VendorHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	vendor, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get vendor", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get vendor"})
		return
	}
	if vendor == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vendor not found"})
		return
	}

	writeJSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req vendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !req.validate(w) {
		return
	}

	exists, err := h.store.NameExists(req.Name, 0)
	if err != nil {
		h.logger.Error("check vendor name", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check name"})
		return
	}
	if exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a vendor with that name already exists"})
		return
	}

	vendor, err := h.store.Create(req.Name, req.ContactEmail, req.PhoneNumber, req.Address, req.Website)
	if err != nil {
		h.logger.Error("create vendor", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create vendor"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("vendor", "created", strconv.FormatInt(vendor.ID, 10), nil))
	writeJSON(w, http.StatusCreated, vendor)
}

func (h *VendorHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get vendor", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get vendor"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vendor not found"})
		return
	}

	var req vendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON"})
		return
	}
	if !req.validate(w) {
		return
	}

	exists, err := h.store.NameExists(req.Name, id)
	if err != nil {
		h.logger.Error("check vendor name", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to check name"})
		return
	}
	if exists {
		writeJSON(w, http.StatusConflict, map[string]string{"error": "a vendor with that name already exists"})
		return
	}

	vendor, err := h.store.Update(id, req.Name, req.ContactEmail, req.PhoneNumber, req.Address, req.Website)
	if err != nil {
		h.logger.Error("update vendor", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to update vendor"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("vendor", "updated", strconv.FormatInt(id, 10), nil))
	writeJSON(w, http.StatusOK, vendor)
}

func (h *VendorHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid id"})
		return
	}

	existing, err := h.store.GetByID(id)
	if err != nil {
		h.logger.Error("get vendor", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to get vendor"})
		return
	}
	if existing == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "vendor not found"})
		return
	}

	if err := h.store.Delete(id); err != nil {
		h.logger.Error("delete vendor", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to delete vendor"})
		return
	}

	h.hub.Broadcast(ws.NewMessage("vendor", "deleted", strconv.FormatInt(id, 10), nil))
	w.WriteHeader(http.StatusNoContent)
}
