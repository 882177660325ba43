package handlers

import (
	"net/http"
	"path"
	"strings"

	"fleet-route-service/internal/adapters/importer"
	"fleet-route-service/internal/api/dto"
	"fleet-route-service/internal/services"
)

// Uploads larger than this are rejected outright.
const maxImportBytes = 10 << 20

type ClientHandler struct {
	clients *services.ClientService
}

func NewClientHandler(clients *services.ClientService) *ClientHandler {
	return &ClientHandler{clients: clients}
}

func (h *ClientHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewClientListResponse(h.clients.List(r.Context())))
}

func (h *ClientHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.AddClientRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	client, err := h.clients.Add(r.Context(), req.SocialReason, req.Address)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.NewClientResponse(client))
}

func (h *ClientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.clients.Delete(r.Context(), r.PathValue("id")); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear wipes the whole registry. The caller must pass ?confirm=true.
func (h *ClientHandler) Clear(w http.ResponseWriter, r *http.Request) {
	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := h.clients.Clear(r.Context(), confirmed); err != nil {
		respondErr(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ClientHandler) Search(w http.ResponseWriter, r *http.Request) {
	results := h.clients.Search(r.Context(), r.URL.Query().Get("q"))
	writeJSON(w, http.StatusOK, dto.NewClientListResponse(results))
}

// Import accepts a bulk upload: a multipart form with a "file" part
// (.csv or .xlsx, dispatched by extension) or a raw CSV request body.
func (h *ClientHandler) Import(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		h.importMultipart(w, r)
		return
	}

	imported, err := h.clients.ImportCSV(r.Context(), r.Body)
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ImportClientsResponse{Imported: imported})
}

func (h *ClientHandler) importMultipart(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	var imported int
	switch strings.ToLower(path.Ext(header.Filename)) {
	case ".xlsx":
		rows, readErr := importer.ReadClientRows(file)
		if readErr != nil {
			writeError(w, http.StatusBadRequest, readErr.Error())
			return
		}
		imported, err = h.clients.ImportRows(r.Context(), rows)
	default:
		imported, err = h.clients.ImportCSV(r.Context(), file)
	}
	if err != nil {
		respondErr(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ImportClientsResponse{Imported: imported})
}
