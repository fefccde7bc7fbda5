package web

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"sort"
	"strings"

	"github.com/billed/expense-client/internal/bill"
	"github.com/billed/expense-client/internal/routes"
)

// maxUploadSize bounds receipt uploads; phone photos stay well under this.
const maxUploadSize = int64(50 << 20) // 50MB

// handleIndex redirects the root to the bills list
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, routes.Bills, http.StatusFound)
}

// handleBillsPage renders the bills list, ordered earliest to latest by the
// stored date. A store failure renders the error view with the literal
// store message ("Erreur 404", "Erreur 500").
func (s *Server) handleBillsPage(w http.ResponseWriter, r *http.Request) {
	bills, err := s.bills.GetBills(r.Context())
	if err != nil {
		slog.Error("Error listing bills", "error", err)
		renderError(w, err.Error())
		return
	}

	// ISO dates sort lexicographically in chronological order.
	sort.SliceStable(bills, func(i, j int) bool { return bills[i].RawDate < bills[j].RawDate })

	renderBills(w, bills)
}

// handleNewBillPage renders the new bill form
func (s *Server) handleNewBillPage(w http.ResponseWriter, r *http.Request) {
	renderNewBill(w, s.scanner != nil)
}

// readUpload extracts the uploaded receipt from a multipart request.
func readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		slog.Error("Error parsing multipart form", "error", err)
		writeJSONError(w, "Error parsing form", http.StatusBadRequest)
		return "", nil, false
	}

	f, header, err := r.FormFile("file")
	if err != nil {
		slog.Error("Error getting file from form", "error", err)
		writeJSONError(w, "No file was selected. Please choose a file to upload.", http.StatusBadRequest)
		return "", nil, false
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		slog.Error("Error reading file data", "error", err, "filename", header.Filename)
		writeJSONError(w, "Error reading file. Please try again.", http.StatusInternalServerError)
		return "", nil, false
	}

	return header.Filename, data, true
}

// handleFileSelected validates and stages a receipt file. A disallowed
// extension answers with clearInput so the page resets the file picker.
func (s *Server) handleFileSelected(w http.ResponseWriter, r *http.Request) {
	fileName, data, ok := readUpload(w, r)
	if !ok {
		return
	}

	staged, err := s.newBill.HandleFileSelected(r.Context(), fileName, data)
	if errors.Is(err, bill.ErrExtensionNotAllowed) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{
			"error":      err.Error(),
			"clearInput": true,
		})
		return
	}
	if err != nil {
		writeJSONError(w, err.Error(), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	response := map[string]string{}
	if staged != nil {
		response["fileUrl"] = staged.FileURL
		response["fileName"] = staged.FileName
		response["key"] = staged.BillID
	}
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// handleSubmit builds and persists the bill from the form fields, then
// sends the user back to the bills list.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := bill.BillForm{
		Type:       r.FormValue("expense-type"),
		Name:       r.FormValue("expense-name"),
		Amount:     r.FormValue("amount"),
		Date:       r.FormValue("datepicker"),
		Vat:        r.FormValue("vat"),
		Pct:        r.FormValue("pct"),
		Commentary: r.FormValue("commentary"),
	}

	if err := s.newBill.Submit(r.Context(), form); err != nil {
		if errors.Is(err, bill.ErrInvalidAmount) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		slog.Error("Error submitting bill", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, routes.Bills, http.StatusSeeOther)
}

// handleScan extracts expense fields from a receipt image to pre-fill the
// form. Only available when a scanner is configured.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	if s.scanner == nil {
		writeJSONError(w, "Scanning is not configured", http.StatusServiceUnavailable)
		return
	}

	fileName, data, ok := readUpload(w, r)
	if !ok {
		return
	}

	if !bill.AllowedExtension(fileName) {
		writeJSONError(w, bill.ErrExtensionNotAllowed.Error(), http.StatusBadRequest)
		return
	}

	billData, err := s.scanner.ScanBill(data, contentTypeFor(fileName))
	if err != nil {
		slog.Error("Error scanning receipt", "filename", fileName, "error", err)
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(billData); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// contentTypeFor maps an allowed receipt extension to its MIME type.
func contentTypeFor(fileName string) string {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".png":
		return "image/png"
	default:
		return "image/jpeg"
	}
}

// writeJSONError writes a JSON error body with the given status
func writeJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
