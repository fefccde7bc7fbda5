package web

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/billed/expense-client/internal/bill"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

func renderBills(w http.ResponseWriter, bills []bill.DisplayBill) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, "bills.html", bills); err != nil {
		slog.Error("Error rendering bills page", "error", err)
	}
}

func renderNewBill(w http.ResponseWriter, scanEnabled bool) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.ExecuteTemplate(w, "new_bill.html", scanEnabled); err != nil {
		slog.Error("Error rendering new bill page", "error", err)
	}
}

func renderError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusBadGateway)
	if err := pages.ExecuteTemplate(w, "error.html", message); err != nil {
		slog.Error("Error rendering error page", "error", err)
	}
}
