package main

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"

	"github.com/billed/expense-client/internal/bill"
	"github.com/billed/expense-client/internal/identity"
	"github.com/billed/expense-client/internal/scanning"
	"github.com/billed/expense-client/internal/store"
	"github.com/billed/expense-client/internal/web"
)

//go:embed VERSION.txt
var versionFile string

var version = strings.TrimSpace(versionFile)

func main() {
	fs := ff.NewFlagSet("expense-client")
	var (
		port        = fs.IntLong("port", 8080, "HTTP server port")
		apiURL      = fs.StringLong("api-url", "http://localhost:5678", "Expense API base URL")
		offline     = fs.BoolLong("offline", "Use an in-memory store instead of the remote API")
		storagePath = fs.StringLong("storage", "./receipts", "Receipt directory for offline mode")
		dbPath      = fs.StringLong("db", "sessions.db", "Session database file path")
		email       = fs.StringLong("email", "", "Email of the connected employee")
		userType    = fs.StringLong("user-type", "Employee", "Type of the connected user")
		scannerType = fs.StringLong("scanner", "none", "Receipt scanner: 'gemini', 'ollama' or 'none'")
		geminiKey   = fs.StringLong("gemini-key", "", "Google Gemini API key (or set GEMINI_API_KEY env var)")
		geminiModel = fs.StringLong("gemini-model", "gemini-2.5-pro", "Google Gemini model name")
		ollamaURL   = fs.StringLong("ollama-url", "http://localhost:11434", "Ollama API base URL")
		ollamaModel = fs.StringLong("ollama-model", "llava", "Ollama model name (e.g., llava, qwen2-vl)")
		showVersion = fs.BoolLong("version", "Show version information")
	)

	if err := ff.Parse(fs, os.Args[1:],
		ff.WithEnvVarPrefix("EXPENSE_CLIENT"),
	); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", ffhelp.Flags(fs))
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *showVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	// Initialize the session store and record the connected user
	slog.Info("Opening session store...", "path", *dbPath)
	sessions, err := identity.NewBoltSessions(*dbPath)
	if err != nil {
		slog.Error("Failed to open session store", "error", err)
		os.Exit(1)
	}
	defer sessions.Close()

	if *email != "" {
		if err := sessions.SetCurrentUser(identity.User{Type: *userType, Email: *email}); err != nil {
			slog.Error("Failed to record connected user", "error", err)
			os.Exit(1)
		}
	}
	if _, err := sessions.CurrentUser(); err != nil {
		slog.Error("No connected user. Pass --email or set EXPENSE_CLIENT_EMAIL", "error", err)
		os.Exit(1)
	}

	// Initialize the store
	var billStore bill.Store
	if *offline {
		slog.Info("Using in-memory store", "storage", *storagePath)
		files, err := store.NewLocalStorage(*storagePath)
		if err != nil {
			slog.Error("Failed to initialize receipt storage", "error", err)
			os.Exit(1)
		}
		billStore = store.NewMemoryStore(files)
	} else {
		slog.Info("Using remote store", "url", *apiURL)
		billStore = store.NewRestStore(*apiURL)
	}

	// Initialize the optional receipt scanner
	var scanner scanning.Scanner
	switch *scannerType {
	case "gemini":
		apiKey := *geminiKey
		if apiKey == "" {
			apiKey = os.Getenv("GEMINI_API_KEY")
		}
		if apiKey == "" {
			slog.Error("Gemini API key is required. Set --gemini-key flag or GEMINI_API_KEY environment variable")
			os.Exit(1)
		}
		slog.Info("Initializing Gemini scanner...", "model", *geminiModel)
		scanner, err = scanning.NewGemini(apiKey, *geminiModel)
		if err != nil {
			slog.Error("Failed to initialize Gemini", "error", err)
			os.Exit(1)
		}
	case "ollama":
		slog.Info("Initializing Ollama scanner...", "url", *ollamaURL, "model", *ollamaModel)
		scanner, err = scanning.NewOllama(*ollamaURL, *ollamaModel)
		if err != nil {
			slog.Error("Failed to initialize Ollama", "error", err)
			os.Exit(1)
		}
	case "none":
		// Scanning stays disabled
	default:
		slog.Error("Invalid scanner type", "type", *scannerType, "valid", "gemini, ollama or none")
		os.Exit(1)
	}
	if scanner != nil {
		defer scanner.Close()
	}

	// Initialize services
	collection := bill.NewCollectionService(billStore)
	submission := bill.NewSubmissionService(billStore, sessions, func(path string) {
		slog.Debug("Navigation requested", "path", path)
	})

	server := web.NewServer(collection, submission, scanner)

	addr := fmt.Sprintf(":%d", *port)
	go func() {
		if err := server.Start(addr); err != nil {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	slog.Info("Server started", "address", fmt.Sprintf("http://localhost%s", addr))

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	slog.Info("Shutting down...")
}
