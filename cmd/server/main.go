package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	flag "github.com/spf13/pflag"

	"mcpgithub/server/internal/auth"
	"mcpgithub/server/internal/db"
	"mcpgithub/server/internal/mcp"
	"mcpgithub/server/internal/middleware"
	"mcpgithub/server/internal/modules"
	"mcpgithub/server/internal/modules/github"
	"mcpgithub/server/internal/observability"
	"mcpgithub/server/pkg/githubapi"
)

const version = "0.1.0"

func main() {
	var (
		token      = flag.String("token", "", "GitHub personal access token (overrides --token-env)")
		tokenEnv   = flag.String("token-env", "GITHUB_TOKEN", "environment variable holding the GitHub token")
		owner      = flag.String("owner", "", "default owner (user or org) for tools that omit one")
		maxResults = flag.Int("max-results", 30, "default page size for list tools")
		httpAddr   = flag.String("http", "", "serve MCP over HTTP on this address instead of stdio (e.g. :8089)")
	)
	flag.Parse()

	// Initialize observability (Loki). stdout/stderr logging is always on.
	observability.Init()

	if *owner == "" {
		*owner = os.Getenv("GITHUB_DEFAULT_OWNER")
	}

	tokens, err := resolveTokenSource(*token, *tokenEnv)
	if err != nil {
		log.Fatalf("Failed to configure credentials: %v", err)
	}
	if tokens == nil {
		log.Printf("WARNING: no GitHub credentials configured, running anonymously (low rate limits)")
	}

	// Optional usage log.
	database, err := db.Open()
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	recorder := db.NewRecorder(database)

	client := githubapi.NewClient(tokens)
	modules.RegisterModule(github.New(client, github.Config{
		DefaultOwner: *owner,
		MaxResults:   *maxResults,
	}))
	log.Printf("Registered modules: %v", modules.ListModules())

	handler := mcp.NewHandler(version, recorder)

	if *httpAddr != "" {
		serveHTTP(*httpAddr, handler)
		return
	}
	serveStdio(handler)
}

// resolveTokenSource picks the credential source: explicit token flag, then
// the token env var, then GitHub App configuration, then anonymous.
func resolveTokenSource(token, tokenEnv string) (githubapi.TokenSource, error) {
	if token == "" && tokenEnv != "" {
		token = os.Getenv(tokenEnv)
	}
	if token != "" {
		return githubapi.NewStaticTokenSource(token), nil
	}

	appTokens, err := auth.FromEnv()
	if err != nil {
		return nil, err
	}
	if appTokens != nil {
		log.Printf("Using GitHub App installation credentials")
		return appTokens, nil
	}
	return nil, nil
}

func serveStdio(handler *mcp.Handler) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Serving MCP on stdio")
	if err := middleware.ServeStdio(ctx, handler, os.Stdin, os.Stdout); err != nil && err != context.Canceled {
		log.Fatalf("stdio transport failed: %v", err)
	}
	log.Printf("Server stopped")
}

func serveHTTP(addr string, handler *mcp.Handler) {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"status":"ok","version":"%s"}`, version)
	})

	mux.Handle("/mcp", middleware.RequestID(middleware.Recovery(middleware.Transport(handler))))

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		log.Printf("Starting MCP server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Printf("Received signal %s, shutting down gracefully...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Printf("Server stopped")
}
