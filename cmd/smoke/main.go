package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/agenthands/orderbot/internal/core/model"
)

func main() {
	addr := flag.String("addr", "http://localhost:8000", "base URL of a running server")
	query := flag.String("prompt", "cheap vegetarian pizza", "query to send")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall request timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	fmt.Println("1. Checking health...")
	if err := checkHealth(ctx, *addr); err != nil {
		fmt.Printf("FAILED: health: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("PASSED: health")

	fmt.Printf("2. Querying %q...\n", *query)
	resp, err := queryItems(ctx, *addr, *query)
	if err != nil {
		fmt.Printf("FAILED: query: %v\n", err)
		os.Exit(1)
	}
	for i, m := range resp.Matches {
		fmt.Printf("  %d. %s (%s) Rs.%.2f similarity=%.3f\n", i+1, m.Name, m.Category, m.Price, m.Similarity)
	}
	fmt.Printf("Recommendation:\n%s\n", resp.Recommendation)
	fmt.Println("PASSED: query")
}

func checkHealth(ctx context.Context, addr string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr+"/health", nil)
	if err != nil {
		return err
	}
	_, err = do(req)
	return err
}

func queryItems(ctx context.Context, addr, query string) (*model.QueryResponse, error) {
	payload, err := json.Marshal(map[string]string{"prompt": query})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, addr+"/query-items", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := do(req)
	if err != nil {
		return nil, err
	}

	var resp model.QueryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return &resp, nil
}

func do(req *http.Request) ([]byte, error) {
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
