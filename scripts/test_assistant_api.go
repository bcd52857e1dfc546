package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

// Manual smoke run against a locally running server.
//
// Usage:
//
//	API_TOKEN=<jwt> go run scripts/test_assistant_api.go
var (
	baseURL = envOr("API_BASE_URL", "http://localhost:3000/api")
	token   = os.Getenv("API_TOKEN")
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func request(method, path string, body interface{}) (*http.Response, []byte, error) {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, data, nil
}

func main() {
	color.Cyan("🚀 Starting Assistant API Smoke Test\n")

	if token == "" {
		color.Red("API_TOKEN is not set")
		os.Exit(1)
	}

	color.Yellow("\n1. Get View State (bootstraps first thread)")
	resp, data, err := request(http.MethodGet, "/assistant/v1/view-state", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Println(string(data))

	color.Yellow("\n2. Create New Chat")
	resp, data, err = request(http.MethodPost, "/assistant/v1/threads", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Println(string(data))

	color.Yellow("\n3. Send English Greeting")
	resp, data, err = request(http.MethodPost, "/assistant/v1/chat", map[string]string{"chat": "hello there"})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Println(string(data))

	color.Yellow("\n4. Send Arabic Pricing Question")
	resp, data, err = request(http.MethodPost, "/assistant/v1/chat", map[string]string{"chat": "كم سعر التوصيل؟"})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Println(string(data))

	color.Yellow("\n5. Blank Send (should be a silent no-op)")
	resp, data, err = request(http.MethodPost, "/assistant/v1/chat", map[string]string{"chat": "   "})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Println(string(data))

	color.Yellow("\n6. List Threads")
	resp, data, err = request(http.MethodGet, "/assistant/v1/threads", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Println(string(data))

	color.Yellow("\n7. Clear Active Chat")
	resp, data, err = request(http.MethodDelete, "/assistant/v1/chat", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	fmt.Println(string(data))

	color.Cyan("\n✅ Smoke test finished")
}
