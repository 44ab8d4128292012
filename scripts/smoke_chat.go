package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"
)

// manual smoke check against a running server:
//
//	go run scripts/smoke_chat.go "what do the docs say about setup?"
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run smoke_chat.go <message> [mode]")
		fmt.Println("Example: go run smoke_chat.go \"summarize the setup document\" docs")
		os.Exit(1)
	}

	endpoint := os.Getenv("BROOFFLINE_API_ENDPOINT")
	if endpoint == "" {
		endpoint = "http://localhost:5000"
	}

	body := map[string]string{"message": os.Args[1]}
	if len(os.Args) > 2 {
		body["mode"] = os.Args[2]
	}

	payload, err := json.Marshal(body)
	if err != nil {
		log.Fatalf("Failed to encode request: %v", err)
	}

	client := &http.Client{Timeout: 3 * time.Minute}

	start := time.Now()
	resp, err := client.Post(endpoint+"/chat", "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("Failed to read response: %v", err)
	}

	fmt.Printf("Status: %s (%.1fs)\n", resp.Status, time.Since(start).Seconds())

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, raw, "", "  "); err != nil {
		fmt.Println(string(raw))
		return
	}

	fmt.Println(pretty.String())
}
