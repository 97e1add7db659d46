package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api/assistant/v1"

// Paste a fresh token before running. The org and user come from its claims.
var userToken = os.Getenv("ASSISTANT_TEST_TOKEN")

func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

func sendRequest(method, path string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+path, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+userToken)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)
	return resp, respBody, nil
}

func main() {
	color.Cyan("🚀 Starting Assistant API Smoke Test\n")

	if userToken == "" {
		color.Red("ASSISTANT_TEST_TOKEN is not set")
		os.Exit(1)
	}

	color.Yellow("\n1. Create Chat Session")
	resp, body, err := sendRequest("POST", "/sessions", map[string]interface{}{})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var created struct {
		Data struct {
			Id string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &created); err != nil || created.Data.Id == "" {
		color.Red("Could not read session id from response")
		os.Exit(1)
	}
	sessionId := created.Data.Id
	fmt.Println("Session:", sessionId)

	color.Yellow("\n2. List Sessions")
	resp, body, err = sendRequest("GET", "/sessions", nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var parsed map[string]interface{}
		json.Unmarshal(body, &parsed)
		prettyPrint(parsed)
	}

	color.Yellow("\n3. Stream a Turn: 'What is in the active sprint?'")
	streamTurn(sessionId, "What is in the active sprint?")

	color.Yellow("\n4. Stream a Turn: unknown reference")
	streamTurn(sessionId, "Show me initiative I-9999")

	color.Yellow("\n5. Fetch Session Transcript")
	resp, body, err = sendRequest("GET", "/sessions/"+sessionId, nil)
	if err != nil {
		color.Red("Failed: %v", err)
	} else {
		color.Green("Status: %s", resp.Status)
		var parsed map[string]interface{}
		json.Unmarshal(body, &parsed)
		prettyPrint(parsed)
	}

	color.Cyan("\n✅ Smoke test finished")
}

func streamTurn(sessionId, message string) {
	q := url.Values{}
	q.Set("session_id", sessionId)
	q.Set("message", message)

	req, err := http.NewRequest("GET", baseURL+"/chat/stream?"+q.Encode(), nil)
	if err != nil {
		color.Red("Failed: %v", err)
		return
	}
	req.Header.Set("Authorization", "Bearer "+userToken)
	req.Header.Set("Accept", "text/event-stream")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		color.Red("Failed: %v", err)
		return
	}
	defer resp.Body.Close()
	color.Green("Status: %s", resp.Status)

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "event: error"):
			color.Red(line)
		case strings.HasPrefix(line, "data: "):
			fmt.Println(line)
		}
	}
}
