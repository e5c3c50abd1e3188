package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
)

var (
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
	blue   = color.New(color.FgBlue)
	purple = color.New(color.FgMagenta)
)

const sampleInput = `ageMin: 20
ageMax: 30
gender: Wanita
location: Jakarta, Indonesia
interests: fashion, thrifting, kopi
caption: Outfit thrift hari ini cuma 150rb! Kamu tim kemeja atau kaos? Komen di bawah ya 👇`

type TestClient struct {
	baseURL string
	client  *http.Client
}

func NewTestClient(baseURL string) *TestClient {
	return &TestClient{
		baseURL: baseURL,
		client: &http.Client{
			// AI analysis can take a while
			Timeout: 90 * time.Second,
		},
	}
}

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the agent")
	testType := flag.String("test", "all", "Test type: all, health, agent-card, options, form, analyze, custom")
	input := flag.String("input", "", "Form input as 'key: value' lines (for custom test)")
	flag.Parse()

	client := NewTestClient(*baseURL)

	printHeader("SMM Content Analyzer - Test Suite")
	cyan.Printf("Base URL: %s\n\n", *baseURL)

	switch *testType {
	case "all":
		client.runAllTests()
	case "health":
		client.testHealthCheck()
	case "agent-card":
		client.testAgentCard()
	case "options":
		client.testOptions()
	case "form":
		client.testFormFlow()
	case "analyze":
		client.testAnalysis()
	case "custom":
		if *input == "" {
			printError("Form input is required for custom test. Use -input flag")
			os.Exit(1)
		}
		client.testCustomAnalysis(strings.ReplaceAll(*input, `\n`, "\n"))
	default:
		printError(fmt.Sprintf("Unknown test type: %s", *testType))
		fmt.Println("\nAvailable tests: all, health, agent-card, options, form, analyze, custom")
		os.Exit(1)
	}
}

func (tc *TestClient) runAllTests() {
	tests := []struct {
		name string
		fn   func() bool
	}{
		{"Health Check", tc.testHealthCheck},
		{"Agent Card", tc.testAgentCard},
		{"Options", tc.testOptions},
		{"Form Flow", tc.testFormFlow},
		{"A2A Analysis", tc.testAnalysis},
	}

	passed := 0
	failed := 0

	for _, test := range tests {
		if test.fn() {
			passed++
		} else {
			failed++
		}
		fmt.Println()
	}

	printHeader("Test Summary")
	green.Printf("Passed: %d\n", passed)
	red.Printf("Failed: %d\n", failed)
	fmt.Printf("Total: %d\n", passed+failed)

	if failed > 0 {
		os.Exit(1)
	}
}

func (tc *TestClient) testHealthCheck() bool {
	printTestHeader("Testing Health Check Endpoint")

	status, body, err := tc.do(http.MethodGet, "/health", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	if string(body) != "OK" {
		printError(fmt.Sprintf("Expected body 'OK', got '%s'", string(body)))
		return false
	}

	printSuccess("Health check passed")
	return true
}

func (tc *TestClient) testAgentCard() bool {
	printTestHeader("Testing Agent Card Endpoint")

	status, body, err := tc.do(http.MethodGet, "/.well-known/agent.json", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}

	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	// Parse JSON to validate it's valid
	var agentCard map[string]interface{}
	if err := json.Unmarshal(body, &agentCard); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	// Check required fields
	requiredFields := []string{"name", "description", "version", "capabilities", "endpoints", "skills"}
	for _, field := range requiredFields {
		if _, ok := agentCard[field]; !ok {
			printError(fmt.Sprintf("Missing required field: %s", field))
			return false
		}
	}

	printSuccess("Agent card is valid")
	printJSON(body)
	return true
}

func (tc *TestClient) testOptions() bool {
	printTestHeader("Testing Options Endpoint")

	status, body, err := tc.do(http.MethodGet, "/api/options", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		return false
	}

	var options struct {
		Genders     []map[string]string `json:"genders"`
		Likelihoods []string            `json:"likelihoods"`
	}
	if err := json.Unmarshal(body, &options); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}
	if len(options.Genders) != 3 || len(options.Likelihoods) != 3 {
		printError(fmt.Sprintf("Expected 3 genders and 3 likelihoods, got %d and %d", len(options.Genders), len(options.Likelihoods)))
		return false
	}

	printSuccess("Options are valid")
	printJSON(body)
	return true
}

// testFormFlow fills the shared form field by field, checks that an invalid
// submit is rejected, then submits and waits for the report.
func (tc *TestClient) testFormFlow() bool {
	printTestHeader("Testing Form Flow")

	edits := []struct {
		group, field, value string
	}{
		{"audience", "location", "Jakarta, Indonesia"},
		{"audience", "interests", "fashion, thrifting"},
		{"content", "link", "instagram.com/p/abc"},
		{"content", "caption", "Outfit thrift hari ini cuma 150rb!"},
	}
	for _, e := range edits {
		status, body, err := tc.do(http.MethodPatch, "/api/form/"+e.group, map[string]string{"field": e.field, "value": e.value})
		if err != nil || status != http.StatusOK {
			printError(fmt.Sprintf("PATCH %s.%s failed: status %d, err %v, body %s", e.group, e.field, status, err, body))
			return false
		}
	}

	status, body, err := tc.do(http.MethodPost, "/api/form/submit", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusUnprocessableEntity {
		printError(fmt.Sprintf("Expected status 422 for a malformed link, got %d", status))
		return false
	}
	printSuccess("Malformed link rejected")
	printJSON(body)

	status, _, err = tc.do(http.MethodPatch, "/api/form/content", map[string]string{"field": "link", "value": "https://www.instagram.com/p/abc"})
	if err != nil || status != http.StatusOK {
		printError(fmt.Sprintf("Fixing link failed: status %d, err %v", status, err))
		return false
	}

	status, body, err = tc.do(http.MethodPost, "/api/form/submit?wait=true", nil)
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	if status != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", status))
		printJSON(body)
		return false
	}

	printSuccess("Form analysis completed successfully")
	printJSON(body)
	return true
}

func (tc *TestClient) testAnalysis() bool {
	return tc.testCustomAnalysis(sampleInput)
}

func (tc *TestClient) testCustomAnalysis(input string) bool {
	printTestHeader("Testing A2A Analysis")

	url := fmt.Sprintf("%s/a2a/analyzer", tc.baseURL)
	fmt.Printf("POST %s\n", url)
	cyan.Print("Input:")
	fmt.Printf("\n%s\n\n", input)

	// Create JSON-RPC request
	request := map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      fmt.Sprintf("test-%d", time.Now().Unix()),
		"method":  "message/send",
		"params": map[string]interface{}{
			"message": map[string]interface{}{
				"kind": "message",
				"role": "user",
				"parts": []map[string]interface{}{
					{
						"kind": "text",
						"text": input,
					},
				},
			},
			"configuration": map[string]interface{}{
				"blocking":            true,
				"acceptedOutputModes": []string{"text", "data"},
			},
		},
	}

	jsonData, _ := json.MarshalIndent(request, "", "  ")
	yellow.Println("Request:")
	fmt.Println(string(jsonData))
	fmt.Println()

	resp, err := tc.client.Post(url, "application/json", bytes.NewBuffer(jsonData))
	if err != nil {
		printError(fmt.Sprintf("Request failed: %v", err))
		return false
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK {
		printError(fmt.Sprintf("Expected status 200, got %d", resp.StatusCode))
		fmt.Printf("Response: %s\n", string(body))
		return false
	}

	// Parse JSON-RPC response
	var response map[string]interface{}
	if err := json.Unmarshal(body, &response); err != nil {
		printError(fmt.Sprintf("Invalid JSON response: %v", err))
		return false
	}

	// Check for errors
	if errObj, ok := response["error"]; ok {
		printError("Request returned an error")
		errJSON, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Println(string(errJSON))
		return false
	}

	// Check result
	result, ok := response["result"].(map[string]interface{})
	if !ok {
		printError("Invalid result format")
		return false
	}

	// Check task status
	status, ok := result["status"].(map[string]interface{})
	if !ok {
		printError("Invalid status format")
		return false
	}

	state, _ := status["state"].(string)
	if state != "completed" {
		printError(fmt.Sprintf("Expected state 'completed', got '%s'", state))
		printStatusMessage(status)
		return false
	}

	printSuccess("Analysis completed successfully")

	green.Println("\nAnalysis Report:")
	fmt.Println(strings.Repeat("=", 80))
	printStatusMessage(status)
	fmt.Println(strings.Repeat("=", 80))

	// Display artifacts if any
	if artifacts, ok := result["artifacts"].([]interface{}); ok && len(artifacts) > 0 {
		purple.Println("\nArtifacts:")
		artifactsJSON, _ := json.MarshalIndent(artifacts, "", "  ")
		fmt.Println(string(artifactsJSON))
	}

	return true
}

func (tc *TestClient) do(method, path string, payload interface{}) (int, []byte, error) {
	url := tc.baseURL + path
	fmt.Printf("%s %s\n", method, url)

	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, reader)
	if err != nil {
		return 0, nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	return resp.StatusCode, body, err
}

func printStatusMessage(status map[string]interface{}) {
	msg, ok := status["message"].(map[string]interface{})
	if !ok {
		return
	}
	parts, ok := msg["parts"].([]interface{})
	if !ok {
		return
	}
	for _, part := range parts {
		if p, ok := part.(map[string]interface{}); ok {
			if text, ok := p["text"].(string); ok {
				fmt.Println(text)
			}
		}
	}
}

func printHeader(text string) {
	line := strings.Repeat("=", len(text)+4)
	fmt.Println()
	blue.Println(line)
	blue.Printf("= %s =\n", text)
	blue.Printf("%s\n\n", line)
}

func printTestHeader(text string) {
	cyan.Printf("[TEST] %s\n", text)
	fmt.Println(strings.Repeat("-", 80))
}

func printSuccess(text string) {
	green.Printf("✓ %s\n", text)
}

func printError(text string) {
	red.Printf("✗ %s\n", text)
}

func printJSON(data []byte) {
	var prettyJSON bytes.Buffer
	if err := json.Indent(&prettyJSON, data, "", "  "); err == nil {
		yellow.Print("\nResponse:")
		fmt.Printf("\n%s\n", prettyJSON.String())
	}
}
