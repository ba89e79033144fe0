//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/cucumber/godog"
)

// testContext holds state shared across step definitions within a scenario.
type testContext struct {
	baseURL      string
	client       *http.Client
	subject      string
	quizID       int64
	response     *http.Response
	responseBody []byte
	err          error
}

// newTestContext creates a new test context against baseURL.
func newTestContext(baseURL string) *testContext {
	return &testContext{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// reset clears response state between scenarios.
func (tc *testContext) reset() {
	if tc.response != nil && tc.response.Body != nil {
		tc.response.Body.Close()
	}
	tc.response = nil
	tc.responseBody = nil
	tc.err = nil
	tc.subject = ""
	tc.quizID = 0
}

// scenarioInitializer registers step definitions for each scenario.
func scenarioInitializer(baseURL string) func(*godog.ScenarioContext) {
	return func(ctx *godog.ScenarioContext) {
		tc := newTestContext(baseURL)

		ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		ctx.After(func(ctx context.Context, _ *godog.Scenario, _ error) (context.Context, error) {
			tc.reset()
			return ctx, nil
		})

		ctx.Step(`^the service is running$`, tc.theServiceIsRunning)
		ctx.Step(`^I am authenticated as "([^"]*)"$`, tc.iAmAuthenticatedAs)
		ctx.Step(`^I request (GET|DELETE) "([^"]*)"$`, tc.iRequest)
		ctx.Step(`^I request (PUT|POST) "([^"]*)" with body:$`, tc.iRequestWithBody)
		ctx.Step(`^I remember the quiz id$`, tc.iRememberTheQuizID)
		ctx.Step(`^the response status should be (\d+)$`, tc.theResponseStatusShouldBe)
		ctx.Step(`^the response should contain "([^"]*)"$`, tc.theResponseShouldContain)
		ctx.Step(`^the response should not contain "([^"]*)"$`, tc.theResponseShouldNotContain)
		ctx.Step(`^the response field "([^"]*)" should be "([^"]*)"$`, tc.theResponseFieldShouldBe)
		ctx.Step(`^the response should list (\d+) items?$`, tc.theResponseShouldList)
		ctx.Step(`^item (\d+) field "([^"]*)" should be "([^"]*)"$`, tc.itemFieldShouldBe)
	}
}

// theServiceIsRunning verifies the service is reachable.
func (tc *testContext) theServiceIsRunning() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.baseURL+"/-/live", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := tc.client.Do(req)
	if err != nil {
		return fmt.Errorf("service is not running at %s: %w", tc.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status %d", resp.StatusCode)
	}

	return nil
}

func (tc *testContext) iAmAuthenticatedAs(subject string) error {
	tc.subject = subject
	return nil
}

func (tc *testContext) iRequest(method, path string) error {
	return tc.do(method, path, nil)
}

func (tc *testContext) iRequestWithBody(method, path string, body *godog.DocString) error {
	return tc.do(method, path, []byte(tc.expand(body.Content)))
}

// iRememberTheQuizID keeps the Id of the quiz in the last response; later
// paths and bodies may refer to it as {id}.
func (tc *testContext) iRememberTheQuizID() error {
	var quiz struct {
		ID int64 `json:"Id"`
	}

	if err := json.Unmarshal(tc.responseBody, &quiz); err != nil {
		return fmt.Errorf("decoding quiz: %w", err)
	}

	if quiz.ID <= 0 {
		return fmt.Errorf("response has no quiz id: %s", tc.responseBody)
	}

	tc.quizID = quiz.ID

	return nil
}

// theResponseStatusShouldBe asserts the response status code.
func (tc *testContext) theResponseStatusShouldBe(expectedCode int) error {
	if tc.response == nil {
		return fmt.Errorf("no response received")
	}

	if tc.response.StatusCode != expectedCode {
		return fmt.Errorf("expected status %d, got %d. Body: %s",
			expectedCode, tc.response.StatusCode, string(tc.responseBody))
	}

	return nil
}

// theResponseShouldContain asserts the response body contains the given text.
func (tc *testContext) theResponseShouldContain(text string) error {
	if tc.responseBody == nil {
		return fmt.Errorf("no response body")
	}

	text = tc.expand(text)
	if !strings.Contains(string(tc.responseBody), text) {
		return fmt.Errorf("response body does not contain %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseShouldNotContain(text string) error {
	if strings.Contains(string(tc.responseBody), tc.expand(text)) {
		return fmt.Errorf("response body unexpectedly contains %q.\nBody: %s", text, tc.responseBody)
	}

	return nil
}

func (tc *testContext) theResponseFieldShouldBe(field, want string) error {
	var obj map[string]any
	if err := json.Unmarshal(tc.responseBody, &obj); err != nil {
		return fmt.Errorf("decoding object: %w", err)
	}

	return fieldEquals(obj, field, tc.expand(want))
}

func (tc *testContext) theResponseShouldList(n int) error {
	items, err := tc.items()
	if err != nil {
		return err
	}

	if len(items) != n {
		return fmt.Errorf("expected %d items, got %d. Body: %s", n, len(items), tc.responseBody)
	}

	return nil
}

func (tc *testContext) itemFieldShouldBe(index int, field, want string) error {
	items, err := tc.items()
	if err != nil {
		return err
	}

	if index < 1 || index > len(items) {
		return fmt.Errorf("item %d out of range (%d items)", index, len(items))
	}

	return fieldEquals(items[index-1], field, tc.expand(want))
}

func (tc *testContext) items() ([]map[string]any, error) {
	var items []map[string]any
	if err := json.Unmarshal(tc.responseBody, &items); err != nil {
		return nil, fmt.Errorf("decoding list: %w. Body: %s", err, tc.responseBody)
	}

	return items, nil
}

func (tc *testContext) do(method, path string, body []byte) error {
	if tc.response != nil && tc.response.Body != nil {
		tc.response.Body.Close()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reader io.Reader = http.NoBody
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, tc.baseURL+tc.expand(path), reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if tc.subject != "" {
		req.Header.Set(subjectHeader, tc.subject)
	}

	tc.response, tc.err = tc.client.Do(req)
	if tc.err != nil {
		return fmt.Errorf("request failed: %w", tc.err)
	}

	tc.responseBody, tc.err = io.ReadAll(tc.response.Body)
	if tc.err != nil {
		return fmt.Errorf("failed to read response body: %w", tc.err)
	}

	return nil
}

// expand substitutes the remembered quiz id for {id}.
func (tc *testContext) expand(s string) string {
	return strings.ReplaceAll(s, "{id}", strconv.FormatInt(tc.quizID, 10))
}

func fieldEquals(obj map[string]any, field, want string) error {
	got, ok := obj[field]
	if !ok {
		return fmt.Errorf("field %q is missing from %v", field, obj)
	}

	if s := fmt.Sprint(got); s != want {
		return fmt.Errorf("field %q: expected %q, got %q", field, want, s)
	}

	return nil
}

// TestFeatures runs the GoDog BDD test suite. Set BASE_URL to run it
// against a deployed service; otherwise an in-memory stack is started.
func TestFeatures(t *testing.T) {
	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = newStack(t, memoryBackend()).server.URL
	}

	suite := godog.TestSuite{
		ScenarioInitializer: scenarioInitializer(baseURL),
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"../features"},
			TestingT: t,
			Tags:     os.Getenv("GODOG_TAGS"),
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}
