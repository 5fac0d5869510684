package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/justinas/nosurf"
	"github.com/myrjola/adaptlearn/internal/errors"
	"github.com/myrjola/adaptlearn/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// waitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func waitForReady(ctx context.Context, endpoint string) error {
	timeout := 1 * time.Second
	client := http.Client{}
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			endpoint,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(250 * time.Millisecond)
		}
	}
}

// chatCompletionProbe is the slice of the completion request the fake model
// backend needs to pick a canned answer.
type chatCompletionProbe struct {
	ResponseFormat *struct {
		JSONSchema *struct {
			Name string `json:"name"`
		} `json:"json_schema"`
	} `json:"response_format"`
}

// cannedModelResponses maps a response schema name to the content the fake
// backend answers with. Requests without a schema get the dialogue line.
var cannedModelResponses = map[string]string{
	"quiz": `{"quiz":[` +
		`{"question":"What organ pumps blood?","options":["Heart","Liver","Lung","Kidney"],"correctAnswerIndex":0,"explanation":"The heart pumps blood."},` +
		`{"question":"How many chambers does the heart have?","options":["Two","Three","Four","Five"],"correctAnswerIndex":2,"explanation":"Four chambers."}]}`,
	"performance_report":      `{"strengths":"Consistency","weaknesses":"Speed","growthAreas":"Advanced topics","overallFeedback":"Keep it up."}`,
	"achievement_suggestions": `{"achievements":[{"title":"Night Owl","description":"Study after midnight","progress":40,"unlocked":false}]}`,
	"learning_pathway":        `{"learningPathway":"1. Basics 2. Practice 3. Mastery"}`,
	"career_suggestions":      `{"careerPaths":["Nurse"],"certifications":["CPR"],"skills":["Triage"]}`,
	"simulation_scenario":     `{"title":"Night Shift","description":"A busy ER at 3am.","tasks":["Triage the waiting room","Stabilize the patient","Hand over to the day shift"]}`,
}

const cannedDialogueLine = "Doctor, I am glad you could see me."

// newFakeModelBackend serves the completion and speech endpoints the AI
// client talks to, answering from the canned table.
func newFakeModelBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/chat/completions", func(w http.ResponseWriter, r *http.Request) {
		var probe chatCompletionProbe
		if err := json.NewDecoder(r.Body).Decode(&probe); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		content := cannedDialogueLine
		if probe.ResponseFormat != nil && probe.ResponseFormat.JSONSchema != nil {
			var ok bool
			if content, ok = cannedModelResponses[probe.ResponseFormat.JSONSchema.Name]; !ok {
				http.Error(w, "unknown schema", http.StatusBadRequest)
				return
			}
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		})
	})
	mux.HandleFunc("POST /v1/audio/speech", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write([]byte("fake-mp3-bytes"))
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestLookupEnv(modelBackendURL string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		switch key {
		case "ADAPTLEARN_ADDR":
			return "localhost:0", true
		case "ADAPTLEARN_PPROF_PORT":
			return ":0", true
		case "ADAPTLEARN_SQLITE_URL":
			return ":memory:", true
		case "OPENAI_API_KEY":
			return "test-key", true
		case "OPENAI_BASE_URL":
			return modelBackendURL + "/v1", true
		default:
			return "", false
		}
	}
}

type testServer struct {
	url       string
	client    http.Client
	csrfToken string
}

// startTestServer starts the test server with a fake model backend, waits for
// it to be ready, and returns a client for driving the JSON API.
func startTestServer(t *testing.T, w io.Writer) *testServer {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	modelBackend := newFakeModelBackend(t)

	// We need to grab the dynamically allocated port from the log output.
	addrCh := make(chan string, 1)
	logger := slog.New(logging.NewContextHandler(slog.NewTextHandler(w, &slog.HandlerOptions{
		AddSource: false,
		Level:     slog.LevelDebug,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == "Addr" {
				addrCh <- a.Value.String()
			}
			return a
		},
	})))

	// Start the server and wait for it to be ready.
	go func() {
		if err := run(ctx, logger, newTestLookupEnv(modelBackend.URL)); err != nil {
			cancel()
			assert.NoError(t, err)
		}
	}()
	select {
	case <-ctx.Done():
		t.Fatal("server failed to start")
		return nil
	case addr := <-addrCh:
		serverURL := fmt.Sprintf("http://%s", addr)
		if err := waitForReady(ctx, fmt.Sprintf("%s/api/healthy", serverURL)); err != nil {
			require.NoError(t, err)
		}
		jar, err := newUnsafeCookieJar()
		require.NoError(t, err)
		return &testServer{
			url:    serverURL,
			client: http.Client{Jar: jar},
		}
	}
}

// Login identifies the test user and captures the CSRF token for subsequent
// mutating requests.
func (s *testServer) Login(t *testing.T, email string) {
	t.Helper()
	resp := s.PostJSON(t, "/api/login", map[string]string{"email": email})
	defer closeBody(t, resp)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Email     string `json:"email"`
		CSRFToken string `json:"csrfToken"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.NotEmpty(t, body.CSRFToken)
	s.csrfToken = body.CSRFToken
}

// Get fetches a URL and returns the response.
func (s *testServer) Get(t *testing.T, urlPath string) *http.Response {
	t.Helper()
	resp, err := s.client.Get(s.url + urlPath)
	require.NoError(t, err)
	return resp
}

// PostJSON sends a JSON body to the given path with the CSRF header set.
func (s *testServer) PostJSON(t *testing.T, urlPath string, body any) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req, err := http.NewRequest(http.MethodPost, s.url+urlPath, bytes.NewReader(payload))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if s.csrfToken != "" {
		req.Header.Set(nosurf.HeaderName, s.csrfToken)
	}
	resp, err := s.client.Do(req)
	require.NoError(t, err)
	return resp
}

// decodeResponse requires status 200 and decodes the body into dst.
func decodeResponse(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer closeBody(t, resp)
	bodyBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, "unexpected status, body: %s", bodyBytes)
	require.NoError(t, json.Unmarshal(bodyBytes, dst))
}

func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()
	assert.NoError(t, resp.Body.Close())
}
