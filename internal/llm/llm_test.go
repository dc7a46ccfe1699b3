package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"google.golang.org/genai"
)

func TestKindForStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusUnauthorized, ErrAuth},
		{http.StatusForbidden, ErrAuth},
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusBadGateway, ErrTransport},
		{0, ErrTransport},
	}

	for _, tt := range tests {
		err := providerError("test", tt.status, errors.New("boom"))
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: error = %v, want kind %v", tt.status, err, tt.want)
		}
	}
}

func TestProviderErrorUnwrapsCause(t *testing.T) {
	err := providerError("test", 0, context.DeadlineExceeded)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("errors.Is(%v, DeadlineExceeded) = false", err)
	}
	if !errors.Is(err, ErrTransport) {
		t.Errorf("errors.Is(%v, ErrTransport) = false", err)
	}
}

func TestNewUnsupportedProvider(t *testing.T) {
	if _, err := New(context.Background(), Settings{Provider: "cohere", APIKey: "k"}); err == nil {
		t.Error("New() should reject an unknown provider")
	}
}

func TestNewMissingKey(t *testing.T) {
	for _, provider := range []string{providerOpenAI, providerAnthropic, providerGemini} {
		if _, err := New(context.Background(), Settings{Provider: provider}); err == nil {
			t.Errorf("New(%s) should fail without an api key", provider)
		}
	}
}

func TestOpenAIGenerate(t *testing.T) {
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"error":{"message":"bad key","type":"invalid_request_error","code":"invalid_api_key"}}`)
			return
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"  Summary 1\n"}}]}`)
	}))
	defer srv.Close()

	gen, err := NewOpenAI("sk-test", srv.URL+"/v1/")
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}

	got, err := gen.Generate(context.Background(), "gpt-4o", "be brief", "transcript text")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "Summary 1" {
		t.Errorf("Generate() = %q, want %q", got, "Summary 1")
	}
	if gotBody["model"] != "gpt-4o" {
		t.Errorf("request model = %v, want gpt-4o", gotBody["model"])
	}
	msgs, _ := gotBody["messages"].([]interface{})
	if len(msgs) != 2 {
		t.Fatalf("request messages = %v, want system and user", gotBody["messages"])
	}
	if first, _ := msgs[0].(map[string]interface{}); first["role"] != "system" || first["content"] != "be brief" {
		t.Errorf("first message = %v", first)
	}

	bad, err := NewOpenAI("sk-wrong", srv.URL+"/v1/")
	if err != nil {
		t.Fatalf("NewOpenAI() error = %v", err)
	}
	_, err = bad.Generate(context.Background(), "gpt-4o", "s", "u")
	if !errors.Is(err, ErrAuth) {
		t.Errorf("Generate() error = %v, want ErrAuth", err)
	}
}

func TestOpenAIRateLimitNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":{"message":"slow down","type":"rate_limit","code":"rate_limit_exceeded"}}`)
	}))
	defer srv.Close()

	gen, err := NewOpenAI("sk-test", srv.URL+"/v1/")
	if err != nil {
		t.Fatal(err)
	}
	_, err = gen.Generate(context.Background(), "gpt-4o", "s", "u")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("Generate() error = %v, want ErrRateLimited", err)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("server saw %d calls, want 1", n)
	}
}

func TestAnthropicGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "ak-test" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"type":"error","error":{"type":"authentication_error","message":"invalid x-api-key"}}`)
			return
		}
		var body map[string]interface{}
		json.NewDecoder(r.Body).Decode(&body)
		system, _ := body["system"].([]interface{})
		if len(system) != 1 {
			http.Error(w, "missing system prompt", http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id":"msg_1","type":"message","role":"assistant","model":"claude",
			"content":[{"type":"text","text":"Executive "},{"type":"text","text":"summary"}],
			"stop_reason":"end_turn","usage":{"input_tokens":3,"output_tokens":2}}`)
	}))
	defer srv.Close()

	gen, err := NewAnthropic("ak-test", srv.URL+"/")
	if err != nil {
		t.Fatal(err)
	}
	got, err := gen.Generate(context.Background(), "claude-sonnet-4-5", "exec role", "combined")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "Executive summary" {
		t.Errorf("Generate() = %q, want %q", got, "Executive summary")
	}

	bad, _ := NewAnthropic("nope", srv.URL+"/")
	if _, err := bad.Generate(context.Background(), "claude-sonnet-4-5", "s", "u"); !errors.Is(err, ErrAuth) {
		t.Errorf("Generate() error = %v, want ErrAuth", err)
	}
}

type slowGenerator struct {
	inFlight int32
	peak     int32
}

func (g *slowGenerator) Generate(ctx context.Context, model, systemPrompt, userContent string) (string, error) {
	n := atomic.AddInt32(&g.inFlight, 1)
	defer atomic.AddInt32(&g.inFlight, -1)
	for {
		peak := atomic.LoadInt32(&g.peak)
		if n <= peak || atomic.CompareAndSwapInt32(&g.peak, peak, n) {
			break
		}
	}
	time.Sleep(5 * time.Millisecond)
	return userContent, nil
}

func TestSerializeBoundsConcurrency(t *testing.T) {
	tests := []struct {
		name  string
		limit int
	}{
		{"exclusive", 1},
		{"pair", 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inner := &slowGenerator{}
			gen := Serialize(inner, tt.limit)

			var wg sync.WaitGroup
			for i := 0; i < 10; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := gen.Generate(context.Background(), "m", "s", "u"); err != nil {
						t.Error(err)
					}
				}()
			}
			wg.Wait()

			if peak := atomic.LoadInt32(&inner.peak); int(peak) > tt.limit {
				t.Errorf("peak concurrency = %d, want <= %d", peak, tt.limit)
			}
		})
	}
}

func TestSerializeHonorsCancel(t *testing.T) {
	block := make(chan struct{})
	gen := Serialize(GeneratorFunc(func(ctx context.Context, model, systemPrompt, userContent string) (string, error) {
		<-block
		return "", nil
	}), 1)

	go gen.Generate(context.Background(), "m", "s", "u")
	time.Sleep(10 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := gen.Generate(ctx, "m", "s", "u"); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Generate() error = %v, want DeadlineExceeded", err)
	}
	close(block)
}

func TestGeminiText(t *testing.T) {
	candidate := func(parts ...*genai.Part) *genai.GenerateContentResponse {
		return &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{Content: &genai.Content{Role: "model", Parts: parts}}},
		}
	}

	tests := []struct {
		name      string
		result    *genai.GenerateContentResponse
		want      string
		wantEmpty bool
	}{
		{name: "joined text", result: candidate(&genai.Part{Text: " Summary "}, &genai.Part{Text: "1\n"}), want: "Summary 1"},
		{name: "nil response", result: nil, wantEmpty: true},
		{name: "no candidates", result: &genai.GenerateContentResponse{}, wantEmpty: true},
		{name: "empty parts", result: candidate(&genai.Part{Text: ""}, &genai.Part{Text: "  \n"}), wantEmpty: true},
		{name: "non-text part", result: candidate(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png"}}), wantEmpty: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := geminiText(tt.result)
			if tt.wantEmpty {
				if !errors.Is(err, ErrEmptyResponse) {
					t.Errorf("geminiText() error = %v, want ErrEmptyResponse", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("geminiText() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("geminiText() = %q, want %q", got, tt.want)
			}
		})
	}
}
