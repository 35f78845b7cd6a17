package menugen

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/suite"
	"github.com/tidwall/gjson"
)

type OpenAITestSuite struct {
	suite.Suite
	srv *httptest.Server
	gen *openAIGenerator
	ctx context.Context

	// Test data
	mu      sync.Mutex
	status  int
	content string
	noReply bool
	calls   int
	lastReq []byte
	lastKey string
}

func (s *OpenAITestSuite) SetupTest() {
	s.ctx = context.Background()
	s.status = http.StatusOK
	s.content = ""
	s.noReply = false
	s.calls = 0
	s.lastReq = nil

	s.srv = httptest.NewServer(http.HandlerFunc(s.serveChat))

	gen, err := NewOpenAI(&Config{APIKey: "sk-test", BaseURL: s.srv.URL + "/v1/"})
	s.Require().NoError(err)
	s.gen = gen
}

func (s *OpenAITestSuite) TearDownTest() {
	s.srv.Close()
}

func TestOpenAITestSuite(t *testing.T) {
	suite.Run(t, new(OpenAITestSuite))
}

// serveChat stands in for the chat completions endpoint
func (s *OpenAITestSuite) serveChat(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	s.lastKey = r.Header.Get("Authorization")
	s.lastReq, _ = io.ReadAll(r.Body)

	if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
		http.NotFound(w, r)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if s.status != http.StatusOK {
		w.WriteHeader(s.status)
		_, _ = io.WriteString(w, `{"error":{"message":"upstream exploded","type":"server_error"}}`)
		return
	}

	choices := `[]`
	if !s.noReply {
		content, _ := json.Marshal(s.content)
		choices = `[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":` +
			string(content) + `}}]`
	}
	_, _ = io.WriteString(w, `{"id":"chatcmpl-1","object":"chat.completion","created":1,"model":"gpt-4o-mini","choices":`+choices+`}`)
}

// reply sets what the stub answers with
func (s *OpenAITestSuite) reply(status int, content string, noReply bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.content = content
	s.noReply = noReply
}

// sent returns the last request body and auth header
func (s *OpenAITestSuite) sent() ([]byte, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReq, s.lastKey
}

func (s *OpenAITestSuite) TestGenerate() {
	s.reply(http.StatusOK, "```json\n" +
		`[{"name":"Green Curry","location":"Thai Town","averagePrice":14,"tags":["thai"]},` +
		`{"name":"Mapo Tofu","location":"Sichuan House","averagePrice":12,"tags":["chinese"]}]` +
		"\n```", false)

	out, err := s.gen.Generate(s.ctx, &GenerateInput{
		Prefs:     "something spicy",
		AvoidTags: []string{"pork"},
		Max:       4,
	})
	s.Require().NoError(err)

	s.Require().Len(out.Suggestions, 2)
	s.Equal(&Suggestion{Name: "Green Curry", Location: "Thai Town", AveragePrice: 14, Tags: []string{"thai"}}, out.Suggestions[0])

	body, key := s.sent()
	s.Equal("Bearer sk-test", key)
	s.Equal(defaultModel, gjson.GetBytes(body, "model").String())
	s.Equal("system", gjson.GetBytes(body, "messages.0.role").String())
	user := gjson.GetBytes(body, "messages.1.content").String()
	s.Contains(user, "up to 4 options")
	s.Contains(user, "something spicy")
	s.Contains(user, "pork")
}

func (s *OpenAITestSuite) TestGenerateKeepsRowsBeyondMax() {
	// A row the caller will reject must not push a valid one out
	s.reply(http.StatusOK, `[{"name":"Mystery","averagePrice":5,"tags":[]},` +
		`{"name":"A","averagePrice":1,"tags":["x"]},{"name":"B","averagePrice":1,"tags":["x"]},` +
		`{"name":"C","averagePrice":1,"tags":["x"]},{"name":"D","averagePrice":1,"tags":["x"]},` +
		`{"name":"E","averagePrice":1,"tags":["x"]},{"name":"F","averagePrice":1,"tags":["x"]}]`, false)

	out, err := s.gen.Generate(s.ctx, &GenerateInput{Max: 6})
	s.Require().NoError(err)

	s.Len(out.Suggestions, 7)
	s.Equal("F", out.Suggestions[6].Name)
}

func (s *OpenAITestSuite) TestGenerateDefaultsMax() {
	s.reply(http.StatusOK, `[{"name":"Pho","averagePrice":12,"tags":["vietnamese"]}]`, false)

	_, err := s.gen.Generate(s.ctx, &GenerateInput{})
	s.Require().NoError(err)

	body, _ := s.sent()
	s.Contains(gjson.GetBytes(body, "messages.1.content").String(), "up to 6 options")
}

func (s *OpenAITestSuite) TestGenerateEmptyResponse() {
	s.reply(http.StatusOK, "", true)

	_, err := s.gen.Generate(s.ctx, &GenerateInput{})
	s.ErrorIs(err, ErrEmptyResponse)

	s.reply(http.StatusOK, "   ", false)

	_, err = s.gen.Generate(s.ctx, &GenerateInput{})
	s.ErrorIs(err, ErrEmptyResponse)
}

func (s *OpenAITestSuite) TestGenerateMalformedResponse() {
	s.reply(http.StatusOK, "I would go for pizza.", false)

	_, err := s.gen.Generate(s.ctx, &GenerateInput{})
	s.ErrorIs(err, ErrMalformedOutput)
}

func (s *OpenAITestSuite) TestGenerateServerError() {
	s.reply(http.StatusInternalServerError, "", false)

	_, err := s.gen.Generate(s.ctx, &GenerateInput{})
	s.Require().Error(err)
	s.Contains(err.Error(), "failed to call model")

	var apiErr *openai.Error
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusInternalServerError, apiErr.StatusCode)

	// No retries
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Equal(1, s.calls)
}
