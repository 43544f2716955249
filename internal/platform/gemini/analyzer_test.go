package gemini

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"

	"github.com/phrazzld/wordcard-api/internal/config"
	"github.com/phrazzld/wordcard-api/internal/platform/logger"
)

const validAnalysisJSON = `{
	"contextual_translation": "大好き",
	"precise_translation": "私はそれを愛している",
	"frequency_rating": 5,
	"ipa": "/lʌv/",
	"part_of_speech": "verb",
	"english_definition": "to like something very much",
	"japanese_meaning": "大好きである",
	"example_sentence": "I love pizza.（ピザが大好きです。）",
	"core_meaning": "強い愛情",
	"antonyms": ["hate"],
	"synonyms": ["adore", "like"],
	"slang": "",
	"idioms": "",
	"japanese_usage": "ラブ",
	"memory_aids": "ラブレター",
	"terminology": "",
	"explanation": "日常的によく使う表現"
}`

// fakeGenerator is a contentGenerator whose behavior is set per test.
type fakeGenerator struct {
	GenerateContentFn func(ctx context.Context, model string, contents []*genai.Content,
		config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

func (f *fakeGenerator) GenerateContent(
	ctx context.Context,
	model string,
	contents []*genai.Content,
	config *genai.GenerateContentConfig,
) (*genai.GenerateContentResponse, error) {
	return f.GenerateContentFn(ctx, model, contents, config)
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
			FinishReason: genai.FinishReasonStop,
		}},
	}
}

func testLLMConfig() config.LLMConfig {
	return config.LLMConfig{
		GeminiAPIKey: "test-key",
		ModelName:    "gemini-2.0-flash",
		Timeout:      5 * time.Second,
	}
}

func newTestAnalyzer(t *testing.T, gen contentGenerator) *Analyzer {
	t.Helper()
	log, _ := logger.NewTestLogger(t)
	a, err := newAnalyzer(log, testLLMConfig(), func() (contentGenerator, error) {
		return gen, nil
	})
	require.NoError(t, err)
	return a
}

func TestNewAnalyzer_Validation(t *testing.T) {
	log, _ := logger.NewTestLogger(t)

	cfg := testLLMConfig()
	cfg.GeminiAPIKey = ""
	_, err := NewAnalyzer(log, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = testLLMConfig()
	cfg.ModelName = ""
	_, err = NewAnalyzer(log, cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewAnalyzer(nil, testLLMConfig())
	assert.Error(t, err)
}

func TestAnalyze_Success(t *testing.T) {
	var gotModel string
	var gotConfig *genai.GenerateContentConfig
	var gotPrompt string

	gen := &fakeGenerator{
		GenerateContentFn: func(_ context.Context, model string, contents []*genai.Content,
			cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			gotModel = model
			gotConfig = cfg
			gotPrompt = contents[0].Parts[0].Text
			return textResponse(validAnalysisJSON), nil
		},
	}

	analysis, err := newTestAnalyzer(t, gen).Analyze(context.Background(), "analyze love")
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", gotModel)
	assert.Equal(t, "analyze love", gotPrompt)
	require.NotNil(t, gotConfig)
	assert.Equal(t, "application/json", gotConfig.ResponseMIMEType)
	assert.Same(t, wordAnalysisSchema, gotConfig.ResponseSchema)

	assert.Equal(t, 5, analysis.FrequencyRating)
	assert.Equal(t, "/lʌv/", analysis.IPA)
	assert.Equal(t, []string{"adore", "like"}, analysis.Synonyms)
	assert.Equal(t, "I love pizza.（ピザが大好きです。）", analysis.ExampleSentence)
	assert.Equal(t, "", analysis.Slang)
}

func TestAnalyze_SplitTextParts(t *testing.T) {
	half := len(validAnalysisJSON) / 2
	gen := &fakeGenerator{
		GenerateContentFn: func(context.Context, string, []*genai.Content,
			*genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{
					Content: &genai.Content{Parts: []*genai.Part{
						{Text: validAnalysisJSON[:half]},
						{Text: validAnalysisJSON[half:]},
					}},
				}},
			}, nil
		},
	}

	analysis, err := newTestAnalyzer(t, gen).Analyze(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, 5, analysis.FrequencyRating)
}

func TestAnalyze_InvalidResponses(t *testing.T) {
	tests := []struct {
		name string
		resp *genai.GenerateContentResponse
	}{
		{"nil response", nil},
		{"no candidates", &genai.GenerateContentResponse{}},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{}}}},
		{"not json", textResponse("I cannot help with that")},
		{"missing field", textResponse(strings.Replace(validAnalysisJSON, `"ipa": "/lʌv/",`, "", 1))},
		{"rating too high", textResponse(strings.Replace(validAnalysisJSON, `"frequency_rating": 5`, `"frequency_rating": 6`, 1))},
		{"rating zero", textResponse(strings.Replace(validAnalysisJSON, `"frequency_rating": 5`, `"frequency_rating": 0`, 1))},
		{"rating as string", textResponse(strings.Replace(validAnalysisJSON, `"frequency_rating": 5`, `"frequency_rating": "5"`, 1))},
		{"synonyms not a list", textResponse(strings.Replace(validAnalysisJSON, `["adore", "like"]`, `"adore"`, 1))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := &fakeGenerator{
				GenerateContentFn: func(context.Context, string, []*genai.Content,
					*genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
					return tt.resp, nil
				},
			}

			analysis, err := newTestAnalyzer(t, gen).Analyze(context.Background(), "p")
			assert.Nil(t, analysis)
			assert.ErrorIs(t, err, ErrInvalidResponse)
		})
	}
}

func TestAnalyze_NullListsNormalized(t *testing.T) {
	body := strings.Replace(validAnalysisJSON, `["hate"]`, `null`, 1)
	gen := &fakeGenerator{
		GenerateContentFn: func(context.Context, string, []*genai.Content,
			*genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse(body), nil
		},
	}

	analysis, err := newTestAnalyzer(t, gen).Analyze(context.Background(), "p")
	require.NoError(t, err)
	assert.NotNil(t, analysis.Antonyms)
	assert.Empty(t, analysis.Antonyms)
}

func TestAnalyze_SafetyBlock(t *testing.T) {
	gen := &fakeGenerator{
		GenerateContentFn: func(context.Context, string, []*genai.Content,
			*genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			}, nil
		},
	}

	_, err := newTestAnalyzer(t, gen).Analyze(context.Background(), "p")
	assert.ErrorIs(t, err, ErrContentBlocked)
}

func TestAnalyze_TransportError(t *testing.T) {
	boom := errors.New("connection reset")
	gen := &fakeGenerator{
		GenerateContentFn: func(context.Context, string, []*genai.Content,
			*genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return nil, boom
		},
	}

	_, err := newTestAnalyzer(t, gen).Analyze(context.Background(), "p")
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestAnalyze_AppliesTimeout(t *testing.T) {
	gen := &fakeGenerator{
		GenerateContentFn: func(ctx context.Context, _ string, _ []*genai.Content,
			_ *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			deadline, ok := ctx.Deadline()
			require.True(t, ok)
			assert.WithinDuration(t, time.Now().Add(5*time.Second), deadline, time.Second)
			return textResponse(validAnalysisJSON), nil
		},
	}

	_, err := newTestAnalyzer(t, gen).Analyze(context.Background(), "p")
	require.NoError(t, err)
}

func TestAnalyze_EmptyPrompt(t *testing.T) {
	gen := &fakeGenerator{
		GenerateContentFn: func(context.Context, string, []*genai.Content,
			*genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			t.Fatal("model must not be called for an empty prompt")
			return nil, nil
		},
	}

	_, err := newTestAnalyzer(t, gen).Analyze(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyPrompt)
}

func TestAnalyze_ClientBuiltOnce(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	var constructed atomic.Int32

	gen := &fakeGenerator{
		GenerateContentFn: func(context.Context, string, []*genai.Content,
			*genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
			return textResponse(validAnalysisJSON), nil
		},
	}
	a, err := newAnalyzer(log, testLLMConfig(), func() (contentGenerator, error) {
		constructed.Add(1)
		return gen, nil
	})
	require.NoError(t, err)
	assert.Equal(t, int32(0), constructed.Load(), "client must be built lazily")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := a.Analyze(context.Background(), "p")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), constructed.Load())
}

func TestAnalyze_ConstructionFailure(t *testing.T) {
	log, _ := logger.NewTestLogger(t)
	a, err := newAnalyzer(log, testLLMConfig(), func() (contentGenerator, error) {
		return nil, ErrInvalidConfig
	})
	require.NoError(t, err)

	_, err = a.Analyze(context.Background(), "p")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWordAnalysisSchemaRequiresEveryField(t *testing.T) {
	assert.Equal(t, genai.TypeObject, wordAnalysisSchema.Type)
	assert.Len(t, wordAnalysisSchema.Properties, 17)
	assert.Len(t, wordAnalysisSchema.Required, 17)
	for _, key := range wordAnalysisSchema.Required {
		assert.Contains(t, wordAnalysisSchema.Properties, key)
	}
	assert.Equal(t, genai.TypeInteger, wordAnalysisSchema.Properties["frequency_rating"].Type)
	assert.Equal(t, genai.TypeArray, wordAnalysisSchema.Properties["synonyms"].Type)
}
