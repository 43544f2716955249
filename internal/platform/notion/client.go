package notion

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"resty.dev/v3"

	"github.com/phrazzld/wordcard-api/internal/config"
	"github.com/phrazzld/wordcard-api/internal/domain"
)

// ErrNotConfigured is the reason logged when Save skips a write.
var ErrNotConfigured = errors.New("notion token or database id not set")

// Client writes finished cards as pages of a Notion database.
type Client struct {
	httpClient *resty.Client
	logger     *slog.Logger
	token      string
	databaseID string
	closeOnce  sync.Once
}

// NewClient creates a Client for cfg. A missing token or database id is not
// an error here; Save becomes a logged no-op instead.
func NewClient(logger *slog.Logger, cfg config.ArchiveConfig) *Client {
	client := resty.New()
	client.SetBaseURL(cfg.NotionURL)
	client.SetTimeout(cfg.Timeout)
	client.SetHeader("Content-Type", "application/json")
	client.SetHeader("Notion-Version", cfg.NotionVersion)
	client.SetAuthToken(cfg.NotionToken)
	client.SetResponseBodyUnlimitedReads(true)

	return &Client{
		httpClient: client,
		logger:     logger.With(slog.String("component", "notion")),
		token:      cfg.NotionToken,
		databaseID: cfg.NotionDBID,
	}
}

// Close releases the underlying HTTP client. Repeated calls are no-ops.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		err = c.httpClient.Close()
	})
	return err
}

// Enabled reports whether both the token and the database id are set.
func (c *Client) Enabled() bool {
	return c.token != "" && c.databaseID != ""
}

// Save creates one database page for card. It returns nil without any
// network call when the client is not configured.
func (c *Client) Save(ctx context.Context, card *domain.EnrichedCard, req domain.AnalysisRequest) error {
	if !c.Enabled() {
		c.logger.WarnContext(ctx, "skipping Notion save", slog.String("reason", ErrNotConfigured.Error()))
		return nil
	}

	response, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(c.buildPage(card, req)).
		SetResult(&pageResponse{}).
		Post("/pages/")
	if err != nil {
		return fmt.Errorf("notion request: %w", err)
	}
	if response.IsError() {
		return fmt.Errorf("notion response error %d: %s", response.StatusCode(), response.String())
	}

	page, _ := response.Result().(*pageResponse)
	if page != nil {
		c.logger.InfoContext(ctx, "card archived to Notion",
			slog.String("page_id", page.ID),
			slog.String("job_id", card.JobID))
	}
	return nil
}

func (c *Client) buildPage(card *domain.EnrichedCard, req domain.AnalysisRequest) pageRequest {
	props := map[string]property{
		"Word":            titleProp(req.Word),
		"Sentence":        textProp(req.Sentence),
		"Tags":            tagsProp(req.Tag),
		"NaturalJapanese": textProp(card.ContextualTranslation),
		"Japanese":        textProp(card.PreciseTranslation),
		"Idioms":          textProp(card.Idioms),
		"Slang":           textProp(card.Slang),
		"RatingNum":       numberProp(card.FrequencyRating),
		"Definition":      textProp(card.EnglishDefinition),
		"JapaneseMeaning": textProp(card.JapaneseMeaning),
		"IPA":             textProp(card.IPA),
		"ExampleSentence": textProp(card.ExSentenceEnglish + "( " + card.ExSentenceJapanese + ")"),
		"≈ synonyms":      textProp(card.SynonymsStr),
		"↔︎ antonyms":     textProp(card.AntonymsStr),
		"Core":            textProp(card.CoreMeaning),
		"MemoryAids":      textProp(card.MemoryAids),
		"JapaneseUsage":   textProp(card.JapaneseUsage),
		"Terminology":     textProp(card.Terminology),
		"AnkiDeck":        textProp(card.TargetDeck),
		"id":              textProp(card.JobID),
	}
	setSelect(props, "Rating", card.RatingStar)
	setSelect(props, "PartOfSpeech", card.PartOfSpeech)
	setURL(props, "Obsidian", card.ObsidianURI)
	setURL(props, "Movie", card.PlayphraseMeURL)

	return pageRequest{
		Parent:     parent{DatabaseID: c.databaseID},
		Properties: props,
	}
}
