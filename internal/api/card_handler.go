package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/wordcard-api/internal/api/shared"
	"github.com/phrazzld/wordcard-api/internal/domain"
	"github.com/phrazzld/wordcard-api/internal/platform/logger"
	"github.com/phrazzld/wordcard-api/internal/service"
)

// CardHandler handles card generation requests.
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil for CardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// CreateCard handles POST /api/cards (and POST /).
// It analyzes the word in its sentence and returns the enriched card, both
// audio clips and the rendered Anki template in one JSON object.
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	req, err := h.parseRequest(w, r)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	result, err := h.cardService.Generate(r.Context(), req)
	if err != nil {
		h.respondWithError(w, r, err)
		return
	}

	log.Debug("card created",
		slog.String("word", req.Word),
		slog.String("unique_file_name", result.UniqueFileName))
	shared.RespondWithJSON(w, r, http.StatusOK, cardToResponse(result))
}

// parseRequest applies the media type, shape and presence checks in that order.
func (h *CardHandler) parseRequest(w http.ResponseWriter, r *http.Request) (domain.AnalysisRequest, error) {
	if !shared.IsJSON(r) {
		return domain.AnalysisRequest{}, domain.ErrUnsupportedContent
	}

	var body CreateCardRequest
	if err := shared.DecodeJSON(w, r, &body); err != nil {
		return domain.AnalysisRequest{}, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	if err := shared.ValidateRequest(&body); err != nil {
		return domain.AnalysisRequest{}, fmt.Errorf("%w: %v", domain.ErrMissingFields, err)
	}

	return body.toDomain(), nil
}

func (h *CardHandler) respondWithError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var opts []shared.ResponseOption
	if errors.Is(err, domain.ErrUnsupportedContent) {
		opts = append(opts, shared.WithElevatedLogLevel())
	}

	shared.RespondWithErrorAndLog(w, r, status, GetSafeErrorMessage(err), err, opts...)
}
