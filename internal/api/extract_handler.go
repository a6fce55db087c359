package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/scry-notes/internal/api/shared"
	"github.com/phrazzld/scry-notes/internal/domain"
	"github.com/phrazzld/scry-notes/internal/generation"
	"github.com/phrazzld/scry-notes/internal/parser"
	"github.com/phrazzld/scry-notes/internal/platform/logger"
)

// ExtractRequest is the body of POST /api/cards/extract. Empty text yields
// an empty card list.
type ExtractRequest struct {
	Text    string          `json:"text"`
	Options *OptionsRequest `json:"options,omitempty"`
}

// OptionsRequest overrides the server's parser options. Nil fields keep the
// server default. Separators supplied here must be non-empty.
type OptionsRequest struct {
	SingleLineSeparator          *string `json:"single_line_separator,omitempty"          validate:"omitnil,min=1"`
	SingleLineReversedSeparator  *string `json:"single_line_reversed_separator,omitempty" validate:"omitnil,min=1"`
	MultiLineSeparator           *string `json:"multi_line_separator,omitempty"           validate:"omitnil,min=1"`
	MultiLineReversedSeparator   *string `json:"multi_line_reversed_separator,omitempty"  validate:"omitnil,min=1"`
	FileSeparator                *string `json:"file_separator,omitempty"                 validate:"omitnil,min=1"`
	HeadingSeparator             *string `json:"heading_separator,omitempty"              validate:"omitnil,min=1"`
	ConvertHighlightsToClozes    *bool   `json:"convert_highlights_to_clozes,omitempty"`
	ConvertBoldTextToClozes      *bool   `json:"convert_bold_text_to_clozes,omitempty"`
	ConvertCurlyBracketsToClozes *bool   `json:"convert_curly_brackets_to_clozes,omitempty"`
}

func (o *OptionsRequest) apply(base parser.Options) parser.Options {
	if o == nil {
		return base
	}
	setString(&base.SingleLineSeparator, o.SingleLineSeparator)
	setString(&base.SingleLineReversedSeparator, o.SingleLineReversedSeparator)
	setString(&base.MultiLineSeparator, o.MultiLineSeparator)
	setString(&base.MultiLineReversedSeparator, o.MultiLineReversedSeparator)
	setString(&base.FileSeparator, o.FileSeparator)
	setString(&base.HeadingSeparator, o.HeadingSeparator)
	setBool(&base.ConvertHighlightsToClozes, o.ConvertHighlightsToClozes)
	setBool(&base.ConvertBoldTextToClozes, o.ConvertBoldTextToClozes)
	setBool(&base.ConvertCurlyBracketsToClozes, o.ConvertCurlyBracketsToClozes)
	return base
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// CardResponse is one extracted card.
type CardResponse struct {
	Kind       string `json:"kind"`
	Text       string `json:"text"`
	LineNumber int    `json:"line_number"`
}

// ExtractResponse is the body returned by POST /api/cards/extract.
type ExtractResponse struct {
	Cards []CardResponse `json:"cards"`
	Count int            `json:"count"`
}

// ExtractHandler handles card extraction requests.
type ExtractHandler struct {
	generator generation.Generator
	defaults  parser.Options
	logger    *slog.Logger
}

// NewExtractHandler creates an ExtractHandler. defaults are the parser
// options used when a request carries no overrides.
func NewExtractHandler(
	generator generation.Generator,
	defaults parser.Options,
	logger *slog.Logger,
) *ExtractHandler {
	if generator == nil {
		panic("generator cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &ExtractHandler{
		generator: generator,
		defaults:  defaults,
		logger:    logger.With(slog.String("component", "extract_handler")),
	}
}

// ExtractCards handles POST /api/cards/extract requests.
func (h *ExtractHandler) ExtractCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req ExtractRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		status := http.StatusBadRequest
		message := "Invalid request format"
		if MapErrorToStatusCode(err) == http.StatusRequestEntityTooLarge {
			status = http.StatusRequestEntityTooLarge
			message = GetSafeErrorMessage(err)
		}
		shared.RespondWithErrorAndLog(w, r, status, message, err)
		return
	}

	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	opts := req.Options.apply(h.defaults)
	if opts.SingleLineSeparator != "" && opts.SingleLineSeparator == opts.SingleLineReversedSeparator {
		HandleAPIError(w, r, fmt.Errorf(
			"%w: single-line separators must differ", domain.ErrValidation))
		return
	}

	cards, err := h.generator.GenerateCards(r.Context(), req.Text, opts)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	log.Debug("cards extracted",
		slog.Int("note_bytes", len(req.Text)),
		slog.Int("card_count", len(cards)))

	shared.RespondWithJSON(w, r, http.StatusOK, cardsToResponse(cards))
}

func cardsToResponse(cards []domain.Card) ExtractResponse {
	resp := ExtractResponse{
		Cards: make([]CardResponse, 0, len(cards)),
		Count: len(cards),
	}
	for _, c := range cards {
		resp.Cards = append(resp.Cards, CardResponse{
			Kind:       c.Kind.String(),
			Text:       c.Text,
			LineNumber: c.LineNumber,
		})
	}
	return resp
}
