package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/phrazzld/promptchain/internal/api/shared"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/platform/logger"
	"github.com/phrazzld/promptchain/internal/service"
)

// multipartOverhead is the allowance for form fields and boundaries on top of
// the image itself.
const multipartOverhead = 1 << 20

type generateFunc func(ctx context.Context, req *domain.GenerationRequest) (*domain.GenerationResult, error)

// PromptHandler handles the prompt generation endpoints.
type PromptHandler struct {
	promptService  service.PromptService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewPromptHandler creates a new PromptHandler. maxUploadBytes bounds the
// image accepted by GenerateWithImage; values <= 0 use domain.MaxImageBytes.
func NewPromptHandler(promptService service.PromptService, maxUploadBytes int64, logger *slog.Logger) *PromptHandler {
	if promptService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("promptService cannot be nil for PromptHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for PromptHandler")
	}
	if maxUploadBytes <= 0 || maxUploadBytes > domain.MaxImageBytes {
		maxUploadBytes = domain.MaxImageBytes
	}
	return &PromptHandler{
		promptService:  promptService,
		maxUploadBytes: maxUploadBytes,
		logger:         logger.With(slog.String("component", "prompt_handler")),
	}
}

// GeneratePrompts handles POST /api/generate-prompts.
func (h *PromptHandler) GeneratePrompts(w http.ResponseWriter, r *http.Request) {
	h.handleJSON(w, r, "generate_prompts", h.promptService.Generate)
}

// GenerateCombined handles POST /api/prompts/combined.
func (h *PromptHandler) GenerateCombined(w http.ResponseWriter, r *http.Request) {
	h.handleJSON(w, r, "generate_combined", h.promptService.GenerateCombined)
}

// GenerateLocal handles POST /api/prompts/local.
func (h *PromptHandler) GenerateLocal(w http.ResponseWriter, r *http.Request) {
	h.handleJSON(w, r, "generate_local", h.promptService.GenerateLocal)
}

func (h *PromptHandler) handleJSON(w http.ResponseWriter, r *http.Request, op string, generate generateFunc) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req GeneratePromptsRequest
	if err := shared.DecodeJSON(w, r, &req); err != nil {
		log.Warn("invalid request body", slog.String("operation", op), slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	genReq, err := domain.NewGenerationRequest(req.Idea, req.Style, req.Characters, nil, "")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	h.run(w, r, op, genReq, generate)
}

// GenerateWithImage handles POST /api/generate-with-image. The body is a
// multipart form with idea, style, comma separated characters and an
// optional image file.
func (h *PromptHandler) GenerateWithImage(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes+multipartOverhead)
	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			shared.RespondWithError(w, r, http.StatusRequestEntityTooLarge, "Image exceeds maximum size")
			return
		}
		log.Warn("invalid multipart form", slog.String("error", err.Error()))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	image, mime, err := h.readImage(r)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	genReq, err := domain.NewGenerationRequest(
		r.FormValue("idea"),
		r.FormValue("style"),
		domain.ParseCharacterList(r.FormValue("characters")),
		image,
		mime,
	)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	h.run(w, r, "generate_with_image", genReq, h.promptService.Generate)
}

// readImage returns the uploaded image, or nil when the form has none.
func (h *PromptHandler) readImage(r *http.Request) ([]byte, string, error) {
	file, header, err := r.FormFile("image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: unreadable image field", domain.ErrValidation)
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxUploadBytes {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrImageTooLarge)
	}
	data, err := io.ReadAll(io.LimitReader(file, h.maxUploadBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("%w: unreadable image", domain.ErrValidation)
	}
	if int64(len(data)) > h.maxUploadBytes {
		return nil, "", fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrImageTooLarge)
	}
	if len(data) == 0 {
		return nil, "", nil
	}

	mime := header.Header.Get("Content-Type")
	if mime == "" || mime == "application/octet-stream" {
		mime = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mime, "image/") {
		return nil, "", fmt.Errorf("%w: uploaded file is not an image", domain.ErrValidation)
	}
	return data, mime, nil
}

func (h *PromptHandler) run(
	w http.ResponseWriter,
	r *http.Request,
	op string,
	req *domain.GenerationRequest,
	generate generateFunc,
) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	result, err := generate(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	log.Debug("prompts generated",
		slog.String("operation", op),
		slog.String("model_used", result.ModelUsed),
		slog.String("translation_status", string(result.TranslationStatus)))
	shared.RespondWithJSON(w, r, http.StatusOK, newGenerationResponse(result))
}

// CheckProviders handles GET /api/providers/check.
func (h *PromptHandler) CheckProviders(w http.ResponseWriter, r *http.Request) {
	statuses := h.promptService.CheckProviders(r.Context())
	shared.RespondWithJSON(w, r, http.StatusOK, ProviderCheckResponse{Success: true, Providers: statuses})
}
