package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/testmaker/quizapi/internal/adapters/http/dto"
	"github.com/testmaker/quizapi/internal/adapters/http/middleware"
	"github.com/testmaker/quizapi/internal/app"
	"github.com/testmaker/quizapi/internal/domain"
)

// QuizHandler handles the /api/quiz endpoints.
type QuizHandler struct {
	quizzes *app.QuizService
	authors *app.AuthorService
}

// NewQuizHandler creates a new quiz handler.
func NewQuizHandler(quizzes *app.QuizService, authors *app.AuthorService) *QuizHandler {
	return &QuizHandler{
		quizzes: quizzes,
		authors: authors,
	}
}

// Get handles GET /api/quiz/:id.
//
// @Summary Get a quiz
// @Tags quiz
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} app.QuizViewModel
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/quiz/{id} [get]
func (h *QuizHandler) Get(c *gin.Context) {
	id, ok := dto.ParseID(c.Param("id"))
	if !ok {
		dto.NotRouted(c)
		return
	}

	quiz, err := h.quizzes.Get(c.Request.Context(), id)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, quiz)
}

// Create handles PUT /api/quiz.
// The quiz is attributed to the gateway subject, or to the fallback author.
//
// @Summary Create a quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Param quiz body dto.QuizRequest true "Quiz"
// @Success 200 {object} app.QuizViewModel
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/quiz [put]
func (h *QuizHandler) Create(c *gin.Context) {
	req, ok := h.bind(c, "create quiz", dto.BindAndValidate)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	authorID, err := h.authors.ResolveAuthor(ctx, middleware.GetIdentity(c).Subject)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	quiz, err := h.quizzes.Create(ctx, req.ToViewModel(), authorID)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, quiz)
}

// Update handles POST /api/quiz.
//
// @Summary Update a quiz
// @Tags quiz
// @Accept json
// @Produce json
// @Param quiz body dto.QuizRequest true "Quiz with Id"
// @Success 200 {object} app.QuizViewModel
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/quiz [post]
//
// The payload is only decoded here: the service looks the quiz up before it
// checks the title, so an unknown Id is a 404 even when the title is blank.
func (h *QuizHandler) Update(c *gin.Context) {
	req, ok := h.bind(c, "update quiz", dto.Bind)
	if !ok {
		return
	}

	quiz, err := h.quizzes.Update(c.Request.Context(), req.ToViewModel())
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, quiz)
}

// Delete handles DELETE /api/quiz/:id. Success has an empty body.
func (h *QuizHandler) Delete(c *gin.Context) {
	id, ok := dto.ParseID(c.Param("id"))
	if !ok {
		dto.NotRouted(c)
		return
	}

	if err := h.quizzes.Delete(c.Request.Context(), id); err != nil {
		dto.HandleError(c, err)
		return
	}

	c.Status(http.StatusOK)
}

// Latest handles GET /api/quiz/Latest[/:num].
func (h *QuizHandler) Latest(c *gin.Context) {
	h.list(c, h.quizzes.ListLatest)
}

// ByTitle handles GET /api/quiz/ByTitle[/:num].
func (h *QuizHandler) ByTitle(c *gin.Context) {
	h.list(c, h.quizzes.ListByTitle)
}

// Random handles GET /api/quiz/Random[/:num].
func (h *QuizHandler) Random(c *gin.Context) {
	h.list(c, h.quizzes.ListRandom)
}

// RegisterRoutes registers the quiz routes on rg (the /api group).
func (h *QuizHandler) RegisterRoutes(rg *gin.RouterGroup) {
	quiz := rg.Group("/quiz")

	quiz.PUT("", h.Create)
	quiz.POST("", h.Update)
	quiz.GET("/:id", h.Get)
	quiz.DELETE("/:id", h.Delete)

	for path, handler := range map[string]gin.HandlerFunc{
		"/Latest":  h.Latest,
		"/ByTitle": h.ByTitle,
		"/Random":  h.Random,
	} {
		quiz.GET(path, handler)
		quiz.GET(path+"/:num", handler)
	}
}

type listFunc func(ctx context.Context, count int) ([]app.QuizViewModel, error)

func (h *QuizHandler) list(c *gin.Context, fn listFunc) {
	count, ok := dto.ParseCount(c.Param("num"), h.quizzes.DefaultCount())
	if !ok {
		dto.NotRouted(c)
		return
	}

	quizzes, err := fn(c.Request.Context(), count)
	if err != nil {
		dto.HandleError(c, err)
		return
	}

	c.IndentedJSON(http.StatusOK, quizzes)
}

// bind decodes the quiz payload with decode. A missing or undecodable payload
// is an invalid request (500); a blank title is a validation failure (400).
func (h *QuizHandler) bind(c *gin.Context, op string, decode func(*gin.Context, any) error) (*dto.QuizRequest, bool) {
	var req dto.QuizRequest

	err := decode(c, &req)
	switch {
	case err == nil:
		return &req, true
	case errors.Is(err, dto.ErrValidation):
		dto.RespondWithValidationErrors(c, dto.ValidationErrors(err))
	case errors.Is(err, dto.ErrMissingBody):
		dto.HandleError(c, domain.NewInvalidRequestError(op, "payload is missing"))
	default:
		dto.HandleError(c, domain.NewInvalidRequestError(op, "payload could not be decoded"))
	}

	return nil, false
}
