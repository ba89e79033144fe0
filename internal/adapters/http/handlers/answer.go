package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/testmaker/quizapi/internal/adapters/http/dto"
	"github.com/testmaker/quizapi/internal/app"
)

// AnswerHandler handles the /api/answer endpoints.
type AnswerHandler struct {
	answers *app.AnswerService
}

// NewAnswerHandler creates a new answer handler.
func NewAnswerHandler(answers *app.AnswerService) *AnswerHandler {
	return &AnswerHandler{answers: answers}
}

// All handles GET /api/answer/All/:questionId.
func (h *AnswerHandler) All(c *gin.Context) {
	questionID, ok := dto.ParseID(c.Param("questionId"))
	if !ok {
		dto.NotRouted(c)
		return
	}

	c.IndentedJSON(http.StatusOK, h.answers.ListAnswers(c.Request.Context(), questionID))
}

// RegisterRoutes registers the answer routes on rg (the /api group).
func (h *AnswerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/answer/All/:questionId", h.All)
}
