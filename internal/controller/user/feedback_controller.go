package user

import (
	"net/http"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/controller"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/dhanyabad11/PrepForge-Backend/internal/service"
	"github.com/gin-gonic/gin"
)

type FeedbackController struct {
	answerService service.AnswerService
	statsService  service.StatsService
	cfg           *config.Config
}

func NewFeedbackController(answerService service.AnswerService, statsService service.StatsService, cfg *config.Config) *FeedbackController {
	return &FeedbackController{answerService: answerService, statsService: statsService, cfg: cfg}
}

// GenerateFeedback godoc
// @Summary Score an answer
// @Description Evaluates the answer, stores it as the next attempt for the question and updates the user's progress. Scoring never fails: when the evaluator is unavailable a length-based score is returned with isFallback=true.
// @Tags Interview
// @Accept json
// @Produce json
// @Param request body dto.GenerateFeedbackRequest true "Question, answer and interview reference"
// @Success 200 {object} dto.SuccessResponse{data=dto.FeedbackResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed or question not in interview"
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Failure 500 {object} dto.ErrorResponse "Answer could not be saved"
// @Router /interview/generate-feedback [post]
func (c *FeedbackController) GenerateFeedback(ctx *gin.Context) {
	var req dto.GenerateFeedbackRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}

	resp, err := c.answerService.SubmitAnswer(ctx.Request.Context(), req)
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	controller.OK(ctx, http.StatusOK, resp)
}

// GetUserStats godoc
// @Summary Get a user's progress and score history
// @Description Progress aggregate, the ten most recent answers, per question type averages and daily averages over the last 30 days.
// @Tags Interview
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.UserStatsResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid user id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interview/user-stats/{userId} [get]
func (c *FeedbackController) GetUserStats(ctx *gin.Context) {
	userID, ok := controller.UserParam(ctx, "userId")
	if !ok {
		return
	}
	stats, err := c.statsService.GetUserStats(ctx.Request.Context(), userID)
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	controller.OK(ctx, http.StatusOK, stats)
}
