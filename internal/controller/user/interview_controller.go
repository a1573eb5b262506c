package user

import (
	"net/http"
	"strconv"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/controller"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/dhanyabad11/PrepForge-Backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type InterviewController struct {
	interviewService service.InterviewService
	cfg              *config.Config
}

func NewInterviewController(interviewService service.InterviewService, cfg *config.Config) *InterviewController {
	return &InterviewController{interviewService: interviewService, cfg: cfg}
}

// GenerateQuestions godoc
// @Summary Generate interview questions
// @Description Generates questions for a role and company and stores them as a new interview. When generation is unavailable, curated questions are returned with fallback=true; when the interview cannot be stored the questions are still returned with saved=false.
// @Tags Interview
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuestionsRequest true "Role, company and question preferences"
// @Success 200 {object} dto.SuccessResponse{data=dto.GenerateQuestionsResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /interview/generate-questions [post]
func (c *InterviewController) GenerateQuestions(ctx *gin.Context) {
	var req dto.GenerateQuestionsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}

	resp, err := c.interviewService.GenerateInterview(ctx.Request.Context(), req)
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	log.Ctx(ctx.Request.Context()).Info().
		Str("user_id", req.UserID).
		Int("questions", len(resp.Questions)).
		Bool("saved", resp.Saved).
		Bool("fallback", resp.Fallback).
		Msg("Interview questions generated")
	controller.OK(ctx, http.StatusOK, resp)
}

// GetInterviewHistory godoc
// @Summary List a user's interviews
// @Description Most recent first.
// @Tags Interview
// @Produce json
// @Param userId path string true "User ID"
// @Param limit query int false "Maximum number of interviews (default 50)"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.InterviewSummaryResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid user id"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /interview/interview-history/{userId} [get]
func (c *InterviewController) GetInterviewHistory(ctx *gin.Context) {
	userID, ok := controller.UserParam(ctx, "userId")
	if !ok {
		return
	}
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
				Error:  "Validation failed",
				Errors: []dto.FieldError{{Field: "limit", Message: "must be a positive integer"}},
			})
			return
		}
		limit = n
	}

	history, err := c.interviewService.GetHistory(ctx.Request.Context(), userID, limit)
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	controller.OK(ctx, http.StatusOK, history)
}

// GetInterviewDetails godoc
// @Summary Get an interview with its answers
// @Tags Interview
// @Produce json
// @Param interviewId path int true "Interview ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.InterviewDetailResponse}
// @Failure 400 {object} dto.ErrorResponse "Invalid interview id"
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /interview/interview-details/{interviewId} [get]
func (c *InterviewController) GetInterviewDetails(ctx *gin.Context) {
	interviewID, ok := controller.IDParam(ctx, "interviewId")
	if !ok {
		return
	}
	detail, err := c.interviewService.GetDetails(ctx.Request.Context(), interviewID)
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	controller.OK(ctx, http.StatusOK, detail)
}

// CompleteInterview godoc
// @Summary Mark an interview completed or abandoned
// @Description Records status, duration and overall feedback for an interview owned by userId.
// @Tags Interview
// @Accept json
// @Produce json
// @Param interviewId path int true "Interview ID"
// @Param request body dto.CompleteInterviewRequest true "Owner and completion details"
// @Success 200 {object} dto.SuccessResponse{data=dto.InterviewDetailResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 404 {object} dto.ErrorResponse "Interview not found"
// @Router /interview/{interviewId}/complete [patch]
func (c *InterviewController) CompleteInterview(ctx *gin.Context) {
	interviewID, ok := controller.IDParam(ctx, "interviewId")
	if !ok {
		return
	}
	var req dto.CompleteInterviewRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}

	detail, err := c.interviewService.Complete(ctx.Request.Context(), interviewID, req)
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	controller.OK(ctx, http.StatusOK, detail)
}
