package admin

import (
	"net/http"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/controller"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/dhanyabad11/PrepForge-Backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ProgressController struct {
	progressService service.ProgressService
	cfg             *config.Config
}

func NewProgressController(progressService service.ProgressService, cfg *config.Config) *ProgressController {
	return &ProgressController{progressService: progressService, cfg: cfg}
}

// RebuildProgress godoc
// @Summary (Admin) Rebuild a user's progress from their answers
// @Description Re-derives the progress aggregate from the full answer history and marks every answer as counted.
// @Tags Admin - Progress
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} dto.SuccessResponse{data=dto.ProgressResponse}
// @Failure 409 {object} dto.ErrorResponse "Concurrent updates kept conflicting"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/progress/{userId}/rebuild [post]
func (c *ProgressController) RebuildProgress(ctx *gin.Context) {
	userID, ok := controller.UserParam(ctx, "userId")
	if !ok {
		return
	}
	progress, err := c.progressService.Rebuild(ctx.Request.Context(), userID)
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	log.Ctx(ctx.Request.Context()).Info().Str("user_id", userID).Int("answers", progress.TotalQuestionsAnswered).Msg("Admin rebuilt progress")
	controller.OK(ctx, http.StatusOK, dto.ToProgressResponse(progress))
}
