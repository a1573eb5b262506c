package user

import (
	"net/http"

	"github.com/dhanyabad11/PrepForge-Backend/config"
	"github.com/dhanyabad11/PrepForge-Backend/internal/controller"
	"github.com/dhanyabad11/PrepForge-Backend/internal/dto"
	"github.com/dhanyabad11/PrepForge-Backend/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type BookmarkController struct {
	bookmarkService service.BookmarkService
	cfg             *config.Config
}

func NewBookmarkController(bookmarkService service.BookmarkService, cfg *config.Config) *BookmarkController {
	return &BookmarkController{bookmarkService: bookmarkService, cfg: cfg}
}

// SaveQuestionSet godoc
// @Summary Save a question set
// @Tags Saved Questions
// @Accept json
// @Produce json
// @Param request body dto.SaveQuestionSetRequest true "Question set"
// @Success 201 {object} dto.SuccessResponse{data=dto.SavedQuestionSetResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Router /saved-questions/save [post]
func (c *BookmarkController) SaveQuestionSet(ctx *gin.Context) {
	var req dto.SaveQuestionSetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	set, err := c.bookmarkService.Save(ctx.Request.Context(), req)
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	log.Ctx(ctx.Request.Context()).Info().Uint("set_id", set.ID).Str("user_id", set.UserID).Msg("Question set saved")
	controller.OK(ctx, http.StatusCreated, set)
}

// ListQuestionSets godoc
// @Summary List a user's saved question sets
// @Tags Saved Questions
// @Produce json
// @Param userId path string true "User ID"
// @Param favorite query bool false "Only favorites"
// @Success 200 {object} dto.SuccessResponse{data=[]dto.SavedQuestionSetResponse}
// @Router /saved-questions/user/{userId} [get]
func (c *BookmarkController) ListQuestionSets(ctx *gin.Context) {
	userID, ok := controller.UserParam(ctx, "userId")
	if !ok {
		return
	}
	sets, err := c.bookmarkService.ListForUser(ctx.Request.Context(), userID, ctx.Query("favorite") == "true")
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	controller.OK(ctx, http.StatusOK, sets)
}

// ToggleFavorite godoc
// @Summary Flip the favorite flag of a saved set
// @Tags Saved Questions
// @Accept json
// @Produce json
// @Param setId path int true "Saved set ID"
// @Param request body dto.OwnerRequest true "Owner"
// @Success 200 {object} dto.SuccessResponse{data=dto.SavedQuestionSetResponse}
// @Failure 404 {object} dto.ErrorResponse "Set not found or not owned"
// @Router /saved-questions/{setId}/favorite [patch]
func (c *BookmarkController) ToggleFavorite(ctx *gin.Context) {
	setID, owner, ok := c.bindOwned(ctx)
	if !ok {
		return
	}
	set, err := c.bookmarkService.ToggleFavorite(ctx.Request.Context(), setID, owner.UserID)
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	controller.OK(ctx, http.StatusOK, set)
}

// RecordPractice godoc
// @Summary Record a practice session on a saved set
// @Tags Saved Questions
// @Accept json
// @Produce json
// @Param setId path int true "Saved set ID"
// @Param request body dto.OwnerRequest true "Owner"
// @Success 200 {object} dto.SuccessResponse{data=dto.SavedQuestionSetResponse}
// @Failure 404 {object} dto.ErrorResponse "Set not found or not owned"
// @Router /saved-questions/{setId}/practice [post]
func (c *BookmarkController) RecordPractice(ctx *gin.Context) {
	setID, owner, ok := c.bindOwned(ctx)
	if !ok {
		return
	}
	set, err := c.bookmarkService.RecordPractice(ctx.Request.Context(), setID, owner.UserID)
	if err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	controller.OK(ctx, http.StatusOK, set)
}

// DeleteQuestionSet godoc
// @Summary Delete a saved set
// @Tags Saved Questions
// @Produce json
// @Param setId path int true "Saved set ID"
// @Param userId query string true "Owner"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Set not found or not owned"
// @Router /saved-questions/{setId} [delete]
func (c *BookmarkController) DeleteQuestionSet(ctx *gin.Context) {
	setID, ok := controller.IDParam(ctx, "setId")
	if !ok {
		return
	}
	var owner dto.OwnerRequest
	if err := ctx.ShouldBindQuery(&owner); err != nil {
		controller.BadRequest(ctx, err)
		return
	}
	if err := c.bookmarkService.Delete(ctx.Request.Context(), setID, owner.UserID); err != nil {
		controller.Fail(ctx, err, c.cfg.IsProduction())
		return
	}
	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true, Message: "Question set deleted"})
}

func (c *BookmarkController) bindOwned(ctx *gin.Context) (uint, dto.OwnerRequest, bool) {
	var owner dto.OwnerRequest
	setID, ok := controller.IDParam(ctx, "setId")
	if !ok {
		return 0, owner, false
	}
	if err := ctx.ShouldBindJSON(&owner); err != nil {
		controller.BadRequest(ctx, err)
		return 0, owner, false
	}
	return setID, owner, true
}
