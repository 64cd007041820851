package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sabytin_backend/internal/services"
	"sabytin_backend/internal/services/dto"
)

// AlgorithmHandler собирает все операции подбора: реакции, взаимность,
// выдачу анкет и фильтры.
type AlgorithmHandler struct {
	*BaseHandler
	reactionService  services.ReactionService
	candidateService services.CandidateService
	filterService    services.FilterService
	userService      services.UserService
}

func NewAlgorithmHandler(
	base *BaseHandler,
	reactionService services.ReactionService,
	candidateService services.CandidateService,
	filterService services.FilterService,
	userService services.UserService,
) *AlgorithmHandler {
	return &AlgorithmHandler{
		BaseHandler:      base,
		reactionService:  reactionService,
		candidateService: candidateService,
		filterService:    filterService,
		userService:      userService,
	}
}

// RegisterRoutes регистрирует маршруты подбора, все под авторизацией
func (h *AlgorithmHandler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	algorithm := rg.Group("/algorithm")
	algorithm.Use(authMW)
	{
		algorithm.GET("/get_all_users", h.GetAllUsers)
		algorithm.GET("/list_questionnaires", h.ListQuestionnaires)

		algorithm.GET("/get_likes", h.GetLikes)
		algorithm.GET("/get_dislikes", h.GetDislikes)
		algorithm.GET("/find_matches", h.FindMatches)

		algorithm.POST("/create_like/:to", h.CreateLike)
		algorithm.POST("/create_dislike/:to", h.CreateDislike)
		algorithm.DELETE("/delete_all_likes", h.DeleteAllLikes)
		algorithm.DELETE("/delete_all_dislikes", h.DeleteAllDislikes)

		algorithm.GET("/filters", h.GetFilters)
		algorithm.POST("/create_filters", h.CreateFilters)
		algorithm.PATCH("/patch_filters", h.PatchFilters)
	}
}

func (h *AlgorithmHandler) GetAllUsers(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	limit, offset := ParsePagination(c)

	users, err := h.userService.GetAllUsers(c.Request.Context(), userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (h *AlgorithmHandler) ListQuestionnaires(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	questionnaires, err := h.candidateService.ListQuestionnaires(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, questionnaires)
}

func (h *AlgorithmHandler) GetLikes(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	likes, err := h.reactionService.ListLikes(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

func (h *AlgorithmHandler) GetDislikes(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	dislikes, err := h.reactionService.ListDislikes(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, dislikes)
}

func (h *AlgorithmHandler) FindMatches(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	matches, err := h.reactionService.FindMatches(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, matches)
}

func (h *AlgorithmHandler) CreateLike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	toUserID := c.Param("to")

	result, err := h.reactionService.CreateLike(c.Request.Context(), userID, toUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *AlgorithmHandler) CreateDislike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	toUserID := c.Param("to")

	result, err := h.reactionService.CreateDislike(c.Request.Context(), userID, toUserID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h *AlgorithmHandler) DeleteAllLikes(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.reactionService.ClearLikes(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AlgorithmHandler) DeleteAllDislikes(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.reactionService.ClearDislikes(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *AlgorithmHandler) GetFilters(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	filters, err := h.filterService.Get(c.Request.Context(), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, filters)
}

func (h *AlgorithmHandler) CreateFilters(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateFilterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	filters, err := h.filterService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, filters)
}

func (h *AlgorithmHandler) PatchFilters(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.PatchFilterRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	filters, err := h.filterService.Patch(c.Request.Context(), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, filters)
}
