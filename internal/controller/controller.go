package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/lumahealth/authoring/internal/dto"
	"github.com/lumahealth/authoring/internal/service"
	"github.com/lumahealth/authoring/internal/session"
)

type Controller struct {
	sessionSvc      service.SessionService
	relationshipSvc service.RelationshipService
	librarySvc      service.LibraryService
	scoringSvc      service.ScoringService
}

func NewController(sessionSvc service.SessionService, relationshipSvc service.RelationshipService, librarySvc service.LibraryService, scoringSvc service.ScoringService) *Controller {
	return &Controller{
		sessionSvc:      sessionSvc,
		relationshipSvc: relationshipSvc,
		librarySvc:      librarySvc,
		scoringSvc:      scoringSvc,
	}
}

func (ctrl *Controller) RegisterRoutes(router *gin.Engine) {
	apiV1 := router.Group("/api/v1")
	{
		sessions := apiV1.Group("/sessions")
		sessions.POST("", ctrl.OpenSessionHandler)
		sessions.GET("/:id", ctrl.GetSessionHandler)
		sessions.DELETE("/:id", ctrl.CloseSessionHandler)

		sessions.POST("/:id/sections", ctrl.CreateSectionHandler)
		sessions.PUT("/:id/sections/:ref", ctrl.UpdateSectionHandler)
		sessions.POST("/:id/sections/:ref/save", ctrl.SaveSectionHandler)
		sessions.DELETE("/:id/sections/:ref", ctrl.DeleteSectionHandler)

		sessions.POST("/:id/questions", ctrl.CreateQuestionHandler)
		sessions.PUT("/:id/questions/:ref", ctrl.UpdateQuestionHandler)
		sessions.POST("/:id/questions/:ref/save", ctrl.SaveQuestionHandler)
		sessions.POST("/:id/questions/:ref/move", ctrl.MoveQuestionHandler)
		sessions.DELETE("/:id/questions/:ref", ctrl.DeleteQuestionHandler)

		sessions.POST("/:id/answers", ctrl.CreateAnswerHandler)
		sessions.PUT("/:id/answers/:ref", ctrl.UpdateAnswerHandler)
		sessions.POST("/:id/answers/:ref/save", ctrl.SaveAnswerHandler)
		sessions.DELETE("/:id/answers/:ref", ctrl.DeleteAnswerHandler)

		sessions.POST("/:id/entities/:ref/discard", ctrl.DiscardHandler)
		sessions.POST("/:id/reorder", ctrl.ReorderHandler)

		sessions.GET("/:id/answers/:ref/relationships", ctrl.LoadRelationshipsHandler)
		sessions.POST("/:id/answers/:ref/relationships", ctrl.AddRelationshipHandler)
		sessions.DELETE("/:id/answers/:ref/relationships", ctrl.RemoveRelationshipHandler)
		sessions.POST("/:id/answers/:ref/relationships/goals", ctrl.LoadGoalsHandler)
		sessions.POST("/:id/answers/:ref/relationships/interventions", ctrl.LoadInterventionsHandler)
		sessions.POST("/:id/answers/:ref/relationships/toggle", ctrl.ToggleHandler)

		sessions.POST("/:id/search", ctrl.SessionSearchHandler)
		sessions.GET("/:id/search/:slot", ctrl.SessionResultsHandler)

		sessions.POST("/:id/scoring/activate", ctrl.ActivateModelHandler)
		sessions.POST("/:id/answers/:ref/score", ctrl.SetScoreHandler)

		library := apiV1.Group("/library")
		library.GET("/search", ctrl.LibrarySearchHandler)

		scoring := apiV1.Group("/scoring-models")
		scoring.POST("", ctrl.CreateScoringModelHandler)
		scoring.PUT("/:id", ctrl.UpdateScoringModelHandler)
	}
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound), errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	default:
		log.Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
	}
}

// --- Session lifecycle ---

// OpenSessionHandler godoc
// @Summary Open an edit session
// @Description Loads the assessment tree and opens an edit session over it
// @Tags sessions
// @Accept json
// @Produce json
// @Param session body dto.OpenSessionRequest true "Assessment to edit"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [post]
func (ctrl *Controller) OpenSessionHandler(c *gin.Context) {
	var req dto.OpenSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.sessionSvc.Open(c.Request.Context(), req.AssessmentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// GetSessionHandler godoc
// @Summary Get the current session snapshot
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id} [get]
func (ctrl *Controller) GetSessionHandler(c *gin.Context) {
	resp, err := ctrl.sessionSvc.Snapshot(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CloseSessionHandler godoc
// @Summary Close an edit session
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id} [delete]
func (ctrl *Controller) CloseSessionHandler(c *gin.Context) {
	if err := ctrl.sessionSvc.Close(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Sections ---

// CreateSectionHandler godoc
// @Summary Add a section or subsection
// @Description Adds a section locally; nothing is persisted until save
// @Tags sections
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param section body dto.CreateSectionRequest true "Section data"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/sections [post]
func (ctrl *Controller) CreateSectionHandler(c *gin.Context) {
	var req dto.CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.sessionSvc.CreateSection(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateSectionHandler godoc
// @Summary Edit a section's fields locally
// @Tags sections
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Section ref"
// @Param section body dto.UpdateSectionRequest true "Fields to change"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or section not found"
// @Router /sessions/{id}/sections/{ref} [put]
func (ctrl *Controller) UpdateSectionHandler(c *gin.Context) {
	var req dto.UpdateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.sessionSvc.UpdateSection(c.Param("id"), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveSectionHandler godoc
// @Summary Save a section
// @Description Runs the save workflow: silent library check, then persist
// @Tags sections
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Section ref"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or section not found"
// @Router /sessions/{id}/sections/{ref}/save [post]
func (ctrl *Controller) SaveSectionHandler(c *gin.Context) {
	resp, err := ctrl.sessionSvc.Save(c.Param("id"), session.KindSection, c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteSectionHandler godoc
// @Summary Delete a section
// @Tags sections
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Section ref"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or section not found"
// @Router /sessions/{id}/sections/{ref} [delete]
func (ctrl *Controller) DeleteSectionHandler(c *gin.Context) {
	resp, err := ctrl.sessionSvc.Delete(c.Param("id"), session.KindSection, c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Questions ---

// CreateQuestionHandler godoc
// @Summary Add a question to a subsection
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param question body dto.CreateQuestionRequest true "Question data"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/questions [post]
func (ctrl *Controller) CreateQuestionHandler(c *gin.Context) {
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.sessionSvc.CreateQuestion(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateQuestionHandler godoc
// @Summary Edit a question's fields locally
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Question ref"
// @Param question body dto.UpdateQuestionRequest true "Fields to change"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Router /sessions/{id}/questions/{ref} [put]
func (ctrl *Controller) UpdateQuestionHandler(c *gin.Context) {
	var req dto.UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.sessionSvc.UpdateQuestion(c.Param("id"), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveQuestionHandler godoc
// @Summary Save a question and its answers
// @Description Runs the save workflow: sequential library checks, persist, bulk answer attach
// @Tags questions
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Question ref"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Router /sessions/{id}/questions/{ref}/save [post]
func (ctrl *Controller) SaveQuestionHandler(c *gin.Context) {
	resp, err := ctrl.sessionSvc.Save(c.Param("id"), session.KindQuestion, c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// MoveQuestionHandler godoc
// @Summary Move a question to another subsection
// @Description Recreates the question in the target, copies answers, then removes the original
// @Tags questions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Question ref"
// @Param move body dto.MoveQuestionRequest true "Move target"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Router /sessions/{id}/questions/{ref}/move [post]
func (ctrl *Controller) MoveQuestionHandler(c *gin.Context) {
	var req dto.MoveQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.sessionSvc.MoveQuestion(c.Param("id"), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteQuestionHandler godoc
// @Summary Delete a question
// @Tags questions
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Question ref"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or question not found"
// @Router /sessions/{id}/questions/{ref} [delete]
func (ctrl *Controller) DeleteQuestionHandler(c *gin.Context) {
	resp, err := ctrl.sessionSvc.Delete(c.Param("id"), session.KindQuestion, c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Answers ---

// CreateAnswerHandler godoc
// @Summary Add an answer to a select question
// @Tags answers
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param answer body dto.CreateAnswerRequest true "Answer data"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/answers [post]
func (ctrl *Controller) CreateAnswerHandler(c *gin.Context) {
	var req dto.CreateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.sessionSvc.CreateAnswer(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateAnswerHandler godoc
// @Summary Edit an answer's fields locally
// @Tags answers
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Answer ref"
// @Param answer body dto.UpdateAnswerRequest true "Fields to change"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or answer not found"
// @Router /sessions/{id}/answers/{ref} [put]
func (ctrl *Controller) UpdateAnswerHandler(c *gin.Context) {
	var req dto.UpdateAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.sessionSvc.UpdateAnswer(c.Param("id"), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SaveAnswerHandler godoc
// @Summary Save a single answer
// @Tags answers
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Answer ref"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or answer not found"
// @Router /sessions/{id}/answers/{ref}/save [post]
func (ctrl *Controller) SaveAnswerHandler(c *gin.Context) {
	resp, err := ctrl.sessionSvc.Save(c.Param("id"), session.KindAnswer, c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteAnswerHandler godoc
// @Summary Delete an answer
// @Tags answers
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Answer ref"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or answer not found"
// @Router /sessions/{id}/answers/{ref} [delete]
func (ctrl *Controller) DeleteAnswerHandler(c *gin.Context) {
	resp, err := ctrl.sessionSvc.Delete(c.Param("id"), session.KindAnswer, c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Discard and reorder ---

// DiscardHandler godoc
// @Summary Discard pending edits on an entity
// @Description Reverts field edits; a never-persisted entity disappears
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Entity ref"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "Session or entity not found"
// @Router /sessions/{id}/entities/{ref}/discard [post]
func (ctrl *Controller) DiscardHandler(c *gin.Context) {
	resp, err := ctrl.sessionSvc.Discard(c.Param("id"), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReorderHandler godoc
// @Summary Reorder one sibling group
// @Description Reassigns contiguous sort orders and persists them as one batch
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param reorder body dto.ReorderRequest true "Full new ordering"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/reorder [post]
func (ctrl *Controller) ReorderHandler(c *gin.Context) {
	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.sessionSvc.Reorder(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Relationships ---

// LoadRelationshipsHandler godoc
// @Summary Get an answer's relationship graph
// @Description Lazily loads the full bundle on first access
// @Tags relationships
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Answer ref"
// @Success 200 {object} dto.RelationshipResponse
// @Failure 404 {object} dto.ErrorResponse "Session or answer not found"
// @Router /sessions/{id}/answers/{ref}/relationships [get]
func (ctrl *Controller) LoadRelationshipsHandler(c *gin.Context) {
	resp, err := ctrl.relationshipSvc.Load(c.Param("id"), c.Param("ref"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AddRelationshipHandler godoc
// @Summary Link a target to an answer
// @Tags relationships
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Answer ref"
// @Param link body dto.RelationshipRequest true "Link to add"
// @Success 200 {object} dto.RelationshipResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session or answer not found"
// @Router /sessions/{id}/answers/{ref}/relationships [post]
func (ctrl *Controller) AddRelationshipHandler(c *gin.Context) {
	var req dto.RelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.relationshipSvc.AddLink(c.Param("id"), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RemoveRelationshipHandler godoc
// @Summary Unlink a target from an answer
// @Tags relationships
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Answer ref"
// @Param link body dto.RelationshipRequest true "Link to remove"
// @Success 200 {object} dto.RelationshipResponse
// @Failure 404 {object} dto.ErrorResponse "Session or answer not found"
// @Router /sessions/{id}/answers/{ref}/relationships [delete]
func (ctrl *Controller) RemoveRelationshipHandler(c *gin.Context) {
	var req dto.RelationshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.relationshipSvc.RemoveLink(c.Param("id"), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LoadGoalsHandler godoc
// @Summary Load the goals of a linked problem
// @Tags relationships
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Answer ref"
// @Param load body dto.LoadGoalsRequest true "Problem to expand"
// @Success 200 {object} dto.RelationshipResponse
// @Failure 404 {object} dto.ErrorResponse "Session or answer not found"
// @Router /sessions/{id}/answers/{ref}/relationships/goals [post]
func (ctrl *Controller) LoadGoalsHandler(c *gin.Context) {
	var req dto.LoadGoalsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.relationshipSvc.LoadGoals(c.Param("id"), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LoadInterventionsHandler godoc
// @Summary Load the interventions of a goal
// @Tags relationships
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Answer ref"
// @Param load body dto.LoadInterventionsRequest true "Goal to expand"
// @Success 200 {object} dto.RelationshipResponse
// @Failure 404 {object} dto.ErrorResponse "Session or answer not found"
// @Router /sessions/{id}/answers/{ref}/relationships/interventions [post]
func (ctrl *Controller) LoadInterventionsHandler(c *gin.Context) {
	var req dto.LoadInterventionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.relationshipSvc.LoadInterventions(c.Param("id"), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ToggleHandler godoc
// @Summary Toggle expansion of a problem or goal
// @Description Collapsing keeps fetched data; re-expanding shows it without a refetch
// @Tags relationships
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Answer ref"
// @Param toggle body dto.ToggleRequest true "Node to toggle"
// @Success 200 {object} dto.RelationshipResponse
// @Failure 404 {object} dto.ErrorResponse "Session or answer not found"
// @Router /sessions/{id}/answers/{ref}/relationships/toggle [post]
func (ctrl *Controller) ToggleHandler(c *gin.Context) {
	var req dto.ToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.relationshipSvc.Toggle(c.Param("id"), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Search ---

// SessionSearchHandler godoc
// @Summary Update a search slot's query
// @Description The lookup is debounced; poll the slot for results
// @Tags search
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param search body dto.SearchRequest true "Slot and query"
// @Success 200 {object} dto.SearchResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/search [post]
func (ctrl *Controller) SessionSearchHandler(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.librarySvc.SessionSearch(c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SessionResultsHandler godoc
// @Summary Read a search slot's current results
// @Tags search
// @Produce json
// @Param id path string true "Session ID"
// @Param slot path string true "Search slot"
// @Success 200 {object} dto.SearchResponse
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/search/{slot} [get]
func (ctrl *Controller) SessionResultsHandler(c *gin.Context) {
	resp, err := ctrl.librarySvc.SessionResults(c.Param("id"), c.Param("slot"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// LibrarySearchHandler godoc
// @Summary Search the content library directly
// @Tags library
// @Produce json
// @Param contentType query string true "Content type"
// @Param searchText query string true "Search text"
// @Param scopeId query int false "Scope to search within"
// @Success 200 {array} dto.CandidateView
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /library/search [get]
func (ctrl *Controller) LibrarySearchHandler(c *gin.Context) {
	var scopeID uint
	if raw := c.Query("scopeId"); raw != "" {
		val, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid scopeId format"})
			return
		}
		scopeID = uint(val)
	}
	views, err := ctrl.librarySvc.Search(c.Request.Context(), c.Query("contentType"), scopeID, c.Query("searchText"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// --- Scoring ---

// ActivateModelHandler godoc
// @Summary Activate one scoring model for editing
// @Description Score entry is exclusive to the active model
// @Tags scoring
// @Accept json
// @Param id path string true "Session ID"
// @Param model body dto.ActivateModelRequest true "Model to activate"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /sessions/{id}/scoring/activate [post]
func (ctrl *Controller) ActivateModelHandler(c *gin.Context) {
	var req dto.ActivateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if err := ctrl.scoringSvc.Activate(c.Param("id"), req); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SetScoreHandler godoc
// @Summary Set an answer's score in the active model
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param ref path string true "Answer ref"
// @Param score body dto.SetScoreRequest true "Score value"
// @Success 200 {array} dto.ScoreView
// @Failure 404 {object} dto.ErrorResponse "Session or answer not found"
// @Router /sessions/{id}/answers/{ref}/score [post]
func (ctrl *Controller) SetScoreHandler(c *gin.Context) {
	var req dto.SetScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	views, err := ctrl.scoringSvc.SetScore(c.Param("id"), c.Param("ref"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// CreateScoringModelHandler godoc
// @Summary Create a scoring model
// @Tags scoring
// @Accept json
// @Produce json
// @Param model body dto.ScoringModelRequest true "Model data"
// @Success 201 {object} dto.ScoringModelResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scoring-models [post]
func (ctrl *Controller) CreateScoringModelHandler(c *gin.Context) {
	var req dto.ScoringModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.scoringSvc.CreateModel(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateScoringModelHandler godoc
// @Summary Update a scoring model
// @Tags scoring
// @Accept json
// @Produce json
// @Param id path int true "Model ID"
// @Param model body dto.ScoringModelRequest true "Model data"
// @Success 200 {object} dto.ScoringModelResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid model ID"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scoring-models/{id} [put]
func (ctrl *Controller) UpdateScoringModelHandler(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid model ID format"})
		return
	}
	var req dto.ScoringModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.scoringSvc.UpdateModel(c.Request.Context(), uint(id), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
