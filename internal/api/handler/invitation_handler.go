package handler

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/pkg/response"
	"TaylorDAM/internal/service"

	"github.com/gin-gonic/gin"
)

type InvitationHandler struct {
	invitationSvc service.InvitationService
}

func NewInvitationHandler(invitationSvc service.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitationSvc: invitationSvc}
}

func (s *InvitationHandler) CreateInvitation(c *gin.Context) {
	var invDTO dto.CreateInvitationDTO
	if !bindJSON(c, &invDTO) {
		return
	}
	result, err := s.invitationSvc.CreateInvitation(c.Request.Context(), actorFrom(c), &invDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

func (s *InvitationHandler) GetInvitations(c *gin.Context) {
	list, err := s.invitationSvc.GetActiveInvitations(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}

func (s *InvitationHandler) RevokeInvitation(c *gin.Context) {
	if err := s.invitationSvc.RevokeInvitation(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
