package handler

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/pkg/response"
	"TaylorDAM/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userSvc       service.UserService
	invitationSvc service.InvitationService
}

func NewUserHandler(userSvc service.UserService, invitationSvc service.InvitationService) *UserHandler {
	return &UserHandler{
		userSvc:       userSvc,
		invitationSvc: invitationSvc,
	}
}

func (s *UserHandler) Login(c *gin.Context) {
	var loginDTO dto.LoginDTO
	if !bindJSON(c, &loginDTO) {
		return
	}
	result, err := s.userSvc.Login(c.Request.Context(), &loginDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

func (s *UserHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := s.userSvc.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *UserHandler) Me(c *gin.Context) {
	user, err := s.userSvc.GetCurrentUser(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}

func (s *UserHandler) Register(c *gin.Context) {
	var registerDTO dto.RegisterDTO
	if !bindJSON(c, &registerDTO) {
		return
	}
	user, err := s.userSvc.Register(c.Request.Context(), &registerDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// PreviewInvitation 注册页展示邀请信息
func (s *UserHandler) PreviewInvitation(c *gin.Context) {
	preview, err := s.invitationSvc.PreviewInvitation(c.Request.Context(), c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, preview)
}

func (s *UserHandler) ChangePassword(c *gin.Context) {
	var pwdDTO dto.ChangePasswordDTO
	if !bindJSON(c, &pwdDTO) {
		return
	}
	if err := s.userSvc.ChangePassword(c.Request.Context(), c.GetString("user_id"), &pwdDTO); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
