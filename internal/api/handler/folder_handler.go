package handler

import (
	"TaylorDAM/internal/api/dto"
	"TaylorDAM/internal/pkg/response"
	"TaylorDAM/internal/service"

	"github.com/gin-gonic/gin"
)

type FolderHandler struct {
	folderSvc service.FolderService
}

func NewFolderHandler(folderSvc service.FolderService) *FolderHandler {
	return &FolderHandler{folderSvc: folderSvc}
}

func (s *FolderHandler) GetFolders(c *gin.Context) {
	folders, err := s.folderSvc.GetFolders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, folders)
}

func (s *FolderHandler) GetFolder(c *gin.Context) {
	folder, err := s.folderSvc.GetFolder(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, folder)
}

func (s *FolderHandler) CreateFolder(c *gin.Context) {
	var createDTO dto.CreateFolderDTO
	if !bindJSON(c, &createDTO) {
		return
	}
	folder, err := s.folderSvc.CreateFolder(c.Request.Context(), actorFrom(c), &createDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, folder)
}

func (s *FolderHandler) UpdateFolder(c *gin.Context) {
	var updateDTO dto.UpdateFolderDTO
	if !bindJSON(c, &updateDTO) {
		return
	}
	folder, err := s.folderSvc.UpdateFolder(c.Request.Context(), c.Param("id"), &updateDTO)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, folder)
}

func (s *FolderHandler) DeleteFolder(c *gin.Context) {
	if err := s.folderSvc.DeleteFolder(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func (s *FolderHandler) ToggleStar(c *gin.Context) {
	folder, err := s.folderSvc.ToggleStar(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, folder)
}
