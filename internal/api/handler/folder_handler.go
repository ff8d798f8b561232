package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/selectshop/shop-api/internal/api/middleware"
	"github.com/selectshop/shop-api/internal/core/domain"
	"github.com/selectshop/shop-api/internal/core/ports"
)

type FolderHandler struct {
	folders ports.FolderRepository
}

func NewFolderHandler(folders ports.FolderRepository) *FolderHandler {
	return &FolderHandler{folders: folders}
}

type createFolderRequest struct {
	Name string `json:"name" validate:"required,min=1,max=50"`
}

// List returns the authenticated user's folders.
//
// @Summary      List folders
// @Tags         folder
// @Produce      json
// @Success      200  {array}   domain.Folder
// @Failure      403  {object}  map[string]string
// @Router       /api/user-folder [get]
func (h *FolderHandler) List(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	folders, err := h.folders.ListByOwner(c.Request().Context(), user.Username)
	if err != nil {
		return err
	}
	if folders == nil {
		folders = []domain.Folder{}
	}
	return c.JSON(http.StatusOK, folders)
}

// Create adds a folder for the authenticated user.
//
// @Summary      Create a folder
// @Tags         folder
// @Accept       json
// @Produce      json
// @Param        body  body      createFolderRequest  true  "Folder name"
// @Success      201   {object}  domain.Folder
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /api/folders [post]
func (h *FolderHandler) Create(c echo.Context) error {
	user := middleware.CurrentUser(c)
	if user == nil {
		return echo.NewHTTPError(http.StatusForbidden, "access denied")
	}

	var req createFolderRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	folder, err := h.folders.Create(c.Request().Context(), &domain.Folder{
		Name:      req.Name,
		Owner:     user.Username,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, folder)
}
