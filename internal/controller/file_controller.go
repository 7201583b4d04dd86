package controller

import (
	"doc-chat-be/internal/dto"
	"doc-chat-be/internal/pkg/apperror"
	"doc-chat-be/internal/pkg/serverutils"
	"doc-chat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IFileController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
}

type fileController struct {
	fileService service.IFileService
}

func NewFileController(fileService service.IFileService) IFileController {
	return &fileController{
		fileService: fileService,
	}
}

func (c *fileController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/file/v1")
	h.Get("", c.GetAll)
}

func (c *fileController) GetAll(ctx *fiber.Ctx) error {
	var query dto.ListFilesQuery
	if err := ctx.QueryParser(&query); err != nil {
		return apperror.InvalidInput("Invalid query parameters")
	}

	res, err := c.fileService.GetAllFiles(ctx.Context(), &query)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list files", res))
}
