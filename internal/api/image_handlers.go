package api

import (
	"errors"
	"io"
	"mime"
	"path/filepath"

	"github.com/agrisetu/farmlink-backend/internal/api/middleware"
	"github.com/agrisetu/farmlink-backend/internal/apierr"
	"github.com/agrisetu/farmlink-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

func (s *APIServer) handleUploadImages(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	contractID := c.Params("contract_id")

	form, err := c.MultipartForm()
	if err != nil {
		return s.respondError(c, apierr.Validation(errors.New("expected multipart form data")))
	}

	headers := form.File["images"]
	if len(headers) == 0 {
		headers = form.File["files"]
	}
	if len(headers) == 0 {
		return s.respondError(c, apierr.Validation(errors.New("no files in upload")))
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, header := range headers {
		f, err := header.Open()
		if err != nil {
			return s.respondError(c, apierr.Internal(err))
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return s.respondError(c, apierr.Internal(err))
		}
		files = append(files, services.UploadFile{Name: header.Filename, Data: data})
	}

	result, err := s.images.UploadImages(user, contractID, files)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":  "Images uploaded",
		"uploaded": result.Uploaded,
		"skipped":  result.Skipped,
	})
}

func (s *APIServer) handleListImages(c *fiber.Ctx) error {
	contractID := c.Params("contract_id")

	images, err := s.images.ListImages(contractID)
	if err != nil {
		return s.respondError(c, err)
	}

	views := make([]fiber.Map, 0, len(images))
	for _, img := range images {
		views = append(views, fiber.Map{
			"file_name":     img.FileName,
			"original_name": img.OriginalName,
			"checksum":      img.Checksum,
			"width":         img.Width,
			"height":        img.Height,
			"size_bytes":    img.SizeBytes,
			"uploader_id":   img.UploaderID,
			"uploader_role": img.UploaderRole,
			"created_at":    isoTime(img.CreatedAt),
		})
	}
	return c.JSON(fiber.Map{"images": views})
}

func (s *APIServer) handleServeImage(c *fiber.Ctx) error {
	filename := c.Params("filename")

	file, err := s.store.Open(filename)
	if err != nil {
		return s.respondError(c, apierr.NotFound(errors.New("image not found")))
	}

	if contentType := mime.TypeByExtension(filepath.Ext(filename)); contentType != "" {
		c.Set(fiber.HeaderContentType, contentType)
	}
	return c.SendStream(file)
}

func (s *APIServer) handleCreateImageRequest(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	contractID := c.Params("contract_id")

	request, err := s.images.CreateRequest(user, contractID)
	if err != nil {
		return s.respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Image request created",
		"request": request,
	})
}

func (s *APIServer) handleGetImageRequest(c *fiber.Ctx) error {
	contractID := c.Params("contract_id")

	request, err := s.images.GetRequest(contractID)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"request": request})
}

func (s *APIServer) handleFulfillImageRequest(c *fiber.Ctx) error {
	user := middleware.GetAuthenticatedUser(c)
	contractID := c.Params("contract_id")

	if err := s.images.FulfillRequest(user, contractID); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Image request fulfilled"})
}
