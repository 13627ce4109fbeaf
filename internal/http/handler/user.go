package handler

import (
	"io"
	"mime/multipart"
	"strconv"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"

	"blogpessoal/internal/model"
	"blogpessoal/internal/service"
)

// @Summary      List users
// @Tags         usuarios
// @Produce      json
// @Success      200  {array}  model.User
// @Router       /usuarios [get]
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(users)
	}
}

// @Summary      Get a user
// @Tags         usuarios
// @Produce      json
// @Param        id   path      int  true  "User ID"
// @Success      200  {object}  model.User
// @Failure      404
// @Router       /usuarios/{id} [get]
func GetUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return invalidID(c)
		}
		u, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// @Summary      Register a user
// @Tags         usuarios
// @Accept       json
// @Produce      json
// @Param        usuario  body      model.User  true  "User"
// @Success      201      {object}  model.User
// @Failure      400      {object}  errorPayload
// @Failure      409      {object}  errorPayload
// @Router       /usuarios [post]
func CreateUser(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.User
		if err := decodeBody(c, &in); err != nil {
			return invalidBody(c)
		}
		u, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(u)
	}
}

// UploadUserPhoto replaces the user's photo (multipart/form-data, field name: file).
// The content type is sniffed from the file itself; the client's header is ignored.
//
// @Summary      Upload a user photo
// @Tags         usuarios
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      int   true  "User ID"
// @Param        file  formData  file  true  "Image"
// @Success      200   {object}  model.User
// @Failure      400   {object}  errorPayload
// @Failure      415   {object}  errorPayload
// @Failure      503   {object}  errorPayload
// @Router       /usuarios/{id}/foto [put]
func UploadUserPhoto(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return invalidID(c)
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct, err := sniffContentType(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot read uploaded file")
		}

		u, err := svc.UploadPhoto(c.UserContext(), id, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(u)
	}
}

// GetUserPhoto streams the stored photo.
//
// @Summary      Download a user photo
// @Tags         usuarios
// @Produce      image/png,image/jpeg,image/gif,image/webp
// @Param        id   path  int  true  "User ID"
// @Success      200  {file}  binary
// @Failure      404
// @Failure      503  {object}  errorPayload
// @Router       /usuarios/{id}/foto [get]
func GetUserPhoto(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return invalidID(c)
		}
		rc, info, err := svc.Photo(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		if info.ContentType != "" {
			c.Set(fiber.HeaderContentType, info.ContentType)
		}
		if info.ETag != "" {
			c.Set(fiber.HeaderETag, strconv.Quote(info.ETag))
		}
		size := int(info.Size)
		if size <= 0 {
			size = -1
		}
		// The stream is closed once the response has been written.
		return c.SendStream(rc, size)
	}
}

// sniffContentType detects the MIME type from the file header and rewinds f.
func sniffContentType(f multipart.File) (string, error) {
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return mt.String(), nil
}
