package handler

import (
	"net/url"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// paramID parses the :id path parameter.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// paramText returns a path parameter with percent-escapes decoded, so
// /postagens/titulo/hello%20world searches for "hello world".
func paramText(c *fiber.Ctx, key string) string {
	raw := c.Params(key)
	if s, err := url.PathUnescape(raw); err == nil {
		return s
	}
	return raw
}

// decodeBody unmarshals the request body with the app's JSON decoder. The
// Content-Type header is not required.
func decodeBody(c *fiber.Ctx, v any) error {
	return c.App().Config().JSONDecoder(c.Body(), v)
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

func invalidBody(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "malformed JSON body")
}
