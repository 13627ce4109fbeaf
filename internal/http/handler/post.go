package handler

import (
	"github.com/gofiber/fiber/v2"

	"blogpessoal/internal/model"
	"blogpessoal/internal/service"
)

// ListPosts returns every post.
//
// @Summary      List posts
// @Tags         postagens
// @Produce      json
// @Success      200  {array}   model.Post
// @Failure      500  {object}  errorPayload
// @Router       /postagens [get]
func ListPosts(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		posts, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(posts)
	}
}

// GetPost returns one post; a miss is a 404 with no body.
//
// @Summary      Get a post
// @Tags         postagens
// @Produce      json
// @Param        id   path      int  true  "Post ID"
// @Success      200  {object}  model.Post
// @Failure      400  {object}  errorPayload
// @Failure      404
// @Router       /postagens/{id} [get]
func GetPost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return invalidID(c)
		}
		p, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// SearchPostsByTitle matches titles containing the fragment, ignoring case.
//
// @Summary      Search posts by title
// @Tags         postagens
// @Produce      json
// @Param        titulo  path      string  true  "Title fragment"
// @Success      200     {array}   model.Post
// @Router       /postagens/titulo/{titulo} [get]
func SearchPostsByTitle(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		posts, err := svc.SearchByTitle(c.UserContext(), paramText(c, "titulo"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(posts)
	}
}

// CreatePost stores a new post.
//
// @Summary      Create a post
// @Tags         postagens
// @Accept       json
// @Produce      json
// @Param        post  body      model.Post  true  "Post"
// @Success      201   {object}  model.Post
// @Failure      400   {object}  errorPayload
// @Router       /postagens [post]
func CreatePost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Post
		if err := decodeBody(c, &in); err != nil {
			return invalidBody(c)
		}
		p, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

// UpdatePost overwrites the post named by the body's id, inserting it when
// the id is unknown.
//
// @Summary      Update a post
// @Tags         postagens
// @Accept       json
// @Produce      json
// @Param        post  body      model.Post  true  "Post"
// @Success      200   {object}  model.Post
// @Failure      400   {object}  errorPayload
// @Router       /postagens [put]
func UpdatePost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Post
		if err := decodeBody(c, &in); err != nil {
			return invalidBody(c)
		}
		p, err := svc.Update(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(p)
	}
}

// DeletePost removes a post. Missing ids succeed as well.
//
// @Summary      Delete a post
// @Tags         postagens
// @Param        id   path  int  true  "Post ID"
// @Success      200
// @Failure      400  {object}  errorPayload
// @Router       /postagens/{id} [delete]
func DeletePost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return invalidID(c)
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return emptyStatus(c, fiber.StatusOK)
	}
}
