package handler

import (
	"github.com/gofiber/fiber/v2"

	"blogpessoal/internal/model"
	"blogpessoal/internal/service"
)

// @Summary      List topics
// @Tags         temas
// @Produce      json
// @Success      200  {array}  model.Topic
// @Router       /temas [get]
func ListTopics(svc service.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		topics, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(topics)
	}
}

// @Summary      Get a topic
// @Tags         temas
// @Produce      json
// @Param        id   path      int  true  "Topic ID"
// @Success      200  {object}  model.Topic
// @Failure      404
// @Router       /temas/{id} [get]
func GetTopic(svc service.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return invalidID(c)
		}
		t, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(t)
	}
}

// @Summary      Search topics by description
// @Tags         temas
// @Produce      json
// @Param        descricao  path     string  true  "Description fragment"
// @Success      200        {array}  model.Topic
// @Router       /temas/descricao/{descricao} [get]
func SearchTopicsByDescription(svc service.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		topics, err := svc.SearchByDescription(c.UserContext(), paramText(c, "descricao"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(topics)
	}
}

// @Summary      Create a topic
// @Tags         temas
// @Accept       json
// @Produce      json
// @Param        tema  body      model.Topic  true  "Topic"
// @Success      201   {object}  model.Topic
// @Failure      400   {object}  errorPayload
// @Router       /temas [post]
func CreateTopic(svc service.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Topic
		if err := decodeBody(c, &in); err != nil {
			return invalidBody(c)
		}
		t, err := svc.Create(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(t)
	}
}

// @Summary      Update a topic
// @Tags         temas
// @Accept       json
// @Produce      json
// @Param        tema  body      model.Topic  true  "Topic"
// @Success      200   {object}  model.Topic
// @Failure      400   {object}  errorPayload
// @Router       /temas [put]
func UpdateTopic(svc service.TopicService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.Topic
		if err := decodeBody(c, &in); err != nil {
			return invalidBody(c)
		}
		t, err := svc.Update(c.UserContext(), &in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(t)
	}
}

// @Summary      Delete a topic
// @Tags         temas
// @Param        id  path  int  true  "Topic ID"
// @Success      200
// @Router       /temas/{id} [delete]
func DeleteTopic(svc service.TopicService) fiber.Handler {
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
