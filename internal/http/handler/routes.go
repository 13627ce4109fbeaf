package handler

import (
	"github.com/gofiber/fiber/v2"

	"blogpessoal/internal/service"
)

// Services bundles the use cases the HTTP layer exposes.
type Services struct {
	Posts  service.PostService
	Topics service.TopicService
	Users  service.UserService
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Search routes are registered before /:id so the literal segment wins.
func RegisterRoutes(app *fiber.App, db Pinger, svc Services) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	posts := app.Group("/postagens")
	posts.Get("/", ListPosts(svc.Posts))
	posts.Get("/titulo/:titulo", SearchPostsByTitle(svc.Posts))
	posts.Get("/:id", GetPost(svc.Posts))
	posts.Post("/", CreatePost(svc.Posts))
	posts.Put("/", UpdatePost(svc.Posts))
	posts.Delete("/:id", DeletePost(svc.Posts))

	topics := app.Group("/temas")
	topics.Get("/", ListTopics(svc.Topics))
	topics.Get("/descricao/:descricao", SearchTopicsByDescription(svc.Topics))
	topics.Get("/:id", GetTopic(svc.Topics))
	topics.Post("/", CreateTopic(svc.Topics))
	topics.Put("/", UpdateTopic(svc.Topics))
	topics.Delete("/:id", DeleteTopic(svc.Topics))

	users := app.Group("/usuarios")
	users.Get("/", ListUsers(svc.Users))
	users.Get("/:id", GetUser(svc.Users))
	users.Post("/", CreateUser(svc.Users))
	users.Put("/:id/foto", UploadUserPhoto(svc.Users))
	users.Get("/:id/foto", GetUserPhoto(svc.Users))
}
