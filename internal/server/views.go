package server

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
)

//go:embed views
var viewsFS embed.FS

const mainLayout = "layouts/main"

func newViewEngine() *html.Engine {
	sub, err := fs.Sub(viewsFS, "views")
	if err != nil {
		panic(err)
	}
	return html.NewFileSystem(http.FS(sub), ".html")
}

// render draws a page inside the main layout. The layout keys are always
// present so templates never see a missing value.
func (s *Server) render(c *fiber.Ctx, name string, data fiber.Map) error {
	if data == nil {
		data = fiber.Map{}
	}
	if _, ok := data["Title"]; !ok {
		data["Title"] = name
	}
	if _, ok := data["Form"]; !ok {
		data["Form"] = map[string]string{}
	}
	data["Username"] = ""
	if user := currentUser(c); user != nil {
		data["Username"] = user.Username
	}
	if _, ok := data["Flash"]; !ok {
		data["Flash"] = s.popFlash(c)
	}
	return c.Render(name, data, mainLayout)
}

func (s *Server) renderNotFound(c *fiber.Ctx, message string) error {
	c.Status(fiber.StatusNotFound)
	return s.render(c, "404", fiber.Map{
		"Title":   "404",
		"Message": message,
	})
}
