package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
)

// SchemaHandler serves the OpenAPI document of this API.
func SchemaHandler(document []byte) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", document)
	}
}

const docsPage = `<!DOCTYPE html>
<html>
  <head>
    <title>cookbookd API</title>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css"/>
  </head>
  <body>
    <div id="swagger-ui"></div>
    <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
    <script>
      SwaggerUIBundle({
        url: %q,
        dom_id: "#swagger-ui",
        deepLinking: true
      });
    </script>
  </body>
</html>
`

// DocsHandler serves a Swagger UI page reading the document at schemaURL.
func DocsHandler(schemaURL string) echo.HandlerFunc {
	page := []byte(fmt.Sprintf(docsPage, schemaURL))
	return func(c echo.Context) error {
		return c.HTMLBlob(http.StatusOK, page)
	}
}
