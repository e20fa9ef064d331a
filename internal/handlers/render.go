package handlers

import (
	"fmt"
	"html"
	"html/template"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/ndisproject/hrm-backend/internal/hr"
)

func (d *Deps) loadTemplates(r *gin.Engine) {
	pattern := filepath.Join(d.Cfg.TemplatesDir, "*.html")
	tmpl, err := template.ParseGlob(pattern)
	if err != nil {
		log.WithError(err).Warnf("templates not loaded from %s, using inline fallback", d.Cfg.TemplatesDir)
		return
	}
	d.tmpl = tmpl
	r.SetHTMLTemplate(tmpl)
}

// renderHTML renders the named template, or a minimal inline page when the
// template set is missing so the request still succeeds.
func (d *Deps) renderHTML(c *gin.Context, status int, name, title string, data gin.H) {
	if d.tmpl != nil && d.tmpl.Lookup(name) != nil {
		c.HTML(status, name, data)
		return
	}
	body := "<!DOCTYPE html><html><head><title>" + html.EscapeString(title) + "</title></head><body>"
	body += "<h2>" + html.EscapeString(title) + "</h2>"
	if flash, ok := data["flash"].(string); ok && flash != "" {
		body += "<p><em>" + html.EscapeString(flash) + "</em></p>"
	}
	if errMsg, ok := data["error"].(string); ok && errMsg != "" {
		body += "<p><strong>" + html.EscapeString(errMsg) + "</strong></p>"
	}
	body += fmt.Sprintf("<!-- template %s missing -->", html.EscapeString(name))
	body += "</body></html>"
	c.Data(status, "text/html; charset=utf-8", []byte(body))
}

// abortError maps a service error to its HTTP status for JSON responses.
func abortError(c *gin.Context, err error) {
	status := hr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("request failed")
		c.JSON(status, gin.H{"detail": "internal error"})
		return
	}
	c.JSON(status, gin.H{"detail": err.Error()})
}
