package server

import (
	"html/template"
	"net/http"

	"github.com/elpatron68/tasklist-web/internal/controller"
	applog "github.com/elpatron68/tasklist-web/internal/log"
)

// Element ids the page keeps stable: taskList, taskForm, taskName.
const layoutHTML = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1" />
    <title>{{.Title}}</title>
    <link rel="icon" href="/favicon.svg" type="image/svg+xml" />
    <link rel="stylesheet" href="/static/app.css" />
  </head>
  <body>
    <main class="container">
      <h1>{{.Title}}</h1>
      <form id="taskForm" class="task-form" method="post" action="/tasks">
        <input id="taskName" name="name" type="text" placeholder="New task" autocomplete="off" autofocus />
        <button type="submit" class="btn btn-primary">Add Task</button>
      </form>
      <ul id="taskList" class="list-group">
{{- range .Items}}
        <li class="list-group-item d-flex justify-content-between align-items-center" data-task-id="{{.ID}}">
          <span class="task-name">{{taskName .Name}}</span>
          <form method="post" action="{{.DeleteAction}}" class="inline">
            <button type="submit" class="btn btn-danger btn-sm">Delete</button>
          </form>
        </li>
{{- end}}
      </ul>
      {{if not .Items}}<p class="empty">No tasks.</p>{{end}}
    </main>
  </body>
</html>
`

const appCSS = `body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,Helvetica,Arial,sans-serif;margin:0;background:#f8f9fa;color:#212529}
.container{max-width:640px;margin:32px auto;padding:0 16px}
h1{font-size:1.75rem;margin-bottom:16px}
.task-form{display:flex;gap:8px;margin-bottom:16px}
.task-form input{flex:1;padding:6px 10px;border:1px solid #ced4da;border-radius:4px}
.list-group{list-style:none;margin:0;padding:0;border:1px solid #dee2e6;border-radius:6px;background:#fff}
.list-group:empty{display:none}
.list-group-item{padding:10px 14px;border-bottom:1px solid #dee2e6}
.list-group-item:last-child{border-bottom:none}
.d-flex{display:flex}
.justify-content-between{justify-content:space-between}
.align-items-center{align-items:center}
.task-name p{margin:0}
form.inline{display:inline;margin:0}
.btn{border:none;border-radius:4px;padding:6px 12px;cursor:pointer;color:#fff}
.btn-primary{background:#0d6efd}
.btn-danger{background:#dc3545}
.btn-sm{padding:3px 8px;font-size:0.875rem}
.empty{color:#6c757d}
`

type pageData struct {
	Title string
	Items []controller.Item
}

// renderPage schreibt die Seite aus dem aktuellen View des Controllers.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request) {
	v := s.ctrl.View()
	title := s.uiCfg.Title
	if title == "" {
		title = "Task List"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := s.layoutTpl.Execute(w, pageData{Title: title, Items: v.Items}); err != nil {
		applog.Warnf("render %s: %v", r.URL.Path, err)
	}
}

// taskNameHTML gibt den Namen escaped zurück, oder als Inline-Markdown wenn aktiviert.
func (s *Server) taskNameHTML(name string) template.HTML {
	if s.uiCfg.MarkdownNames {
		return renderInlineMarkdown(name)
	}
	return template.HTML(template.HTMLEscapeString(name))
}
