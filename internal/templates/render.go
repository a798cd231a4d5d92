// Package templates renders the viewer page and the HTML fragments the
// Datastar SSE handlers patch into it. Sources are embedded; the server
// carries no template files on disk.
package templates

import (
	"bytes"
	"html/template"
)

// Renderer manages the embedded HTML templates.
type Renderer struct {
	templates *template.Template
}

// funcMap provides common template functions.
var funcMap = template.FuncMap{
	// addOne turns 0-based band positions into the 1-based indices
	// the map endpoint takes.
	"addOne": func(i int) int { return i + 1 },
}

// New creates a new template renderer.
func New() (*Renderer, error) {
	root := template.New("").Funcs(funcMap)
	for name, src := range sources {
		if _, err := root.New(name).Parse(src); err != nil {
			return nil, err
		}
	}
	return &Renderer{templates: root}, nil
}

// Render renders a named template to a string.
func (r *Renderer) Render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderToBuffer renders a named template to a buffer.
func (r *Renderer) RenderToBuffer(buf *bytes.Buffer, name string, data any) error {
	return r.templates.ExecuteTemplate(buf, name, data)
}

var sources = map[string]string{
	// map-frame embeds one rendered map document. The SSE band
	// switcher patches this fragment when the band signal changes.
	"map-frame": `<iframe id="map-frame" src="/map?band={{.Band}}" style="width:100%;height:100%;border:0"></iframe>`,

	"viewer": `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"></script>
<style>
  html, body { height: 100%; margin: 0; font-family: sans-serif; }
  header { padding: 8px 12px; border-bottom: 1px solid #ddd; }
  main { height: calc(100% - 48px); }
</style>
</head>
<body data-signals="{band: {{.Band}}}">
<header>
  <strong>{{.Title}}</strong>
  <label>
    Band
    <select data-bind-band data-on-change="@get('/api/v1/viewer/map')">
      {{range $i, $name := .Bands}}
      <option value="{{addOne $i}}">{{$name}}</option>
      {{end}}
    </select>
  </label>
  <span data-text="$error" style="color:#c00"></span>
</header>
<main>
  <iframe id="map-frame" src="/map?band={{.Band}}" style="width:100%;height:100%;border:0"></iframe>
</main>
</body>
</html>`,
}
