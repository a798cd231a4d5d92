package mapdoc

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
)

// Renderer emits a composed document. It is the only side-effecting
// stage of the pipeline; everything upstream is pure assembly.
type Renderer interface {
	Render(w io.Writer, doc *Document) error
}

// HTMLRenderer writes a self-contained Leaflet page.
type HTMLRenderer struct {
	tmpl *template.Template
}

// NewHTMLRenderer creates the default renderer.
func NewHTMLRenderer() *HTMLRenderer {
	return &HTMLRenderer{tmpl: pageTmpl}
}

var funcMap = template.FuncMap{
	// js marshals a value for embedding in the page script.
	"js": func(v any) (template.JS, error) {
		b, err := json.Marshal(v)
		if err != nil {
			return "", err
		}
		return template.JS(b), nil
	},
}

var pageTmpl = template.Must(template.New("map").Funcs(funcMap).Parse(leafletPage))

type markerGroupView struct {
	Name      string       `json:"name"`
	FillColor string       `json:"fillColor"`
	Points    [][2]float64 `json:"points"` // [lat, lon]
}

type legendEntryView struct {
	Label string
	Color string
}

type pageView struct {
	Title    string
	Bases    []TileLayer
	ImageURI template.URL
	// Corner order follows the tile client convention [[south, west], [north, east]].
	Bounds  [2][2]float64
	Groups  []markerGroupView
	Legend  []legendEntryView
	Radius  int
	Border  string
	Weight  int
	Opacity float64
}

// Render writes doc as an interactive HTML map.
func (r *HTMLRenderer) Render(w io.Writer, doc *Document) error {
	view := pageView{
		Title:    doc.Legend.Title,
		Bases:    doc.BaseLayers,
		ImageURI: template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(doc.Overlay.PNG)),
		Bounds: [2][2]float64{
			{doc.Overlay.Bounds.Min[1], doc.Overlay.Bounds.Min[0]},
			{doc.Overlay.Bounds.Max[1], doc.Overlay.Bounds.Max[0]},
		},
		Radius:  MarkerRadius,
		Border:  MarkerBorderColor,
		Weight:  MarkerBorderWeight,
		Opacity: MarkerFillOpacity,
	}
	for _, g := range doc.Markers {
		gv := markerGroupView{Name: g.Name, FillColor: g.FillColor}
		for _, p := range g.Points {
			gv.Points = append(gv.Points, [2]float64{p.Lat, p.Lon})
		}
		view.Groups = append(view.Groups, gv)
	}
	for _, e := range doc.Legend.Entries {
		view.Legend = append(view.Legend, legendEntryView{
			Label: fmt.Sprintf("%.3f", e.Value),
			Color: fmt.Sprintf("#%02x%02x%02x", e.Color.R, e.Color.G, e.Color.B),
		})
	}

	if err := r.tmpl.Execute(w, view); err != nil {
		return fmt.Errorf("rendering map document: %w", err)
	}
	return nil
}

const leafletPage = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<link rel="stylesheet" href="https://unpkg.com/leaflet@1.9.4/dist/leaflet.css">
<script src="https://unpkg.com/leaflet@1.9.4/dist/leaflet.js"></script>
<style>
  html, body, #map { height: 100%; margin: 0; }
  .legend { background: white; padding: 6px 10px; line-height: 18px; border-radius: 4px; }
  .legend i { width: 14px; height: 14px; float: left; margin-right: 6px; }
</style>
</head>
<body>
<div id="map"></div>
<script>
var map = L.map('map');
var bases = {};
{{range $i, $b := .Bases}}
bases[{{$b.Name}}] = L.tileLayer({{$b.URLTemplate}}, {attribution: {{$b.Attribution}}});
{{end}}
bases[{{(index .Bases 0).Name}}].addTo(map);

var bounds = {{js .Bounds}};
var overlays = {};
var image = L.imageOverlay('{{.ImageURI}}', bounds, {opacity: 0.8});
image.addTo(map);
overlays[{{.Title}}] = image;
map.fitBounds(bounds);

var groups = {{js .Groups}};
groups.forEach(function (g) {
  var layer = L.layerGroup(g.points.map(function (p) {
    return L.circleMarker(p, {
      radius: {{.Radius}},
      color: {{.Border}},
      weight: {{.Weight}},
      fillColor: g.fillColor,
      fillOpacity: {{.Opacity}}
    });
  }));
  layer.addTo(map);
  overlays[g.name] = layer;
});

L.control.layers(bases, overlays).addTo(map);

var legend = L.control({position: 'bottomright'});
legend.onAdd = function () {
  var div = L.DomUtil.create('div', 'legend');
  div.innerHTML += '<strong>{{.Title}}</strong><br>';
  {{range .Legend}}
  div.innerHTML += '<i style="background:{{.Color}}"></i>{{.Label}}<br>';
  {{end}}
  return div;
};
legend.addTo(map);
</script>
</body>
</html>
`
