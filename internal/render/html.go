package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/mmynk/ratecraft/internal/models"
)

const previewTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>{{.Title}} · {{.Subtitle}}</title>
  <style>
    :root { {{.Vars}} }
    * { box-sizing: border-box; }
    body { margin: 0; padding: 24px; background: #f5f5f5; font-family: var(--font); color: #171717; }
    .card { width: {{.Width}}px; margin: 0 auto; background: #fff; border: 1px solid #e5e5e5; border-radius: 24px; overflow: hidden; }
    .bar { height: 8px; background: linear-gradient(90deg, var(--accent), var(--accent-light)); }
    .header { display: flex; align-items: center; justify-content: space-between; gap: 16px; padding: 24px 32px; }
    .heading { flex: 1; text-align: var(--align); }
    .heading h1 { margin: 0; font-size: var(--title-size); color: var(--accent); }
    .heading p, .unit, .footer { font-size: 12px; color: #737373; margin: 4px 0 0; }
    .logo { max-height: 48px; max-width: 48px; }
    .placeholder { background: #fafafa; border: 1px solid #e5e5e5; border-radius: 12px; }
    .items { padding: 0 32px 32px; }
    .empty { border: 1px dashed #d4d4d4; border-radius: 16px; height: 80px; display: flex; align-items: center; justify-content: center; color: #737373; font-size: 14px; }
    .grid { display: grid; grid-template-columns: repeat(3, 1fr); gap: 16px; }
    .tile { border: 1px solid var(--accent-soft); border-top: 4px solid var(--accent); border-radius: 16px; padding: var(--pad); }
    .row { display: flex; align-items: center; gap: 12px; padding: var(--pad); }
    .rows { border: 1px solid #e5e5e5; border-radius: 16px; overflow: hidden; }
    .rows .head { display: flex; justify-content: space-between; background: #fafafa; padding: 12px 16px; font-size: 12px; color: #525252; }
    .rows .row + .row { border-top: 1px solid #fafafa; }
    .billboard { display: grid; grid-template-columns: 1.2fr 1fr; gap: 24px; }
    .hero { background: var(--accent-soft); border-radius: 24px; padding: 24px; }
    .hero h2 { margin: 8px 0 12px; font-size: var(--title-size); color: var(--accent); }
    .list .row { border: 1px solid #e5e5e5; border-radius: 16px; margin-bottom: 16px; }
    .thumb { width: var(--thumb); height: var(--thumb); object-fit: cover; border-radius: 12px; flex: none; }
    .name { font-weight: 600; font-size: 14px; }
    .label { flex: 1; min-width: 0; }
    .price { font-weight: 700; font-size: var(--price-size); color: var(--accent); text-align: var(--align); }
    .row .price { width: 180px; }
    .footer { display: flex; justify-content: space-between; background: #fafafa; padding: 16px 32px; margin: 0; }
  </style>
</head>
<body>
  <div class="card" data-template="{{.Template}}" data-density="{{.Density}}">
    <div class="bar"></div>
    <div class="header">
      <div class="heading">
        <h1>{{.Title}}</h1>
        <p>{{.Subtitle}}</p>
      </div>
      {{with image .Logo}}<img class="logo" src="{{.}}" alt="Logo" />{{else}}<div class="logo placeholder" style="width:48px;height:48px"></div>{{end}}
    </div>
    <div class="items">
    {{- if eq .Template "rows"}}
      <div class="rows">
        <div class="head"><span>Item</span><span>Price</span></div>
        {{- range .Items}}{{template "row" .}}{{end}}
        {{- if not .Items}}<div class="empty">{{$.Empty}}</div>{{end}}
      </div>
    {{- else if eq .Template "billboard"}}
      <div class="billboard">
        <div class="hero">
          <div class="unit">{{.Kicker}}</div>
          <h2>{{.Title}}</h2>
          <p>{{.Blurb}}</p>
        </div>
        <div class="list">
          {{- range .Items}}{{template "row" .}}{{end}}
          {{- if not .Items}}<div class="empty">{{$.Empty}}</div>{{end}}
        </div>
      </div>
    {{- else}}
      {{- if .Items}}
      <div class="grid">
        {{- range .Items}}
        <div class="tile" data-id="{{.ID}}">
          <div class="row" style="padding:0">{{template "thumb" .}}{{template "label" .}}</div>
          <div class="price" style="margin-top:12px">{{.Price}}</div>
        </div>
        {{- end}}
      </div>
      {{- else}}
      <div class="empty">{{.Empty}}</div>
      {{- end}}
    {{- end}}
    </div>
    <div class="footer"><span>{{.Note}}</span><span>{{.Date}}</span></div>
  </div>
</body>
</html>
{{define "thumb"}}{{with image .Image}}<img class="thumb" src="{{.}}" alt="" />{{else}}<div class="thumb placeholder"></div>{{end}}{{end}}
{{define "label"}}<div class="label"><div class="name">{{.Name}}</div><div class="unit">{{.Unit}}</div></div>{{end}}
{{define "row"}}<div class="row" data-id="{{.ID}}">{{template "thumb" .}}{{template "label" .}}<div class="price">{{.Price}}</div></div>{{end}}
`

var fontStacks = map[models.Font]string{
	models.FontSans:  `ui-sans-serif, system-ui, -apple-system, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif`,
	models.FontSerif: `ui-serif, Georgia, Cambria, "Times New Roman", Times, serif`,
	models.FontMono:  `ui-monospace, SFMono-Regular, Menlo, Monaco, Consolas, "Liberation Mono", monospace`,
}

// HTMLRenderer projects a surface to a standalone HTML page.
type HTMLRenderer struct {
	tpl *template.Template
}

func NewHTMLRenderer() *HTMLRenderer {
	funcs := template.FuncMap{"image": imageURL}
	return &HTMLRenderer{
		tpl: template.Must(template.New("preview").Funcs(funcs).Parse(previewTemplate)),
	}
}

type htmlView struct {
	*Surface
	Subtitle string
	Empty    string
	Kicker   string
	Blurb    string
	Vars     template.CSS
}

// Render writes the preview page for s to w.
func (r *HTMLRenderer) Render(w io.Writer, s *Surface) error {
	view := htmlView{
		Surface:  s,
		Subtitle: Subtitle,
		Empty:    EmptyMessage,
		Kicker:   HeroKicker,
		Blurb:    HeroBlurb,
		Vars:     cssVars(s),
	}
	if err := r.tpl.Execute(w, view); err != nil {
		return fmt.Errorf("failed to render preview: %w", err)
	}
	return nil
}

// RenderString is Render into a string.
func (r *HTMLRenderer) RenderString(s *Surface) (string, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, s); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// cssVars only interpolates values that Build has already validated.
func cssVars(s *Surface) template.CSS {
	vars := []string{
		"--accent: " + s.AccentHex,
		"--accent-soft: " + s.AccentSoft,
		"--accent-light: " + s.AccentLight,
		"--font: " + fontStacks[s.Font],
		"--align: " + string(s.Align),
		fmt.Sprintf("--title-size: %gpx", s.TitleSize),
		fmt.Sprintf("--price-size: %gpx", s.PriceSize),
		fmt.Sprintf("--pad: %gpx", s.Padding),
		fmt.Sprintf("--thumb: %gpx", s.Thumb),
	}
	return template.CSS(strings.Join(vars, "; ") + ";")
}

// imageURL passes embedded images through the URL sanitizer. Anything that
// is not a data:image URL renders as a placeholder.
func imageURL(src string) template.URL {
	if strings.HasPrefix(src, "data:image/") {
		return template.URL(src)
	}
	return ""
}
