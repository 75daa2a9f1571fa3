package palette

import (
	"html/template"
	"io"
)

// swatch is one cell of the visualization page.
type swatch struct {
	Index int
	Name  string
	Hex   string
	Label string // black or white, whichever reads against the swatch
}

type pageData struct {
	System   []swatch
	Cube     []swatch
	Gray     []swatch
	DupCount int
}

var pageTemplate = template.Must(template.New("palette").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Terminal Palette Reference</title>
<style>
body { font-family: sans-serif; background: #1e1e1e; color: #ddd; margin: 2em; }
h1, h2 { font-weight: normal; }
.grid { display: flex; flex-wrap: wrap; max-width: 62em; }
.swatch {
	width: 9.5em; height: 3.4em; margin: 2px; padding: 4px;
	font-size: 11px; border-radius: 3px; overflow: hidden;
}
.swatch .idx { opacity: 0.8; }
.swatch .hex { font-family: monospace; }
</style>
</head>
<body>
<h1>Terminal Palette Reference</h1>
<p>All 256 standard palette indices with their conventional names and hex
codes. Extended names are not unique: {{.DupCount}} names are shared by more
than one index.</p>
<h2>System colors (0&ndash;15)</h2>
<div class="grid">
{{range .System}}<div class="swatch" style="background:{{.Hex}};color:{{.Label}}"><span class="idx">{{.Index}}</span> {{.Name}}<br><span class="hex">{{.Hex}}</span></div>
{{end}}</div>
<h2>Color cube (16&ndash;231)</h2>
<div class="grid">
{{range .Cube}}<div class="swatch" style="background:{{.Hex}};color:{{.Label}}"><span class="idx">{{.Index}}</span> {{.Name}}<br><span class="hex">{{.Hex}}</span></div>
{{end}}</div>
<h2>Grayscale ramp (232&ndash;255)</h2>
<div class="grid">
{{range .Gray}}<div class="swatch" style="background:{{.Hex}};color:{{.Label}}"><span class="idx">{{.Index}}</span> {{.Name}}<br><span class="hex">{{.Hex}}</span></div>
{{end}}</div>
</body>
</html>
`))

func toSwatch(c Color) swatch {
	label := "#000"
	if Luminance(c.Index) < 0.5 {
		label = "#fff"
	}
	return swatch{Index: c.Index, Name: c.Name, Hex: c.Hex, Label: label}
}

// WritePage renders the HTML visualization of the full palette.
func WritePage(w io.Writer) error {
	data := pageData{DupCount: len(DuplicateNames)}
	for _, c := range All() {
		s := toSwatch(c)
		switch {
		case c.Index <= 15:
			data.System = append(data.System, s)
		case c.Index <= 231:
			data.Cube = append(data.Cube, s)
		default:
			data.Gray = append(data.Gray, s)
		}
	}
	return pageTemplate.Execute(w, data)
}
