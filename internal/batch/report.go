package batch

import (
	"html/template"
	"os"
	"path/filepath"
)

// The report mirrors what the batch produced: one card per image with its
// side-by-side thumbnail and status, for a quick visual pass over crop and
// rotation quality.
var reportTmpl = template.Must(template.New("report").Parse(`<html>
<head>
<title>Processed pages</title>
<style>
  body { font-family: Arial, sans-serif; }
  .thumbnail { margin: 10px; display: inline-block; vertical-align: top; }
  .thumbnail img { width: 400px; height: auto; }
  .thumbnail p { text-align: center; margin: 4px 0; }
  .failed { color: #b00020; }
  .kept { color: #8a6d00; }
</style>
</head>
<body>
<h1>Processed pages</h1>
<p>Side-by-side thumbnails of every processed image for a quick check of
the applied cropping and rotation.</p>
<div>
{{range .}}
  <div class="thumbnail">
  {{if .ThumbPath}}<img src="{{.ThumbPath}}" alt="{{.Path}}">{{end}}
  <p>{{.Path}}</p>
  {{if .Err}}<p class="failed">failed: {{.Err}}</p>
  {{else if .KeptOriginal}}<p class="kept">kept original (over-cropped)</p>
  {{end}}
  </div>
{{end}}
</div>
</body>
</html>
`))

// WriteReport renders the HTML batch report to path. Thumbnail links are
// rewritten relative to the report's directory, since the browser resolves
// them against the report file rather than the working directory.
func WriteReport(path string, results []Result) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	view := make([]Result, len(results))
	copy(view, results)
	for i := range view {
		view[i].ThumbPath = relativeTo(dir, view[i].ThumbPath)
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return reportTmpl.Execute(f, view)
}

// relativeTo rewrites p relative to dir where possible, in URL form. Paths
// that cannot be related (a different volume, say) pass through unchanged.
func relativeTo(dir, p string) string {
	if p == "" {
		return ""
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return p
	}
	absP, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(absDir, absP)
	if err != nil {
		return p
	}
	return filepath.ToSlash(rel)
}
