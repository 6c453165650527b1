package flyer

import (
	"bytes"
	"fmt"
	"html/template"
)

// pageTemplate renders a Document as a single fixed A4 page. Long free-text
// values are clipped by the CSS rather than allowed to grow the frame, so
// the output stays print-stable for realistic field lengths.
const pageTemplate = `<!DOCTYPE html>
<html lang="{{.Language}}">
<head>
<meta charset="utf-8">
<title>{{.Header.Name}}</title>
<style>
  @page { size: A4; margin: 0; }
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: "Helvetica Neue", "Hiragino Sans", "Noto Sans CJK TC", sans-serif; color: #0f172a; }
  .page { width: 210mm; height: 297mm; padding: 10mm; overflow: hidden; display: flex; flex-direction: column; }
  .header { border-bottom: 4px solid #1e293b; padding-bottom: 12px; margin-bottom: 18px; display: flex; justify-content: space-between; align-items: flex-end; }
  .header h1 { font-size: 30px; font-weight: 800; letter-spacing: -0.5px; }
  .header .subtitle { font-size: 14px; color: #64748b; text-transform: uppercase; letter-spacing: 3px; margin-top: 4px; }
  .header .price { font-size: 26px; font-weight: 700; color: #dc2626; white-space: nowrap; }
  .columns { display: flex; gap: 18px; flex: 1; min-height: 0; }
  .visual { flex: 7; display: flex; flex-direction: column; gap: 12px; min-width: 0; }
  .photo { border: 1px solid #e2e8f0; border-radius: 6px; background: #f1f5f9; height: 95mm; overflow: hidden; display: flex; align-items: center; justify-content: center; }
  .photo img { width: 100%; height: 100%; object-fit: cover; }
  .textblock { background: #f8fafc; border: 1px solid #e2e8f0; border-radius: 6px; padding: 12px; }
  .textblock h3 { font-size: 13px; border-bottom: 1px solid #e2e8f0; padding-bottom: 4px; margin-bottom: 6px; }
  .textblock p { font-size: 12px; line-height: 1.6; color: #475569; max-height: 30mm; overflow: hidden; }
  .details { flex: 5; display: flex; flex-direction: column; min-width: 0; }
  table.spec { width: 100%; border-collapse: collapse; font-size: 11px; }
  table.spec td { border: 1px solid #cbd5e1; padding: 6px; overflow: hidden; }
  table.spec td.label { background: #1e293b; color: #fff; font-weight: 600; text-align: center; width: 26%; }
  .features { margin-top: 16px; }
  .features h3 { font-size: 15px; text-decoration: underline; text-decoration-color: #cbd5e1; margin-bottom: 8px; }
  .features ul { list-style: none; }
  .features li { font-size: 12px; color: #334155; padding: 3px 0 3px 14px; position: relative; }
  .features li::before { content: ""; position: absolute; left: 0; top: 9px; width: 6px; height: 6px; border-radius: 50%; background: #1e293b; }
  .footer { margin-top: auto; padding-top: 14px; border-top: 2px solid #e2e8f0; display: flex; gap: 12px; align-items: flex-start; }
  .issuer { flex: 1; border: 2px solid #0f172a; padding: 10px; display: flex; gap: 14px; align-items: center; }
  .issuer .mark { background: #0f172a; color: #fff; font-weight: 900; font-size: 24px; width: 48px; height: 48px; display: flex; align-items: center; justify-content: center; }
  .issuer h2 { font-size: 18px; font-weight: 900; }
  .issuer .reg { font-size: 8px; color: #475569; line-height: 1.5; margin-top: 3px; }
  .issuer .contact { margin-left: auto; font-size: 8px; text-align: right; line-height: 1.6; white-space: nowrap; }
  .sideboxes { width: 42mm; display: flex; flex-direction: column; gap: 4px; }
  .sidebox { border: 1px solid #cbd5e1; background: #f8fafc; padding: 4px; font-size: 8px; }
  .sidebox .k { display: block; font-weight: 700; text-transform: uppercase; opacity: 0.5; }
  .sidebox .v { font-weight: 600; }
</style>
</head>
<body>
<div class="page">
  <div class="header">
    <div>
      <h1>{{.Header.Name}}</h1>
      <p class="subtitle">{{.Header.Subtitle}}</p>
    </div>
    <span class="price">{{.Header.Price}}</span>
  </div>
  <div class="columns">
    <div class="visual">
      <div class="photo">{{if .ImageRef}}<img src="{{safeURL .ImageRef}}" alt="{{.Header.Name}}">{{end}}</div>
      <div class="textblock">
        <h3>{{.Description.Label}}</h3>
        <p>{{.Description.Value}}</p>
      </div>
      <div class="textblock">
        <h3>{{.Facilities.Label}}</h3>
        <p>{{.Facilities.Value}}</p>
      </div>
    </div>
    <div class="details">
      <table class="spec">
        <tbody>
        {{range .SpecRows}}
          <tr>
          {{if .FullWidth}}
            {{with index .Cells 0}}<td class="label">{{.Label}}</td><td colspan="3">{{.Value}}</td>{{end}}
          {{else}}
            {{range .Cells}}<td class="label">{{.Label}}</td><td>{{.Value}}</td>{{end}}
          {{end}}
          </tr>
        {{end}}
        </tbody>
      </table>
      <div class="features">
        <h3>{{.Features.Label}}</h3>
        <ul>
        {{range .Features.Items}}<li>{{.}}</li>
        {{end}}</ul>
      </div>
    </div>
  </div>
  <div class="footer">
    <div class="issuer">
      <div class="mark">S</div>
      <div>
        <h2>{{.Issuer.Name}}</h2>
        <div class="reg">{{.Issuer.License}}<br>{{.Issuer.Guarantee}}<br>{{.Issuer.Association}}</div>
      </div>
      <div class="contact">
        <p>TEL: {{.Issuer.Phone}}</p>
        <p>FAX: {{.Issuer.Fax}}</p>
        <p>Email: {{.Issuer.Email}}</p>
        <p>Web: {{.Issuer.Website}}</p>
        <p>〒{{.Issuer.PostalCode}} {{.Issuer.Address}}</p>
      </div>
    </div>
    <div class="sideboxes">
      <div class="sidebox"><span class="k">{{.Labels.Transaction}}</span><span class="v">{{.Labels.TransactionVal}}</span></div>
      <div class="sidebox"><span class="k">{{.Labels.Advertising}}</span><span class="v">{{.Labels.AdvertisingVal}}</span></div>
    </div>
  </div>
</div>
</body>
</html>
`

// safeURL lets the image slot carry a data: URL, which html/template's
// default URL sanitizer would otherwise reject.
var page = template.Must(template.New("flyer").Funcs(template.FuncMap{
	"safeURL": func(s string) template.URL { return template.URL(s) },
}).Parse(pageTemplate))

// RenderHTML renders doc as a self-contained A4 HTML page.
func RenderHTML(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := page.Execute(&buf, doc); err != nil {
		return nil, fmt.Errorf("render flyer page: %w", err)
	}
	return buf.Bytes(), nil
}
