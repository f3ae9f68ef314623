package printing

// Theme carries the brand styling resolved from a company's template key
type Theme struct {
	Key         string
	Accent      string
	HeaderText  string
	ShowTagline bool
}

var themes = map[string]Theme{
	"gdc": {
		Key:         "gdc",
		Accent:      "#1a4f8b",
		HeaderText:  "#1a4f8b",
		ShowTagline: true,
	},
	"gtc": {
		Key:         "gtc",
		Accent:      "#7a1f1f",
		HeaderText:  "#7a1f1f",
		ShowTagline: false,
	},
	"sustainability": {
		Key:         "sustainability",
		Accent:      "#1e6b3a",
		HeaderText:  "#1e6b3a",
		ShowTagline: true,
	},
}

// ThemeFor returns the brand theme for a template key. Unknown keys get
// a neutral default so a new company still prints.
func ThemeFor(key string) Theme {
	if theme, ok := themes[key]; ok {
		return theme
	}
	return Theme{Key: "default", Accent: "#333333", HeaderText: "#111111", ShowTagline: true}
}

// labelSet holds the printed field captions, with a Hindi variant
type labelSet struct {
	BillTo        string
	ShipTo        string
	Date          string
	ValidUntil    string
	GSTIN         string
	State         string
	AmountInWords string
	BankDetails   string
	Notes         string
	Signatory     string
}

var englishLabels = labelSet{
	BillTo:        "Bill To",
	ShipTo:        "Ship To",
	Date:          "Date",
	ValidUntil:    "Valid Until",
	GSTIN:         "GSTIN",
	State:         "State",
	AmountInWords: "Amount in Words",
	BankDetails:   "Bank Details",
	Notes:         "Notes",
	Signatory:     "Authorised Signatory",
}

var hindiLabels = labelSet{
	BillTo:        "सेवा में",
	ShipTo:        "प्रेषण पता",
	Date:          "दिनांक",
	ValidUntil:    "वैधता",
	GSTIN:         "जीएसटीआईएन",
	State:         "राज्य",
	AmountInWords: "राशि शब्दों में",
	BankDetails:   "बैंक विवरण",
	Notes:         "टिप्पणी",
	Signatory:     "अधिकृत हस्ताक्षरकर्ता",
}

// Labels returns the caption set for the document's language mode
func (v *DocumentView) Labels() labelSet {
	if v.Hindi {
		return hindiLabels
	}
	return englishLabels
}

// documentTemplate is the shared layout for invoices and quotations. The
// brand theme only varies colors and the tagline, so one layout serves
// every company.
const documentTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<title>{{.Number}}</title>
<style>
  @page { margin: 0; }
  body {
    font-family: "Noto Sans", "Noto Sans Devanagari", Arial, sans-serif;
    font-size: {{if .FitOnePage}}11px{{else}}13px{{end}};
    color: #222;
    margin: 0;
    padding: 28px 32px;
  }
  .header { border-bottom: 3px solid {{safeCSS .Theme.Accent}}; padding-bottom: 10px; }
  .company-name { font-size: {{if .FitOnePage}}20px{{else}}24px{{end}}; font-weight: bold; color: {{safeCSS .Theme.HeaderText}}; }
  .tagline { font-style: italic; color: #555; }
  .doc-title { text-align: center; font-size: 16px; font-weight: bold; letter-spacing: 2px; margin: {{if .FitOnePage}}8px 0{{else}}14px 0{{end}}; color: {{safeCSS .Theme.Accent}}; }
  .meta, .parties { width: 100%; margin-bottom: {{if .FitOnePage}}6px{{else}}12px{{end}}; }
  .parties td { vertical-align: top; width: 50%; padding: 4px 8px; border: 1px solid #bbb; }
  .party-label { font-weight: bold; color: {{safeCSS .Theme.Accent}}; }
  table.items { width: 100%; border-collapse: collapse; margin-top: {{if .FitOnePage}}6px{{else}}10px{{end}}; }
  table.items th { background: {{safeCSS .Theme.Accent}}; color: #fff; padding: {{if .FitOnePage}}3px 5px{{else}}6px 8px{{end}}; text-align: left; }
  table.items td { border: 1px solid #bbb; padding: {{if .FitOnePage}}3px 5px{{else}}5px 8px{{end}}; }
  table.items td.num { text-align: right; }
  .totals { margin-top: {{if .FitOnePage}}6px{{else}}10px{{end}}; width: 40%; margin-left: auto; border-collapse: collapse; }
  .totals td { padding: {{if .FitOnePage}}2px 6px{{else}}4px 8px{{end}}; }
  .totals .grand td { font-weight: bold; border-top: 2px solid {{safeCSS .Theme.Accent}}; }
  .words { margin-top: 8px; font-weight: bold; }
  .footer { margin-top: {{if .FitOnePage}}14px{{else}}28px{{end}}; display: flex; justify-content: space-between; }
  .sign { text-align: right; padding-top: 36px; }
  .bank { font-size: 0.9em; color: #444; }
  .notes { margin-top: 8px; white-space: pre-wrap; }
</style>
</head>
<body>
<div class="header">
  <div class="company-name">{{.Company.Name}}</div>
  {{if and .Theme.ShowTagline .Company.Tagline}}<div class="tagline">{{.Company.Tagline}}</div>{{end}}
  <div>{{.Company.Address}}</div>
  <div>{{.Labels.GSTIN}}: {{.Company.GSTIN}} | {{.Labels.State}}: {{.Company.State}} ({{.Company.StateCode}})</div>
  {{if .Company.Email}}<div>{{.Company.Email}}{{if .Company.Phone}} | {{.Company.Phone}}{{end}}</div>{{end}}
</div>

<div class="doc-title">{{.Title}}</div>

<table class="meta">
  <tr>
    <td><b>{{.Title}} No:</b> {{.Number}}</td>
    <td><b>{{.Labels.Date}}:</b> {{formatDate .IssueDate}}</td>
    {{if .ValidUntil}}<td><b>{{.Labels.ValidUntil}}:</b> {{formatDate .ValidUntil}}</td>{{end}}
  </tr>
</table>

<table class="parties">
  <tr>
    <td>
      <div class="party-label">{{.Labels.BillTo}}</div>
      <div>{{.BillTo.Name}}</div>
      <div>{{.BillTo.Address}}</div>
      {{if .BillTo.GSTIN}}<div>{{.Labels.GSTIN}}: {{.BillTo.GSTIN}}</div>{{end}}
      {{if .BillTo.State}}<div>{{.Labels.State}}: {{.BillTo.State}} ({{.BillTo.StateCode}})</div>{{end}}
    </td>
    <td>
      <div class="party-label">{{.Labels.ShipTo}}</div>
      <div>{{.ShipTo.Name}}</div>
      <div>{{.ShipTo.Address}}</div>
      {{if .ShipTo.GSTIN}}<div>{{.Labels.GSTIN}}: {{.ShipTo.GSTIN}}</div>{{end}}
    </td>
  </tr>
</table>

<table class="items">
  <thead>
    <tr>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
  </thead>
  <tbody>
    {{range .Rows}}<tr>{{range .Cells}}<td>{{.}}</td>{{end}}</tr>
    {{end}}
  </tbody>
</table>

<table class="totals">
  {{range .Totals}}
  <tr{{if eq .Label "Grand Total"}} class="grand"{{end}}>
    <td>{{.Label}}</td>
    <td class="num">{{formatAmount .Value}}</td>
  </tr>
  {{end}}
</table>

<div class="words">{{.Labels.AmountInWords}}: {{.AmountInWords}}</div>

{{if .Notes}}<div class="notes"><b>{{.Labels.Notes}}:</b> {{.Notes}}</div>{{end}}

<div class="footer">
  <div class="bank">
    {{if .Company.Bank.AccountNumber}}
    <b>{{.Labels.BankDetails}}</b><br>
    {{.Company.Bank.BankName}}{{if .Company.Bank.Branch}}, {{.Company.Bank.Branch}}{{end}}<br>
    A/C: {{.Company.Bank.AccountNumber}}<br>
    IFSC: {{.Company.Bank.IFSCCode}}
    {{end}}
  </div>
  <div class="sign">
    For {{.Company.Name}}<br><br>
    {{.Labels.Signatory}}
  </div>
</div>
</body>
</html>`

// DocumentHTML renders a document view into the shared branded layout
func DocumentHTML(engine *TemplateEngine, view *DocumentView) (string, error) {
	return engine.RenderString("document", documentTemplate, view)
}
