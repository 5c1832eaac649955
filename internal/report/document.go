package report

import (
	"html/template"
	"io"

	"ostrack/internal/domain"
)

// WriteDocument renders the printable fixed-layout document for one order.
// It renders even for an otherwise empty record: missing fields come out
// blank and an absent checklist is synthesized to the full catalog.
func WriteDocument(w io.Writer, o domain.ServiceOrder) error {
	p, err := Project(o)
	if err != nil {
		return err
	}
	return documentTmpl.Execute(w, documentData{
		Projection:  p,
		StatusColor: domain.StatusColor(o.Status),
	})
}

type documentData struct {
	Projection
	StatusColor string
}

var documentTmpl = template.Must(template.New("document").Funcs(template.FuncMap{
	"checkClass": func(status string) string {
		switch status {
		case domain.VerificationGood:
			return "check-good"
		case domain.VerificationBad:
			return "check-bad"
		default:
			return "check-na"
		}
	},
}).Parse(documentHTML))

const documentHTML = `<!doctype html>
<html lang="pt-BR">
<head>
<meta charset="utf-8"/>
<title>Ordem de Serviço {{.OSNumber}}</title>
<style>
  body { font-family: Arial, sans-serif; font-size: 12px; color: #111; margin: 24px; }
  h1 { font-size: 18px; margin: 0 0 4px; }
  .status { display: inline-block; padding: 2px 8px; border: 1px solid #333; border-radius: 4px; font-weight: bold; }
  .status-orange { background: #ffe3c7; }
  .status-yellow { background: #fff3b0; }
  .status-gray { background: #e5e5e5; }
  .status-blue { background: #cfe2ff; }
  .status-red { background: #f8c9c9; }
  .status-purple { background: #e4d3f5; }
  .status-slate { background: #dde3ea; }
  .status-green { background: #d1f1d1; }
  section { margin-top: 14px; }
  h2 { font-size: 13px; text-transform: uppercase; border-bottom: 1px solid #444; padding-bottom: 2px; margin: 0 0 6px; }
  .grid { display: grid; grid-template-columns: 1fr 1fr; gap: 2px 24px; }
  .field b { margin-right: 4px; }
  table { border-collapse: collapse; width: 100%; margin-top: 4px; }
  th, td { border: 1px solid #555; padding: 3px 6px; text-align: left; }
  th { background: #eee; }
  .check-good { background: #d1f1d1; font-weight: bold; }
  .check-bad { background: #f8c9c9; font-weight: bold; }
  .check-na { color: #666; }
  .signatures { display: grid; grid-template-columns: 1fr 1fr; gap: 48px; margin-top: 48px; }
  .signature { border-top: 1px solid #111; padding-top: 4px; text-align: center; }
  @media print { body { margin: 0; } }
</style>
</head>
<body>
<section>
  <h1>Ordem de Serviço</h1>
  <div class="grid">
    <div class="field"><b>N° O.S.:</b>{{.OSNumber}}</div>
    <div class="field"><b>N° Chamado:</b>{{.TicketNumber}}</div>
    <div class="field"><b>Data de Abertura:</b>{{.OpeningDate}}</div>
    <div class="field"><b>PAT:</b>{{.PAT}}</div>
    <div class="field"><b>Situação:</b> <span class="status status-{{.StatusColor}}">{{.Status}}</span></div>
  </div>
</section>
<section>
  <h2>Responsáveis</h2>
  <div class="grid">
    <div class="field"><b>Abertura:</b>{{.ResponsibleOpening}}</div>
    <div class="field"><b>Técnico:</b>{{.ResponsibleTech}}</div>
  </div>
</section>
<section>
  <h2>Cliente</h2>
  <div class="grid">
    <div class="field"><b>Nome:</b>{{.ClientName}}</div>
    <div class="field"><b>Telefone:</b>{{.Phone}}</div>
    <div class="field"><b>Unidade:</b>{{.Unit}}</div>
    <div class="field"><b>Endereço:</b>{{.ServiceAddress}}</div>
  </div>
</section>
<section>
  <h2>Equipamento</h2>
  <div class="grid">
    <div class="field"><b>Tipo:</b>{{.EquipmentType}}</div>
    <div class="field"><b>Marca:</b>{{.EquipmentBrand}}</div>
    <div class="field"><b>Modelo:</b>{{.EquipmentModel}}</div>
    <div class="field"><b>S/N Equip:</b>{{.EquipmentSerial}}</div>
    <div class="field"><b>S/N Placa:</b>{{.EquipmentBoardSerial}}</div>
  </div>
</section>
<section>
  <h2>Chamado</h2>
  <p>{{.CallInfo}}</p>
</section>
<section>
  <h2>Materiais</h2>
  <p>{{.Materials}}</p>
</section>
<section>
  <h2>Laudo Técnico</h2>
  <p>{{.TechnicalReport}}</p>
</section>
<section>
  <h2>Verificações</h2>
  <table>
    <thead>
      <tr><th>Item Verificado</th><th>Status</th><th>Observação</th></tr>
    </thead>
    <tbody>
      {{range .Verifications}}<tr>
        <td>{{.Item}}</td>
        <td class="{{checkClass .Status}}">{{.Status}}</td>
        <td>{{.Observation}}</td>
      </tr>
      {{end}}
    </tbody>
  </table>
</section>
<section>
  <h2>Informações Finais</h2>
  <div class="grid">
    <div class="field"><b>Contador Total:</b>{{.TotalPageCount}}</div>
    <div class="field"><b>Próxima Visita:</b>{{.NextVisit}}</div>
    <div class="field"><b>Pendências:</b>{{.PendingIssues}}</div>
    <div class="field"><b>Equipamento Substituído:</b>{{.EquipmentReplaced}}</div>
  </div>
  <p>{{.Observations}}</p>
</section>
<div class="signatures">
  <div class="signature">Técnico Responsável<br/>Data: ____/____/______</div>
  <div class="signature">Cliente<br/>Data: ____/____/______</div>
</div>
</body>
</html>
`
