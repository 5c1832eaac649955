package domain

// Verification statuses.
const (
	VerificationGood          = "BOA"
	VerificationBad           = "RUIM"
	VerificationNotApplicable = "N/A"
)

// ChecklistItems is the fixed equipment inspection catalog. Every rendered
// or exported order carries exactly these items, in this order.
var ChecklistItems = []string{
	"IMPRESSÃO/XEROX",
	"DIGITALIZAÇÃO",
	"REDE/USB",
	"ADF / DUPLEX (ADF)",
	"TIPO CONEXÃO - REDE/WIFI/USB",
	"PAINEL/APARDOR DE PAPEL",
	"PELICULA FUSORA/ROLO PRESSOR/ROLO FUSOR",
	"PICK ROLER BAND 1/2",
	"BANDEJA 1/2",
	"ETIQUETAS DE IDENTIFICAÇÃO",
	"PATRIMONIO",
	"CABO FORÇA E USB",
	"CARTUCHO SOBRESSALENTE",
}

// DefaultChecklist returns the catalog with every item marked N/A.
func DefaultChecklist() []Verification {
	return NormalizeVerifications(nil)
}

// NormalizeVerifications completes a stored checklist to the full catalog:
// one entry per catalog item, in catalog order, missing items synthesized
// as N/A with an empty observation. Stored entries outside the catalog are
// dropped. The input slice is not modified.
func NormalizeVerifications(stored []Verification) []Verification {
	byItem := make(map[string]Verification, len(stored))
	for _, v := range stored {
		if _, dup := byItem[v.Item]; dup {
			continue
		}
		byItem[v.Item] = v
	}
	out := make([]Verification, 0, len(ChecklistItems))
	for _, item := range ChecklistItems {
		v, ok := byItem[item]
		if !ok {
			out = append(out, Verification{Item: item, Status: VerificationNotApplicable})
			continue
		}
		if v.Status == "" {
			v.Status = VerificationNotApplicable
		}
		out = append(out, v)
	}
	return out
}
