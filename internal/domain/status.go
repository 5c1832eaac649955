package domain

// Lifecycle statuses of a service order.
const (
	StatusUrgente   = "URGENTE"
	StatusAberto    = "ABERTO"
	StatusEmRota    = "EM ROTA"
	StatusLiberado  = "LIBERADO"
	StatusPendencia = "PENDENCIA"
	StatusSuspenso  = "SUSPENSO"
	StatusDefinir   = "DEFINIR"
	StatusResolvido = "RESOLVIDO"
)

// Statuses lists the closed taxonomy in display order.
var Statuses = []string{
	StatusUrgente,
	StatusAberto,
	StatusEmRota,
	StatusLiberado,
	StatusPendencia,
	StatusSuspenso,
	StatusDefinir,
	StatusResolvido,
}

// statusColors maps each status to its dashboard/report color treatment.
var statusColors = map[string]string{
	StatusUrgente:   "orange",
	StatusAberto:    "yellow",
	StatusEmRota:    "gray",
	StatusLiberado:  "blue",
	StatusPendencia: "red",
	StatusSuspenso:  "purple",
	StatusDefinir:   "slate",
	StatusResolvido: "green",
}

// EffectiveStatus maps an absent status to the default ABERTO. Every read
// site (filter, aggregation, display, export) goes through this function
// rather than defaulting inline.
func EffectiveStatus(status string) string {
	if status == "" {
		return StatusAberto
	}
	return status
}

// ValidStatus reports whether s belongs to the taxonomy. The empty string
// is accepted as the implicit default.
func ValidStatus(s string) bool {
	if s == "" {
		return true
	}
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// StatusColor returns the display color for a status, defaulting to the
// ABERTO treatment for anything unknown.
func StatusColor(status string) string {
	if c, ok := statusColors[EffectiveStatus(status)]; ok {
		return c
	}
	return statusColors[StatusAberto]
}

// DateFiltered reports whether the status is subject to opening-date range
// filtering. Only resolved orders are period-bound; open work stays visible
// regardless of when it was opened.
func DateFiltered(status string) bool {
	return EffectiveStatus(status) == StatusResolvido
}
