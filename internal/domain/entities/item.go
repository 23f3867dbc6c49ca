package entities

// Item is one scored competency from the fixed catalog. Items are defined
// once at startup and identified by Name; the backing table derives one
// column per item per stage from this catalog.

type Item struct {
	Category    string `json:"category"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Catalog item categories.
const (
	CategoryProfessional   = "professional_skill"
	CategoryCompetency     = "competency"
	CategoryAdministrative = "administrative"
)

// DefaultCatalog returns the clinic's twelve-item competency catalog.
func DefaultCatalog() []Item {
	return []Item{
		{Category: CategoryProfessional, Name: "chairside_skill", Description: "Instrument preparation is fluent with no major lapses."},
		{Category: CategoryProfessional, Name: "front_desk_skill", Description: "Completes scheduling and admin work accurately."},
		{Category: CategoryCompetency, Name: "chairside_execution", Description: "Keeps treatment uninterrupted, steps in to support immediately."},
		{Category: CategoryCompetency, Name: "front_desk_communication", Description: "Communicates well with a friendly, professional manner."},
		{Category: CategoryCompetency, Name: "duty_compliance", Description: "Follows attendance and leave rules."},
		{Category: CategoryCompetency, Name: "duty_participation", Description: "Participates actively in training courses."},
		{Category: CategoryCompetency, Name: "peer_support", Description: "Helps peers and offers support proactively."},
		{Category: CategoryCompetency, Name: "peer_mentoring", Description: "Respects seniors and guides newcomers."},
		{Category: CategoryAdministrative, Name: "crisis_handling", Description: "Handles the unexpected immediately, prevents problems."},
		{Category: CategoryAdministrative, Name: "basic_admin", Description: "Reliably completes maintenance, materials and model work."},
		{Category: CategoryAdministrative, Name: "advanced_admin", Description: "Understands requirements, completes tasks efficiently."},
		{Category: CategoryAdministrative, Name: "adaptability", Description: "Responds to ad-hoc needs with a flexible attitude."},
	}
}

// ItemNames returns the catalog item names in catalog order.
func ItemNames(catalog []Item) []string {
	names := make([]string, 0, len(catalog))
	for _, it := range catalog {
		names = append(names, it.Name)
	}
	return names
}
