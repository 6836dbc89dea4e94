package domain

import "time"

const ReportVersion = "1.0.0"

const (
	NarrativeSourceGenerated = "generated"
	NarrativeSourceFallback  = "fallback"
)

// Persona es la etiqueta cualitativa asignada a un perfil.
type Persona struct {
	Title       string   `json:"title"`
	Icon        string   `json:"icon"`
	Subtitle    string   `json:"subtitle"`
	Description string   `json:"description"`
	Color       string   `json:"color,omitempty"`
	KeyTraits   []string `json:"key_traits"`
}

// PersonaPatch sobrescribe solo los campos definidos (no nil).
type PersonaPatch struct {
	Title       *string
	Icon        *string
	Subtitle    *string
	Description *string
	Color       *string
	KeyTraits   []string
}

// Apply devuelve una copia de la persona con el parche aplicado campo por campo.
func (p Persona) Apply(patch PersonaPatch) Persona {
	out := p
	out.KeyTraits = append([]string(nil), p.KeyTraits...)
	if patch.Title != nil {
		out.Title = *patch.Title
	}
	if patch.Icon != nil {
		out.Icon = *patch.Icon
	}
	if patch.Subtitle != nil {
		out.Subtitle = *patch.Subtitle
	}
	if patch.Description != nil {
		out.Description = *patch.Description
	}
	if patch.Color != nil {
		out.Color = *patch.Color
	}
	if patch.KeyTraits != nil {
		out.KeyTraits = append([]string(nil), patch.KeyTraits...)
	}
	return out
}

// Complete indica si todos los campos obligatorios tienen valor.
func (p Persona) Complete() bool {
	return p.Title != "" && p.Icon != "" && p.Subtitle != "" && p.Description != "" && len(p.KeyTraits) > 0
}

type RadarPoint struct {
	Subject  string `json:"subject"`
	Trait    Trait  `json:"trait"`
	Value    int    `json:"value"`
	FullMark int    `json:"full_mark"`
}

// ReadingDNAItem es uno de los rasgos nucleares ("ADN lector").
type ReadingDNAItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

type StyleShare struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Percentage  int    `json:"percentage"`
}

type StyleBreakdown struct {
	MainStyle StyleShare   `json:"main_style"`
	SubStyles []StyleShare `json:"sub_styles"`
}

type ReadingDirection struct {
	Category string   `json:"category"`
	Reason   string   `json:"reason"`
	Examples []string `json:"examples"`
}

type GrowthChallenge struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Difficulty  string `json:"difficulty"` // "easy", "medium", "hard"
}

type GrowthPotential struct {
	CurrentScope string            `json:"current_scope"` // "narrow", "moderate", "diverse"
	CurrentLevel string            `json:"current_level"`
	NextLevel    string            `json:"next_level"`
	GrowthPath   string            `json:"growth_path"`
	Suggestions  []string          `json:"suggestions"`
	Challenges   []GrowthChallenge `json:"challenges"`
}

type ReportStatistics struct {
	TotalResponses int `json:"total_responses"`
	DiversityScore int `json:"diversity_score"`
	ClarityScore   int `json:"clarity_score"`
	CompletionRate int `json:"completion_rate"`
}

type SelectedBook struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Author     string `json:"author"`
	CoverImage string `json:"cover_image,omitempty"`
}

// Report es el agregado que se entrega y persiste por usuario.
type Report struct {
	ID                string             `json:"id"`
	UserID            string             `json:"user_id"`
	CreatedAt         time.Time          `json:"created_at"`
	Version           string             `json:"version"`
	Scores            ScoreVector        `json:"scores"`
	Profile           []TraitProfile     `json:"profile"`
	Persona           Persona            `json:"persona"`
	RadarChart        []RadarPoint       `json:"radar_chart"`
	ReadingDNA        []ReadingDNAItem   `json:"reading_dna"`
	ReadingStyle      StyleBreakdown     `json:"reading_style"`
	ReadingDirections []ReadingDirection `json:"reading_directions"`
	GrowthPotential   GrowthPotential    `json:"growth_potential"`
	Statistics        ReportStatistics   `json:"statistics"`
	SelectedBooks     []SelectedBook     `json:"selected_books,omitempty"`
	Summary           string             `json:"summary"`
	Closing           string             `json:"closing"`
	NarrativeSource   string             `json:"narrative_source"`
}

// SimilarReader es un vecino cercano por vector de puntajes.
type SimilarReader struct {
	UserID   string  `json:"user_id"`
	Persona  string  `json:"persona"`
	Distance float64 `json:"distance"`
}
