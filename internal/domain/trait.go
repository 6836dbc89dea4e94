package domain

// Trait identifica una de las cinco dimensiones de personalidad lectora.
type Trait string

const (
	TraitOpenness           Trait = "openness"
	TraitConscientiousness  Trait = "conscientiousness"
	TraitExtraversion       Trait = "extraversion"
	TraitAgreeableness      Trait = "agreeableness"
	TraitEmotionalStability Trait = "emotional_stability"
)

// TraitOrder es el orden canonico de los rasgos. Tambien es la prioridad
// usada para desempatar puntajes identicos.
var TraitOrder = []Trait{
	TraitOpenness,
	TraitConscientiousness,
	TraitExtraversion,
	TraitAgreeableness,
	TraitEmotionalStability,
}

// Level es la banda cualitativa de un puntaje.
type Level string

const (
	LevelLow      Level = "low"
	LevelModerate Level = "moderate"
	LevelHigh     Level = "high"
)

const (
	ScoreBaseline = 50
	ScoreMin      = 0
	ScoreMax      = 100
)

// ScoreVector guarda los cinco rasgos en escala 0-100.
type ScoreVector struct {
	Openness           int `json:"openness"`           // Curiosidad vs. Pragmatismo
	Conscientiousness  int `json:"conscientiousness"`  // Metodo vs. Espontaneidad
	Extraversion       int `json:"extraversion"`       // Energia social
	Agreeableness      int `json:"agreeableness"`      // Empatia
	EmotionalStability int `json:"emotional_stability"` // Alto = estable
}

// BaselineVector devuelve el vector neutro (50 en cada rasgo).
func BaselineVector() ScoreVector {
	return ScoreVector{
		Openness:           ScoreBaseline,
		Conscientiousness:  ScoreBaseline,
		Extraversion:       ScoreBaseline,
		Agreeableness:      ScoreBaseline,
		EmotionalStability: ScoreBaseline,
	}
}

// Get devuelve el puntaje de un rasgo. Rasgos desconocidos devuelven 0.
func (v ScoreVector) Get(t Trait) int {
	switch t {
	case TraitOpenness:
		return v.Openness
	case TraitConscientiousness:
		return v.Conscientiousness
	case TraitExtraversion:
		return v.Extraversion
	case TraitAgreeableness:
		return v.Agreeableness
	case TraitEmotionalStability:
		return v.EmotionalStability
	}
	return 0
}

// Floats expone el vector en orden canonico, util para pgvector.
func (v ScoreVector) Floats() []float32 {
	out := make([]float32, 0, len(TraitOrder))
	for _, t := range TraitOrder {
		out = append(out, float32(v.Get(t)))
	}
	return out
}

// TraitProfile es la lectura cualitativa de un rasgo.
type TraitProfile struct {
	Trait       Trait  `json:"trait"`
	Name        string `json:"name"`
	Score       int    `json:"score"`
	Level       Level  `json:"level"`
	Description string `json:"description"`
}
