package service

import (
	"slices"

	"reading-persona/internal/domain"
)

/*
========================
 Listas derivadas
========================
*/

// Estas funciones dependen solo de las preferencias y del vector; no miran la persona.

const (
	minDNAItems = 3
	maxDNAItems = 5
)

// BuildRadarChart devuelve un punto por rasgo en orden canonico.
func BuildRadarChart(v domain.ScoreVector) []domain.RadarPoint {
	out := make([]domain.RadarPoint, 0, len(domain.TraitOrder))
	for _, t := range domain.TraitOrder {
		out = append(out, domain.RadarPoint{
			Subject:  traitNames[t],
			Trait:    t,
			Value:    v.Get(t),
			FullMark: domain.ScoreMax,
		})
	}
	return out
}

type dnaRule struct {
	match func(p domain.PreferenceInput, v domain.ScoreVector) bool
	item  domain.ReadingDNAItem
}

var dnaRules = []dnaRule{
	{
		match: func(_ domain.PreferenceInput, v domain.ScoreVector) bool { return LevelFor(v.Openness) == domain.LevelHigh },
		item:  domain.ReadingDNAItem{Title: "Buscador de ideas", Description: "Los libros son para vos una puerta a conceptos nuevos.", Icon: "💡", Color: "#6366f1"},
	},
	{
		match: func(p domain.PreferenceInput, _ domain.ScoreVector) bool {
			return slices.Contains(p.Moods, "philosophical") || slices.Contains(p.NarrativeStyles, "philosophical")
		},
		item: domain.ReadingDNAItem{Title: "Pensador filosofico", Description: "Disfrutas de las preguntas que quedan resonando despues de cerrar el libro.", Icon: "🤔", Color: "#8b5cf6"},
	},
	{
		match: func(p domain.PreferenceInput, _ domain.ScoreVector) bool { return len(p.Emotions) >= 3 },
		item:  domain.ReadingDNAItem{Title: "Amplio espectro emocional", Description: "Te dejas atravesar por emociones muy distintas en una misma lectura.", Icon: "🌈", Color: "#ec4899"},
	},
	{
		match: func(p domain.PreferenceInput, _ domain.ScoreVector) bool {
			return slices.Contains(p.Themes, "growth") || slices.Contains(p.Purposes, "self_development")
		},
		item: domain.ReadingDNAItem{Title: "Impulso de crecimiento", Description: "Cada libro es un paso mas en tu desarrollo personal.", Icon: "🌱", Color: "#10b981"},
	},
	{
		match: func(_ domain.PreferenceInput, v domain.ScoreVector) bool { return LevelFor(v.Agreeableness) == domain.LevelHigh },
		item:  domain.ReadingDNAItem{Title: "Lector empatico", Description: "Te conectas con los personajes como si fueran personas cercanas.", Icon: "💞", Color: "#f472b6"},
	},
	{
		match: func(p domain.PreferenceInput, _ domain.ScoreVector) bool { return p.Pace == "slow" || p.Length == "long" },
		item:  domain.ReadingDNAItem{Title: "Lector de fondo", Description: "Preferis las lecturas largas y pausadas que se disfrutan con tiempo.", Icon: "🐢", Color: "#3b82f6"},
	},
	{
		match: func(p domain.PreferenceInput, _ domain.ScoreVector) bool { return p.Pace == "fast" },
		item:  domain.ReadingDNAItem{Title: "Lector agil", Description: "Devoras paginas y buscas historias que no se detienen.", Icon: "🏃", Color: "#f59e0b"},
	},
	{
		match: func(_ domain.PreferenceInput, v domain.ScoreVector) bool {
			return LevelFor(v.EmotionalStability) == domain.LevelLow
		},
		item: domain.ReadingDNAItem{Title: "Buscador de intensidad", Description: "Las historias intensas y oscuras no te asustan, te atraen.", Icon: "🌙", Color: "#7c3aed"},
	},
	{
		match: func(p domain.PreferenceInput, _ domain.ScoreVector) bool { return len(p.Genres) >= 4 },
		item:  domain.ReadingDNAItem{Title: "Explorador de generos", Description: "Te moves con comodidad entre generos muy distintos.", Icon: "🧭", Color: "#06b6d4"},
	},
}

var dnaFillers = []domain.ReadingDNAItem{
	{Title: "Curiosidad lectora", Description: "Te acercas a los libros con ganas de descubrir.", Icon: "🔎", Color: "#6366f1"},
	{Title: "Lector en evolucion", Description: "Tu forma de leer sigue tomando forma con cada libro.", Icon: "✨", Color: "#a855f7"},
	{Title: "Gusto propio", Description: "Sabes lo que te gusta y lo elegis con criterio.", Icon: "🎯", Color: "#14b8a6"},
}

// DeriveReadingDNA devuelve entre 3 y 5 rasgos nucleares, en orden de reglas.
func DeriveReadingDNA(p domain.PreferenceInput, v domain.ScoreVector) []domain.ReadingDNAItem {
	out := make([]domain.ReadingDNAItem, 0, maxDNAItems)
	for _, r := range dnaRules {
		if len(out) == maxDNAItems {
			break
		}
		if r.match(p, v) {
			out = append(out, r.item)
		}
	}
	for _, f := range dnaFillers {
		if len(out) >= minDNAItems {
			break
		}
		out = append(out, f)
	}
	return out
}

var styleByTrait = map[domain.Trait]domain.StyleShare{
	domain.TraitOpenness:           {Title: "Lectura exploratoria", Description: "Buscas mundos e ideas que no conoces."},
	domain.TraitConscientiousness:  {Title: "Lectura metodica", Description: "Lees con un plan y un objetivo claro."},
	domain.TraitExtraversion:       {Title: "Lectura dinamica", Description: "Te mueven la accion y los dialogos."},
	domain.TraitAgreeableness:      {Title: "Lectura empatica", Description: "Lees a traves de los vinculos entre personajes."},
	domain.TraitEmotionalStability: {Title: "Lectura serena", Description: "Buscas calma y bienestar en cada pagina."},
}

// DeriveReadingStyle reparte 100% entre los tres rasgos mas altos en
// proporcion a su puntaje. El redondeo sobrante va al estilo principal.
func DeriveReadingStyle(v domain.ScoreVector) domain.StyleBreakdown {
	top := RankTraits(v)[:3]
	sum := 0
	for _, t := range top {
		sum += v.Get(t)
	}

	shares := make([]domain.StyleShare, len(top))
	assigned := 0
	for i, t := range top {
		s := styleByTrait[t]
		if sum == 0 {
			s.Percentage = 100 / len(top)
		} else {
			s.Percentage = v.Get(t) * 100 / sum
		}
		assigned += s.Percentage
		shares[i] = s
	}
	shares[0].Percentage += 100 - assigned

	return domain.StyleBreakdown{
		MainStyle: shares[0],
		SubStyles: shares[1:],
	}
}

var deepenDirections = map[domain.Trait]domain.ReadingDirection{
	domain.TraitOpenness: {
		Category: "Ensayo y filosofia",
		Reason:   "Tu apertura se potencia con textos que desafian lo que das por sentado.",
		Examples: []string{"Ensayo filosofico", "Divulgacion cientifica", "Ficcion especulativa"},
	},
	domain.TraitConscientiousness: {
		Category: "Lecturas de largo aliento",
		Reason:   "Tu constancia te permite sostener obras extensas y exigentes.",
		Examples: []string{"Sagas historicas", "Biografias", "Clasicos extensos"},
	},
	domain.TraitExtraversion: {
		Category: "Narrativa de accion",
		Reason:   "Las tramas con ritmo y dialogo acompanan tu energia.",
		Examples: []string{"Thriller", "Aventura", "Novela coral"},
	},
	domain.TraitAgreeableness: {
		Category: "Historias de vinculos",
		Reason:   "Tu empatia encuentra su lugar en historias de relaciones humanas.",
		Examples: []string{"Novela familiar", "Memorias", "Ficcion contemporanea"},
	},
	domain.TraitEmotionalStability: {
		Category: "Lecturas luminosas",
		Reason:   "Disfrutas de historias que transmiten calma y esperanza.",
		Examples: []string{"Feel-good", "Cronicas de viaje", "Ensayo personal"},
	},
}

var broadenDirections = map[domain.Trait]domain.ReadingDirection{
	domain.TraitOpenness: {
		Category: "Generos nuevos",
		Reason:   "Probar un genero distinto por mes amplia tu mirada sin salir de tu zona de confort.",
		Examples: []string{"Realismo magico", "Ciencia ficcion accesible", "Poesia contemporanea"},
	},
	domain.TraitConscientiousness: {
		Category: "Lecturas breves con objetivo",
		Reason:   "Libros cortos con un proposito claro ayudan a crear habito.",
		Examples: []string{"Cuentos", "Ensayos breves", "Novela corta"},
	},
	domain.TraitExtraversion: {
		Category: "Lectura compartida",
		Reason:   "Comentar lo que lees con otros suma una dimension nueva a la lectura.",
		Examples: []string{"Club de lectura", "Novela dialogada", "Teatro"},
	},
	domain.TraitAgreeableness: {
		Category: "Perspectivas ajenas",
		Reason:   "Historias narradas desde otros puntos de vista entrenan la empatia.",
		Examples: []string{"Cronica periodistica", "Novela epistolar", "Autobiografias"},
	},
	domain.TraitEmotionalStability: {
		Category: "Lecturas reparadoras",
		Reason:   "Alternar lecturas intensas con otras mas livianas ayuda a equilibrar la experiencia.",
		Examples: []string{"Humor", "Cozy mystery", "Ensayo de bienestar"},
	},
}

// DeriveReadingDirections sugiere profundizar el rasgo dominante y ampliar
// hasta dos rasgos que no son altos, empezando por el mas bajo.
func DeriveReadingDirections(v domain.ScoreVector) []domain.ReadingDirection {
	ranked := RankTraits(v)
	out := []domain.ReadingDirection{cloneDirection(deepenDirections[ranked[0]])}
	for i := len(ranked) - 1; i > 0 && len(out) < 3; i-- {
		t := ranked[i]
		if LevelFor(v.Get(t)) == domain.LevelHigh {
			continue
		}
		out = append(out, cloneDirection(broadenDirections[t]))
	}
	return out
}

func cloneDirection(d domain.ReadingDirection) domain.ReadingDirection {
	d.Examples = append([]string(nil), d.Examples...)
	return d
}

type growthStage struct {
	current string
	next    string
	path    string
}

var growthStages = map[string]growthStage{
	"narrow": {
		current: "Lector enfocado",
		next:    "Lector curioso",
		path:    "Partiendo de los generos que ya te gustan, animate a expandirte poco a poco hacia generos vecinos. Tu mundo lector se va a enriquecer.",
	},
	"moderate": {
		current: "Lector curioso",
		next:    "Lector versatil",
		path:    "Ya disfrutas de varios generos. Ahora suma profundidad en cada uno y, de vez en cuando, animate a un territorio completamente nuevo.",
	},
	"diverse": {
		current: "Lector versatil",
		next:    "Lector experto",
		path:    "Tenes una experiencia lectora muy diversa. El siguiente paso es la lectura profunda y los temas mas desafiantes.",
	},
}

var growthChallenges = []domain.GrowthChallenge{
	{Title: "Literatura clasica", Description: "Descubrir miradas profundas y valores que trascienden su epoca.", Difficulty: "medium"},
	{Title: "Ciencia ficcion y fantasia", Description: "Ampliar la imaginacion y vivir mundos nuevos.", Difficulty: "easy"},
	{Title: "Psicologia y filosofia", Description: "Comprender mejor a las personas y al mundo.", Difficulty: "hard"},
}

var growthSuggestionByTrait = map[domain.Trait]string{
	domain.TraitOpenness:           "Elegi un libro fuera de tus generos habituales cada mes.",
	domain.TraitConscientiousness:  "Arma una rutina de lectura breve pero diaria.",
	domain.TraitExtraversion:       "Comparti tus lecturas en un club o con amigos.",
	domain.TraitAgreeableness:      "Lee historias narradas desde puntos de vista muy distintos al tuyo.",
	domain.TraitEmotionalStability: "Alterna lecturas intensas con otras mas livianas.",
}

// GenreScope clasifica la amplitud de generos elegidos.
func GenreScope(genreCount int) string {
	switch {
	case genreCount <= 2:
		return "narrow"
	case genreCount <= 4:
		return "moderate"
	default:
		return "diverse"
	}
}

// DeriveGrowthPotential arma el plan de crecimiento segun la amplitud de
// generos y los dos rasgos mas bajos.
func DeriveGrowthPotential(p domain.PreferenceInput, v domain.ScoreVector) domain.GrowthPotential {
	scope := GenreScope(len(p.Genres))
	stage := growthStages[scope]

	ranked := RankTraits(v)
	suggestions := []string{
		growthSuggestionByTrait[ranked[len(ranked)-1]],
		growthSuggestionByTrait[ranked[len(ranked)-2]],
	}

	return domain.GrowthPotential{
		CurrentScope: scope,
		CurrentLevel: stage.current,
		NextLevel:    stage.next,
		GrowthPath:   stage.path,
		Suggestions:  suggestions,
		Challenges:   append([]domain.GrowthChallenge(nil), growthChallenges...),
	}
}

const statisticsQuestions = 9

// ComputeStatistics resume cuantas preguntas del onboarding fueron respondidas.
func ComputeStatistics(p domain.PreferenceInput) domain.ReportStatistics {
	answered := []bool{
		len(p.Purposes) > 0,
		len(p.Genres) > 0,
		p.Length != "",
		p.Pace != "",
		p.Difficulty != "",
		len(p.Moods) > 0,
		len(p.Emotions) > 0,
		len(p.NarrativeStyles) > 0,
		len(p.Themes) > 0,
	}
	total := 0
	for _, ok := range answered {
		if ok {
			total++
		}
	}

	selected := len(p.Genres) + len(p.Moods) + len(p.Emotions) + len(p.Themes)
	diversity := min(100, selected*100/20)
	clarity := min(100, total*100/statisticsQuestions)

	return domain.ReportStatistics{
		TotalResponses: total,
		DiversityScore: diversity,
		ClarityScore:   clarity,
		CompletionRate: total * 100 / statisticsQuestions,
	}
}

// EmotionalRange clasifica la cantidad de emociones elegidas.
func EmotionalRange(emotionCount int) string {
	switch {
	case emotionCount <= 2:
		return "narrow"
	case emotionCount <= 4:
		return "moderate"
	default:
		return "wide"
	}
}
