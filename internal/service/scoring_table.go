package service

import "reading-persona/internal/domain"

// Category es una clave del formulario de onboarding que aporta deltas.
type Category string

const (
	CategoryDifficulty      Category = "difficulty"
	CategoryMoods           Category = "moods"
	CategoryEmotions        Category = "emotions"
	CategoryThemes          Category = "themes"
	CategoryNarrativeStyles Category = "narrative_styles"
	CategoryPurposes        Category = "purposes"
	CategoryLength          Category = "length"
	CategoryPace            Category = "pace"
)

// Categories lista todas las categorias con deltas, en orden estable.
var Categories = []Category{
	CategoryDifficulty,
	CategoryMoods,
	CategoryEmotions,
	CategoryThemes,
	CategoryNarrativeStyles,
	CategoryPurposes,
	CategoryLength,
	CategoryPace,
}

// TraitDeltas es el ajuste firmado que una opcion aplica sobre cada rasgo.
type TraitDeltas struct {
	Openness           int
	Conscientiousness  int
	Extraversion       int
	Agreeableness      int
	EmotionalStability int
}

func (d TraitDeltas) get(t domain.Trait) int {
	switch t {
	case domain.TraitOpenness:
		return d.Openness
	case domain.TraitConscientiousness:
		return d.Conscientiousness
	case domain.TraitExtraversion:
		return d.Extraversion
	case domain.TraitAgreeableness:
		return d.Agreeableness
	case domain.TraitEmotionalStability:
		return d.EmotionalStability
	}
	return 0
}

// mappingTable: categoria -> opcion -> deltas.
// Las opciones con deltas vacios son validas pero neutras.
var mappingTable = map[Category]map[string]TraitDeltas{
	CategoryDifficulty: {
		"challenging": {Openness: 3},
		"moderate":    {Openness: 1},
		"easy":        {Openness: -2, Agreeableness: 1},
		"any":         {},
	},
	CategoryMoods: {
		"philosophical": {Openness: 3},
		"bright":        {Extraversion: 2, Agreeableness: 1, EmotionalStability: 2},
		"dark":          {Openness: 1, EmotionalStability: -2},
		"neutral":       {Conscientiousness: 1},
		"emotional":     {Agreeableness: 2, EmotionalStability: -1},
	},
	CategoryEmotions: {
		"joy":         {Extraversion: 2, Agreeableness: 1, EmotionalStability: 2},
		"sadness":     {Openness: 1, Extraversion: -1, EmotionalStability: -2},
		"tension":     {Openness: 1, Agreeableness: -1, EmotionalStability: -2},
		"inspiration": {Openness: 2, EmotionalStability: 1},
		"fear":        {Openness: 1, EmotionalStability: -3},
		"empathy":     {Agreeableness: 3, EmotionalStability: 1},
	},
	CategoryThemes: {
		"growth":        {Openness: 2, Conscientiousness: 2},
		"love":          {Agreeableness: 2, Extraversion: 1},
		"friendship":    {Agreeableness: 2, Extraversion: 1},
		"family":        {Agreeableness: 3, Conscientiousness: 1},
		"social_issues": {Openness: 2, Conscientiousness: 1},
		"history":       {Openness: 1, Conscientiousness: 2},
		"future":        {Openness: 2},
		"fantasy":       {Openness: 3, Agreeableness: -1},
	},
	CategoryNarrativeStyles: {
		"metaphorical":  {Openness: 2, Extraversion: -1},
		"direct":        {Openness: -1, Conscientiousness: 1, Extraversion: 1, EmotionalStability: 1},
		"philosophical": {Openness: 3, Conscientiousness: 1},
		"descriptive":   {Openness: 1, Conscientiousness: 1},
		"dialogue":      {Extraversion: 2, Agreeableness: 1},
	},
	CategoryPurposes: {
		"leisure":          {EmotionalStability: 1},
		"learning":         {Openness: 2, Conscientiousness: 2},
		"self_development": {Conscientiousness: 3, Openness: 1},
		"emotional_relief": {EmotionalStability: -1, Agreeableness: 1},
		"inspiration":      {Openness: 2, EmotionalStability: 1},
	},
	CategoryLength: {
		"short":  {Conscientiousness: -1},
		"medium": {},
		"long":   {Conscientiousness: 2, Openness: 1},
		"any":    {},
	},
	CategoryPace: {
		"fast":   {Extraversion: 1, Conscientiousness: -1},
		"medium": {},
		"slow":   {Conscientiousness: 2, Openness: 1},
	},
}

// lookupDeltas devuelve los deltas de una opcion. ok=false si la categoria
// u opcion no existen; el llamador las ignora.
func lookupDeltas(category Category, option string) (TraitDeltas, bool) {
	options, ok := mappingTable[category]
	if !ok {
		return TraitDeltas{}, false
	}
	d, ok := options[option]
	return d, ok
}

// selections devuelve las opciones elegidas por categoria. Las categorias de
// seleccion unica aportan a lo sumo una opcion.
func selections(p domain.PreferenceInput) map[Category][]string {
	single := func(v string) []string {
		if v == "" {
			return nil
		}
		return []string{v}
	}
	return map[Category][]string{
		CategoryDifficulty:      single(p.Difficulty),
		CategoryMoods:           p.Moods,
		CategoryEmotions:        p.Emotions,
		CategoryThemes:          p.Themes,
		CategoryNarrativeStyles: p.NarrativeStyles,
		CategoryPurposes:        p.Purposes,
		CategoryLength:          single(p.Length),
		CategoryPace:            single(p.Pace),
	}
}
