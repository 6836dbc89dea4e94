package service

import (
	"sort"

	"reading-persona/internal/domain"
)

func strPtr(s string) *string { return &s }

// DefaultPersona es la persona cuando ninguna regla aplica ("lector equilibrado").
func DefaultPersona() domain.Persona {
	return domain.Persona{
		Title:       "Lector equilibrado",
		Icon:        "📖",
		Subtitle:    "Que disfruta de generos diversos",
		Description: "Disfrutas de libros de muchos generos y puedes mirar el mundo desde varias perspectivas.",
		Color:       "#6366f1",
		KeyTraits:   []string{"Versatil", "Abierto", "Equilibrado"},
	}
}

// singleTraitRules se consultan con la clave "<rasgo>-high".
var singleTraitRules = map[domain.Trait]domain.PersonaPatch{
	domain.TraitOpenness: {
		Title:       strPtr("Explorador filosofico"),
		Icon:        strPtr("🔭"),
		Subtitle:    strPtr("Que mira el mundo desde nuevas perspectivas"),
		Description: strPtr("Tu curiosidad te lleva a explorar ideas y puntos de vista nuevos."),
		Color:       strPtr("#6366f1"),
		KeyTraits:   []string{"Curioso", "Creativo", "Pensamiento abstracto"},
	},
	domain.TraitConscientiousness: {
		Title:       strPtr("Aprendiz constante"),
		Icon:        strPtr("📚"),
		Subtitle:    strPtr("Que construye conocimiento con metodo"),
		Description: strPtr("Orientado a metas, acumulas conocimiento de forma planificada y sistematica."),
		Color:       strPtr("#3b82f6"),
		KeyTraits:   []string{"Orientado a metas", "Planificador", "Enfocado en logros"},
	},
	domain.TraitExtraversion: {
		Title:       strPtr("Cazador de tramas trepidantes"),
		Icon:        strPtr("⚡"),
		Subtitle:    strPtr("Que disfruta de historias dinamicas"),
		Description: strPtr("Obtienes energia de historias vivas y dinamicas; tu lectura se orienta a la accion."),
		Color:       strPtr("#f59e0b"),
		KeyTraits:   []string{"Energico", "Sociable", "Orientado a la accion"},
	},
	domain.TraitAgreeableness: {
		Title:       strPtr("Conector empatico"),
		Icon:        strPtr("💕"),
		Subtitle:    strPtr("Que comparte el corazon a traves de historias calidas"),
		Description: strPtr("Empatizas profundamente con los demas y prefieres historias de relaciones humanas calidas."),
		Color:       strPtr("#ec4899"),
		KeyTraits:   []string{"Muy empatico", "Valora los vinculos", "Calido"},
	},
	domain.TraitEmotionalStability: {
		Title:       strPtr("Observador sereno"),
		Icon:        strPtr("🌸"),
		Subtitle:    strPtr("Que prefiere historias que dan calma"),
		Description: strPtr("Tranquilo y equilibrado, disfrutas de historias positivas y estables."),
		Color:       strPtr("#10b981"),
		KeyTraits:   []string{"Tranquilo", "Positivo", "Equilibrado"},
	},
}

// traitPair es la clave ordenada "<top1>+<top2>".
type traitPair struct {
	First  domain.Trait
	Second domain.Trait
}

var combinationRules = map[traitPair]domain.PersonaPatch{
	{domain.TraitOpenness, domain.TraitConscientiousness}: {
		Title:    strPtr("Investigador intelectual"),
		Icon:     strPtr("🔬"),
		Subtitle: strPtr("Que busca un aprendizaje profundo"),
	},
	{domain.TraitOpenness, domain.TraitAgreeableness}: {
		Title:    strPtr("Sensibilidad artistica"),
		Icon:     strPtr("🎨"),
		Subtitle: strPtr("Que se sumerge en historias bellas"),
	},
	{domain.TraitExtraversion, domain.TraitAgreeableness}: {
		Title:    strPtr("Empatico social"),
		Icon:     strPtr("🤝"),
		Subtitle: strPtr("Que comparte historias con la gente"),
	},
	{domain.TraitConscientiousness, domain.TraitAgreeableness}: {
		Title:    strPtr("Crecimiento comprometido"),
		Icon:     strPtr("🌱"),
		Subtitle: strPtr("Que valora tanto crecer como los vinculos"),
	},
}

// RankTraits ordena los rasgos por puntaje descendente. Los empates se
// resuelven con domain.TraitOrder.
func RankTraits(v domain.ScoreVector) []domain.Trait {
	ranked := append([]domain.Trait(nil), domain.TraitOrder...)
	priority := make(map[domain.Trait]int, len(domain.TraitOrder))
	for i, t := range domain.TraitOrder {
		priority[t] = i
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		si, sj := v.Get(ranked[i]), v.Get(ranked[j])
		if si != sj {
			return si > sj
		}
		return priority[ranked[i]] < priority[ranked[j]]
	})
	return ranked
}

// ResolvePersona elige la persona para un vector. Nunca falla: en el peor caso
// devuelve DefaultPersona.
//
// Las reglas solo aplican si el rasgo dominante es high. La regla de un rasgo
// se aplica primero y la de combinacion encima, sobrescribiendo los campos que define.
// Un vector cuyo rasgo dominante es moderate nunca recibe un titulo de combinacion.
func ResolvePersona(v domain.ScoreVector) domain.Persona {
	persona := DefaultPersona()
	ranked := RankTraits(v)
	top1, top2 := ranked[0], ranked[1]

	if LevelFor(v.Get(top1)) != domain.LevelHigh {
		return persona
	}
	if patch, ok := singleTraitRules[top1]; ok {
		persona = persona.Apply(patch)
	}
	if patch, ok := combinationRules[traitPair{First: top1, Second: top2}]; ok {
		persona = persona.Apply(patch)
	}
	return persona
}
