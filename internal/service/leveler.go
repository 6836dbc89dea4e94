package service

import "reading-persona/internal/domain"

const (
	levelLowBelow  = 40
	levelHighAbove = 60
)

// LevelFor clasifica un puntaje: <40 low, >60 high, resto moderate.
func LevelFor(score int) domain.Level {
	if score < levelLowBelow {
		return domain.LevelLow
	}
	if score > levelHighAbove {
		return domain.LevelHigh
	}
	return domain.LevelModerate
}

var traitNames = map[domain.Trait]string{
	domain.TraitOpenness:           "Apertura",
	domain.TraitConscientiousness:  "Responsabilidad",
	domain.TraitExtraversion:       "Extraversion",
	domain.TraitAgreeableness:      "Amabilidad",
	domain.TraitEmotionalStability: "Estabilidad emocional",
}

var traitDescriptions = map[domain.Trait]map[domain.Level]string{
	domain.TraitOpenness: {
		domain.LevelHigh:     "Abierto a ideas y experiencias nuevas, disfruta del pensamiento abstracto y filosofico. Prefiere explorar conceptos complejos.",
		domain.LevelModerate: "Busca el equilibrio entre lo conocido y lo nuevo, y disfruta de desafios en su justa medida.",
		domain.LevelLow:      "Prefiere contenidos concretos y practicos, y confia en lo conocido y probado.",
	},
	domain.TraitConscientiousness: {
		domain.LevelHigh:     "Prefiere una lectura sistematica y planificada, valora el aprendizaje profundo y el desarrollo personal. Orientado a metas.",
		domain.LevelModerate: "Combina planificacion y flexibilidad en su forma de leer.",
		domain.LevelLow:      "Prefiere una lectura libre y espontanea, y se acerca a los libros sin presion.",
	},
	domain.TraitExtraversion: {
		domain.LevelHigh:     "Prefiere contenidos sociales y enérgicos, con historias centradas en el dialogo y la interaccion.",
		domain.LevelModerate: "Busca el equilibrio entre su lado introspectivo y su lado social.",
		domain.LevelLow:      "Prefiere una lectura introspectiva y reflexiva, explorando el mundo interior de las personas.",
	},
	domain.TraitAgreeableness: {
		domain.LevelHigh:     "Prefiere historias calidas y empaticas, y valora las relaciones humanas y la conexion emocional.",
		domain.LevelModerate: "Prefiere contenidos que equilibran relaciones y emociones diversas.",
		domain.LevelLow:      "Prefiere un enfoque objetivo y analitico, y disfruta de historias con conflicto y tension.",
	},
	domain.TraitEmotionalStability: {
		domain.LevelHigh:     "Prefiere contenidos luminosos y positivos, historias que transmiten calma y comodidad.",
		domain.LevelModerate: "Prefiere contenidos equilibrados que permiten vivir emociones variadas.",
		domain.LevelLow:      "Le atraen las historias de emociones intensas y psicologia compleja. Busca una resonancia emocional profunda.",
	},
}

// TraitName devuelve el nombre visible de un rasgo.
func TraitName(t domain.Trait) string {
	return traitNames[t]
}

// LevelProfile convierte el vector en cinco perfiles en orden canonico.
func LevelProfile(v domain.ScoreVector) []domain.TraitProfile {
	out := make([]domain.TraitProfile, 0, len(domain.TraitOrder))
	for _, t := range domain.TraitOrder {
		score := v.Get(t)
		level := LevelFor(score)
		out = append(out, domain.TraitProfile{
			Trait:       t,
			Name:        traitNames[t],
			Score:       score,
			Level:       level,
			Description: traitDescriptions[t][level],
		})
	}
	return out
}
