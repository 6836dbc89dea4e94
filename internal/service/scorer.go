package service

import "reading-persona/internal/domain"

// RawScores aplica todos los deltas sobre la linea base sin acotar.
// Las sumas intermedias pueden salir de [0,100]; ScorePreferences acota al final.
func RawScores(p domain.PreferenceInput) domain.ScoreVector {
	scores := domain.BaselineVector()
	for category, options := range selections(p) {
		for _, option := range options {
			d, ok := lookupDeltas(category, option)
			if !ok {
				continue
			}
			scores.Openness += d.Openness
			scores.Conscientiousness += d.Conscientiousness
			scores.Extraversion += d.Extraversion
			scores.Agreeableness += d.Agreeableness
			scores.EmotionalStability += d.EmotionalStability
		}
	}
	return scores
}

// ScorePreferences convierte las preferencias en el vector de rasgos.
// Es una funcion pura de (tabla, entrada).
func ScorePreferences(p domain.PreferenceInput) domain.ScoreVector {
	raw := RawScores(p)
	return domain.ScoreVector{
		Openness:           clampScore(raw.Openness),
		Conscientiousness:  clampScore(raw.Conscientiousness),
		Extraversion:       clampScore(raw.Extraversion),
		Agreeableness:      clampScore(raw.Agreeableness),
		EmotionalStability: clampScore(raw.EmotionalStability),
	}
}

func clampScore(v int) int {
	if v < domain.ScoreMin {
		return domain.ScoreMin
	}
	if v > domain.ScoreMax {
		return domain.ScoreMax
	}
	return v
}
