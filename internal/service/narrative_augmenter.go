package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"reading-persona/internal/domain"
	"reading-persona/internal/llm"
)

const (
	FallbackSummary = "Tenes una forma de leer unica y valiosa. Tu manera de elegir libros es la base de una vida lectora rica."
	FallbackClosing = "Leer es un viaje para descubrirte y entender mejor el mundo. ¡Te acompañamos en tu recorrido lector! 📚✨"

	defaultNarrativeTimeout = 20 * time.Second
)

// Motivos de degradacion del texto narrativo.
const (
	DegradedTimeout   = "timeout"
	DegradedCanceled  = "canceled"
	DegradedProvider  = "provider_error"
	DegradedMalformed = "malformed_response"
	DegradedPartial   = "partial_response"
)

// NarrativeInput es lo que el LLM necesita para escribir el resumen del perfil.
type NarrativeInput struct {
	Scores      domain.ScoreVector
	Profile     []domain.TraitProfile
	Persona     domain.Persona
	Preferences domain.PreferenceInput
}

// NarrativeResult siempre trae texto usable; Degraded indica que hubo fallback.
type NarrativeResult struct {
	NarrativeText
	Degraded bool
	Reason   string
}

// NarrativeAugmenter genera el texto libre del reporte. Nunca devuelve error.
// La salida no es deterministica: dos llamadas con el mismo input pueden diferir.
type NarrativeAugmenter interface {
	Augment(ctx context.Context, in NarrativeInput) NarrativeResult
}

// LLMNarrativeAugmenter pide summary y closing al LLM con timeout propio.
type LLMNarrativeAugmenter struct {
	llmClient llm.LLMClient
	timeout   time.Duration
	logger    *zap.Logger
}

func NewLLMNarrativeAugmenter(llmClient llm.LLMClient, timeout time.Duration, logger *zap.Logger) *LLMNarrativeAugmenter {
	if timeout <= 0 {
		timeout = defaultNarrativeTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMNarrativeAugmenter{llmClient: llmClient, timeout: timeout, logger: logger}
}

func (a *LLMNarrativeAugmenter) Augment(ctx context.Context, in NarrativeInput) NarrativeResult {
	if a == nil || a.llmClient == nil {
		return fallbackNarrative(DegradedProvider)
	}

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	raw, err := a.llmClient.Generate(callCtx, narrativeSystemPrompt, BuildNarrativePrompt(in))
	if err != nil {
		reason := DegradedProvider
		switch {
		case errors.Is(err, context.DeadlineExceeded) || errors.Is(callCtx.Err(), context.DeadlineExceeded):
			reason = DegradedTimeout
		case errors.Is(err, context.Canceled):
			reason = DegradedCanceled
		}
		a.logger.Warn("narrative generation failed, using fallback", zap.String("reason", reason), zap.Error(err))
		return fallbackNarrative(reason)
	}

	text := ParseNarrativeResponse(raw)
	if text.Summary == "" && text.Closing == "" {
		a.logger.Warn("narrative response unparseable, using fallback", zap.Int("raw_len", len(raw)))
		return fallbackNarrative(DegradedMalformed)
	}

	res := NarrativeResult{NarrativeText: text}
	if res.Summary == "" {
		res.Summary = FallbackSummary
		res.Degraded, res.Reason = true, DegradedPartial
	}
	if res.Closing == "" {
		res.Closing = FallbackClosing
		res.Degraded, res.Reason = true, DegradedPartial
	}
	if res.Degraded {
		a.logger.Info("narrative response incomplete, filled missing fields")
	}
	return res
}

func fallbackNarrative(reason string) NarrativeResult {
	return NarrativeResult{
		NarrativeText: NarrativeText{Summary: FallbackSummary, Closing: FallbackClosing},
		Degraded:      true,
		Reason:        reason,
	}
}

const narrativeSystemPrompt = `Sos un analista literario que escribe devoluciones calidas y concretas para lectores.
A partir del perfil lector de la persona, escribi:
- "summary": 2 a 4 oraciones que describan su forma de leer, mencionando sus rasgos dominantes.
- "closing": 1 o 2 oraciones de cierre motivadoras, sin repetir el summary.
Reglas:
- Responde SOLO un JSON valido: {"summary": "...", "closing": "..."}.
- Escribi en espanol, en segunda persona, sin diagnosticos ni terminos clinicos.
- No inventes datos que no esten en el perfil.`

// BuildNarrativePrompt arma el mensaje de usuario con el perfil, la persona y un
// resumen de preferencias. Las instrucciones van aparte como mensaje de sistema.
func BuildNarrativePrompt(in NarrativeInput) string {
	var b strings.Builder
	b.WriteString("### PERFIL\n")
	for _, tp := range in.Profile {
		fmt.Fprintf(&b, "- %s: %d (%s)\n", tp.Name, tp.Score, tp.Level)
	}

	b.WriteString("\n### PERSONA\n")
	fmt.Fprintf(&b, "%s %s: %s\n", in.Persona.Icon, in.Persona.Title, in.Persona.Subtitle)
	if len(in.Persona.KeyTraits) > 0 {
		fmt.Fprintf(&b, "Rasgos clave: %s\n", strings.Join(in.Persona.KeyTraits, ", "))
	}

	b.WriteString("\n### PREFERENCIAS\n")
	writePreferenceLine(&b, "Generos", in.Preferences.Genres)
	writePreferenceLine(&b, "Estados de animo", in.Preferences.Moods)
	writePreferenceLine(&b, "Emociones", in.Preferences.Emotions)
	writePreferenceLine(&b, "Temas", in.Preferences.Themes)
	writePreferenceLine(&b, "Estilos narrativos", in.Preferences.NarrativeStyles)
	writePreferenceLine(&b, "Propositos", in.Preferences.Purposes)
	if in.Preferences.Difficulty != "" {
		fmt.Fprintf(&b, "Dificultad: %s\n", in.Preferences.Difficulty)
	}
	if in.Preferences.Pace != "" {
		fmt.Fprintf(&b, "Ritmo: %s\n", in.Preferences.Pace)
	}
	fmt.Fprintf(&b, "Amplitud de generos: %s. Rango emocional: %s.\n",
		GenreScope(len(in.Preferences.Genres)), EmotionalRange(len(in.Preferences.Emotions)))
	return b.String()
}

func writePreferenceLine(b *strings.Builder, label string, values []string) {
	if len(values) == 0 {
		return
	}
	fmt.Fprintf(b, "%s: %s\n", label, strings.Join(values, ", "))
}
