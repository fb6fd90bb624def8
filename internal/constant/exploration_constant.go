package constant

const (
	// ExplorationSystemInstruction fixes persona, language, tone and the
	// no-fabrication directive for every exploration.
	ExplorationSystemInstruction = `Eres un erudito bíblico y teólogo experto. Tu propósito es ayudar a los usuarios a comprender la Biblia. Proporciona respuestas claras, perspicaces y bien fundamentadas basadas en las Escrituras. Tu tono debe ser respetuoso, informativo y accesible. Responde siempre en español. No inventes información. Basa tus respuestas en interpretaciones teológicas comúnmente aceptadas.`

	// ExplorationUserPromptTemplate takes the literal query as its only verb.
	ExplorationUserPromptTemplate = `Por favor, explora el siguiente tema, pregunta o pasaje bíblico: "%s"`

	ExplorationTemperature      = 0.5
	ExplorationTopP             = 0.95
	ExplorationResponseMIMEType = "application/json"
)

// Schema field descriptions sent with the output schema.
const (
	SchemaExplanationDescription       = "Una explicación detallada y profunda del tema, pasaje o pregunta. Debe ser clara, perspicaz y basarse en principios teológicos sólidos."
	SchemaKeyVersesDescription         = "Una lista de 1 a 3 versículos clave que son centrales para el tema consultado."
	SchemaRelatedVersesDescription     = "Una lista de versículos adicionales que proporcionan contexto, apoyo o una perspectiva diferente sobre el tema."
	SchemaFurtherStudyDescription      = "Una lista de temas o conceptos relacionados que el usuario podría explorar para profundizar su comprensión."
	SchemaKeyVerseReferenceDescription = "La referencia bíblica completa (ej. Juan 3:16)."
	SchemaRelatedReferenceDescription  = "La referencia bíblica completa (ej. Romanos 5:8)."
	SchemaVerseTextDescription         = "El texto completo del versículo."
	SchemaTopicNameDescription         = "El nombre del tema (ej. El Amor Ágape)."
	SchemaTopicDescriptionDescription  = "Una breve descripción de lo que trata el tema y por qué es relevante."
)

// User-facing messages. Causes are logged, never shown.
const (
	MessageExplorationFailed = "No se pudo obtener una respuesta. Por favor, intente de nuevo."
	MessageEmptyQuery        = "Por favor, introduce un término de búsqueda."
	MessageSignInFailed      = "No se pudo iniciar sesión. Inténtalo de nuevo."
	MessageSignOutFailed     = "No se pudo cerrar sesión. Inténtalo de nuevo."
	MessageUnexpected        = "Ocurrió un error inesperado."
	MessageFooterNotice      = "Potenciado por IA. Siempre compara los resultados con las Escrituras."
)
