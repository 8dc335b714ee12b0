package session

import (
	"fmt"
	"log"
	"strings"

	"github.com/jlucaswrk/vet-ai-chat/internal/models"
)

// contextSeparator sits between documents in the assembled context.
const contextSeparator = "\n\n---\n\n"

// contextWarnChars: no hard cap is applied to the assembled context (the
// provider decides what to do with oversized input), but log past this
// size so the condition is visible.
const contextWarnChars = 400_000

const noContextPlaceholder = "Nenhum documento carregado ainda. Peça ao usuário para fazer upload de slides em PDF."

// AssembleContext concatenates every document as "[name]\ncontent",
// joined by the separator, in the order the caller holds them. Returns
// "" when no documents are loaded; the prompt layer substitutes the
// placeholder in that case.
func AssembleContext(docs []models.Document) string {
	if len(docs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, fmt.Sprintf("[%s]\n%s", d.Name, d.Content))
	}

	ctx := strings.Join(parts, contextSeparator)
	if len(ctx) > contextWarnChars {
		log.Printf("session: assembled context is %d chars, model input limit may be exceeded", len(ctx))
	}
	return ctx
}

// SystemPrompt interpolates the assembled context into the fixed
// veterinary-assistant instruction block sent as the system message on
// every chat turn.
func SystemPrompt(context string) string {
	if context == "" {
		context = noContextPlaceholder
	}

	return fmt.Sprintf(`Você é um assistente veterinário especializado e educado.
Seu papel é ajudar estudantes e profissionais de veterinária a entender conceitos baseados no material de estudo fornecido.

INSTRUÇÕES IMPORTANTES:
1. Responda SEMPRE em português brasileiro
2. Base suas respostas no contexto do material de slides fornecido
3. Se a pergunta não estiver relacionada ao conteúdo dos slides, informe educadamente que você só pode responder sobre o material disponível
4. Seja didático e explique conceitos de forma clara
5. Use terminologia técnica veterinária quando apropriado, mas sempre explique termos complexos
6. Quando apropriado, mencione de qual parte do material a informação foi extraída
7. Se não tiver certeza sobre algo, admita e sugira que o usuário consulte um profissional

CONTEXTO DOS SLIDES DE VETERINÁRIA:
%s`, context)
}
