package audit

import (
	"fmt"
	"strings"
	"time"

	"github.com/davihchagas/feedback-system-project/internal/domain/entity"
)

const humanTimeLayout = "02/01/2006 15:04:05"

// HumanEntry registro de auditoría presentado como frase.
type HumanEntry struct {
	WhenISO string `json:"whenIso"`
	Message string `json:"message"`
}

// Humanize convierte un registro en una frase. Es total: cualquier código de acción,
// incluidos los desconocidos, produce un mensaje; nunca falla.
func Humanize(e entity.AuditLogEntry) HumanEntry {
	when := e.When.UTC()
	at := when.Format(humanTimeLayout)
	out := HumanEntry{WhenISO: when.Format(time.RFC3339Nano)}

	actor := actorName(e.Actor)
	role := roleLabel(e.Actor)
	entityID := ""
	if e.Entity != nil {
		entityID = e.Entity.ID
	}

	switch e.Action {
	case ActionFeedbackCreated:
		out.Message = fmt.Sprintf("%s %s registró el feedback %s para %s el %s.",
			role, actor, orDefault(entityID, "sin id"),
			firstNonEmpty(e.Context, "un producto", CtxProductName, CtxProductID), at)
	case ActionResponseCreated:
		feedbackID := firstNonEmpty(e.Context, orDefault(entityID, "sin id"), CtxFeedbackID)
		out.Message = fmt.Sprintf("%s %s respondió el feedback %s el %s.", role, actor, feedbackID, at)
	case ActionProductCreated:
		out.Message = fmt.Sprintf("%s %s creó el producto %s el %s.", role, actor, productLabel(e, entityID), at)
	case ActionProductDeactivated:
		out.Message = fmt.Sprintf("%s %s inactivó el producto %s el %s.", role, actor, productLabel(e, entityID), at)
	case ActionProductReactivated:
		out.Message = fmt.Sprintf("%s %s reactivó el producto %s el %s.", role, actor, productLabel(e, entityID), at)
	case ActionUserCreated:
		out.Message = fmt.Sprintf("%s %s creó el usuario %s (%s) el %s.", role, actor, userLabel(e, entityID),
			firstNonEmpty(e.Context, "sin perfil", CtxTargetRole), at)
	case ActionUserUpdated:
		out.Message = fmt.Sprintf("%s %s actualizó el usuario %s el %s.", role, actor, userLabel(e, entityID), at)
	case ActionUserDeactivated:
		out.Message = fmt.Sprintf("%s %s desactivó el usuario %s el %s.", role, actor, userLabel(e, entityID), at)
	case ActionHTTPAccess:
		who := "Anónimo"
		if e.Actor != nil {
			who = role + " " + actor
		}
		out.Message = fmt.Sprintf("%s accedió a %s %s el %s.", who, orDefault(e.Method, "?"), orDefault(e.Path, "/"), at)
	default:
		out.Message = fmt.Sprintf("Registro sin mapeo (%s) el %s.", orDefault(e.Action, "sin acción"), at)
	}
	return out
}

func productLabel(e entity.AuditLogEntry, entityID string) string {
	return firstNonEmpty(e.Context, orDefault(entityID, "sin identificar"), CtxProductName, CtxProductID)
}

func userLabel(e entity.AuditLogEntry, entityID string) string {
	return firstNonEmpty(e.Context, orDefault(entityID, "sin identificar"), CtxTargetUserName, CtxTargetUserID)
}

func actorName(a *entity.Actor) string {
	if a == nil {
		return "desconocido"
	}
	return orDefault(a.Name, orDefault(a.UserID, "desconocido"))
}

func roleLabel(a *entity.Actor) string {
	if a == nil {
		return "Usuario"
	}
	switch strings.ToUpper(a.Role) {
	case string(entity.RoleAdmin):
		return "Administrador"
	case string(entity.RoleAnalyst):
		return "Analista"
	case string(entity.RoleClient):
		return "Cliente"
	case "SYSTEM":
		return "Sistema"
	}
	return "Usuario"
}

// firstNonEmpty devuelve el primer valor de texto no vacío entre keys, o def.
func firstNonEmpty(ctx map[string]any, def string, keys ...string) string {
	for _, k := range keys {
		v, ok := ctx[k]
		if !ok || v == nil {
			continue
		}
		s := strings.TrimSpace(fmt.Sprint(v))
		if s != "" {
			return s
		}
	}
	return def
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
