// Package audit define los códigos de acción de auditoría y su presentación legible.
package audit

// Códigos de acción de negocio. Se almacenan como string; lectores antiguos deben
// tolerar códigos nuevos (ver Humanize).
const (
	ActionFeedbackCreated    = "CLIENT_FEEDBACK_CREATED"
	ActionResponseCreated    = "ANALYST_RESPONSE_CREATED"
	ActionProductCreated     = "ADMIN_PRODUCT_CREATED"
	ActionProductDeactivated = "ADMIN_PRODUCT_DEACTIVATED"
	ActionProductReactivated = "ADMIN_PRODUCT_REACTIVATED"
	ActionUserCreated        = "ADMIN_USER_CREATED"
	ActionUserUpdated        = "ADMIN_USER_UPDATED"
	ActionUserDeactivated    = "ADMIN_USER_DEACTIVATED"

	// ActionHTTPAccess registro de acceso por request.
	ActionHTTPAccess = "HTTP_ACCESS"
)

// BusinessActions conjunto por defecto del listado legible.
func BusinessActions() []string {
	return []string{
		ActionFeedbackCreated,
		ActionResponseCreated,
		ActionProductCreated,
		ActionProductDeactivated,
		ActionProductReactivated,
		ActionUserCreated,
		ActionUserUpdated,
		ActionUserDeactivated,
	}
}

// Tipos de entidad referenciados en EntityRef.
const (
	EntityFeedback = "feedback"
	EntityResponse = "response"
	EntityProduct  = "product"
	EntityUser     = "user"
)

// Claves de contexto usadas por Humanize.
const (
	CtxProductID      = "product_id"
	CtxProductName    = "product_name"
	CtxTargetUserID   = "target_user_id"
	CtxTargetUserName = "target_user_name"
	CtxTargetRole     = "target_role"
	CtxTargetEmail    = "target_email"
	CtxFeedbackID     = "feedback_id"
	CtxBefore         = "before"
	CtxAfter          = "after"
)
