package entity

import "time"

// Actor copia desnormalizada del usuario en el momento de la escritura (no es referencia viva).
type Actor struct {
	UserID string `bson:"user_id" json:"userId"`
	Name   string `bson:"name" json:"name"`
	Email  string `bson:"email" json:"email"`
	Role   string `bson:"role" json:"role"`
}

// EntityRef referencia opcional a la entidad afectada.
type EntityRef struct {
	Type string `bson:"type" json:"type"`
	ID   string `bson:"id" json:"id"`
}

// AuditLogEntry registro inmutable de una acción de negocio o de un acceso HTTP.
// Los campos de request solo se llenan en la variante de registro de acceso.
type AuditLogEntry struct {
	When      time.Time      `bson:"when" json:"when"`
	Action    string         `bson:"action" json:"action"`
	Actor     *Actor         `bson:"actor,omitempty" json:"actor,omitempty"`
	Entity    *EntityRef     `bson:"entity,omitempty" json:"entity,omitempty"`
	Context   map[string]any `bson:"context,omitempty" json:"context,omitempty"`
	Method    string         `bson:"method,omitempty" json:"method,omitempty"`
	Path      string         `bson:"path,omitempty" json:"path,omitempty"`
	IP        string         `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent string         `bson:"user_agent,omitempty" json:"userAgent,omitempty"`
	RequestID string         `bson:"request_id,omitempty" json:"requestId,omitempty"`
	Status    int            `bson:"status,omitempty" json:"status,omitempty"`
	Body      map[string]any `bson:"body,omitempty" json:"body,omitempty"`
}
