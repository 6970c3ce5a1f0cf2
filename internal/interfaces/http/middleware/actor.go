package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hrs/backend/internal/application/workflow"
	"github.com/hrs/backend/internal/domain/identity"
)

// Actor identification headers. Authentication happens upstream (SSO
// reverse proxy); the gateway forwards the authenticated identity in
// these headers.
const (
	ActorIDHeader     = "X-Actor-ID"
	ActorRegionHeader = "X-Actor-Region"
	ActorRoleHeader   = "X-Actor-Role"
)

// actorKey is the gin context key carrying the resolved actor
const actorKey = "actor"

// ActorContext resolves the acting employee from the identity headers.
// Requests without a valid actor ID pass through unauthenticated;
// handlers that need an actor reject them via GetActor.
func ActorContext() gin.HandlerFunc {
	return func(c *gin.Context) {
		idStr := c.GetHeader(ActorIDHeader)
		if idStr == "" {
			c.Next()
			return
		}
		id, err := uuid.Parse(idStr)
		if err != nil {
			c.Next()
			return
		}

		c.Set(actorKey, workflow.Actor{
			ID:     id,
			Region: c.GetHeader(ActorRegionHeader),
			Role:   c.GetHeader(ActorRoleHeader),
		})
		c.Next()
	}
}

// GetActor returns the actor resolved by ActorContext.
// The second return is false when the request carried no valid identity.
func GetActor(c *gin.Context) (workflow.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return workflow.Actor{}, false
	}
	actor, ok := v.(workflow.Actor)
	return actor, ok
}

// HasRole reports whether the actor carries one of the given roles.
// Admins pass every role check.
func HasRole(actor workflow.Actor, roles ...identity.Role) bool {
	if actor.Role == identity.RoleAdmin.String() {
		return true
	}
	for _, r := range roles {
		if actor.Role == r.String() {
			return true
		}
	}
	return false
}
