package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrs/backend/internal/application/workflow"
	"github.com/hrs/backend/internal/domain/identity"
)

func TestActorContext_ResolvesHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	actorID := uuid.New()

	router := gin.New()
	router.Use(ActorContext())
	router.GET("/test", func(c *gin.Context) {
		actor, ok := GetActor(c)
		require.True(t, ok)
		assert.Equal(t, actorID, actor.ID)
		assert.Equal(t, "DRC", actor.Region)
		assert.Equal(t, "MANAGER", actor.Role)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(ActorIDHeader, actorID.String())
	req.Header.Set(ActorRegionHeader, "DRC")
	req.Header.Set(ActorRoleHeader, "MANAGER")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestActorContext_MissingHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ActorContext())
	router.GET("/test", func(c *gin.Context) {
		_, ok := GetActor(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestActorContext_InvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ActorContext())
	router.GET("/test", func(c *gin.Context) {
		_, ok := GetActor(c)
		assert.False(t, ok)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(ActorIDHeader, "not-a-uuid")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHasRole(t *testing.T) {
	manager := workflow.Actor{Role: "MANAGER"}
	admin := workflow.Actor{Role: "ADMIN"}
	employee := workflow.Actor{Role: "EMPLOYEE"}

	assert.True(t, HasRole(manager, identity.RoleManager))
	assert.True(t, HasRole(manager, identity.RoleAgent, identity.RoleManager))
	assert.False(t, HasRole(employee, identity.RoleManager))
	// Admins pass every check
	assert.True(t, HasRole(admin, identity.RoleFinance))
}
