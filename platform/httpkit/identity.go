// Package httpkit provides HTTP utilities including identity abstraction.
package httpkit

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Identity represents the authenticated caller.
// This interface abstracts identity extraction from the web framework,
// allowing handlers to access caller information without depending on Gin.
type Identity interface {
	// UserID returns the authenticated groomer's user ID.
	UserID() uuid.UUID
	// OrgID returns the organization (tenant) ID, or nil when absent.
	OrgID() *uuid.UUID
	// Roles returns the caller's assigned roles.
	Roles() []string
	// HasRole checks if the caller has a specific role.
	HasRole(role string) bool
	// IsAuthenticated returns true if the caller is authenticated.
	IsAuthenticated() bool
}

type identity struct {
	userID        uuid.UUID
	orgID         *uuid.UUID
	roles         []string
	authenticated bool
}

func (i *identity) UserID() uuid.UUID { return i.userID }
func (i *identity) OrgID() *uuid.UUID { return i.orgID }
func (i *identity) Roles() []string   { return i.roles }

func (i *identity) HasRole(role string) bool {
	for _, r := range i.roles {
		if r == role {
			return true
		}
	}
	return false
}

func (i *identity) IsAuthenticated() bool { return i.authenticated }

// GetIdentity extracts the Identity from a Gin context. The second return
// value is false when no authenticated caller is attached to the request.
func GetIdentity(c *gin.Context) (Identity, bool) {
	userID, userOK := c.Get(ContextUserIDKey)
	if !userOK {
		return &identity{authenticated: false}, false
	}

	uid, ok := userID.(uuid.UUID)
	if !ok {
		return &identity{authenticated: false}, false
	}

	var orgID *uuid.UUID
	if raw, ok := c.Get(ContextOrgIDKey); ok {
		if parsed, ok := raw.(uuid.UUID); ok {
			orgID = &parsed
		}
	}

	var roleList []string
	if raw, ok := c.Get(ContextRolesKey); ok {
		roleList, _ = raw.([]string)
	}

	return &identity{
		userID:        uid,
		orgID:         orgID,
		roles:         roleList,
		authenticated: true,
	}, true
}

// MustGetIdentity extracts the Identity from a Gin context.
// If the caller is not authenticated, it aborts with 401 Unauthorized and returns nil.
func MustGetIdentity(c *gin.Context) Identity {
	id, ok := GetIdentity(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil
	}
	return id
}
