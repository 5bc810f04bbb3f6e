// Package owner decides whether a request comes from the store owner.
package owner

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// HeaderToken carries the owner token. "Authorization: Bearer <token>" is
// accepted as well.
const HeaderToken = "X-Owner-Token"

// Resolver reports whether a request is made by the owner.
type Resolver interface {
	IsOwner(r *http.Request) bool
}

// TokenResolver compares the presented token with a bcrypt hash.
type TokenResolver struct {
	hash []byte
}

// NewTokenResolver returns a resolver for hash. An empty hash admits nobody.
func NewTokenResolver(hash string) *TokenResolver {
	return &TokenResolver{hash: []byte(hash)}
}

// HashToken hashes a plain token for OWNER_TOKEN_HASH.
func HashToken(token string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (t *TokenResolver) IsOwner(r *http.Request) bool {
	if len(t.hash) == 0 {
		return false
	}
	token := Token(r)
	if token == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword(t.hash, []byte(token)) == nil
}

// Token extracts the presented owner token, or "".
func Token(r *http.Request) string {
	if v := strings.TrimSpace(r.Header.Get(HeaderToken)); v != "" {
		return v
	}
	auth := r.Header.Get("Authorization")
	if len(auth) > 7 && strings.EqualFold(auth[:7], "bearer ") {
		return strings.TrimSpace(auth[7:])
	}
	return ""
}

// Static is a Resolver with a fixed answer.
type Static bool

func (s Static) IsOwner(*http.Request) bool { return bool(s) }

// Require aborts with 403 access_denied unless the request is from the owner.
func Require(res Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !res.IsOwner(c.Request) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access_denied"})
			return
		}
		c.Next()
	}
}
