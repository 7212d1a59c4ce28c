package middlewares

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"vitascreen/db"
	"vitascreen/models"
	"vitascreen/utils"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	mongodbadapter "github.com/casbin/mongodb-adapter/v3"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

var enforcer *casbin.Enforcer

const rbacModelText = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// InitCasbin initializes the Casbin enforcer with a MongoDB adapter and the
// default admin policies.
func InitCasbin(databaseURI string) error {
	adapter, err := mongodbadapter.NewAdapter(databaseURI)
	if err != nil {
		return fmt.Errorf("failed to create Casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModelText)
	if err != nil {
		return fmt.Errorf("failed to create Casbin model: %w", err)
	}

	enforcer, err = casbin.NewEnforcer(m, adapter)
	if err != nil {
		return fmt.Errorf("failed to create Casbin enforcer: %w", err)
	}

	if err := enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	ensureDefaultPolicies()
	log.Println("Casbin RBAC initialized successfully")
	return nil
}

func ensureDefaultPolicies() {
	defaultPolicies := [][3]string{
		{"admin", "contacts", "read"},
		{"admin", "assessments", "read"},
		{"admin", "notifications", "write"},
		{"moderator", "contacts", "read"},
	}

	for _, policy := range defaultPolicies {
		exists, _ := enforcer.HasPolicy(policy[0], policy[1], policy[2])
		if !exists {
			enforcer.AddPolicy(policy[0], policy[1], policy[2])
			log.Printf("Added default policy: %s can %s %s", policy[0], policy[2], policy[1])
		}
	}

	if err := enforcer.SavePolicy(); err != nil {
		log.Printf("Warning: failed to save policies: %v", err)
	}
}

// AdminAuthMiddleware authenticates admin users against the admins collection
func AdminAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseJWTToken(tokenParts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token", "message": err.Error()})
			c.Abort()
			return
		}

		dbCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		var admin models.Admin
		err = db.MongoDatabase.Collection("admins").FindOne(dbCtx, bson.M{"email": claims.Email}).Decode(&admin)
		if err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}

		c.Set("adminEmail", claims.Email)
		c.Set("adminRole", admin.Role)
		c.Next()
	}
}

// RBACMiddleware checks if the admin has permission for the requested action
func RBACMiddleware(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		adminRole, exists := c.Get("adminRole")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin role not found"})
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(adminRole.(string), resource, action)
		if err != nil {
			log.Printf("Casbin enforce error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
