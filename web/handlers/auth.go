package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"attendlog.com/attendlog/config"
	"attendlog.com/attendlog/security"
	"attendlog.com/attendlog/web/common"
	"attendlog.com/attendlog/web/middlewares"
)

type AuthEndpoint struct {
	cfg config.AuthConfig
}

func RegisterAuth(r *gin.Engine, cfg config.AuthConfig) {
	endpoint := &AuthEndpoint{cfg: cfg}
	r.POST("/login", endpoint.Login)
}

type LoginParams struct {
	Key string `json:"key" binding:"required"`
}

type LoginResult struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

// Login exchanges an access key for a signed session token. The master key
// grants the admin role; sub keys get the reporting-only user role.
func (ep *AuthEndpoint) Login(c *gin.Context) {
	var params LoginParams
	if err := c.ShouldBindJSON(&params); err != nil {
		c.JSON(http.StatusBadRequest, common.NewErrorResponse(common.FormatBindingError(err)))
		return
	}

	role := ""
	switch {
	case ep.cfg.MasterKey != "" && params.Key == ep.cfg.MasterKey:
		role = "admin"
	default:
		for _, key := range ep.cfg.SubKeys {
			if params.Key == key {
				role = "user"
				break
			}
		}
	}
	if role == "" {
		c.JSON(http.StatusUnauthorized, common.NewErrorResponse("invalid access key"))
		return
	}

	hours := ep.cfg.TokenHours
	if hours <= 0 {
		hours = 12
	}

	signed, err := security.CreateSessionToken([]byte(ep.cfg.Secret), role, time.Duration(hours)*time.Hour)
	if err != nil {
		c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
		return
	}

	c.SetCookie(middlewares.SessionCookie, signed, hours*3600, "/", "", ep.cfg.CookieSecure, true)
	c.JSON(http.StatusOK, common.NewSuccessResponse(LoginResult{Token: signed, Role: role}))
}
