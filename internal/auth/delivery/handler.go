package delivery

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"briefdesk-backend/internal/auth/usecase"
)

// OAuthHandler handles the Google authorization flow
type OAuthHandler struct {
	flow  usecase.OAuthFlow
	users usecase.UserService
}

func NewOAuthHandler(flow usecase.OAuthFlow, users usecase.UserService) *OAuthHandler {
	return &OAuthHandler{flow: flow, users: users}
}

func redirectURI(c *gin.Context) string {
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/api/oauth/callback", scheme, c.Request.Host)
}

// Authorize redirects to the Google consent screen
// GET /api/oauth/authorize
func (h *OAuthHandler) Authorize(c *gin.Context) {
	url, err := h.flow.AuthURL(redirectURI(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to generate authorization URL",
			"message": err.Error(),
		})
		return
	}
	c.Redirect(http.StatusFound, url)
}

// Callback exchanges the authorization code and persists the token
// GET /api/oauth/callback?code=...
func (h *OAuthHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Authorization code missing"})
		return
	}

	user, err := h.users.EnsureDefaultUser()
	if err != nil {
		h.renderFailure(c, err)
		return
	}

	if _, err := h.flow.ExchangeCode(c.Request.Context(), user.ID, code, redirectURI(c)); err != nil {
		h.renderFailure(c, err)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(successPage))
}

func (h *OAuthHandler) renderFailure(c *gin.Context, err error) {
	c.Data(http.StatusInternalServerError, "text/html; charset=utf-8",
		[]byte(fmt.Sprintf(failurePage, err.Error())))
}

const successPage = `<html>
  <head>
    <title>Authorization Successful</title>
    <style>
      body { font-family: system-ui; display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; background: #0f172a; color: white; }
      .container { text-align: center; max-width: 500px; padding: 2rem; }
      h1 { color: #60a5fa; margin-bottom: 1rem; }
      p { color: #94a3b8; line-height: 1.6; }
      ul { text-align: left; margin: 1rem auto; max-width: 300px; }
      button { margin-top: 2rem; padding: 0.75rem 2rem; background: #3b82f6; color: white; border: none; border-radius: 0.5rem; cursor: pointer; font-size: 1rem; }
      button:hover { background: #2563eb; }
    </style>
  </head>
  <body>
    <div class="container">
      <h1>&#10003; Google Services Connected!</h1>
      <p>Your Google account has been authorized with access to:</p>
      <ul>
        <li>Gmail (read, send, modify, labels)</li>
        <li>Google Calendar (events, read/write)</li>
      </ul>
      <p>You can now close this window and return to the app.</p>
      <button onclick="window.close()">Close Window</button>
    </div>
  </body>
</html>`

const failurePage = `<html>
  <head>
    <title>Authorization Failed</title>
    <style>
      body { font-family: system-ui; display: flex; align-items: center; justify-content: center; height: 100vh; margin: 0; background: #0f172a; color: white; }
      .container { text-align: center; max-width: 500px; padding: 2rem; }
      h1 { color: #ef4444; margin-bottom: 1rem; }
      p { color: #94a3b8; line-height: 1.6; }
    </style>
  </head>
  <body>
    <div class="container">
      <h1>&#10007; Authorization Failed</h1>
      <p>%s</p>
    </div>
  </body>
</html>`
