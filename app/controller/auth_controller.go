package controller

import (
	"net/http"

	"fnp-marketplace/app/response"
	"fnp-marketplace/logger"
	"fnp-marketplace/models"
)

// AuthController handles sign-in
type AuthController struct {
	auth Authenticator
}

// NewAuthController creates a new AuthController
func NewAuthController(auth Authenticator) *AuthController {
	return &AuthController{auth: auth}
}

// SignIn handles POST /auth/sign-in
// Example request: {"email": "admin@fnp.co.zw", "password": "secret123"}
// Example response: {"token": "eyJ...", "user": {"id": "...", "role": "admin", ...}}
func (c *AuthController) SignIn(w http.ResponseWriter, r *http.Request) {
	logger.Log.Infof("📥 SignIn: Received %s request to %s", r.Method, r.URL.Path)

	var req models.SignInRequest
	if err := decodeBody(w, r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	verr := &models.ValidationError{}
	if req.Email == "" {
		verr.Add("email", "is required")
	}
	if req.Password == "" {
		verr.Add("password", "is required")
	}
	if err := verr.Err(); err != nil {
		response.FromError(w, "SignIn", err)
		return
	}

	resp, err := c.auth.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(w, "SignIn", err)
		return
	}

	logger.Log.Infof("✅ SignIn: user %s signed in", resp.User.ID)
	response.JSON(w, http.StatusOK, resp)
}
