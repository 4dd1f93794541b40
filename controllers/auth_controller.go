package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lukenewport-prog/nptgpt/services"
)

const tokenCookieMaxAge = 24 * 60 * 60

type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

func (ct *AuthController) HandleLogin(c *gin.Context) {
	var request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.BindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username and password are required"})
		return
	}

	if !ct.auth.Authenticate(request.Username, request.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
		return
	}

	token, err := ct.auth.GenerateToken(request.Username)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	c.SetCookie("token", token, tokenCookieMaxAge, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (ct *AuthController) HandleLogout(c *gin.Context) {
	c.SetCookie("token", "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}
