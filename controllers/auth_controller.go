package controllers

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eyefi-app/config"
	"eyefi-app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthController struct {
	DB *gorm.DB
}

func NewAuthController(DB *gorm.DB) *AuthController {
	return &AuthController{DB: DB}
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {

	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := ctx.BodyParser(&input); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request",
		})
	}

	if input.Email == "" || input.Password == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Missing required fields",
		})
	}

	sessionID := uuid.New().String()
	ip, ua := getClientInfo(ctx)
	now := time.Now()

	// default log FAILED
	loginLog := models.LoginLog{
		SessionID:   sessionID,
		Username:    input.Email,
		LoginAt:     &now,
		IPAddress:   ip,
		UserAgent:   ua,
		LoginStatus: "FAILED",
	}

	var mUser models.User
	result := c.DB.Where("email = ? OR username = ?", input.Email, input.Email).First(&mUser)

	if result.Error != nil {
		reason := "USER_NOT_FOUND"
		loginLog.FailureReason = &reason
		c.DB.Create(&loginLog)

		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid username or password",
			})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": result.Error.Error(),
		})
	}

	if bcrypt.CompareHashAndPassword(
		[]byte(mUser.Password),
		[]byte(input.Password),
	) != nil {
		reason := "WRONG_PASSWORD"
		uid := uint64(mUser.ID)
		loginLog.UserID = &uid
		loginLog.FailureReason = &reason
		c.DB.Create(&loginLog)

		return ctx.Status(401).JSON(fiber.Map{"error": "invalid credentials"})
	}

	// A fresh login replaces any session still open on another device.
	c.DB.Model(&models.UserSession{}).
		Where("user_id = ? AND is_active = ?", mUser.ID, true).
		Update("is_active", false)

	session := models.UserSession{
		UserID:         uint64(mUser.ID),
		SessionID:      sessionID,
		IPAddress:      ip,
		UserAgent:      ua,
		IsActive:       true,
		LastActivityAt: now,
		ExpiresAt:      now.Add(time.Duration(config.JWTExpiration) * time.Second),
	}
	c.DB.Create(&session)

	uid := uint64(mUser.ID)
	loginLog.UserID = &uid
	loginLog.LoginStatus = "SUCCESS"
	loginLog.FailureReason = nil
	c.DB.Create(&loginLog)

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":    mUser.ID,
		"session_id": sessionID,
		"exp":        now.Add(time.Duration(config.JWTExpiration) * time.Second).Unix(),
		"jti":        uuid.NewString(),
	})

	accessTokenString, err := accessToken.SignedString([]byte(config.JWTSecret))
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to generate token",
		})
	}

	ctx.Cookie(config.GetTokenCookie(accessTokenString))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Login successfully",
		"x_token": accessTokenString,
		"user": fiber.Map{
			"id":       mUser.ID,
			"email":    mUser.Email,
			"username": mUser.Username,
			"name":     mUser.Name,
			"role":     mUser.Role,
		},
	})
}

func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	sessionID, ok := ctx.Locals("sessionID").(string)
	if !ok || sessionID == "" {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid session",
		})
	}

	now := time.Now()

	result := c.DB.Model(&models.LoginLog{}).
		Where("session_id = ? AND logout_at IS NULL", sessionID).
		Update("logout_at", &now)

	if result.RowsAffected == 0 {
		// double logout or a stale token, not fatal
		fmt.Println("Warning: No login log found to update logout_at for session_id:", sessionID)
	}

	var userSession models.UserSession
	if err := c.DB.Where("session_id = ? AND is_active = ?", sessionID, true).First(&userSession).Error; err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid session",
		})
	}

	userSession.IsActive = false
	userSession.LastActivityAt = now
	c.DB.Save(&userSession)

	ctx.Cookie(config.GetTokenCookie(""))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Logout successful",
	})
}

func (c *AuthController) IsLoggedIn(ctx *fiber.Ctx) error {
	userID, ok := ctx.Locals("userID").(float64)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "invalid session",
		})
	}

	var mUser models.User
	if err := c.DB.First(&mUser, uint(userID)).Error; err != nil {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "user not found",
		})
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"user": fiber.Map{
			"id":       mUser.ID,
			"email":    mUser.Email,
			"username": mUser.Username,
			"name":     mUser.Name,
			"role":     mUser.Role,
		},
	})
}

func getClientInfo(ctx *fiber.Ctx) (ip, ua string) {
	ip = ctx.IP()
	ua = ctx.Get("User-Agent")
	if strings.TrimSpace(ua) == "" {
		ua = "Unknown"
	}
	return
}
