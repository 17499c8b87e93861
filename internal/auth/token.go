package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"bookmyspot/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

// ExtractTokenFromRequest pulls the bearer token out of the Authorization
// header.
func ExtractTokenFromRequest(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("authorization header is missing")
	}

	// Bearer token format: "Bearer {token}"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("authorization header format must be 'Bearer {token}'")
	}

	return parts[1], nil
}

func parseClaims(tokenString string) (jwt.MapClaims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}

	// Signature verification happens in the OIDC middleware; this parser
	// only reads claims.
	token, _, err := new(jwt.Parser).ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ExtractUserIDFromJWT reads the 'sub' claim.
func ExtractUserIDFromJWT(tokenString string) (string, error) {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return "", err
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errors.New("subject claim not found in token")
	}
	return sub, nil
}

// ExtractActorFromJWT maps the token's 'role' claim onto a workflow actor.
// An absent or unknown role defaults to customer, the least-privileged
// actor.
func ExtractActorFromJWT(tokenString string) (models.Actor, error) {
	claims, err := parseClaims(tokenString)
	if err != nil {
		return "", err
	}
	role, _ := claims["role"].(string)
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "admin":
		return models.ActorAdmin, nil
	case "organizer", "organiser":
		return models.ActorOrganizer, nil
	default:
		return models.ActorCustomer, nil
	}
}
