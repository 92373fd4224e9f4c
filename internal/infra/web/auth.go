package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	accessCookieName  = "accessToken"
	refreshCookieName = "refreshToken"
)

type AuthConfig struct {
	HMACSecret   []byte
	CookieDomain string
	SecureCookie bool
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

// AuthManager mints and parses the cookie pair: a short-lived JWT access
// token and an opaque refresh token whose lifecycle the auth use case owns.
type AuthManager struct{ cfg AuthConfig }

func NewAuthManager(secret string, secure bool, domain string, accessTTL, refreshTTL time.Duration) *AuthManager {
	return &AuthManager{cfg: AuthConfig{
		HMACSecret:   []byte(secret),
		CookieDomain: domain, // "" is fine if you want host-only cookie
		SecureCookie: secure, // true in prod (TLS)
		AccessTTL:    accessTTL,
		RefreshTTL:   refreshTTL,
	}}
}

type UserClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Mint signs an access JWT for the user and sets both cookies. The refresh
// token value comes from the auth use case; it only transits here.
func (a *AuthManager) Mint(w http.ResponseWriter, userID, email, refreshToken string) (string, error) {
	now := time.Now()
	claims := UserClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.cfg.AccessTTL)),
			Subject:   userID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(a.cfg.HMACSecret)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, a.cookie(accessCookieName, signed, int(a.cfg.AccessTTL.Seconds())))
	http.SetCookie(w, a.cookie(refreshCookieName, refreshToken, int(a.cfg.RefreshTTL.Seconds())))
	return signed, nil
}

func (a *AuthManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, a.cookie(accessCookieName, "", -1))
	http.SetCookie(w, a.cookie(refreshCookieName, "", -1))
}

func (a *AuthManager) cookie(name, value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   a.cfg.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.cfg.SecureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// ParseFromRequest accepts the access token as a Bearer header or cookie.
func (a *AuthManager) ParseFromRequest(r *http.Request) (*UserClaims, error) {
	// Authorization: Bearer <jwt>
	if hdr := r.Header.Get("Authorization"); hdr != "" {
		if strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
			return a.parse(strings.TrimSpace(hdr[7:]))
		}
	}
	// Cookie
	if c, err := r.Cookie(accessCookieName); err == nil {
		return a.parse(c.Value)
	}
	return nil, errors.New("missing token")
}

// RefreshTokenFromRequest reads the refresh cookie; empty when absent.
func (a *AuthManager) RefreshTokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(refreshCookieName); err == nil {
		return c.Value
	}
	return ""
}

func (a *AuthManager) parse(tok string) (*UserClaims, error) {
	claims := &UserClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return a.cfg.HMACSecret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
