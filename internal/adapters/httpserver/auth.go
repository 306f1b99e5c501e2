package httpserver

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/salmangujjar-dev/ecommerce-shop-sub000/internal/domain"
)

const (
	adminCookie   = "admin_session"
	stateCookie   = "oauth_state"
	adminTokenTTL = 12 * time.Hour
)

func (s *Server) handleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth not configured", http.StatusNotFound)
		return
	}
	state := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name: stateCookie, Value: state, Path: "/",
		HttpOnly: true, MaxAge: 300, SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, s.oauthCfg.AuthCodeURL(state), http.StatusFound)
}

func (s *Server) handleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	if s.oauthCfg == nil {
		http.Error(w, "oauth not configured", http.StatusNotFound)
		return
	}
	c, err := r.Cookie(stateCookie)
	if err != nil || c.Value == "" || c.Value != r.URL.Query().Get("state") {
		http.Error(w, "state", http.StatusBadRequest)
		return
	}
	tok, err := s.oauthCfg.Exchange(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		log.Error().Err(err).Msg("oauth exchange")
		http.Error(w, "exchange", http.StatusBadGateway)
		return
	}
	resp, err := s.oauthCfg.Client(r.Context(), tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		log.Error().Err(err).Msg("oauth userinfo")
		http.Error(w, "userinfo", http.StatusBadGateway)
		return
	}
	defer resp.Body.Close()
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.Email == "" {
		http.Error(w, "userinfo", http.StatusBadGateway)
		return
	}
	email := strings.ToLower(info.Email)

	if s.customers != nil {
		if _, err := s.customers.FindByEmail(r.Context(), email); err == domain.ErrNotFound {
			_ = s.customers.Save(r.Context(), &domain.Customer{Email: email, Name: info.Name})
		}
	}

	if _, ok := s.adminAllowed[email]; !ok {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name: adminCookie, Value: s.signAdminToken(email, time.Now().Add(adminTokenTTL)),
		Path: "/", HttpOnly: true, SameSite: http.SameSiteLaxMode,
		MaxAge: int(adminTokenTTL.Seconds()),
	})
	http.Redirect(w, r, "/", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{Name: adminCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, r, "/", http.StatusFound)
}

// requireAdmin accepts either the HMAC session cookie set by the OAuth
// callback or a bearer token carrying the same value.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	token := ""
	if c, err := r.Cookie(adminCookie); err == nil {
		token = c.Value
	}
	if token == "" {
		if h := r.Header.Get("Authorization"); strings.HasPrefix(h, "Bearer ") {
			token = strings.TrimPrefix(h, "Bearer ")
		}
	}
	if email, ok := s.verifyAdminToken(token); ok {
		if _, allowed := s.adminAllowed[email]; allowed {
			return true
		}
	}
	http.Error(w, "unauthorized", http.StatusUnauthorized)
	return false
}

// signAdminToken produces base64(email|expiry).hex(hmac-sha256(payload)).
func (s *Server) signAdminToken(email string, expiry time.Time) string {
	payload := fmt.Sprintf("%s|%d", email, expiry.Unix())
	mac := hmac.New(sha256.New, s.adminSecret)
	mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString([]byte(payload)) + "." + hex.EncodeToString(mac.Sum(nil))
}

func (s *Server) verifyAdminToken(token string) (string, bool) {
	dot := strings.LastIndexByte(token, '.')
	if dot <= 0 {
		return "", false
	}
	raw, err := base64.RawURLEncoding.DecodeString(token[:dot])
	if err != nil {
		return "", false
	}
	mac := hmac.New(sha256.New, s.adminSecret)
	mac.Write(raw)
	want := hex.EncodeToString(mac.Sum(nil))
	if !hmac.Equal([]byte(want), []byte(token[dot+1:])) {
		return "", false
	}
	parts := strings.SplitN(string(raw), "|", 2)
	if len(parts) != 2 {
		return "", false
	}
	exp, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || time.Now().Unix() > exp {
		return "", false
	}
	return parts[0], true
}
