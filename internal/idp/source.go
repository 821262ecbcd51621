// Package idp obtiene y verifica la identidad afirmada por el proveedor
// externo (SSO institucional).
package idp

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Source retorna el username afirmado por el proveedor externo para un
// request, o "" si no hay afirmación presente. Un error es un fallo del
// transporte, no la ausencia de login.
type Source interface {
	Username(r *http.Request) (string, error)
}

// HeaderSource lee el username de un atributo del server (expuesto como header
// por el reverse proxy que corre el service provider del SSO). Es el
// equivalente del user_attribute_override del flujo original.
type HeaderSource struct {
	// Attribute es el nombre del header, p.ej. "X-Shib-User".
	Attribute string
}

func (s HeaderSource) Username(r *http.Request) (string, error) {
	return strings.TrimSpace(r.Header.Get(s.Attribute)), nil
}

// UserInfoSource consulta el endpoint de user-info del plugin de autenticación
// externo, reenviando las cookies del request entrante para que el plugin
// resuelva la identidad de ESTE navegador.
type UserInfoSource struct {
	URL    string
	Client *http.Client
}

func NewUserInfoSource(url string) *UserInfoSource {
	return &UserInfoSource{
		URL:    url,
		Client: &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *UserInfoSource) Username(r *http.Request) (string, error) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return "", err
	}
	// No mandamos un username propio: sólo lo que el plugin resuelva cuenta.
	for _, c := range r.Cookies() {
		req.AddCookie(c)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("userinfo lookup: unexpected status %d", resp.StatusCode)
	}

	var body struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", err
	}
	return strings.TrimSpace(body.Username), nil
}
