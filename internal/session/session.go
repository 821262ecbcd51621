// Package session modela la sesión de plataforma ya autenticada y el flag de
// segundo factor atado a ella.
//
// El servicio no es un session manager: confía en un JWT firmado por la
// plataforma (HS256, secreto compartido) que identifica la sesión y al usuario.
// Lo único que este paquete agrega es el estado de segundo factor, guardado en
// un backend de cache con el TTL de la sesión.
package session

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("session token invalid")
	ErrNoSessionID  = errors.New("session token missing sid/jti claim")
)

// Session es la vista del request sobre la sesión de plataforma.
type Session struct {
	// ID identifica la sesión (claim sid, o jti como fallback). El flag de
	// segundo factor se guarda bajo esta clave y muere con la sesión.
	ID string

	UserID   int64
	Username string

	// ManagedCourses son los cursos donde el usuario tiene la capability de
	// administrar excepciones. ManageAll cubre el claim comodín "*".
	ManagedCourses []int64
	ManageAll      bool
}

// CanManage indica si la sesión puede administrar excepciones en el curso.
func (s *Session) CanManage(courseID int64) bool {
	if s == nil {
		return false
	}
	if s.ManageAll {
		return true
	}
	for _, id := range s.ManagedCourses {
		if id == courseID {
			return true
		}
	}
	return false
}

// FromToken valida el JWT de plataforma y construye la Session.
// Claims esperados: sub (user id), sid o jti (session id), preferred_username,
// y manage (lista de course ids, o "*").
func FromToken(raw string, secret []byte) (*Session, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrTokenInvalid
	}

	s := &Session{}

	if sub, _ := claims["sub"].(string); sub != "" {
		uid, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: sub is not a user id", ErrTokenInvalid)
		}
		s.UserID = uid
	} else if sub, ok := claims["sub"].(float64); ok {
		s.UserID = int64(sub)
	} else {
		return nil, fmt.Errorf("%w: missing sub claim", ErrTokenInvalid)
	}

	if sid, _ := claims["sid"].(string); sid != "" {
		s.ID = sid
	} else if jti, _ := claims["jti"].(string); jti != "" {
		s.ID = jti
	} else {
		return nil, ErrNoSessionID
	}

	if name, _ := claims["preferred_username"].(string); name != "" {
		s.Username = name
	} else if name, _ := claims["username"].(string); name != "" {
		s.Username = name
	}

	switch manage := claims["manage"].(type) {
	case string:
		if manage == "*" {
			s.ManageAll = true
		}
	case []any:
		for _, v := range manage {
			switch id := v.(type) {
			case float64:
				s.ManagedCourses = append(s.ManagedCourses, int64(id))
			case string:
				if id == "*" {
					s.ManageAll = true
				} else if n, err := strconv.ParseInt(id, 10, 64); err == nil {
					s.ManagedCourses = append(s.ManagedCourses, n)
				}
			}
		}
	}

	return s, nil
}
