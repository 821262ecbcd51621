package idp

import (
	"errors"
	"strings"
)

var (
	// ErrNoExternalLogin: el proveedor externo no afirmó ningún username.
	ErrNoExternalLogin = errors.New("no external login detected")

	// ErrWrongUser: el proveedor autenticó a OTRO usuario distinto al de la
	// sesión de plataforma.
	ErrWrongUser = errors.New("wrong user authenticated")
)

// Verify compara el username afirmado externamente contra el de la sesión de
// plataforma, case-insensitive.
//
// El proveedor externo autentica A ALGUIEN, no necesariamente a quien está
// logueado en la plataforma; sin este check, un usuario podría autenticarse
// externamente con otra cuenta y colar esa identidad.
func Verify(sessionUsername, asserted string) error {
	if asserted == "" {
		return ErrNoExternalLogin
	}
	if !strings.EqualFold(sessionUsername, asserted) {
		return ErrWrongUser
	}
	return nil
}
