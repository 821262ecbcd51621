// Package access implementa la lógica del flujo de decisión, confirmación y
// verificación del segundo factor.
package access

import (
	"context"
	"fmt"
	"net/url"

	"github.com/dropDatabas3/coursegate/internal/availability"
	"github.com/dropDatabas3/coursegate/internal/idp"
	"github.com/dropDatabas3/coursegate/internal/observability/logger"
	"github.com/dropDatabas3/coursegate/internal/session"
	"github.com/dropDatabas3/coursegate/internal/store/core"
)

// Service arma un Checker por request: el cache de lectura de excepciones no
// debe sobrevivir al request que lo creó.
type Service struct {
	store   core.ExceptionStore
	tracker *session.Tracker
	baseURL string
	// courseURL es el template (fmt con %d) hacia la vista del curso en la
	// plataforma; alimenta la continue URL del flujo de confirmación.
	courseURL string
}

func NewService(store core.ExceptionStore, tracker *session.Tracker, baseURL, courseURL string) *Service {
	return &Service{store: store, tracker: tracker, baseURL: baseURL, courseURL: courseURL}
}

func (s *Service) checker(sess *session.Session) *availability.Checker {
	return &availability.Checker{
		Exceptions: availability.NewExceptions(s.store),
		Flags:      s.tracker,
		Session:    sess,
	}
}

// Check evalúa la condición para (courseID, userID). bulk precarga el cache de
// excepciones del usuario, para los callers que van a iterar muchos cursos.
func (s *Service) Check(ctx context.Context, sess *session.Session, cond availability.Condition, courseID, userID int64, bulk bool) (bool, error) {
	return s.checker(sess).IsAvailable(ctx, cond, courseID, userID, bulk)
}

// Confirmation es el resultado de la página de confirmación.
type Confirmation struct {
	Available   bool
	ContinueURL string
	VerifyURL   string
}

// Confirm reporta si el curso ya está disponible para el usuario de la sesión.
// Si no lo está, devuelve la URL de verificación; cmid y sectionID viajan en
// ella para que el redirect final vuelva al lugar exacto.
func (s *Service) Confirm(ctx context.Context, sess *session.Session, courseID, cmid, sectionID int64) (*Confirmation, error) {
	available, err := s.checker(sess).CourseAvailable(ctx, courseID, sess.UserID)
	if err != nil {
		return nil, err
	}
	c := &Confirmation{Available: available}
	if available {
		c.ContinueURL = s.continueURL(courseID, cmid, sectionID)
	} else {
		c.VerifyURL = s.verifyURL(courseID, cmid, sectionID)
	}
	return c, nil
}

// Verify compara el username afirmado por el proveedor externo contra el de la
// sesión y, si coinciden, marca la sesión como autenticada. Devuelve la URL de
// confirmación a la que el navegador debe volver.
//
// Los fallos de idp.Verify (ErrNoExternalLogin, ErrWrongUser) se propagan tal
// cual para que el controller los mapee a la taxonomía HTTP.
func (s *Service) Verify(ctx context.Context, sess *session.Session, asserted string, courseID, cmid, sectionID int64) (string, error) {
	if err := idp.Verify(sess.Username, asserted); err != nil {
		logger.From(ctx).Warn("external verification failed",
			logger.UserID(sess.UserID),
			logger.CourseID(courseID),
			logger.Err(err),
		)
		return "", err
	}
	if err := s.tracker.SetAuthenticated(ctx, sess); err != nil {
		return "", err
	}
	logger.From(ctx).Info("second factor confirmed",
		logger.UserID(sess.UserID),
		logger.SessionID(sess.ID),
		logger.CourseID(courseID),
	)
	return s.confirmURL(courseID, cmid, sectionID), nil
}

// ---- URL helpers ----

func (s *Service) continueURL(courseID, cmid, sectionID int64) string {
	if s.courseURL == "" {
		return ""
	}
	u := fmt.Sprintf(s.courseURL, courseID)
	return appendParams(u, cmid, sectionID)
}

func (s *Service) verifyURL(courseID, cmid, sectionID int64) string {
	u := fmt.Sprintf("%s/v1/courses/%d/access/verify", s.baseURL, courseID)
	return appendParams(u, cmid, sectionID)
}

func (s *Service) confirmURL(courseID, cmid, sectionID int64) string {
	u := fmt.Sprintf("%s/v1/courses/%d/access/confirm", s.baseURL, courseID)
	return appendParams(u, cmid, sectionID)
}

func appendParams(raw string, cmid, sectionID int64) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if cmid > 0 {
		q.Set("cmid", fmt.Sprintf("%d", cmid))
	}
	if sectionID > 0 {
		q.Set("sectionid", fmt.Sprintf("%d", sectionID))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
