package services

import (
	"context"
	"net/http"
	"regexp"
	"time"

	"github.com/glucotrack/glucotrack/internal/client/api"
	"github.com/glucotrack/glucotrack/internal/client/models"
	"github.com/glucotrack/glucotrack/internal/client/session"
	"github.com/glucotrack/glucotrack/internal/logging"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	upperRe = regexp.MustCompile(`[A-Z]`)
	lowerRe = regexp.MustCompile(`[a-z]`)
	digitRe = regexp.MustCompile(`\d`)
)

// AuthService performs the credential exchange with the backend and hands the
// resulting session to the lifecycle manager.
type AuthService struct {
	client  caller
	manager *session.Manager
	log     logging.Logger
	now     func() time.Time
}

// NewAuthService wires an auth service to the pipeline and lifecycle manager.
func NewAuthService(client caller, manager *session.Manager, log logging.Logger) *AuthService {
	return &AuthService{client: client, manager: manager, log: log, now: time.Now}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login exchanges credentials for a token, persists the session, and
// activates it. Field validation failures never reach the network.
func (s *AuthService) Login(ctx context.Context, email, password string) (models.UserProfile, error) {
	email = models.NormalizeEmail(email)
	if err := validateLogin(email, password); err != nil {
		return models.UserProfile{}, err
	}

	body, err := s.client.Post(ctx, "/auth/login", loginRequest{Email: email, Password: password})
	if err != nil {
		return models.UserProfile{}, s.loginError(err)
	}

	token, ok := models.ExtractToken(body)
	if !ok {
		s.log.Error(ctx, "login reply carried no token")
		return models.UserProfile{}, api.NewMalformed("No token received from server.")
	}

	user := models.ExtractUser(body, email)
	cred := models.NewCredential(token, s.now())
	if err := s.manager.Activate(ctx, cred, user); err != nil {
		return models.UserProfile{}, err
	}
	return user, nil
}

// loginError rewrites the generic 401 classification into the login-specific
// message; everything else passes through unchanged.
func (s *AuthService) loginError(err error) error {
	if api.IsKind(err, api.KindUnauthorized) {
		return &api.Error{
			Kind:    api.KindUnauthorized,
			Status:  http.StatusUnauthorized,
			Message: "Incorrect email address or password.",
		}
	}
	return err
}

// Register creates a new account. The user still has to log in afterwards.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	email = models.NormalizeEmail(email)
	if err := validateRegistration(name, email, password); err != nil {
		return err
	}

	_, err := s.client.Post(ctx, "/auth/register", registerRequest{Name: name, Email: email, Password: password})
	if err != nil {
		if api.StatusOf(err) == http.StatusConflict {
			return &api.Error{
				Kind:    api.KindRequest,
				Status:  http.StatusConflict,
				Message: "Email already registered. Please use a different email.",
			}
		}
		return err
	}
	return nil
}

// Logout delegates to the lifecycle manager.
func (s *AuthService) Logout(ctx context.Context) {
	s.manager.Logout(ctx)
}

func validateLogin(email, password string) error {
	if email == "" {
		return api.NewValidation("Email is required.")
	}
	if !emailRe.MatchString(email) {
		return api.NewValidation("Please enter a valid email address.")
	}
	if password == "" {
		return api.NewValidation("Password is required.")
	}
	return nil
}

func validateRegistration(name, email, password string) error {
	switch {
	case len(name) < 2:
		return api.NewValidation("Name must be at least 2 characters.")
	case len(name) > 50:
		return api.NewValidation("Name must not exceed 50 characters.")
	}
	if !emailRe.MatchString(email) {
		return api.NewValidation("Please enter a valid email address.")
	}
	if len(password) < 8 || !upperRe.MatchString(password) || !lowerRe.MatchString(password) || !digitRe.MatchString(password) {
		return api.NewValidation("Password must contain uppercase, lowercase and numbers (min 8 characters).")
	}
	return nil
}
