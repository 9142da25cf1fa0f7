package engine

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/estudiapro/demo-api/internal/broadcast"
	"github.com/estudiapro/demo-api/internal/models"
	"github.com/estudiapro/demo-api/internal/seed"
	"github.com/estudiapro/demo-api/internal/storage"
)

const badCredentialsMsg = "Credenciales inválidas (demo@estudiapro.com / demo123)"

type loginResponse struct {
	Success bool            `json:"success"`
	Token   string          `json:"token,omitempty"`
	User    *models.Profile `json:"user,omitempty"`
	Message string          `json:"message,omitempty"`
}

// findUser resolves an identifier (username or email, case-insensitive)
// against the built-in profiles and then the registered extras.
func (e *Engine) findUser(ctx context.Context, identifier string) (*models.User, error) {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		return nil, nil
	}
	for _, u := range seed.DemoProfiles() {
		if strings.ToLower(u.Username) == id || strings.ToLower(u.Email) == id {
			u := u
			return &u, nil
		}
	}
	if err := e.ensureExtraUsers(ctx); err != nil {
		return nil, err
	}
	for i := range e.extraUsers {
		u := e.extraUsers[i]
		if strings.ToLower(u.Username) == id || strings.ToLower(u.Email) == id {
			return &u, nil
		}
	}
	return nil, nil
}

// checkPassword accepts either the bcrypt hash of a registered user or the
// plaintext of a seeded demo identity. Identities with no stored password
// fall back to the shared demo default.
func checkPassword(u *models.User, password string) bool {
	if u.PasswordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
	}
	if u.Password != "" {
		return u.Password == password
	}
	return password == seed.DefaultPassword
}

func (e *Engine) generateToken(u *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": u.ID,
		"email":   u.Email,
		"rol":     string(u.Role),
		"demo":    true,
		"exp":     time.Now().Add(24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(e.cfg.JWTSecret))
}

func (e *Engine) handleLogin(ctx context.Context, req *request) (any, error) {
	identifier := req.Data.String("username")
	if identifier == "" {
		identifier = req.Data.String("email")
	}
	password := req.Data.String("password")

	user, err := e.findUser(ctx, identifier)
	if err != nil {
		return nil, err
	}
	if user == nil || !checkPassword(user, password) {
		return loginResponse{Success: false, Message: badCredentialsMsg}, nil
	}

	session := deepCopy(*user)
	if err := e.hydrateUser(ctx, &session); err != nil {
		return nil, err
	}
	e.currentUser = &session

	token, err := e.generateToken(&session)
	if err != nil {
		return nil, err
	}
	if err := e.store.SaveString(ctx, storage.KeyAuthToken, token); err != nil {
		return nil, err
	}

	return loginResponse{Success: true, Token: token, User: models.FormatUser(&session)}, nil
}

type registerRequest struct {
	Username  string `json:"username" validate:"required,min=3"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"rol"`
}

func (e *Engine) handleRegister(ctx context.Context, req *request) (any, error) {
	in := registerRequest{
		Username:  req.Data.String("username"),
		Email:     req.Data.String("email"),
		Password:  req.Data.String("password"),
		FirstName: req.Data.String("first_name"),
		LastName:  req.Data.String("last_name"),
		Role:      req.Data.String("rol"),
	}
	if err := e.validate.Struct(in); err != nil {
		return Result{Success: false, Message: "Datos de registro inválidos"}, nil
	}

	if existing, err := e.findUser(ctx, in.Username); err != nil {
		return nil, err
	} else if existing != nil {
		return Result{Success: false, Message: "El nombre de usuario ya está en uso"}, nil
	}
	if existing, err := e.findUser(ctx, in.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return Result{Success: false, Message: "El correo ya está registrado"}, nil
	}

	role := models.RoleStudent
	if in.Role != "" {
		r, ok := models.ValidRole(in.Role)
		if !ok {
			return Result{Success: false, Message: "Rol inválido"}, nil
		}
		role = r
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.User{
		ID:           nextID("usr"),
		Username:     in.Username,
		Email:        strings.ToLower(in.Email),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Name:         strings.TrimSpace(in.FirstName + " " + in.LastName),
		Role:         role,
		PasswordHash: string(hash),
		Level:        1,
	}

	if err := e.ensureExtraUsers(ctx); err != nil {
		return nil, err
	}
	e.extraUsers = append(e.extraUsers, user)
	if err := e.saveExtraUsers(ctx); err != nil {
		return nil, err
	}

	// Seed the state record now so the first login hydrates instantly.
	if _, err := e.getOrCreateUserState(ctx, &user); err != nil {
		return nil, err
	}

	if err := e.ensureAdminUsers(ctx); err != nil {
		return nil, err
	}
	e.adminUsers = append(e.adminUsers, models.AdminUser{
		ID:    user.ID,
		Name:  models.FormatUser(&user).Name,
		Email: user.Email,
		Role:  user.Role,
	})
	if err := e.saveAdminUsers(ctx); err != nil {
		return nil, err
	}

	e.bc.Broadcast(ctx, broadcast.KindUsers)
	return map[string]any{"success": true, "user": models.FormatUser(&user)}, nil
}

func (e *Engine) handleLogout(ctx context.Context, req *request) (any, error) {
	if err := e.store.Delete(ctx, storage.KeyAuthToken); err != nil {
		return nil, err
	}
	e.currentUser = nil
	return Result{Success: true}, nil
}

func (e *Engine) handleGetProfile(ctx context.Context, req *request) (any, error) {
	token, err := e.store.LoadString(ctx, storage.KeyAuthToken)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrSessionExpired
	}
	u := e.sessionUser()
	if err := e.hydrateUser(ctx, u); err != nil {
		return nil, err
	}
	return models.FormatUser(u), nil
}

// handleUpdateProfile merges editable fields into the session user. Role and
// id never change through this path.
func (e *Engine) handleUpdateProfile(ctx context.Context, req *request) (any, error) {
	u := e.sessionUser()
	if v := req.Data.String("first_name"); v != "" {
		u.FirstName = v
	}
	if v := req.Data.String("last_name"); v != "" {
		u.LastName = v
	}
	if v := req.Data.String("name"); v != "" {
		u.Name = v
	} else if u.FirstName != "" || u.LastName != "" {
		u.Name = strings.TrimSpace(u.FirstName + " " + u.LastName)
	}
	if v := req.Data.String("foto_perfil_url"); v != "" {
		u.PhotoURL = v
	}
	return map[string]any{"success": true, "user": models.FormatUser(u)}, nil
}
