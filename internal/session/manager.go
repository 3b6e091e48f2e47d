package session

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/valyala/fasthttp"

	"github.com/taskflow/backend/domain"
	"github.com/taskflow/backend/internal/config"
)

// Manager issues and verifies stateless session tokens. The signed claim set
// is the only identity record: there is no server-side session table, so a
// token stays valid until its expiry even after logout elsewhere.
type Manager struct {
	secret     []byte
	cookieName string
	ttl        time.Duration
	issuer     string
	secure     bool
	now        func() time.Time
}

func NewManager(cfg config.SessionConfig) *Manager {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 7 * 24 * time.Hour
	}
	cookieName := cfg.CookieName
	if cookieName == "" {
		cookieName = "session"
	}
	return &Manager{
		secret:     []byte(cfg.Secret),
		cookieName: cookieName,
		ttl:        ttl,
		issuer:     cfg.Issuer,
		secure:     cfg.Secure,
		now:        time.Now,
	}
}

type sessionClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// Sign produces an HS256 token embedding the claims with the configured expiry.
func (m *Manager) Sign(data domain.SessionData) (string, error) {
	now := m.now()
	claims := sessionClaims{
		UserID: data.UserID,
		Email:  data.Email,
		Name:   data.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Verify checks signature and expiry. Any failure (tampered, expired,
// malformed) yields nil; callers never learn which check failed.
func (m *Manager) Verify(token string) *domain.SessionData {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil
	}
	return &domain.SessionData{
		UserID: claims.UserID,
		Email:  claims.Email,
		Name:   claims.Name,
	}
}

// Issue signs the claims and sets the session cookie on the response.
func (m *Manager) Issue(ctx *fasthttp.RequestCtx, data domain.SessionData) error {
	token, err := m.Sign(data)
	if err != nil {
		return err
	}

	c := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(c)

	c.SetKey(m.cookieName)
	c.SetValue(token)
	c.SetHTTPOnly(true)
	c.SetSameSite(fasthttp.CookieSameSiteLaxMode)
	c.SetSecure(m.secure)
	c.SetMaxAge(int(m.ttl.Seconds()))
	c.SetPath("/")
	ctx.Response.Header.SetCookie(c)

	return nil
}

// Read extracts and verifies the session cookie. Absent or invalid cookies
// both read as "no session".
func (m *Manager) Read(ctx *fasthttp.RequestCtx) *domain.SessionData {
	token := ctx.Request.Header.Cookie(m.cookieName)
	if len(token) == 0 {
		return nil
	}
	return m.Verify(string(token))
}

// Revoke clears the session cookie. Revoking without a session is a no-op.
func (m *Manager) Revoke(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.DelClientCookie(m.cookieName)
}
