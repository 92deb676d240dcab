package echoapi

import (
	"strings"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/devanshdeveloper/edu-manage-sub000/core"
	"github.com/devanshdeveloper/edu-manage-sub000/core/user"
)

const (
	contextClaimsKey = "claims"
	bearerPrefix     = "Bearer "
	audience         = "EduManage Portal"
)

// Claims represents the authorization claims transmitted via a JWT.
// The session is read from the claims and never looked up again during a request.
type Claims struct {
	jwt.StandardClaims
	OrigIssuedAt int64 `json:"oriat,omitempty"`
	user.Session
}

// Auth issues and checks the session tokens.
type Auth struct {
	secret            []byte
	issuer            string
	expiration        time.Duration
	refreshExpiration time.Duration
	now               func() time.Time
}

func NewAuth(conf *core.Config) *Auth {
	return &Auth{
		secret:            []byte(conf.SecretKey),
		issuer:            conf.AppName,
		expiration:        conf.Server.JWTExpirationDelta,
		refreshExpiration: conf.Server.JWTRefreshExpirationDelta,
		now:               time.Now,
	}
}

// Claims returns the claims of usr. origIat is the issue time of the first token of the session.
func (a *Auth) Claims(usr user.User, origIat ...int64) *Claims {
	now := a.now()
	nownix := now.Unix()

	oriat := nownix
	if len(origIat) > 0 {
		oriat = origIat[0]
	}

	return &Claims{
		StandardClaims: jwt.StandardClaims{
			Issuer:    a.issuer,
			Subject:   usr.ID,
			Audience:  audience,
			ExpiresAt: now.Add(a.expiration).Unix(),
			IssuedAt:  nownix,
		},
		OrigIssuedAt: oriat,
		Session:      usr.Session(),
	}
}

// GenerateToken generates a signed JWT token string representing the user Claims.
func (a *Auth) GenerateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(a.secret)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func (a *Auth) parse(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	if claims.Subject == "" || claims.Subject != claims.UserID {
		return nil, errInvalidToken
	}
	return claims, nil
}

// Middleware authenticates requests with a bearer token and stores its claims in the context.
func (a *Auth) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			if !strings.HasPrefix(header, bearerPrefix) || len(header) == len(bearerPrefix) {
				return errMissingToken
			}
			claims, err := a.parse(header[len(bearerPrefix):])
			if err != nil {
				return err
			}
			ctx.Set(contextClaimsKey, claims)
			return next(ctx)
		}
	}
}

// Refresh returns a new token for usr if the session it started is still refreshable.
func (a *Auth) Refresh(claims Claims, usr user.User) (string, error) {
	if !usr.IsActive {
		return "", errAccountDeactivated
	}
	expTime := time.Unix(claims.OrigIssuedAt, 0).Add(a.refreshExpiration)
	if a.now().After(expTime) {
		return "", errRefreshExpired
	}
	token, err := a.GenerateToken(a.Claims(usr, claims.OrigIssuedAt))
	return token, errors.Wrap(err, "generating token")
}

func getContextClaims(ctx echo.Context) (Claims, error) {
	if claims, ok := ctx.Get(contextClaimsKey).(*Claims); ok {
		return *claims, nil
	}
	return Claims{}, errUnauthorized
}

func getContextSession(ctx echo.Context) (user.Session, error) {
	claims, err := getContextClaims(ctx)
	return claims.Session, err
}
