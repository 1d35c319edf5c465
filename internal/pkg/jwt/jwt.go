package jwt

import (
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
)

type Service interface {
	GenerateAccessToken(subjectID string, orgUnitID string, role Role) (token string, expiresAt int64, err error)
	GenerateSSEToken(subjectID string, orgUnitID string) (token string, expiresIn int, err error)
	ValidateSSEToken(tokenString string) (Claims, error)
	JWTAuth() *jwtauth.JWTAuth
}

type JWTService struct {
	secretKey                 string
	accessTokenExpirationTime string
	tokenAuth                 *jwtauth.JWTAuth
}

func (j *JWTService) JWTAuth() *jwtauth.JWTAuth {
	return j.tokenAuth
}

func NewJWTService(secretKey string, accessTokenExpirationTime string) Service {
	return &JWTService{
		secretKey:                 secretKey,
		accessTokenExpirationTime: accessTokenExpirationTime,
		tokenAuth:                 jwtauth.New("HS256", []byte(secretKey), nil, jwt.WithAcceptableSkew(30*time.Second)),
	}
}

func (j *JWTService) GenerateAccessToken(subjectID string, orgUnitID string, role Role) (token string, expiresAt int64, err error) {
	expDuration, err := time.ParseDuration(j.accessTokenExpirationTime)
	if err != nil {
		return "", 0, err
	}
	expiresAt = time.Now().Add(expDuration).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimSubjectID: subjectID,
		ClaimOrgUnitID: orgUnitID,
		ClaimRole:      string(role),
		ClaimType:      TokenTypeAccess,
		"exp":          expiresAt,
	})
	return tokenString, expiresAt, err
}

// GenerateSSEToken generates a short-lived token for SSE connections
func (j *JWTService) GenerateSSEToken(subjectID string, orgUnitID string) (token string, expiresIn int, err error) {
	// 5 minutes
	expiresIn = 300
	expiresAt := time.Now().Add(time.Duration(expiresIn) * time.Second).Unix()

	_, tokenString, err := j.tokenAuth.Encode(map[string]interface{}{
		ClaimSubjectID: subjectID,
		ClaimOrgUnitID: orgUnitID,
		ClaimType:      TokenTypeSSE,
		"exp":          expiresAt,
	})
	if err != nil {
		return "", 0, err
	}

	return tokenString, expiresIn, nil
}

// ValidateSSEToken validates an SSE token and returns its subject and org unit
func (j *JWTService) ValidateSSEToken(tokenString string) (Claims, error) {
	token, err := j.tokenAuth.Decode(tokenString)
	if err != nil {
		return Claims{}, err
	}

	tokenType, ok := token.Get(ClaimType)
	if !ok || tokenType != TokenTypeSSE {
		return Claims{}, jwt.ErrInvalidJWT()
	}

	subjectID, _ := token.Get(ClaimSubjectID)
	orgUnitID, _ := token.Get(ClaimOrgUnitID)
	claims := Claims{}
	claims.SubjectID, _ = subjectID.(string)
	claims.OrgUnitID, _ = orgUnitID.(string)
	if claims.SubjectID == "" || claims.OrgUnitID == "" {
		return Claims{}, jwt.ErrInvalidJWT()
	}

	return claims, nil
}
