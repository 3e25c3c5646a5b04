package utils // package utils provides helper functions for password hashing and session tokens

import (
    "errors"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidSession is returned when a session token fails to parse,
// carries the wrong signing method, or has expired.
var ErrInvalidSession = errors.New("invalid session token")

// SessionToken is a signed HS256 token identifying an authenticated
// staff member. The Token field contains the serialized JWT; Exp stores
// its expiration. The token travels in an HttpOnly cookie and is opaque
// to the client.
type SessionToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewSessionToken builds and signs an HS256 JWT for a staff account.
// The claims are: subject (sub) set to the account ID, the account
// email, expiration (exp) and issued at (iat).
func NewSessionToken(secret string, accountID uint64, email string, ttlMin int) (SessionToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "sub":   accountID,
        "email": email,
        "exp":   exp.Unix(),
        "iat":   time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return SessionToken{}, err
    }
    return SessionToken{Token: signed, Exp: exp}, nil
}

// ParseSessionToken verifies a session token and returns the account ID
// and email it carries. Any parse, signature or expiry failure is
// reported as ErrInvalidSession.
func ParseSessionToken(secret, raw string) (uint64, string, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Reject tokens signed with anything but HMAC.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidSession
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return 0, "", ErrInvalidSession
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, "", ErrInvalidSession
    }

    var accountID uint64
    switch sub := claims["sub"].(type) {
    case float64:
        // JWT numeric values decode as float64.
        accountID = uint64(sub)
    case string:
        if parsed, err := strconv.ParseUint(sub, 10, 64); err == nil {
            accountID = parsed
        }
    }
    email, _ := claims["email"].(string)
    if accountID == 0 || email == "" {
        return 0, "", ErrInvalidSession
    }
    return accountID, email, nil
}
