package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/samber/lo"

	commonhttp "github.com/sngm3741/jobboard/api/internal/interfaces/http/common"
	"github.com/sngm3741/jobboard/api/internal/jobs/domain"
)

type authClaims struct {
	jwt.RegisteredClaims
	Role        string `json:"role"`
	CompanyName string `json:"companyName,omitempty"`
	Logo        string `json:"logo,omitempty"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Email       string `json:"email,omitempty"`
}

func (c *authClaims) actor() (domain.Actor, bool) {
	return domain.NewActor(domain.ActorProfile{
		ID:          c.Subject,
		Role:        c.Role,
		CompanyName: c.CompanyName,
		Logo:        c.Logo,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Email:       c.Email,
	})
}

// authMiddleware は Authorization ヘッダーから JWT を検証し、Actor をコンテキストへ詰める。
// ロールの判定はアプリケーションサービス側で行う。
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
		if authHeader == "" {
			commonhttp.WriteUnauthorized(s.logger, w, "Authorization ヘッダーがありません")
			return
		}

		const bearerPrefix = "Bearer "
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			commonhttp.WriteUnauthorized(s.logger, w, "Bearer トークンを指定してください")
			return
		}

		tokenString := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))
		if tokenString == "" {
			commonhttp.WriteUnauthorized(s.logger, w, "アクセストークンが空です")
			return
		}

		claims, err := s.parseAuthToken(tokenString)
		if err != nil {
			commonhttp.WriteUnauthorized(s.logger, w, err.Error())
			return
		}

		actor, ok := claims.actor()
		if !ok {
			commonhttp.WriteUnauthorized(s.logger, w, "不明なロールです")
			return
		}

		ctx := commonhttp.ContextWithActor(r.Context(), actor)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// parseAuthToken は複数の JWT 設定を順番に試し、署名検証と Issuer/Audience の整合性を確認する。
func (s *Server) parseAuthToken(tokenString string) (*authClaims, error) {
	if len(s.jwtConfigs) == 0 {
		return nil, fmt.Errorf("認証設定が構成されていません")
	}

	for _, cfg := range s.jwtConfigs {
		claims := &authClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
			if token.Method != jwt.SigningMethodHS256 {
				return nil, fmt.Errorf("unexpected signing method: %s", token.Method.Alg())
			}
			return cfg.Secret, nil
		}, jwt.WithLeeway(30*time.Second))

		if err != nil || !token.Valid {
			continue
		}

		if cfg.Issuer != "" && claims.Issuer != cfg.Issuer {
			continue
		}

		now := time.Now()
		if claims.ExpiresAt != nil && now.After(claims.ExpiresAt.Time) {
			continue
		}
		if claims.Subject == "" {
			continue
		}
		if s.jwtAudience != "" && !lo.Contains(claims.Audience, s.jwtAudience) {
			continue
		}

		return claims, nil
	}

	return nil, fmt.Errorf("アクセストークンが無効です")
}
