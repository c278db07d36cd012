package auth

import (
	"context"
	"errors"
	"strings"

	"google.golang.org/api/idtoken"

	"github.com/obaidurrehman72007/deep-lens/internal/model"
)

var (
	ErrInvalidGoogleToken = errors.New("invalid google id token")
	ErrEmailNotVerified   = errors.New("google account email not verified")
	ErrNoClientID         = errors.New("google client ID not configured")
)

const googleProvider = "google"

// GoogleProfile 검증된 Google ID 토큰에서 뽑은 사용자 프로필
type GoogleProfile struct {
	Subject string // Google 계정 고유 ID
	Email   string
	Name    string
	Picture string
}

// NewUser 신규 가입용 사용자 레코드 생성
func (p *GoogleProfile) NewUser() model.User {
	provider := googleProvider
	subject := p.Subject
	user := model.User{
		Email:      p.Email,
		Name:       p.Name,
		Provider:   &provider,
		ProviderID: &subject,
	}
	if p.Picture != "" {
		picture := p.Picture
		user.Picture = &picture
	}
	return user
}

// Refresh 재로그인 시 기존 사용자 레코드에 최신 프로필 반영
func (p *GoogleProfile) Refresh(user *model.User) {
	if p.Picture != "" {
		picture := p.Picture
		user.Picture = &picture
	}
	if user.Provider == nil || *user.Provider != googleProvider {
		provider := googleProvider
		subject := p.Subject
		user.Provider = &provider
		user.ProviderID = &subject
	}
}

// GoogleAuthenticator Google ID 토큰 검증기. 토큰의 audience가 설정된
// 클라이언트 ID와 일치해야 통과한다.
type GoogleAuthenticator struct {
	clientID string

	// 테스트에서 원격 검증을 대체하기 위한 주입 지점
	validate func(ctx context.Context, token, audience string) (*idtoken.Payload, error)
}

// NewGoogleAuthenticator GoogleAuthenticator 생성
func NewGoogleAuthenticator(clientID string) *GoogleAuthenticator {
	return &GoogleAuthenticator{
		clientID: clientID,
		validate: idtoken.Validate,
	}
}

// VerifyIDToken Google ID 토큰을 검증하고 가입/로그인에 쓸 프로필 반환
func (g *GoogleAuthenticator) VerifyIDToken(ctx context.Context, idToken string) (*GoogleProfile, error) {
	if g.clientID == "" {
		return nil, ErrNoClientID
	}

	payload, err := g.validate(ctx, idToken, g.clientID)
	if err != nil {
		return nil, ErrInvalidGoogleToken
	}

	return profileFromPayload(payload)
}

// profileFromPayload 검증된 페이로드에서 프로필 추출. 이메일이 없거나
// 미인증이면 거부한다.
func profileFromPayload(payload *idtoken.Payload) (*GoogleProfile, error) {
	verified, _ := payload.Claims["email_verified"].(bool)
	if !verified {
		return nil, ErrEmailNotVerified
	}

	email, _ := payload.Claims["email"].(string)
	if email == "" {
		return nil, ErrInvalidGoogleToken
	}

	name, _ := payload.Claims["name"].(string)
	if name == "" {
		// Google이 이름을 안 주는 계정은 이메일 로컬 파트로 대체
		name = email
		if i := strings.IndexByte(email, '@'); i > 0 {
			name = email[:i]
		}
	}
	picture, _ := payload.Claims["picture"].(string)

	return &GoogleProfile{
		Subject: payload.Subject,
		Email:   email,
		Name:    name,
		Picture: picture,
	}, nil
}
